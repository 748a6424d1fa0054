/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"fmt"
	"strings"

	"github.com/dburkart/declscan/pkg/common/parse"
)

// ScanAll scans input to the end, collecting lexical errors and resyncing
// past each one. Scanning stops early once maxErrors errors have been
// collected; maxErrors <= 0 means no limit. The returned tokens end with
// TOK_EOF unless scanning stopped early.
func ScanAll(input string, maxErrors int) ([]Token, []*parse.LexError) {
	var tokens []Token
	var errs []*parse.LexError

	s := New(input)
	for {
		tok, err := s.NextToken()
		if err != nil {
			lexErr, ok := err.(*parse.LexError)
			if !ok {
				break
			}

			errs = append(errs, lexErr)
			if maxErrors > 0 && len(errs) >= maxErrors {
				break
			}
			s.Resync()
			continue
		}

		tokens = append(tokens, tok)
		if tok.Type == TOK_EOF {
			break
		}
	}

	return tokens, errs
}

// Dump renders one token per line as "line start:end TYPE "lexeme"".
func Dump(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		fmt.Fprintf(&b, "%d %d:%d %s %q\n", t.Line, t.Location.Start, t.Location.End, t.Type.ToString(), t.Lexeme)
	}
	return b.String()
}
