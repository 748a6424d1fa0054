/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"encoding/json"
	"fmt"

	"github.com/dburkart/declscan/pkg/literal"
	"github.com/dburkart/declscan/pkg/scanner"
)

// TokenTable prints a token stream along with the interpreted value of
// each literal.
type TokenTable struct {
	Tokens []scanner.Token
}

func (t TokenTable) Headers() []string {
	return []string{"Line", "Span", "Type", "Lexeme", "Value"}
}

func (t TokenTable) Values() [][]string {
	ret := make([][]string, 0, len(t.Tokens))
	for _, tok := range t.Tokens {
		ret = append(ret, []string{
			fmt.Sprint(tok.Line),
			fmt.Sprintf("%d..%d", tok.Location.Start, tok.Location.End),
			tok.Type.ToString(),
			tok.Lexeme,
			literal.Format(tok),
		})
	}
	return ret
}

func (t TokenTable) MarshalJSON() ([]byte, error) {
	if t.Tokens == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Tokens)
}
