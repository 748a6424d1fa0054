/*
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota + 1
	UnterminatedString
)

func (k ErrorKind) ToString() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected-character"
	case UnterminatedString:
		return "unterminated-string"
	}
	return "unknown"
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.ToString()), nil
}

// LexError describes input that could not be classified as a token. Line
// and Location always refer to where the failing scan began.
type LexError struct {
	Kind     ErrorKind
	Char     rune
	Line     int
	Location Location
}

func (e *LexError) Message() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character %q", e.Char)
	case UnterminatedString:
		return "unterminated string"
	}
	return "invalid input"
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message())
}

// FormatError renders the source line holding the error with a marker
// under the offending text.
func (e *LexError) FormatError(input string) string {
	start := e.Location.Start
	if start > len(input) {
		start = len(input)
	}

	lineStart := strings.LastIndexByte(input[:start], '\n') + 1
	lineEnd := strings.IndexByte(input[start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(input)
	} else {
		lineEnd += start
	}

	// CRLF line endings render without the CR.
	if lineEnd > lineStart && input[lineEnd-1] == '\r' {
		lineEnd--
	}
	if start > lineEnd {
		start = lineEnd
	}

	end := e.Location.End
	if end > lineEnd {
		end = lineEnd
	}
	if end < start {
		end = start
	}

	repeat := utf8.RuneCountInString(input[start:end]) - 1
	if repeat < 0 {
		repeat = 0
	}

	errorString := fmt.Sprintf("Lexical error found on line %d:\n", e.Line)
	errorString += input[lineStart:lineEnd]
	errorString += fmt.Sprintf("\n%s^%s ", strings.Repeat(" ", utf8.RuneCountInString(input[lineStart:start])), strings.Repeat("~", repeat))
	errorString += fmt.Sprintf("%s\n", e.Message())
	return errorString
}
