/*
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"fmt"

	"github.com/dburkart/declscan/pkg/common/parse"
)

type TokenType int

const (
	TOK_INVALID TokenType = iota
	TOK_EOF

	TOK_IDENTIFIER
	TOK_NUMBER
	TOK_STRING
	TOK_EQUAL
	TOK_COLON

	// Reserved for a future grammar. The scanner never emits these.
	TOK_PAREN_L
	TOK_PAREN_R
	TOK_COMMA
	TOK_DOT
	TOK_PLUS
	TOK_MINUS
	TOK_SEMICOLON
	TOK_SLASH
	TOK_STAR
)

func (t TokenType) ToString() string {
	switch t {
	case TOK_INVALID:
		return "TOK_INVALID"
	case TOK_EOF:
		return "TOK_EOF"
	case TOK_IDENTIFIER:
		return "TOK_IDENTIFIER"
	case TOK_NUMBER:
		return "TOK_NUMBER"
	case TOK_STRING:
		return "TOK_STRING"
	case TOK_EQUAL:
		return "TOK_EQUAL"
	case TOK_COLON:
		return "TOK_COLON"
	case TOK_PAREN_L:
		return "TOK_PAREN_L"
	case TOK_PAREN_R:
		return "TOK_PAREN_R"
	case TOK_COMMA:
		return "TOK_COMMA"
	case TOK_DOT:
		return "TOK_DOT"
	case TOK_PLUS:
		return "TOK_PLUS"
	case TOK_MINUS:
		return "TOK_MINUS"
	case TOK_SEMICOLON:
		return "TOK_SEMICOLON"
	case TOK_SLASH:
		return "TOK_SLASH"
	case TOK_STAR:
		return "TOK_STAR"
	}
	return "TOK_UNKNOWN"
}

func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.ToString()), nil
}

// Emitted lists every kind the scanner can produce, in declaration order.
var Emitted = []TokenType{
	TOK_EOF, TOK_IDENTIFIER, TOK_NUMBER, TOK_STRING, TOK_EQUAL, TOK_COLON,
}

// A Token is a classified slice of the scanner input. Lexeme is a
// substring of the input and shares its memory.
type Token struct {
	Type     TokenType      `json:"type"`
	Lexeme   string         `json:"lexeme"`
	Location parse.Location `json:"location"`
	Line     int            `json:"line"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q, line %d, %d..%d)", t.Type.ToString(), t.Lexeme, t.Line, t.Location.Start, t.Location.End)
}
