/*
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/dburkart/declscan/pkg/common/parse"
	"github.com/pkg/errors"
)

// ErrExhausted is returned when NextToken is called after TOK_EOF was
// already emitted.
var ErrExhausted = errors.New("scanner: input already exhausted")

const eof rune = -1

// Scanner produces tokens from Input one at a time.
//
// Grammar:
//
//	declaration     = identifier ":" identifier "=" value
//	value           = number / string / identifier
//	identifier      = ALPHA *(ALPHA / DIGIT)
//	number          = *DIGIT ["." *DIGIT]
//	string          = DQUOTE *(%x00-09 / %x0B-21 / %x23-10FFFF) DQUOTE
type Scanner struct {
	Input string
	Start int
	Pos   int
	Line  int

	exhausted bool
}

func New(input string) *Scanner {
	return &Scanner{Input: input, Line: 1}
}

// peek returns the next rune without consuming it, or eof.
func (s *Scanner) peek() (rune, int) {
	if s.Pos >= len(s.Input) {
		return eof, 0
	}
	return utf8.DecodeRuneInString(s.Input[s.Pos:])
}

func (s *Scanner) advance() rune {
	r, width := s.peek()
	s.Pos += width
	return r
}

func (s *Scanner) skipWhitespace() {
	for {
		r, _ := s.peek()
		switch r {
		case ' ', '\t', '\r':
		case '\n':
			s.Line++
		default:
			return
		}
		s.advance()
	}
}

func (s *Scanner) token(t TokenType) Token {
	return Token{
		Type:     t,
		Lexeme:   s.Input[s.Start:s.Pos],
		Location: parse.Location{Start: s.Start, End: s.Pos},
		Line:     s.Line,
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (s *Scanner) matchDigits() {
	for r, _ := s.peek(); isDigit(r); r, _ = s.peek() {
		s.advance()
	}
}

// matchNumber consumes the rest of a number whose first rune was already
// read. A leading "." counts as the number's only dot.
func (s *Scanner) matchNumber(first rune) Token {
	s.matchDigits()
	if first != '.' {
		if r, _ := s.peek(); r == '.' {
			s.advance()
			s.matchDigits()
		}
	}
	return s.token(TOK_NUMBER)
}

func (s *Scanner) matchIdentifier() Token {
	for r, _ := s.peek(); unicode.IsLetter(r) || unicode.IsDigit(r); r, _ = s.peek() {
		s.advance()
	}
	return s.token(TOK_IDENTIFIER)
}

// matchString is called with the opening quote consumed. The returned
// token excludes both quotes.
func (s *Scanner) matchString() (Token, error) {
	quote := s.Start
	s.Start = s.Pos

	for {
		r, _ := s.peek()
		switch r {
		case eof, '\n':
			return Token{}, &parse.LexError{
				Kind:     parse.UnterminatedString,
				Line:     s.Line,
				Location: parse.Location{Start: quote, End: s.Pos},
			}
		case '"':
			t := s.token(TOK_STRING)
			s.advance()
			return t, nil
		}
		s.advance()
	}
}

// NextToken skips whitespace and scans exactly one token. Once the input
// is exhausted a single TOK_EOF is returned; any call after that returns
// ErrExhausted.
func (s *Scanner) NextToken() (Token, error) {
	if s.exhausted {
		return Token{}, ErrExhausted
	}
	if s.Line == 0 {
		s.Line = 1
	}

	s.skipWhitespace()
	s.Start = s.Pos

	r := s.advance()
	switch {
	case r == eof:
		s.exhausted = true
		return s.token(TOK_EOF), nil
	case r == '=':
		return s.token(TOK_EQUAL), nil
	case r == ':':
		return s.token(TOK_COLON), nil
	case isDigit(r) || r == '.':
		return s.matchNumber(r), nil
	case unicode.IsLetter(r):
		return s.matchIdentifier(), nil
	case r == '"':
		return s.matchString()
	}

	return Token{}, &parse.LexError{
		Kind:     parse.UnexpectedCharacter,
		Char:     r,
		Line:     s.Line,
		Location: parse.Location{Start: s.Start, End: s.Pos},
	}
}

// Resync skips to the next whitespace boundary. Call it after NextToken
// returns a *parse.LexError to continue scanning past the bad input.
func (s *Scanner) Resync() {
	for r, _ := s.peek(); r != eof && !isDelimiter(r); r, _ = s.peek() {
		s.advance()
	}
	s.Start = s.Pos
}

func isDelimiter(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
