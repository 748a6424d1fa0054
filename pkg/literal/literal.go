/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package literal interprets the value tokens produced by the scanner.
package literal

import (
	"fmt"
	"strconv"

	"github.com/dburkart/declscan/pkg/scanner"
	"github.com/pkg/errors"
)

// Number parses a TOK_NUMBER lexeme. Lexemes with no integer part (".5")
// or no fractional part ("5.") are accepted; a lone "." is not.
func Number(t scanner.Token) (float64, error) {
	if t.Type != scanner.TOK_NUMBER {
		return 0, errors.Errorf("expected TOK_NUMBER, got %s", t.Type.ToString())
	}

	text := t.Lexeme
	if text == "." {
		return 0, errors.Errorf("line %d: number has no digits", t.Line)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "line %d: invalid number %q", t.Line, text)
	}
	return f, nil
}

// String returns the raw contents of a TOK_STRING. No escapes exist in
// the language, so the lexeme is the value.
func String(t scanner.Token) (string, error) {
	if t.Type != scanner.TOK_STRING {
		return "", errors.Errorf("expected TOK_STRING, got %s", t.Type.ToString())
	}
	return t.Lexeme, nil
}

// Value interprets t for display: numbers as float64, strings as their
// contents, and everything else as nil.
func Value(t scanner.Token) (interface{}, error) {
	switch t.Type {
	case scanner.TOK_NUMBER:
		return Number(t)
	case scanner.TOK_STRING:
		return String(t)
	}
	return nil, nil
}

// Format renders the interpreted value of t, or an empty string when t has
// no value.
func Format(t scanner.Token) string {
	v, err := Value(t)
	if err != nil || v == nil {
		return ""
	}
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
