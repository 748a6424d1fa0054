/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokens

import (
	"bytes"
	"testing"

	"github.com/dburkart/declscan/pkg/repl"
	"github.com/dburkart/declscan/pkg/source"
	"github.com/rs/zerolog"
)

func TestTokens(t *testing.T) {
	var out, diag bytes.Buffer

	files := []source.File{
		{Name: "ok.decl", Input: "a: int = 1"},
		{Name: "bad.decl", Input: "b = @ 2"},
	}

	failed, err := Tokens(repl.NewOutputWriter(&out, "csv"), &diag, files, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if !failed {
		t.Error("wanted a failure for bad.decl")
	}

	want := "Line,Span,Type,Lexeme,Value\n" +
		"1,0..1,TOK_IDENTIFIER,a,\n" +
		"1,1..2,TOK_COLON,:,\n" +
		"1,3..6,TOK_IDENTIFIER,int,\n" +
		"1,7..8,TOK_EQUAL,=,\n" +
		"1,9..10,TOK_NUMBER,1,1\n" +
		"1,10..10,TOK_EOF,,\n" +
		"Line,Span,Type,Lexeme,Value\n" +
		"1,0..1,TOK_IDENTIFIER,b,\n" +
		"1,2..3,TOK_EQUAL,=,\n"
	if out.String() != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, out.String())
	}

	wantDiag := "bad.decl: Lexical error found on line 1:\nb = @ 2\n    ^ unexpected character '@'\n"
	if diag.String() != wantDiag {
		t.Errorf("wanted:\n%s\ngot:\n%s", wantDiag, diag.String())
	}
}

func TestTokensClean(t *testing.T) {
	var out, diag bytes.Buffer

	failed, err := Tokens(repl.NewOutputWriter(&out, "json"), &diag, []source.File{{Name: "x", Input: `s = "hi"`}}, zerolog.Nop())
	if err != nil || failed {
		t.Errorf("wanted a clean scan, got failed=%v err=%v", failed, err)
	}
	if diag.Len() != 0 {
		t.Error("wanted no diagnostics, got", diag.String())
	}
}
