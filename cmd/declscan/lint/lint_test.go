/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package lint

import (
	"bytes"
	"testing"

	"github.com/dburkart/declscan/pkg/source"
)

func TestLint(t *testing.T) {
	var b bytes.Buffer

	files := []source.File{
		{Name: "ok.decl", Input: "a: int = 1\n"},
		{Name: "bad.decl", Input: "b = $\nc = \"x\n"},
	}

	st, found := Lint(&b, files, 0)
	if found != 2 {
		t.Error("wanted 2 errors, got", found)
	}
	if st.Sources != 2 {
		t.Error("wanted 2 sources, got", st.Sources)
	}

	want := "bad.decl: Lexical error found on line 1:\nb = $\n    ^ unexpected character '$'\n" +
		"bad.decl: Lexical error found on line 2:\nc = \"x\n    ^~ unterminated string\n"
	if b.String() != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, b.String())
	}
}

func TestLintMaxErrors(t *testing.T) {
	var b bytes.Buffer

	_, found := Lint(&b, []source.File{{Name: "x", Input: "@ @ @ @"}}, 2)
	if found != 2 {
		t.Error("wanted 2 errors, got", found)
	}
}
