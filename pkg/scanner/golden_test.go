/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
)

func TestScanGolden(t *testing.T) {
	testDirectory, err := filepath.Abs("../../test/scanning")
	if err != nil {
		panic(err)
	}

	inputDirectory := path.Join(testDirectory, "input")
	expectationDirectory := path.Join(testDirectory, "expectations")

	tests, err := filepath.Glob(fmt.Sprintf("%s/*.decl", inputDirectory))
	if err != nil {
		t.Fatal(err)
	}
	if len(tests) == 0 {
		t.Fatal("no golden inputs found in", inputDirectory)
	}

	for _, test := range tests {
		t.Run(filepath.Base(test), func(t *testing.T) {
			var expected string
			expectation := path.Join(expectationDirectory, strings.TrimSuffix(filepath.Base(test), ".decl")+".txt")
			expectedBytes, err := os.ReadFile(expectation)
			if err == nil {
				expected = string(expectedBytes)
			}

			input, err := os.ReadFile(test)
			if err != nil {
				t.Fatalf("Error opening test: %s", test)
			}

			tokens, errs := ScanAll(string(input), 0)
			actual := Dump(tokens)
			for _, e := range errs {
				actual += fmt.Sprintf("error: %s\n", e)
			}

			if os.Getenv("SHOULD_REBASE") != "" {
				err := os.WriteFile(expectation, []byte(actual), 0666)
				if err != nil {
					t.Error(err)
				}
				expected = actual
			}

			if a, e := strings.TrimSpace(actual), strings.TrimSpace(expected); a != e {
				t.Errorf("Expectation not met:\n%s", diff.LineDiff(e, a))
			}
		})
	}
}
