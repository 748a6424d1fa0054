/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package source

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// A File is a named source text.
type File struct {
	Name  string
	Input string
}

// Read loads the file at path. A path of "-" reads stdin.
func Read(path string, stdin io.Reader) (File, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return File{}, errors.Wrap(err, "unable to read stdin")
		}
		return File{Name: "<stdin>", Input: string(b)}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrapf(err, "unable to read %s", path)
	}
	return File{Name: path, Input: string(b)}, nil
}

// ReadAll loads every path, defaulting to stdin when paths is empty.
func ReadAll(paths []string, stdin io.Reader) ([]File, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := Read(p, stdin)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
