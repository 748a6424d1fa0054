/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokens

import (
	"fmt"
	"io"
	"os"

	"github.com/dburkart/declscan/pkg/repl"
	"github.com/dburkart/declscan/pkg/scanner"
	"github.com/dburkart/declscan/pkg/source"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "tokens [FILE...]",
	Short: "Print the token stream of each file (stdin when none are given)",

	RunE: func(cmd *cobra.Command, args []string) error {
		log := viper.Get("logger").(zerolog.Logger)
		writer := repl.NewOutputWriter(os.Stdout, viper.GetString("declscan.output"))

		files, err := source.ReadAll(args, os.Stdin)
		if err != nil {
			return err
		}

		failed, err := Tokens(writer, os.Stderr, files, log)
		if err != nil {
			return err
		}

		if failed {
			return errors.New("lexical errors found")
		}
		return nil
	},
}

// Tokens writes the token stream of each file to out, stopping a file at
// its first lexical error. Diagnostics go to diag. It reports whether any
// file had an error.
func Tokens(out repl.OutputWriter, diag io.Writer, files []source.File, log zerolog.Logger) (bool, error) {
	failed := false
	for _, f := range files {
		log.Debug().Str("file", f.Name).Int("bytes", len(f.Input)).Msg("scanning")

		var tokens []scanner.Token
		s := scanner.New(f.Input)
		for {
			tok, err := s.NextToken()
			if err != nil {
				fmt.Fprintf(diag, "%s: %s", f.Name, formatError(err, f.Input))
				failed = true
				break
			}
			tokens = append(tokens, tok)
			if tok.Type == scanner.TOK_EOF {
				break
			}
		}

		if err := out.Write(repl.TokenTable{Tokens: tokens}); err != nil {
			return failed, errors.Wrap(err, "unable to write tokens")
		}
	}
	return failed, nil
}

type formatter interface {
	FormatError(input string) string
}

func formatError(err error, input string) string {
	if f, ok := err.(formatter); ok {
		return f.FormatError(input)
	}
	return err.Error() + "\n"
}
