/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package lint

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dburkart/declscan/pkg/repl"
	"github.com/dburkart/declscan/pkg/scanner"
	"github.com/dburkart/declscan/pkg/source"
	"github.com/dburkart/declscan/pkg/stats"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "lint [FILE...]",
	Short: "Report every lexical error in each file",

	RunE: func(cmd *cobra.Command, args []string) error {
		log := viper.Get("logger").(zerolog.Logger)

		files, err := source.ReadAll(args, os.Stdin)
		if err != nil {
			return err
		}

		st, found := Lint(os.Stdout, files, viper.GetInt("lint.max-errors"))
		log.Debug().Int("files", len(files)).Int("errors", found).Msg("lint finished")

		if viper.GetBool("lint.stats") {
			writer := repl.NewOutputWriter(os.Stdout, viper.GetString("declscan.output"))
			if err := writer.Write(st); err != nil {
				return errors.Wrap(err, "unable to write stats")
			}
		}

		if found > 0 {
			return errors.Errorf("%d lexical errors found", found)
		}
		return nil
	},
}

// Lint scans every file, writing a rendered diagnostic to w for each
// lexical error. It returns the accumulated stats and the error count.
func Lint(w io.Writer, files []source.File, maxErrors int) (*stats.Stats, int) {
	st := stats.New()
	found := 0

	for _, f := range files {
		t := time.Now()
		tokens, errs := scanner.ScanAll(f.Input, maxErrors)
		st.Observe(f.Input, tokens, errs, time.Since(t))

		for _, e := range errs {
			fmt.Fprintf(w, "%s: %s", f.Name, e.FormatError(f.Input))
		}
		found += len(errs)
	}

	return st, found
}

func init() {
	// Flags for this command
	Command.Flags().Int("max-errors", 0, "Stop scanning a file after this many errors (0 for no limit)")
	Command.Flags().Bool("stats", false, "Print scan statistics")

	// Bind flags to viper
	viper.BindPFlag("lint.max-errors", Command.Flags().Lookup("max-errors"))
	viper.BindPFlag("lint.stats", Command.Flags().Lookup("stats"))
}
