/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/davecgh/go-spew/spew"
	"github.com/dburkart/declscan/pkg/repl"
	"github.com/dburkart/declscan/pkg/scanner"
	"github.com/dburkart/declscan/pkg/stats"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "repl",
	Short: "Interactive prompt that prints the tokens of each line",

	RunE: func(cmd *cobra.Command, args []string) error {
		log := viper.Get("logger").(zerolog.Logger)
		return readlinePrompt(log, viper.GetString("declscan.output"))
	},
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func metaItems() []readline.PrefixCompleterInterface {
	ret := []readline.PrefixCompleterInterface{}
	for _, name := range repl.MetaCommands() {
		if name == "output" {
			formats := []readline.PrefixCompleterInterface{}
			for _, f := range repl.OutputFormats {
				formats = append(formats, readline.PcItem(f))
			}
			ret = append(ret, readline.PcItem(":"+name, formats...))
			continue
		}
		ret = append(ret, readline.PcItem(":"+name))
	}
	return ret
}

func readlinePrompt(log zerolog.Logger, output string) error {
	completer := readline.NewPrefixCompleter(metaItems()...)

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	st := stats.New()
	writer := repl.NewOutputWriter(os.Stdout, output)

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}

		cmd, err := repl.ParseREPLCommand(strings.TrimSpace(ln.Line))
		if err != nil {
			log.Error().Err(err).Send()
			continue
		}

		switch cmd.Kind {
		case repl.CommandQuit:
			return nil
		case repl.CommandHelp:
			fmt.Println("Type a declaration such as `name: string = \"value\"` to see its tokens.")
			fmt.Println("usage:")
			fmt.Println(completer.Tree("    "))
			continue
		case repl.CommandStats:
			if err := writer.Write(st); err != nil {
				log.Error().Err(err).Send()
			}
			continue
		case repl.CommandOutput:
			writer = repl.NewOutputWriter(os.Stdout, cmd.Arg)
			continue
		}

		t := time.Now()
		tokens, errs := scanner.ScanAll(cmd.Arg, 0)
		st.Observe(cmd.Arg, tokens, errs, time.Since(t))

		if zerolog.GlobalLevel() <= zerolog.TraceLevel {
			log.Trace().Msg(spew.Sdump(tokens))
		}

		for _, e := range errs {
			fmt.Print(e.FormatError(cmd.Arg))
		}
		if err := writer.Write(repl.TokenTable{Tokens: tokens}); err != nil {
			log.Error().Err(err).Send()
		}
		fmt.Println()
	}
	rl.Clean()
	return nil
}
