/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
)

type CommandKind int

const (
	CommandScan CommandKind = iota
	CommandHelp
	CommandStats
	CommandOutput
	CommandQuit
)

var metaCommands = map[string]CommandKind{
	"help":   CommandHelp,
	"stats":  CommandStats,
	"output": CommandOutput,
	"quit":   CommandQuit,
}

// MetaCommands returns the names accepted after a leading ':'.
func MetaCommands() []string {
	names := make([]string, 0, len(metaCommands))
	for k := range metaCommands {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type Command struct {
	Kind CommandKind
	Arg  string
}

// ParseREPLCommand parses a line read from the prompt. Lines starting
// with ':' are meta commands; anything else is source to scan and is
// returned untouched in Arg.
//
// This function assumes there is no '\n'
func ParseREPLCommand(line string) (Command, error) {
	if !strings.HasPrefix(line, ":") {
		return Command{Kind: CommandScan, Arg: line}, nil
	}

	name, arg, _ := strings.Cut(strings.TrimSpace(line[1:]), " ")
	kind, ok := metaCommands[strings.ToLower(name)]
	if !ok {
		if suggestion := Suggest(name); suggestion != "" {
			return Command{}, errors.Errorf("unknown command :%s, did you mean :%s?", name, suggestion)
		}
		return Command{}, errors.Errorf("unknown command :%s", name)
	}

	arg = strings.TrimSpace(arg)
	if kind == CommandOutput {
		if !isOutputFormat(arg) {
			return Command{}, errors.Errorf("unsupported output format %q, want one of %s", arg, strings.Join(OutputFormats, ", "))
		}
	}

	return Command{Kind: kind, Arg: arg}, nil
}

func isOutputFormat(s string) bool {
	for _, f := range OutputFormats {
		if f == s {
			return true
		}
	}
	return false
}

// Suggest returns the meta command closest to name, or "" when nothing is
// close enough.
func Suggest(name string) string {
	if name == "" {
		return ""
	}

	candidates := MetaCommands()
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
