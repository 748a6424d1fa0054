/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package stats

import (
	"strings"
	"time"

	"github.com/dburkart/declscan/pkg/common/parse"
	"github.com/dburkart/declscan/pkg/scanner"
	"github.com/dustin/go-humanize"
)

// Stats accumulates figures over every source passed to Observe.
type Stats struct {
	Sources  int                       `json:"sources"`
	Bytes    int                       `json:"bytes"`
	Lines    int                       `json:"lines"`
	Tokens   map[scanner.TokenType]int `json:"tokens"`
	Errors   map[parse.ErrorKind]int   `json:"errors"`
	ScanTime time.Duration             `json:"scan_time_ns"`
}

func New() *Stats {
	return &Stats{
		Tokens: make(map[scanner.TokenType]int),
		Errors: make(map[parse.ErrorKind]int),
	}
}

func countLines(input string) int {
	n := strings.Count(input, "\n")
	if len(input) > 0 && !strings.HasSuffix(input, "\n") {
		n++
	}
	return n
}

func (s *Stats) Observe(input string, tokens []scanner.Token, errs []*parse.LexError, d time.Duration) {
	s.Sources++
	s.Bytes += len(input)
	s.Lines += countLines(input)
	s.ScanTime += d

	for _, t := range tokens {
		s.Tokens[t.Type]++
	}
	for _, e := range errs {
		s.Errors[e.Kind]++
	}
}

func (s *Stats) TokenCount() int {
	total := 0
	for _, n := range s.Tokens {
		total += n
	}
	return total
}

func (s *Stats) ErrorCount() int {
	total := 0
	for _, n := range s.Errors {
		total += n
	}
	return total
}

func (s *Stats) Headers() []string {
	return []string{"Metric", "Value"}
}

func (s *Stats) Values() [][]string {
	ret := [][]string{
		{"sources", humanize.Comma(int64(s.Sources))},
		{"bytes", humanize.Bytes(uint64(s.Bytes))},
		{"lines", humanize.Comma(int64(s.Lines))},
		{"tokens", humanize.Comma(int64(s.TokenCount()))},
	}

	for _, t := range scanner.Emitted {
		if n, ok := s.Tokens[t]; ok {
			ret = append(ret, []string{"  " + t.ToString(), humanize.Comma(int64(n))})
		}
	}

	ret = append(ret, []string{"errors", humanize.Comma(int64(s.ErrorCount()))})
	for _, k := range []parse.ErrorKind{parse.UnexpectedCharacter, parse.UnterminatedString} {
		if n, ok := s.Errors[k]; ok {
			ret = append(ret, []string{"  " + k.ToString(), humanize.Comma(int64(n))})
		}
	}

	ret = append(ret, []string{"scan time", s.ScanTime.String()})
	if s.ScanTime > 0 {
		perSecond := float64(s.Bytes) / s.ScanTime.Seconds()
		ret = append(ret, []string{"throughput", humanize.Bytes(uint64(perSecond)) + "/s"})
	}

	return ret
}
