/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Printable is anything that can be rendered as a table.
type Printable interface {
	Headers() []string
	Values() [][]string
}

type OutputWriter interface {
	Write(v Printable) error
}

type CSVWriter struct {
	w io.Writer
}

type TextWriter struct {
	w io.Writer
}

type JSONWriter struct {
	w io.Writer
}

var OutputFormats = []string{"csv", "json", "text"}

func NewOutputWriter(w io.Writer, t string) OutputWriter {
	switch t {
	case "csv":
		return CSVWriter{
			w,
		}
	case "json":
		return JSONWriter{
			w,
		}
	}
	return TextWriter{
		w,
	}
}

func (w CSVWriter) Write(v Printable) error {
	wtr := csv.NewWriter(w.w)
	if err := wtr.Write(v.Headers()); err != nil {
		return err
	}
	return wtr.WriteAll(v.Values())
}

func (w TextWriter) Write(v Printable) error {
	headers := []any{}
	for _, h := range v.Headers() {
		headers = append(headers, h)
	}

	table := tablewriter.NewWriter(w.w)
	table.Header(headers...)
	if err := table.Bulk(v.Values()); err != nil {
		return err
	}
	return table.Render()
}

func (w JSONWriter) Write(v Printable) error {
	enc := json.NewEncoder(w.w)
	return enc.Encode(v)
}
