/*
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

// Location is a half-open byte range [Start, End) into the scanned input.
type Location struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (l Location) Len() int {
	return l.End - l.Start
}

// Slice returns the text of input covered by the location. The result
// shares memory with input.
func (l Location) Slice(input string) string {
	return input[l.Start:l.End]
}
