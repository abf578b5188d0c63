// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package table

import "strings"

// View is an ordered subsequence of a Dataset's rows. It is rebuilt on every
// search and never patched in place.
type View []Row

// Len returns the number of visible rows.
func (v View) Len() int { return len(v) }

// Filter returns the rows with any cell containing query, ignoring case.
// An empty or whitespace-only query selects every row. Row order is kept.
func Filter(ds *Dataset, query string) View {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ds.All()
	}

	out := make(View, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		if matches(row, ds.Columns, q) {
			out = append(out, row)
		}
	}
	return out
}

func matches(row Row, columns []string, q string) bool {
	for _, col := range columns {
		if strings.Contains(strings.ToLower(row.Get(col)), q) {
			return true
		}
	}
	return false
}

// Match returns the positions in ds.Rows of the rows Filter would select.
func Match(ds *Dataset, query string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]int, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		if q == "" || matches(row, ds.Columns, q) {
			out = append(out, i)
		}
	}
	return out
}
