// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"log/slog"
	"strings"

	"github.com/warboard/warboard/internal/normalize"
	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/table"
)

// Default display selection: the leading columns of the export plus the
// completion percentage at column 18.
const (
	defaultLeading    = 14
	defaultPercentCol = 17
)

// DisplayColumn is a column chosen for tabular output.
type DisplayColumn struct {
	Name    string // Column Set name used to read cells
	Header  string // header shown to the reader
	Percent bool   // cells render as NN.NN%
	Numeric bool   // right-aligned when every cell is numeric
}

// Format renders a raw cell of this column.
func (c DisplayColumn) Format(raw string) string {
	if c.Percent {
		return PercentCell(raw)
	}
	return Cell(raw)
}

// Columns picks the display columns for snap. A configured list wins; names
// missing from the Column Set are skipped with a warning. Without a list,
// the first 14 columns and column 18 are shown.
func Columns(snap *pipeline.Snapshot, configured []string) []DisplayColumn {
	ds := snap.Dataset
	var names []string
	if len(configured) > 0 {
		for _, name := range configured {
			if ds.Index(name) < 0 {
				slog.Warn("display column not found", "column", name)
				continue
			}
			names = append(names, name)
		}
	} else {
		for i, name := range ds.Columns {
			if i < defaultLeading || i == defaultPercentCol {
				names = append(names, name)
			}
		}
	}

	percent := make(map[string]bool)
	for _, r := range snap.Binding.Resolved() {
		if snap.Binding.Hint(r) == normalize.Percent {
			col, _ := snap.Binding.Column(r)
			percent[col] = true
		}
	}

	out := make([]DisplayColumn, 0, len(names))
	for _, name := range names {
		c := DisplayColumn{Name: name, Header: name, Percent: percent[name]}
		if c.Percent && !strings.Contains(name, "%") {
			c.Header = name + " (%)"
		}
		c.Numeric = c.Percent || numericColumn(ds.Rows, name)
		out = append(out, c)
	}
	return out
}

func numericColumn(rows []table.Row, name string) bool {
	seen := false
	for _, r := range rows {
		raw := strings.TrimSpace(r.Get(name))
		if raw == "" {
			continue
		}
		if _, ok := normalize.Parse(raw); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// Headers returns the display headers of cols.
func Headers(cols []DisplayColumn) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// FormatRow renders row's cells for cols.
func FormatRow(cols []DisplayColumn, row table.Row) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Format(row.Get(c.Name))
	}
	return out
}
