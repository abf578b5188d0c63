// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package table holds the decoded spreadsheet: an ordered Column Set and the
// rows paired with it. Cells stay raw strings; interpretation happens in the
// normalize and aggregate packages.
package table

import "fmt"

// Row maps column names to raw cell values. Rows are never mutated after
// decoding.
type Row struct {
	cells map[string]string
}

// NewRow builds a row from column/value pairs. Values beyond len(columns)
// are ignored; missing values are absent.
func NewRow(columns []string, values []string) Row {
	cells := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(values) {
			cells[col] = values[i]
		}
	}
	return Row{cells: cells}
}

// RowOf builds a row from a map, copying it.
func RowOf(m map[string]string) Row {
	cells := make(map[string]string, len(m))
	for k, v := range m {
		cells[k] = v
	}
	return Row{cells: cells}
}

// Get returns the raw value for col. Missing and empty cells both return "".
func (r Row) Get(col string) string {
	return r.cells[col]
}

// Has reports whether the row carried a cell for col.
func (r Row) Has(col string) bool {
	_, ok := r.cells[col]
	return ok
}

// Values returns the row's cells in the given column order.
func (r Row) Values(columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = r.cells[col]
	}
	return out
}

// WarningKind classifies a structural problem found while decoding.
type WarningKind string

const (
	// WarnDuplicateColumn marks a header name seen more than once.
	WarnDuplicateColumn WarningKind = "duplicate-column"
	// WarnLongRecord marks a record with more fields than the header.
	WarnLongRecord WarningKind = "long-record"
	// WarnShortRecord marks records with fewer fields than the header.
	WarnShortRecord WarningKind = "short-record"
)

// Warning is a non-fatal decode finding.
type Warning struct {
	Line    int
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

// Dataset is the decoded document: one Column Set and its rows, in source
// order.
type Dataset struct {
	Columns  []string
	Rows     []Row
	Warnings []Warning
}

// Index returns the position of col in the Column Set, or -1.
func (d *Dataset) Index(col string) int {
	for i, c := range d.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// All returns every row as a View.
func (d *Dataset) All() View {
	return View(d.Rows)
}
