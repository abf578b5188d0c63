// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/warboard/warboard/internal/normalize"
	"github.com/warboard/warboard/internal/roles"
	"github.com/warboard/warboard/internal/table"
)

// Series returns the normalized value of role for every row of view, in view
// order. An unresolved role yields zeros.
func Series(view table.View, b roles.Binding, role roles.Role) []float64 {
	out := make([]float64, len(view))
	col, ok := b.Column(role)
	if !ok {
		return out
	}
	hint := b.Hint(role)
	for i, row := range view {
		out[i] = normalize.Number(row.Get(col), hint)
	}
	return out
}

// MetricSeries returns the per-row contribution of a metric: the sum of its
// role values for each row, clamped to the float64 range.
func MetricSeries(view table.View, b roles.Binding, m Metric) []float64 {
	out := make([]float64, len(view))
	for _, r := range m.Roles {
		for i, v := range Series(view, b, r) {
			out[i], _ = clamp(out[i] + v)
		}
	}
	return out
}

// Labels returns a display label per row: the bound name, else "row N".
func Labels(view table.View, b roles.Binding) []string {
	out := make([]string, len(view))
	for i, row := range view {
		out[i] = RowName(row, b)
		if out[i] == "" {
			out[i] = FallbackLabel(i)
		}
	}
	return out
}

// RowName returns the row's trimmed name cell, or "" when the name role is
// unresolved or the cell is blank.
func RowName(row table.Row, b roles.Binding) string {
	col, ok := b.Column(roles.Name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(row.Get(col))
}

// FallbackLabel labels an unnamed row by its 0-based position in the view.
func FallbackLabel(pos int) string {
	return fmt.Sprintf("row %d", pos+1)
}

// Point is one labelled value.
type Point struct {
	Label string
	Value float64
}

// Top returns the n rows with the largest metric contribution, largest first.
// Ties keep view order. n <= 0 returns every row.
func Top(view table.View, b roles.Binding, m Metric, n int) []Point {
	labels := Labels(view, b)
	values := MetricSeries(view, b, m)

	pts := make([]Point, len(view))
	for i := range pts {
		pts[i] = Point{Label: labels[i], Value: values[i]}
	}
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Value > pts[j].Value
	})
	if n > 0 && len(pts) > n {
		pts = pts[:n]
	}
	return pts
}
