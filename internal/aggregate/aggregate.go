// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package aggregate reduces a filtered view of rows into summary figures and
// per-row chart series. Every function is a pure function of its arguments.
package aggregate

import (
	"fmt"
	"math"
	"strings"

	"github.com/warboard/warboard/internal/normalize"
	"github.com/warboard/warboard/internal/roles"
	"github.com/warboard/warboard/internal/table"
)

// Kind selects how per-row values are reduced.
type Kind string

const (
	// Sum adds the per-row values. An empty view sums to 0.
	Sum Kind = "sum"
	// Mean averages the per-row values. An empty view averages to 0.
	Mean Kind = "mean"
)

// ParseKind maps a config value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sum", "total":
		return Sum, nil
	case "mean", "avg", "average":
		return Mean, nil
	default:
		return "", fmt.Errorf("unknown aggregation %q (must be sum or mean)", s)
	}
}

// Metric is one output figure. A metric with several roles is derived: each
// row contributes the sum of its role values before the reduction.
type Metric struct {
	Name  string
	Label string
	Kind  Kind
	Roles []roles.Role
}

// DefaultMetrics returns the summary figures shown by default.
func DefaultMetrics() []Metric {
	return []Metric{
		{Name: "total_kills", Label: "Total Kills", Kind: Sum, Roles: []roles.Role{roles.TotalKills}},
		{Name: "total_deads", Label: "Total Deads", Kind: Sum, Roles: []roles.Role{roles.TotalDeads}},
		{Name: "kill_points", Label: "Kill Points (T4+T5)", Kind: Sum, Roles: []roles.Role{roles.T4Kills, roles.T5Kills}},
		{Name: "starting_power", Label: "Starting Power", Kind: Sum, Roles: []roles.Role{roles.StartingPower}},
		{Name: "requirements_pct", Label: "Avg. Requirements Complete", Kind: Mean, Roles: []roles.Role{roles.RequirementsPct}},
	}
}

// Figure is a computed metric value. Missing lists contributing roles that
// had no column; they counted as zero. Clamped is set when the exact value
// lies outside the float64 range and Value holds the nearest finite bound.
type Figure struct {
	Metric  Metric
	Value   float64
	Missing []roles.Role
	Clamped bool
}

// Unit returns "%" for figures built from percent roles.
func (f Figure) Unit(b roles.Binding) string {
	for _, r := range f.Metric.Roles {
		if b.Hint(r) == normalize.Percent {
			return "%"
		}
	}
	return ""
}

// Result holds the figures for one view, in metric order.
type Result struct {
	Rows    int
	Figures []Figure
}

// Figure looks up a figure by metric name.
func (r Result) Figure(name string) (Figure, bool) {
	for _, f := range r.Figures {
		if f.Metric.Name == name {
			return f, true
		}
	}
	return Figure{}, false
}

// Value returns the value of the named figure, or 0 when absent.
func (r Result) Value(name string) float64 {
	f, _ := r.Figure(name)
	return f.Value
}

// Warnings describes figures that were computed with missing roles or were
// clamped.
func (r Result) Warnings() []string {
	out := r.ClampWarnings()
	for _, f := range r.Figures {
		if len(f.Missing) == 0 {
			continue
		}
		names := make([]string, len(f.Missing))
		for i, m := range f.Missing {
			names[i] = string(m)
		}
		out = append(out, fmt.Sprintf("%s: no column for %s; counted as zero", f.Metric.Name, strings.Join(names, ", ")))
	}
	return out
}

// clamp maps ±Inf to the nearest finite float64 and reports whether it did.
func clamp(v float64) (float64, bool) {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64, true
	case math.IsInf(v, -1):
		return -math.MaxFloat64, true
	}
	return v, false
}

// ClampWarnings describes figures whose value was clamped to the float64 range.
func (r Result) ClampWarnings() []string {
	var out []string
	for _, f := range r.Figures {
		if f.Clamped {
			out = append(out, fmt.Sprintf("%s: total is out of range; clamped to %g", f.Metric.Name, f.Value))
		}
	}
	return out
}

// Aggregate computes every metric over view.
func Aggregate(view table.View, b roles.Binding, metrics []Metric) Result {
	res := Result{Rows: len(view), Figures: make([]Figure, 0, len(metrics))}
	for _, m := range metrics {
		res.Figures = append(res.Figures, compute(view, b, m))
	}
	return res
}

func compute(view table.View, b roles.Binding, m Metric) Figure {
	fig := Figure{Metric: m}

	var cols []string
	var hints []normalize.Hint
	for _, r := range m.Roles {
		col, ok := b.Column(r)
		if !ok {
			fig.Missing = append(fig.Missing, r)
			continue
		}
		cols = append(cols, col)
		hints = append(hints, b.Hint(r))
	}

	n := float64(len(view))
	sum := func(divisor float64) (float64, bool) {
		var total float64
		var clamped bool
		for _, row := range view {
			for i, col := range cols {
				var c bool
				total, c = clamp(total + normalize.Number(row.Get(col), hints[i])/divisor)
				clamped = clamped || c
			}
		}
		return total, clamped
	}

	total, clamped := sum(1)
	switch {
	case m.Kind != Mean:
		fig.Value, fig.Clamped = total, clamped
	case len(view) == 0:
		fig.Value = 0
	case clamped:
		// The sum overflowed but the average of finite cells is finite.
		fig.Value, fig.Clamped = sum(n)
	default:
		fig.Value = total / n
	}
	return fig
}
