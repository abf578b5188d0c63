// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package chart builds chart specifications from a filtered view and keeps a
// registry of drawn charts so that each redraw replaces, rather than stacks
// on, the previous drawing for the same chart.
package chart

import (
	"github.com/warboard/warboard/internal/aggregate"
	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/table"
)

// Kind is the chart shape.
type Kind string

const (
	// Bar charts rank rows by a summed metric.
	Bar Kind = "bar"
	// Line charts follow a metric across rows in view order.
	Line Kind = "line"
)

// DefaultTop is the number of bars drawn per ranking chart.
const DefaultTop = 15

// Spec is everything a renderer needs to draw one chart.
type Spec struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Kind   Kind      `json:"kind"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Unit   string    `json:"unit,omitempty"`
}

// Len returns the number of data points.
func (s Spec) Len() int { return len(s.Values) }

// Max returns the largest value, or 0 for an empty chart.
func (s Spec) Max() float64 {
	var m float64
	for _, v := range s.Values {
		if v > m {
			m = v
		}
	}
	return m
}

// ID returns the registry id for a metric's chart.
func ID(metric string) string { return "chart-" + metric }

// Build returns one chart per snapshot metric computed over view. Sum metrics
// become bar charts of the top rows; mean metrics become line charts in view
// order. Metrics with no resolved role are skipped; partly resolved metrics
// are charted with the missing roles counted as zero.
func Build(snap *pipeline.Snapshot, view table.View, top int) []Spec {
	if top <= 0 {
		top = DefaultTop
	}
	res := snap.Aggregate(view)

	specs := make([]Spec, 0, len(snap.Metrics))
	for _, fig := range res.Figures {
		m := fig.Metric
		if len(fig.Missing) == len(m.Roles) {
			continue
		}
		spec := Spec{
			ID:    ID(m.Name),
			Title: m.Label,
			Unit:  fig.Unit(snap.Binding),
		}
		switch m.Kind {
		case aggregate.Mean:
			spec.Kind = Line
			spec.Labels = snap.Labels(view)
			spec.Values = aggregate.MetricSeries(view, snap.Binding, m)
		default:
			spec.Kind = Bar
			for _, p := range aggregate.Top(view, snap.Binding, m, top) {
				spec.Labels = append(spec.Labels, p.Label)
				spec.Values = append(spec.Values, p.Value)
			}
		}
		if spec.Labels == nil {
			spec.Labels = []string{}
			spec.Values = []float64{}
		}
		specs = append(specs, spec)
	}
	return specs
}
