// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/warboard/warboard/internal/aggregate"
	"github.com/warboard/warboard/internal/chart"
	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/report"
	"github.com/warboard/warboard/internal/table"
)

// PageOptions select what a Page shows.
type PageOptions struct {
	Query   string
	Columns []string // display columns; empty selects the defaults
	Top     int      // bars per ranking chart; 0 selects chart.DefaultTop
	Clock   clockwork.Clock
	Live    bool // html: recompute through the server API instead of in page
}

// Page is one projection of a snapshot: the filtered view together with
// everything computed from it. Figures and charts always describe exactly
// the rows in View.
type Page struct {
	Snapshot    *pipeline.Snapshot
	Query       string
	View        table.View
	Result      aggregate.Result
	Charts      []chart.Spec
	Columns     []report.DisplayColumn
	Warnings    []string
	GeneratedAt time.Time
	Top         int
	Live        bool
}

// NewPage filters snap by opts.Query and computes the figures and charts for
// the resulting view.
func NewPage(snap *pipeline.Snapshot, opts PageOptions) *Page {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	top := opts.Top
	if top <= 0 {
		top = chart.DefaultTop
	}

	view := snap.View(opts.Query)
	res := snap.Aggregate(view)
	return &Page{
		Snapshot:    snap,
		Query:       opts.Query,
		View:        view,
		Result:      res,
		Charts:      chart.Build(snap, view, top),
		Columns:     report.Columns(snap, opts.Columns),
		Warnings:    append(snap.Warnings(), res.ClampWarnings()...),
		GeneratedAt: clock.Now(),
		Top:         top,
		Live:        opts.Live,
	}
}

// Total returns the number of rows in the snapshot before filtering.
func (p *Page) Total() int {
	return len(p.Snapshot.Dataset.Rows)
}

// Unit returns the display unit of fig.
func (p *Page) Unit(fig aggregate.Figure) string {
	return fig.Unit(p.Snapshot.Binding)
}
