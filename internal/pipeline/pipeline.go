// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package pipeline wires the source fetcher, CSV decoder, and column resolver
// into an immutable Snapshot that views query for aggregates and series.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/warboard/warboard/internal/aggregate"
	"github.com/warboard/warboard/internal/roles"
	"github.com/warboard/warboard/internal/source"
	"github.com/warboard/warboard/internal/table"
)

// Pipeline loads one document from its fetcher. Rules and metrics are fixed
// at construction.
type Pipeline struct {
	fetcher source.Fetcher
	rules   []roles.Rule
	metrics []aggregate.Metric
	clock   clockwork.Clock
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithRules replaces the default role rules.
func WithRules(rules []roles.Rule) Option {
	return func(p *Pipeline) { p.rules = rules }
}

// WithMetrics replaces the default metrics.
func WithMetrics(metrics []aggregate.Metric) Option {
	return func(p *Pipeline) { p.metrics = metrics }
}

// WithClock sets the clock used to stamp snapshots.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// New creates a Pipeline reading from f.
func New(f source.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: f,
		rules:   roles.DefaultRules(),
		metrics: aggregate.DefaultMetrics(),
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load fetches the document, decodes it, and resolves roles once. The only
// errors are *source.FetchError and *table.DecodeError; everything else
// degrades into Snapshot warnings.
func (p *Pipeline) Load(ctx context.Context) (*Snapshot, error) {
	start := p.clock.Now()

	rc, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only body

	ds, err := table.Decode(rc)
	if err != nil {
		return nil, err
	}

	binding := roles.Resolve(ds.Columns, p.rules)
	snap := &Snapshot{
		ID:        uuid.New(),
		Source:    p.fetcher.Location(),
		FetchedAt: start,
		Duration:  p.clock.Since(start),
		Dataset:   ds,
		Binding:   binding,
		Metrics:   p.metrics,
	}

	slog.Debug("source loaded",
		"source", snap.Source,
		"columns", len(ds.Columns),
		"rows", len(ds.Rows),
		"duration", snap.Duration.Round(time.Millisecond))
	for _, w := range snap.Warnings() {
		slog.Warn(w)
	}
	return snap, nil
}

// Snapshot is one decoded document with its role binding. It is never
// mutated after Load, so concurrent readers need no locking.
type Snapshot struct {
	ID        uuid.UUID
	Source    string
	FetchedAt time.Time
	Duration  time.Duration
	Dataset   *table.Dataset
	Binding   roles.Binding
	Metrics   []aggregate.Metric
}

// View returns the rows matching query.
func (s *Snapshot) View(query string) table.View {
	return table.Filter(s.Dataset, query)
}

// Aggregate computes the snapshot's metrics over view.
func (s *Snapshot) Aggregate(view table.View) aggregate.Result {
	return aggregate.Aggregate(view, s.Binding, s.Metrics)
}

// Series returns role's per-row values over view.
func (s *Snapshot) Series(view table.View, role roles.Role) []float64 {
	return aggregate.Series(view, s.Binding, role)
}

// Labels returns per-row labels for view.
func (s *Snapshot) Labels(view table.View) []string {
	return aggregate.Labels(view, s.Binding)
}

// Metric looks up a configured metric by name.
func (s *Snapshot) Metric(name string) (aggregate.Metric, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return aggregate.Metric{}, false
}

// Warnings lists decode findings and metrics degraded by unresolved roles.
func (s *Snapshot) Warnings() []string {
	var out []string
	for _, w := range s.Dataset.Warnings {
		out = append(out, w.String())
	}
	if len(s.Dataset.Rows) == 0 {
		out = append(out, "source has no data rows")
	}
	out = append(out, s.Aggregate(nil).Warnings()...)
	return out
}

// String summarizes the snapshot for logs.
func (s *Snapshot) String() string {
	return fmt.Sprintf("%s (%d rows, %d columns)", s.Source, len(s.Dataset.Rows), len(s.Dataset.Columns))
}
