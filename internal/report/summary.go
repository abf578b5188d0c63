// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/warboard/warboard/internal/aggregate"
	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/table"
)

// RenderSummary writes the header block and the figure table for res.
func RenderSummary(w io.Writer, snap *pipeline.Snapshot, query string, res aggregate.Result) error {
	if _, err := fmt.Fprintf(w, "%s  %s\n", SectionTitle("Warboard"), Faint(snap.Source)); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	rows := fmt.Sprintf("Rows: %d of %d", res.Rows, len(snap.Dataset.Rows))
	if query != "" {
		rows += fmt.Sprintf(" matching %q", query)
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", rows); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	tbl := NewTable(
		Column{Header: "Metric"},
		Column{Header: "Value", Align: AlignRight},
	)
	for _, fig := range res.Figures {
		tbl.AddRow(fig.Metric.Label, Number(fig.Value, fig.Unit(snap.Binding)))
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RenderWarnings writes one line per warning. Nothing is written when
// warnings is empty.
func RenderWarnings(w io.Writer, warnings []string) error {
	if len(warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, SectionTitle("Warnings")); err != nil {
		return err
	}
	for _, msg := range warnings {
		if _, err := fmt.Fprintf(w, "  %s\n", ColorWarning(msg)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RenderRows writes view as an aligned table over cols.
func RenderRows(w io.Writer, cols []DisplayColumn, view table.View) error {
	tc := make([]Column, len(cols))
	for i, c := range cols {
		tc[i] = Column{Header: c.Header, MaxWidth: 32}
		if c.Numeric {
			tc[i].Align = AlignRight
		}
		if c.Percent {
			tc[i].Color = ColorPercent
		}
	}
	tbl := NewTable(tc...)
	for _, row := range view {
		tbl.AddRow(FormatRow(cols, row)...)
	}
	return tbl.Render(w)
}
