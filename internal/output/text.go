// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/warboard/warboard/internal/chart"
	"github.com/warboard/warboard/internal/report"
)

func init() {
	RegisterFormatter(NewTextFormatter())
}

// TextFormatter writes the terminal report: figures, charts, warnings, and
// the row table.
type TextFormatter struct {
	// NoCharts skips the chart section.
	NoCharts bool
	// NoRows skips the row table.
	NoRows bool
}

// Compile-time interface check.
var _ Formatter = (*TextFormatter)(nil)

// NewTextFormatter returns a TextFormatter with every section enabled.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes the report to w.
func (f *TextFormatter) Format(p *Page, w io.Writer) error {
	if err := report.RenderSummary(w, p.Snapshot, p.Query, p.Result); err != nil {
		return err
	}

	if !f.NoCharts && len(p.Charts) > 0 {
		reg := chart.NewRegistry(&chart.TextRenderer{W: w})
		if err := reg.Sync(p.Charts); err != nil {
			return fmt.Errorf("render charts: %w", err)
		}
		if err := reg.Close(); err != nil {
			return fmt.Errorf("render charts: %w", err)
		}
	}

	if err := report.RenderWarnings(w, p.Warnings); err != nil {
		return err
	}

	if f.NoRows {
		return nil
	}
	if len(p.View) == 0 {
		_, err := fmt.Fprintln(w, "No matching rows.")
		return err
	}
	return report.RenderRows(w, p.Columns, p.View)
}
