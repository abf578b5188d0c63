// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/warboard/warboard/internal/normalize"
)

const (
	xlsxSummarySheet = "Summary"
	xlsxDataSheet    = "Data"
)

func init() {
	RegisterFormatter(NewXLSXFormatter())
}

// XLSXFormatter writes the page as a workbook with a Summary sheet of
// figures and a Data sheet of the filtered rows.
type XLSXFormatter struct{}

// Compile-time interface check.
var _ BinaryFormatter = (*XLSXFormatter)(nil)

// NewXLSXFormatter returns a new XLSXFormatter.
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Name returns the format name.
func (x *XLSXFormatter) Name() string {
	return "xlsx"
}

// Binary reports that workbooks are not terminal-safe.
func (x *XLSXFormatter) Binary() bool {
	return true
}

// Format writes the workbook to w.
func (x *XLSXFormatter) Format(p *Page, w io.Writer) error {
	wb := excelize.NewFile()
	defer wb.Close() //nolint:errcheck // in-memory workbook

	if err := wb.SetSheetName("Sheet1", xlsxSummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := wb.NewSheet(xlsxDataSheet); err != nil {
		return fmt.Errorf("create data sheet: %w", err)
	}

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummarySheet(wb, p, bold); err != nil {
		return err
	}
	if err := writeDataSheet(wb, p, bold); err != nil {
		return err
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeSummarySheet(wb *excelize.File, p *Page, bold int) error {
	rows := [][]any{
		{"Source", p.Snapshot.Source},
		{"Query", p.Query},
		{"Rows", p.Result.Rows},
		{"Total rows", p.Total()},
		{"Generated", p.GeneratedAt.UTC().Format(time.RFC3339)},
		{},
		{"Metric", "Value", "Unit"},
	}
	for _, fig := range p.Result.Figures {
		rows = append(rows, []any{fig.Metric.Label, fig.Value, p.Unit(fig)})
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow(xlsxSummarySheet, cell, &r); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	// Row 7 holds the figure table header.
	if err := wb.SetRowStyle(xlsxSummarySheet, 7, 7, bold); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}
	if err := wb.SetColWidth(xlsxSummarySheet, "A", "A", 30); err != nil {
		return fmt.Errorf("size summary column: %w", err)
	}
	return nil
}

func writeDataSheet(wb *excelize.File, p *Page, bold int) error {
	header := make([]any, len(p.Columns))
	for i, c := range p.Columns {
		header[i] = c.Header
	}
	if err := wb.SetSheetRow(xlsxDataSheet, "A1", &header); err != nil {
		return fmt.Errorf("write data header: %w", err)
	}
	if err := wb.SetRowStyle(xlsxDataSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style data header: %w", err)
	}

	for i, row := range p.View {
		values := make([]any, len(p.Columns))
		for j, c := range p.Columns {
			raw := row.Get(c.Name)
			switch {
			case c.Percent:
				values[j] = normalize.Number(raw, normalize.Percent)
			case c.Numeric:
				if v, ok := normalize.Parse(raw); ok {
					values[j] = v
				} else {
					values[j] = raw
				}
			default:
				values[j] = raw
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := wb.SetSheetRow(xlsxDataSheet, cell, &values); err != nil {
			return fmt.Errorf("write data row %d: %w", i+2, err)
		}
	}

	if err := wb.SetPanes(xlsxDataSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze data header: %w", err)
	}
	return nil
}
