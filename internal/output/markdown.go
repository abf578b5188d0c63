package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/warboard/warboard/internal/chart"
	"github.com/warboard/warboard/internal/report"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes the page as a Markdown document.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes the page to w.
//
// The output includes:
//   - A title heading and a summary line with row counts
//   - A figure table
//   - One ranking list per chart
//   - Warnings, when present
//   - The row table over the display columns
func (m *MarkdownFormatter) Format(p *Page, w io.Writer) error {
	if err := writeHeader(w, p); err != nil {
		return err
	}
	if err := writeFigureTable(w, p); err != nil {
		return err
	}
	for _, spec := range p.Charts {
		if err := writeChartSection(w, spec); err != nil {
			return err
		}
	}
	if err := writeWarnings(w, p.Warnings); err != nil {
		return err
	}
	return writeRowTable(w, p)
}

// writeHeader writes the Markdown title and summary line.
func writeHeader(w io.Writer, p *Page) error {
	if _, err := fmt.Fprintf(w, "# Warboard\n\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	summary := fmt.Sprintf("**Source:** %s | **Rows:** %d of %d", escapeCell(p.Snapshot.Source), p.Result.Rows, p.Total())
	if p.Query != "" {
		summary += fmt.Sprintf(" | **Query:** `%s`", strings.ReplaceAll(p.Query, "`", "'"))
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// writeFigureTable writes one table row per computed figure.
func writeFigureTable(w io.Writer, p *Page) error {
	var b strings.Builder
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|------:|\n")
	for _, fig := range p.Result.Figures {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(fig.Metric.Label), report.Number(fig.Value, p.Unit(fig)))
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write figure table: %w", err)
	}
	return nil
}

// writeChartSection writes a chart as a numbered list of its points.
func writeChartSection(w io.Writer, spec chart.Spec) error {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", spec.Title)
	if spec.Len() == 0 {
		b.WriteString("_No data._\n\n")
	} else {
		for i, v := range spec.Values {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, escapeCell(spec.Labels[i]), report.Number(v, spec.Unit))
		}
		b.WriteString("\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write chart %s: %w", spec.ID, err)
	}
	return nil
}

func writeWarnings(w io.Writer, warnings []string) error {
	if len(warnings) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("## Warnings\n\n")
	for _, msg := range warnings {
		fmt.Fprintf(&b, "- %s\n", msg)
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write warnings: %w", err)
	}
	return nil
}

// writeRowTable writes the filtered rows as a Markdown table.
func writeRowTable(w io.Writer, p *Page) error {
	var b strings.Builder
	b.WriteString("## Rows\n\n")
	if len(p.View) == 0 || len(p.Columns) == 0 {
		b.WriteString("_No matching rows._\n")
	} else {
		headers := report.Headers(p.Columns)
		align := make([]string, len(p.Columns))
		for i, c := range p.Columns {
			headers[i] = escapeCell(headers[i])
			align[i] = "---"
			if c.Numeric {
				align[i] = "--:"
			}
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join(headers, " | "))
		fmt.Fprintf(&b, "|%s|\n", strings.Join(align, "|"))
		for _, row := range p.View {
			cells := report.FormatRow(p.Columns, row)
			for i := range cells {
				cells[i] = escapeCell(cells[i])
			}
			fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write row table: %w", err)
	}
	return nil
}

// escapeCell keeps a value inside one Markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
