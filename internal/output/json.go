package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/warboard/warboard/internal/chart"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONReport is the document written by the json format.
type JSONReport struct {
	Source      string              `json:"source"`
	Query       string              `json:"query,omitempty"`
	SnapshotID  string              `json:"snapshot_id"`
	FetchedAt   string              `json:"fetched_at"`
	GeneratedAt string              `json:"generated_at"`
	Rows        int                 `json:"rows"`
	TotalRows   int                 `json:"total_rows"`
	Figures     []JSONFigure        `json:"figures"`
	Binding     map[string]string   `json:"binding"`
	Unresolved  []string            `json:"unresolved"`
	Charts      []chart.Spec        `json:"charts"`
	Columns     []string            `json:"columns"`
	Data        []map[string]string `json:"data"`
	Warnings    []string            `json:"warnings"`
}

// JSONFigure is one computed metric.
type JSONFigure struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Value   float64  `json:"value"`
	Unit    string   `json:"unit,omitempty"`
	Roles   []string `json:"roles"`
	Missing []string `json:"missing,omitempty"`
	Clamped bool     `json:"clamped,omitempty"`
}

// JSONFormatter writes the page as a single JSON document.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the page to w. Output is pretty-printed for terminals and
// in-memory writers and compact for pipes and files unless Compact is set.
func (f *JSONFormatter) Format(p *Page, w io.Writer) error {
	data, err := f.marshal(BuildJSONReport(p), f.shouldCompact(w))
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}
	return nil
}

func (f *JSONFormatter) marshal(v any, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// BuildJSONReport converts a page into its JSON document. Cells in Data are
// the raw strings of the display columns.
func BuildJSONReport(p *Page) JSONReport {
	snap := p.Snapshot
	out := JSONReport{
		Source:      snap.Source,
		Query:       p.Query,
		SnapshotID:  snap.ID.String(),
		FetchedAt:   snap.FetchedAt.UTC().Format(time.RFC3339),
		GeneratedAt: p.GeneratedAt.UTC().Format(time.RFC3339),
		Rows:        p.Result.Rows,
		TotalRows:   p.Total(),
		Figures:     make([]JSONFigure, 0, len(p.Result.Figures)),
		Binding:     make(map[string]string),
		Unresolved:  []string{},
		Charts:      p.Charts,
		Columns:     make([]string, len(p.Columns)),
		Data:        make([]map[string]string, 0, len(p.View)),
		Warnings:    p.Warnings,
	}
	if out.Charts == nil {
		out.Charts = []chart.Spec{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}

	for _, fig := range p.Result.Figures {
		jf := JSONFigure{
			Name:    fig.Metric.Name,
			Label:   fig.Metric.Label,
			Kind:    string(fig.Metric.Kind),
			Value:   fig.Value,
			Unit:    p.Unit(fig),
			Clamped: fig.Clamped,
		}
		for _, r := range fig.Metric.Roles {
			jf.Roles = append(jf.Roles, string(r))
		}
		for _, r := range fig.Missing {
			jf.Missing = append(jf.Missing, string(r))
		}
		out.Figures = append(out.Figures, jf)
	}

	for r, col := range snap.Binding.Map() {
		out.Binding[string(r)] = col
	}
	for _, r := range snap.Binding.Unresolved() {
		out.Unresolved = append(out.Unresolved, string(r))
	}

	for i, c := range p.Columns {
		out.Columns[i] = c.Name
	}
	for _, row := range p.View {
		m := make(map[string]string, len(p.Columns))
		for _, c := range p.Columns {
			m[c.Name] = row.Get(c.Name)
		}
		out.Data = append(out.Data, m)
	}
	return out
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value.
// Otherwise, auto-detect: pretty-print for TTYs, compact for pipes.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}

	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false // default to pretty on error
		}
		// Character device (terminal) pretty-prints; pipes and files compact.
		return fi.Mode()&os.ModeCharDevice == 0
	}

	// For non-file writers (e.g., bytes.Buffer in tests), default to pretty.
	return false
}
