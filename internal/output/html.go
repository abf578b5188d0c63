package output

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/warboard/warboard/internal/aggregate"
	"github.com/warboard/warboard/internal/chart"
	"github.com/warboard/warboard/internal/redact"
	"github.com/warboard/warboard/internal/report"
	"github.com/warboard/warboard/internal/table"
)

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// HTMLFormatter writes the page as a self-contained HTML dashboard. The page
// embeds every row with its per-metric values, so the search box can
// recompute figures and charts for the visible rows without a server.
type HTMLFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
	errTmplOnce  sync.Once
	errTmpl      *template.Template
)

func dashboardTemplate() *template.Template {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
			"json": func(v any) template.JS {
				b, _ := json.Marshal(v)
				return template.JS(b) //nolint:gosec // intentional unescaped embedding
			},
		}).Parse(htmlTemplate))
	})
	return htmlTmpl
}

// Format writes the dashboard to w.
func (h *HTMLFormatter) Format(p *Page, w io.Writer) error {
	if err := dashboardTemplate().Execute(w, buildHTMLData(p)); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}

// FormatError writes an error page in place of the dashboard. The message is
// redacted.
func (h *HTMLFormatter) FormatError(cause error, w io.Writer) error {
	errTmplOnce.Do(func() {
		errTmpl = template.Must(template.New("error").Parse(errorTemplate))
	})
	if err := errTmpl.Execute(w, redact.String(cause.Error())); err != nil {
		return fmt.Errorf("execute html error template: %w", err)
	}
	return nil
}

// htmlData holds all template data for the HTML dashboard.
type htmlData struct {
	Source      string
	GeneratedAt string
	Query       string
	Rows        int
	Total       int
	Cards       []htmlCard
	Headers     []htmlHeader
	TableRows   []htmlRow
	Charts      []chart.Spec
	Warnings    []string
	Model       htmlModel
}

type htmlCard struct {
	Name  string
	Label string
	Value string
}

type htmlHeader struct {
	Text    string
	Numeric bool
}

type htmlRow struct {
	Index  int
	Cells  []string
	Hidden bool
}

// htmlModel is the JSON state the page script recomputes from.
type htmlModel struct {
	Live    bool          `json:"live"`
	Top     int           `json:"top"`
	Metrics []htmlMetric  `json:"metrics"`
	Rows    []htmlRowData `json:"rows"`
}

type htmlMetric struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Unit  string `json:"unit"`
	Chart bool   `json:"chart"`
}

// htmlRowData is one embedded row. Unnamed rows are labelled by their
// position in the current view, client side.
type htmlRowData struct {
	Name   string             `json:"name"`
	Cells  []string           `json:"cells"`
	Values map[string]float64 `json:"values"`
}

func buildHTMLData(p *Page) htmlData {
	snap := p.Snapshot
	ds := snap.Dataset

	data := htmlData{
		Source:      snap.Source,
		GeneratedAt: p.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
		Query:       p.Query,
		Rows:        p.Result.Rows,
		Total:       p.Total(),
		Charts:      p.Charts,
		Warnings:    p.Warnings,
		Model:       htmlModel{Live: p.Live, Top: p.Top},
	}

	charted := make(map[string]bool, len(p.Charts))
	for _, c := range p.Charts {
		charted[c.ID] = true
	}
	for _, fig := range p.Result.Figures {
		data.Cards = append(data.Cards, htmlCard{
			Name:  fig.Metric.Name,
			Label: fig.Metric.Label,
			Value: report.Number(fig.Value, p.Unit(fig)),
		})
		data.Model.Metrics = append(data.Model.Metrics, htmlMetric{
			Name:  fig.Metric.Name,
			Label: fig.Metric.Label,
			Kind:  string(fig.Metric.Kind),
			Unit:  p.Unit(fig),
			Chart: charted[chart.ID(fig.Metric.Name)],
		})
	}

	for _, c := range p.Columns {
		data.Headers = append(data.Headers, htmlHeader{Text: c.Header, Numeric: c.Numeric})
	}

	// Every row is embedded; rows outside the initial view start hidden.
	all := ds.All()
	visible := make(map[int]bool, len(p.View))
	for _, i := range table.Match(ds, p.Query) {
		visible[i] = true
	}
	series := make(map[string][]float64, len(snap.Metrics))
	for _, m := range snap.Metrics {
		series[m.Name] = aggregate.MetricSeries(all, snap.Binding, m)
	}

	for i, row := range all {
		data.TableRows = append(data.TableRows, htmlRow{
			Index:  i,
			Cells:  report.FormatRow(p.Columns, row),
			Hidden: !visible[i],
		})
		rd := htmlRowData{
			Name:   aggregate.RowName(row, snap.Binding),
			Cells:  row.Values(ds.Columns),
			Values: make(map[string]float64, len(snap.Metrics)),
		}
		for name, vals := range series {
			rd.Values[name] = vals[i]
		}
		data.Model.Rows = append(data.Model.Rows, rd)
	}
	return data
}
