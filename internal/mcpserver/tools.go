package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/warboard/warboard/internal/chart"
	"github.com/warboard/warboard/internal/output"
	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/redact"
	"github.com/warboard/warboard/internal/roles"
	"github.com/warboard/warboard/internal/source"
)

// ColumnsInput is the input schema for the columns MCP tool.
type ColumnsInput struct {
	Source string `json:"source,omitempty" jsonschema:"Published CSV URL or local CSV path (defaults to the configured source)"`
}

// AggregateInput is the input schema for the aggregate MCP tool.
type AggregateInput struct {
	Source string `json:"source,omitempty" jsonschema:"Published CSV URL or local CSV path (defaults to the configured source)"`
	Query  string `json:"query,omitempty" jsonschema:"Case-insensitive substring; rows with any matching cell are aggregated (empty = all rows)"`
}

// SeriesInput is the input schema for the series MCP tool.
type SeriesInput struct {
	Source string `json:"source,omitempty" jsonschema:"Published CSV URL or local CSV path (defaults to the configured source)"`
	Role   string `json:"role" jsonschema:"Role name, e.g. total_kills, t4_kills, requirements_pct"`
	Query  string `json:"query,omitempty" jsonschema:"Case-insensitive substring filter (empty = all rows)"`
}

// ReportInput is the input schema for the report MCP tool.
type ReportInput struct {
	Source string `json:"source,omitempty" jsonschema:"Published CSV URL or local CSV path (defaults to the configured source)"`
	Query  string `json:"query,omitempty" jsonschema:"Case-insensitive substring filter (empty = all rows)"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json, markdown or text (default: json)"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

func readOnly() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all warboard tools to the MCP server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "columns",
		Description: "List the source's columns, the role each column is bound to, unresolved roles, and decode warnings.",
		Annotations: readOnly(),
	}, t.handleColumns)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "aggregate",
		Description: "Filter rows by a search query and compute the summary figures (total kills, deads, kill points, power, average requirement completion) and chart data over exactly the matching rows.",
		Annotations: readOnly(),
	}, t.handleAggregate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "series",
		Description: "Return per-player values of one role over the rows matching a query, with player labels.",
		Annotations: readOnly(),
	}, t.handleSeries)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report",
		Description: "Render the full filtered report (figures, rankings, warnings, rows) as json, markdown or text.",
		Annotations: readOnly(),
	}, t.handleReport)
}

// tools holds the per-server snapshot cache. Each source is fetched once;
// every call against it reads the same immutable snapshot.
type tools struct {
	opts Options

	mu    sync.Mutex
	snaps map[string]*pipeline.Snapshot
	load  func(ctx context.Context, src string) (*pipeline.Snapshot, error)
}

func newTools(opts Options) *tools {
	t := &tools{opts: opts, snaps: make(map[string]*pipeline.Snapshot)}
	t.load = t.loadSource
	return t
}

func (t *tools) loadSource(ctx context.Context, src string) (*pipeline.Snapshot, error) {
	f, err := source.New(src)
	if err != nil {
		return nil, err
	}
	var popts []pipeline.Option
	if t.opts.Rules != nil {
		popts = append(popts, pipeline.WithRules(t.opts.Rules))
	}
	if t.opts.Metrics != nil {
		popts = append(popts, pipeline.WithMetrics(t.opts.Metrics))
	}
	return pipeline.New(f, popts...).Load(ctx)
}

// snapshot returns the cached snapshot for src, loading it on first use.
// Failed loads are not cached.
func (t *tools) snapshot(ctx context.Context, src string) (*pipeline.Snapshot, error) {
	resolved, err := ResolveSource(src, t.opts.Source)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if snap, ok := t.snaps[resolved]; ok {
		return snap, nil
	}
	snap, err := t.load(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("load failed: %s", redact.String(err.Error()))
	}
	slog.Debug("snapshot cached", "source", snap.Source, "rows", len(snap.Dataset.Rows))
	t.snaps[resolved] = snap
	return snap, nil
}

func (t *tools) page(snap *pipeline.Snapshot, query string) *output.Page {
	return output.NewPage(snap, output.PageOptions{
		Query:   query,
		Columns: t.opts.Columns,
		Top:     t.opts.Top,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

// ColumnsResult is the columns tool document.
type ColumnsResult struct {
	Source     string            `json:"source"`
	Columns    []string          `json:"columns"`
	Binding    map[string]string `json:"binding"`
	Unresolved []string          `json:"unresolved"`
	Warnings   []string          `json:"warnings"`
}

func (t *tools) handleColumns(ctx context.Context, _ *mcp.CallToolRequest, input ColumnsInput) (*mcp.CallToolResult, any, error) {
	snap, err := t.snapshot(ctx, input.Source)
	if err != nil {
		return nil, nil, err
	}
	res := ColumnsResult{
		Source:     snap.Source,
		Columns:    snap.Dataset.Columns,
		Binding:    make(map[string]string),
		Unresolved: []string{},
		Warnings:   snap.Warnings(),
	}
	for r, col := range snap.Binding.Map() {
		res.Binding[string(r)] = col
	}
	for _, r := range snap.Binding.Unresolved() {
		res.Unresolved = append(res.Unresolved, string(r))
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	return jsonResult(res)
}

// AggregateResult is the aggregate tool document.
type AggregateResult struct {
	Query   string              `json:"query,omitempty"`
	Rows    int                 `json:"rows"`
	Total   int                 `json:"total_rows"`
	Figures []output.JSONFigure `json:"figures"`
	Charts  []chart.Spec        `json:"charts"`
}

func (t *tools) handleAggregate(ctx context.Context, _ *mcp.CallToolRequest, input AggregateInput) (*mcp.CallToolResult, any, error) {
	snap, err := t.snapshot(ctx, input.Source)
	if err != nil {
		return nil, nil, err
	}
	doc := output.BuildJSONReport(t.page(snap, input.Query))
	return jsonResult(AggregateResult{
		Query:   input.Query,
		Rows:    doc.Rows,
		Total:   doc.TotalRows,
		Figures: doc.Figures,
		Charts:  doc.Charts,
	})
}

// SeriesResult is the series tool document.
type SeriesResult struct {
	Role   string    `json:"role"`
	Column string    `json:"column,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func (t *tools) handleSeries(ctx context.Context, _ *mcp.CallToolRequest, input SeriesInput) (*mcp.CallToolResult, any, error) {
	snap, err := t.snapshot(ctx, input.Source)
	if err != nil {
		return nil, nil, err
	}
	role := roles.Role(input.Role)
	if !snap.Binding.Has(role) {
		return nil, nil, fmt.Errorf("unknown role %q", input.Role)
	}
	view := snap.View(input.Query)
	col, _ := snap.Binding.Column(role)
	return jsonResult(SeriesResult{
		Role:   string(role),
		Column: col,
		Labels: snap.Labels(view),
		Values: snap.Series(view, role),
	})
}

func (t *tools) handleReport(ctx context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, any, error) {
	format := "json"
	if input.Format != "" {
		format = input.Format
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}
	if output.IsBinary(formatter) || format == "html" {
		return nil, nil, fmt.Errorf("format %q is not available over MCP (supported: json, markdown, text)", format)
	}

	snap, err := t.snapshot(ctx, input.Source)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := formatter.Format(t.page(snap, input.Query), &buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, nil, nil
}
