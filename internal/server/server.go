// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package server serves the live dashboard: the HTML page plus a small JSON
// API that re-filters and re-aggregates the loaded snapshot per request.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/warboard/warboard/internal/chart"
	"github.com/warboard/warboard/internal/output"
	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/redact"
	"github.com/warboard/warboard/internal/roles"
	"github.com/warboard/warboard/internal/table"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 5 * time.Second

// Loader produces a snapshot. *pipeline.Pipeline satisfies it.
type Loader interface {
	Load(ctx context.Context) (*pipeline.Snapshot, error)
}

// Options configure page projection.
type Options struct {
	Columns []string
	Top     int
	Clock   clockwork.Clock
}

// Server holds the current snapshot and the router over it. A failed load
// keeps the previous snapshot, if any, and is reported on the page.
type Server struct {
	loader Loader
	opts   Options
	router chi.Router

	mu      sync.RWMutex
	snap    *pipeline.Snapshot
	loadErr error
}

// New creates a Server. Call Reload (or Run) before serving.
func New(loader Loader, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	s := &Server{loader: loader, opts: opts}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)
	r.Use(requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/aggregate", s.handleAggregate)
		r.Get("/series", s.handleSeries)
		r.Get("/columns", s.handleColumns)
		r.Post("/reload", s.handleReload)
	})
	s.router = r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Reload fetches the source again and swaps in the new snapshot.
func (s *Server) Reload(ctx context.Context) error {
	snap, err := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
	if err != nil {
		recordLoad(0, err)
		return err
	}
	s.snap = snap
	recordLoad(len(snap.Dataset.Rows), nil)
	return nil
}

// snapshot returns the current snapshot and the last load error.
func (s *Server) snapshot() (*pipeline.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.loadErr
}

// Run loads the source, then serves on addr until ctx is canceled. A failed
// initial load is logged and served as an error page.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	if err := s.Reload(ctx); err != nil {
		slog.Error("initial load failed", "error", redact.String(err.Error()))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("serving dashboard", "addr", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) page(snap *pipeline.Snapshot, query string, live bool) *output.Page {
	return output.NewPage(snap, output.PageOptions{
		Query:   query,
		Columns: s.opts.Columns,
		Top:     s.opts.Top,
		Clock:   s.opts.Clock,
		Live:    live,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	html := output.NewHTMLFormatter()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	snap, err := s.snapshot()
	if snap == nil {
		if err == nil {
			err = errors.New("no data loaded")
		}
		w.WriteHeader(http.StatusBadGateway)
		if ferr := html.FormatError(err, w); ferr != nil {
			slog.Error("render error page", "error", ferr)
		}
		return
	}
	if err := html.Format(s.page(snap, r.URL.Query().Get("q"), true), w); err != nil {
		slog.Error("render dashboard", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.snapshot()
	resp := map[string]any{"status": "ok"}
	status := http.StatusOK
	if snap == nil {
		resp["status"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		resp["snapshot_id"] = snap.ID.String()
		resp["rows"] = len(snap.Dataset.Rows)
		resp["fetched_at"] = snap.FetchedAt.UTC().Format(time.RFC3339)
	}
	if err != nil {
		resp["error"] = redact.String(err.Error())
	}
	writeJSON(w, status, resp)
}

// AggregateResponse is the /api/aggregate document. Rows lists the positions
// of the matching rows in the Column Set's row order.
type AggregateResponse struct {
	Query   string              `json:"query"`
	Rows    []int               `json:"rows"`
	Total   int                 `json:"total"`
	Figures []output.JSONFigure `json:"figures"`
	Charts  []chart.Spec        `json:"charts"`
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.requireSnapshot(w)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	p := s.page(snap, q, true)
	recordAggregation(p.Result.Rows)

	doc := output.BuildJSONReport(p)
	writeJSON(w, http.StatusOK, AggregateResponse{
		Query:   q,
		Rows:    table.Match(snap.Dataset, q),
		Total:   p.Total(),
		Figures: doc.Figures,
		Charts:  doc.Charts,
	})
}

// SeriesResponse is the /api/series document.
type SeriesResponse struct {
	Role   string    `json:"role"`
	Column string    `json:"column,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.requireSnapshot(w)
	if !ok {
		return
	}
	role := roles.Role(r.URL.Query().Get("role"))
	if !snap.Binding.Has(role) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown role %q", role))
		return
	}
	view := snap.View(r.URL.Query().Get("q"))
	col, _ := snap.Binding.Column(role)
	writeJSON(w, http.StatusOK, SeriesResponse{
		Role:   string(role),
		Column: col,
		Labels: snap.Labels(view),
		Values: snap.Series(view, role),
	})
}

// ColumnsResponse is the /api/columns document.
type ColumnsResponse struct {
	Columns    []string          `json:"columns"`
	Binding    map[string]string `json:"binding"`
	Unresolved []string          `json:"unresolved"`
	Warnings   []string          `json:"warnings"`
}

func (s *Server) handleColumns(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.requireSnapshot(w)
	if !ok {
		return
	}
	resp := ColumnsResponse{
		Columns:    snap.Dataset.Columns,
		Binding:    make(map[string]string),
		Unresolved: []string{},
		Warnings:   snap.Warnings(),
	}
	for r, col := range snap.Binding.Map() {
		resp.Binding[string(r)] = col
	}
	for _, r := range snap.Binding.Unresolved() {
		resp.Unresolved = append(resp.Unresolved, string(r))
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	snap, _ := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"snapshot_id": snap.ID.String(),
		"rows":        len(snap.Dataset.Rows),
	})
}

func (s *Server) requireSnapshot(w http.ResponseWriter) (*pipeline.Snapshot, bool) {
	snap, err := s.snapshot()
	if snap != nil {
		return snap, true
	}
	if err == nil {
		err = errors.New("no data loaded")
	}
	writeError(w, http.StatusServiceUnavailable, err)
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": redact.String(err.Error())})
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}
