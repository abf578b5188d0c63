// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	aggregationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warboard_aggregations_total",
			Help: "Total number of view aggregations served",
		},
	)

	aggregationRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "warboard_aggregation_rows",
			Help:    "Rows in each aggregated view",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
		},
	)

	snapshotLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warboard_snapshot_loads_total",
			Help: "Total number of source loads",
		},
		[]string{"status"},
	)

	snapshotRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warboard_snapshot_rows",
			Help: "Data rows in the current snapshot",
		},
	)
)

// metricsMiddleware records request counts and latency per route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			path = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func recordLoad(rows int, err error) {
	if err != nil {
		snapshotLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	snapshotLoadsTotal.WithLabelValues("success").Inc()
	snapshotRows.Set(float64(rows))
}

func recordAggregation(rows int) {
	aggregationsTotal.Inc()
	aggregationRows.Observe(float64(rows))
}
