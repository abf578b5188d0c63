package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/warboard/warboard/internal/server"
)

// Serve-specific flag values.
var (
	serveAddr    string
	serveTop     int
	serveColumns []string
)

// serveCmd runs the live dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve [source]",
	Short: "Serve the live dashboard over HTTP",
	Long: `Fetch the roster and serve the dashboard. The page's search box asks the
server to re-filter and re-aggregate; POST /api/reload fetches the source
again. Prometheus metrics are exposed on /metrics.

Endpoints:
  GET  /                       dashboard (?q= sets the initial search)
  GET  /api/aggregate?q=       figures, charts and matching row positions
  GET  /api/series?role=&q=    one role's per-row values
  GET  /api/columns            column set and role binding
  POST /api/reload             fetch the source again
  GET  /healthz                snapshot status
  GET  /metrics                Prometheus metrics`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default "+server.DefaultAddr+")")
	serveCmd.Flags().IntVar(&serveTop, "top", 0, "bars per ranking chart (default 15)")
	serveCmd.Flags().StringSliceVar(&serveColumns, "columns", nil, "columns to show in the row table")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := newFetcher(cmd, sourceFromArgs(args, 0, cfg))
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, f)
	if err != nil {
		return err
	}

	opts := server.Options{Columns: cfg.Columns, Top: cfg.Top}
	if cmd.Flags().Changed("columns") {
		opts.Columns = serveColumns
	}
	if cmd.Flags().Changed("top") {
		opts.Top = serveTop
	}
	addr := firstNonEmpty(flagString(cmd, "addr", serveAddr), cfg.Serve.Addr, server.DefaultAddr)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(p, opts).Run(ctx, addr); err != nil {
		return exitError(ExitLoadFailure, "warboard: serve failed (%v)", err)
	}
	return nil
}
