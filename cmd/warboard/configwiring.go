package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/warboard/warboard/internal/config"
	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/source"
)

// loadConfig resolves the global and local config files and validates the
// result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(configDir)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "warboard: failed to load config (%v)", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "warboard: %v", err)
	}
	return cfg, nil
}

// sourceFromArgs returns the positional source at idx, or the configured one.
func sourceFromArgs(args []string, idx int, cfg *config.Config) string {
	if len(args) > idx {
		return args[idx]
	}
	return cfg.Source
}

// newFetcher builds the fetcher for location. "-" reads the command's stdin.
func newFetcher(cmd *cobra.Command, location string) (source.Fetcher, error) {
	if location == "-" {
		return &source.ReaderFetcher{Name: "stdin", R: cmd.InOrStdin()}, nil
	}
	f, err := source.New(location)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "warboard: %v", err)
	}
	return f, nil
}

// newPipeline wires the configured role rules and metrics onto f.
func newPipeline(cfg *config.Config, f source.Fetcher) (*pipeline.Pipeline, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "warboard: %v", err)
	}
	metrics, err := cfg.MetricSet()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "warboard: %v", err)
	}
	return pipeline.New(f, pipeline.WithRules(rules), pipeline.WithMetrics(metrics)), nil
}

// loadSnapshot runs p once. Load failures exit with ExitLoadFailure.
func loadSnapshot(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := p.Load(ctx)
	if err != nil {
		return nil, exitError(ExitLoadFailure, "warboard: load failed (%v)", err)
	}
	slog.Info("loaded", "source", snap.Source, "rows", len(snap.Dataset.Rows), "duration", snap.Duration)
	return snap, nil
}

// openSnapshot loads the config and then the source at args[idx].
func openSnapshot(cmd *cobra.Command, args []string, idx int) (*config.Config, *pipeline.Snapshot, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	snap, err := loadFrom(cmd, cfg, sourceFromArgs(args, idx, cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, snap, nil
}

// loadFrom fetches and decodes location under cfg's rules and metrics.
func loadFrom(cmd *cobra.Command, cfg *config.Config, location string) (*pipeline.Snapshot, error) {
	f, err := newFetcher(cmd, location)
	if err != nil {
		return nil, err
	}
	p, err := newPipeline(cfg, f)
	if err != nil {
		return nil, err
	}
	return loadSnapshot(cmd.Context(), p)
}
