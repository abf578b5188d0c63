// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/warboard/warboard/internal/config"
	"github.com/warboard/warboard/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running warboard as an MCP server, exposing its read-only roster queries to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve [source]",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing warboard's tools:
  - columns:   Column set, role binding and warnings
  - aggregate: Summary figures and chart data for a search query
  - series:    One role's per-player values for a search query
  - report:    The full filtered report as json, markdown or text

Every tool takes an optional source; the default is the source argument or
the configured source. Each source is fetched once per server.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := mcpOptions(cfg, sourceFromArgs(args, 0, cfg))
	if err != nil {
		return err
	}
	return mcpserver.Run(cmd.Context(), Version, opts, &mcp.StdioTransport{})
}

func mcpOptions(cfg *config.Config, src string) (mcpserver.Options, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return mcpserver.Options{}, exitError(ExitInvalidArgs, "warboard: %v", err)
	}
	metrics, err := cfg.MetricSet()
	if err != nil {
		return mcpserver.Options{}, exitError(ExitInvalidArgs, "warboard: %v", err)
	}
	return mcpserver.Options{
		Source:  src,
		Rules:   rules,
		Metrics: metrics,
		Columns: cfg.Columns,
		Top:     cfg.Top,
	}, nil
}
