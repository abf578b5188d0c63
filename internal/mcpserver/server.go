// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/warboard/warboard/internal/aggregate"
	"github.com/warboard/warboard/internal/roles"
)

// Options configure the tools. Source is used when a call names none.
type Options struct {
	Source  string
	Rules   []roles.Rule
	Metrics []aggregate.Metric
	Columns []string
	Top     int
}

// New creates a new MCP server with warboard's tools registered.
func New(version string, opts Options) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "warboard",
		Title:   "Warboard: Kingdom Roster Analytics",
		Version: version,
	}, nil)

	registerTools(server, newTools(opts))
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, opts Options, transport mcp.Transport) error {
	server := New(version, opts)
	return server.Run(ctx, transport)
}
