// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterCSV = "Name,Kills,Deads\nAlice,1000,20\nBob,2500,40\n"

func TestRenderSummary(t *testing.T) {
	snap := loadSnapshot(t, rosterCSV)
	view := snap.View("bob")

	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, snap, "bob", snap.Aggregate(view)))

	out := buf.String()
	assert.Contains(t, out, "test.csv")
	assert.Contains(t, out, `Rows: 1 of 2 matching "bob"`)
	assert.Contains(t, out, "Total Kills")
	assert.Contains(t, out, "2,500")
	assert.Contains(t, out, "0.00%", "unresolved percent metric still renders")
}

func TestRenderSummary_NoQuery(t *testing.T) {
	snap := loadSnapshot(t, rosterCSV)

	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, snap, "", snap.Aggregate(snap.View(""))))
	assert.Contains(t, buf.String(), "Rows: 2 of 2\n")
	assert.Contains(t, buf.String(), "3,500")
}

func TestRenderWarnings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderWarnings(&buf, nil))
	assert.Empty(t, buf.String())

	require.NoError(t, RenderWarnings(&buf, []string{"line 3: record has 4 fields"}))
	assert.Contains(t, buf.String(), "Warnings")
	assert.Contains(t, buf.String(), "! line 3: record has 4 fields")
}

func TestRenderRows(t *testing.T) {
	snap := loadSnapshot(t, rosterCSV)
	cols := Columns(snap, nil)

	var buf bytes.Buffer
	require.NoError(t, RenderRows(&buf, cols, snap.View("")))

	lines := splitLines(buf.String())
	require.Len(t, lines, 4)
	assert.Equal(t, "  Alice  1,000     20", lines[2])
	assert.Equal(t, "  Bob    2,500     40", lines[3])
}
