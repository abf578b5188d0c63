// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/source"
)

func loadSnapshot(t *testing.T, csv string) *pipeline.Snapshot {
	t.Helper()
	snap, err := pipeline.New(&source.ReaderFetcher{Name: "test.csv", R: strings.NewReader(csv)}).Load(context.Background())
	require.NoError(t, err)
	return snap
}

// wideCSV builds a 20-column export whose 18th column is unnamed
// completion data.
func wideCSV() string {
	headers := make([]string, 20)
	cells := make([]string, 20)
	for i := range headers {
		headers[i] = fmt.Sprintf("c%d", i+1)
		cells[i] = fmt.Sprintf("%d", i+1)
	}
	headers[0] = "Name"
	cells[0] = "Alice"
	cells[17] = "0.5"
	return strings.Join(headers, ",") + "\n" + strings.Join(cells, ",") + "\n"
}

func TestColumns_Default(t *testing.T) {
	snap := loadSnapshot(t, wideCSV())
	cols := Columns(snap, nil)

	require.Len(t, cols, 15)
	assert.Equal(t, "Name", cols[0].Name)
	assert.Equal(t, "c14", cols[13].Name)

	last := cols[14]
	assert.Equal(t, "c18", last.Name)
	assert.Equal(t, "c18 (%)", last.Header)
	assert.True(t, last.Percent)
	assert.Equal(t, "50.00%", last.Format("0.5"))

	assert.False(t, cols[0].Numeric)
	assert.True(t, cols[1].Numeric)
}

func TestColumns_Configured(t *testing.T) {
	snap := loadSnapshot(t, "Name,Power,Requirements %\nAlice,100,40%\n")
	cols := Columns(snap, []string{"Requirements %", "Missing", "Name"})

	require.Len(t, cols, 2)
	assert.Equal(t, "Requirements %", cols[0].Name)
	assert.Equal(t, "Requirements %", cols[0].Header, "header already carries a percent sign")
	assert.True(t, cols[0].Percent)
	assert.Equal(t, "Name", cols[1].Name)
}

func TestColumns_Narrow(t *testing.T) {
	snap := loadSnapshot(t, "Name,Kills\nA,1\n")
	cols := Columns(snap, nil)
	assert.Equal(t, []string{"Name", "Kills"}, Headers(cols))
}

func TestFormatRow(t *testing.T) {
	snap := loadSnapshot(t, "Name,Kills,Requirements\nAlice,\"12,000\",0.755\n")
	cols := Columns(snap, nil)
	assert.Equal(t, []string{"Alice", "12,000", "75.50%"}, FormatRow(cols, snap.Dataset.Rows[0]))
}
