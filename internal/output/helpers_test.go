// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/warboard/warboard/internal/pipeline"
	"github.com/warboard/warboard/internal/source"
)

const rosterCSV = `Name,Total Kills,T4 Kills,T5 Kills,Total Deads,Requirements
Alice,1000,10,5,20,50%
Bob,2500,20,10,40,0.75
Cara,1500,0,1,5,100
`

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func loadSnapshot(t *testing.T, csv string) *pipeline.Snapshot {
	t.Helper()
	snap, err := pipeline.New(&source.ReaderFetcher{Name: "roster.csv", R: strings.NewReader(csv)}).Load(context.Background())
	require.NoError(t, err)
	return snap
}

func testPage(t *testing.T, query string) *Page {
	t.Helper()
	return NewPage(loadSnapshot(t, rosterCSV), PageOptions{
		Query: query,
		Clock: clockwork.NewFakeClockAt(testNow),
	})
}

// restoreFormatters re-registers the built-in formatters after a test resets
// the registry.
func restoreFormatters() {
	resetFmtForTesting()
	RegisterFormatter(NewTextFormatter())
	RegisterFormatter(NewJSONFormatter())
	RegisterFormatter(NewMarkdownFormatter())
	RegisterFormatter(NewHTMLFormatter())
	RegisterFormatter(NewXLSXFormatter())
}

// failWriter fails every write.
type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
