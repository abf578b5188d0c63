// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRenderer_Bars(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{W: &buf, Width: 10}

	h, err := r.Draw(Spec{
		ID: "k", Title: "Total Kills", Kind: Bar,
		Labels: []string{"Bob", "Alice"},
		Values: []float64{2500, 1250},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Live())

	out := buf.String()
	assert.Contains(t, out, "Total Kills")
	assert.Contains(t, out, "Bob   "+strings.Repeat("█", 10)+" 2,500")
	assert.Contains(t, out, "Alice "+strings.Repeat("█", 5)+" 1,250")

	require.NoError(t, h.Dispose())
	assert.Equal(t, 0, r.Live())
	assert.ErrorIs(t, h.Dispose(), ErrDisposed)
	assert.Equal(t, 0, r.Live())
}

func TestTextRenderer_Line(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{W: &buf}

	_, err := r.Draw(Spec{
		ID: "r", Title: "Requirements", Kind: Line, Unit: "%",
		Labels: []string{"a", "b", "c"},
		Values: []float64{0, 50, 100},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "▁▄█")
	assert.Contains(t, out, "min 0.00%  avg 50.00%  max 100.00%")
}

func TestTextRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{W: &buf}

	_, err := r.Draw(Spec{ID: "x", Title: "Nothing", Kind: Line})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(no data)")
}

func TestTextRenderer_WithRegistry(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{W: &buf}
	reg := NewRegistry(r)

	for range 3 {
		require.NoError(t, reg.Sync([]Spec{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}))
	}
	assert.Equal(t, 2, r.Live())
	require.NoError(t, reg.Close())
	assert.Equal(t, 0, r.Live())
}
