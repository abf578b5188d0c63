// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records every drawing and tracks which are still live.
type fakeRenderer struct {
	drawn   []string
	live    map[string]int
	drawErr error
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{live: make(map[string]int)}
}

type fakeHandle struct {
	r          *fakeRenderer
	id         string
	disposed   bool
	disposeErr error
}

func (h *fakeHandle) Dispose() error {
	if h.disposed {
		return ErrDisposed
	}
	h.disposed = true
	h.r.live[h.id]--
	return h.disposeErr
}

func (f *fakeRenderer) Draw(spec Spec) (Handle, error) {
	if f.drawErr != nil {
		return nil, f.drawErr
	}
	f.drawn = append(f.drawn, spec.ID)
	f.live[spec.ID]++
	return &fakeHandle{r: f, id: spec.ID}, nil
}

func TestRegistry_RedrawDisposesPrior(t *testing.T) {
	r := newFakeRenderer()
	reg := NewRegistry(r)

	for i := range 5 {
		require.NoError(t, reg.Redraw("kills", Spec{ID: "kills", Title: fmt.Sprint(i)}))
		assert.Equal(t, 1, r.live["kills"], "never more than one live handle per id")
	}
	assert.Len(t, r.drawn, 5)
	assert.Equal(t, []string{"kills"}, reg.IDs())
}

func TestRegistry_Sync(t *testing.T) {
	r := newFakeRenderer()
	reg := NewRegistry(r)

	require.NoError(t, reg.Sync([]Spec{{ID: "a"}, {ID: "b"}, {ID: "c"}}))
	assert.Equal(t, []string{"a", "b", "c"}, reg.IDs())

	require.NoError(t, reg.Sync([]Spec{{ID: "b"}}))
	assert.Equal(t, []string{"b"}, reg.IDs())
	assert.Equal(t, 0, r.live["a"])
	assert.Equal(t, 1, r.live["b"])
	assert.Equal(t, 0, r.live["c"])
}

func TestRegistry_Close(t *testing.T) {
	r := newFakeRenderer()
	reg := NewRegistry(r)
	require.NoError(t, reg.Redraw("a", Spec{ID: "a"}))
	require.NoError(t, reg.Redraw("b", Spec{ID: "b"}))

	require.NoError(t, reg.Close())
	assert.Empty(t, reg.IDs())
	assert.Equal(t, 0, r.live["a"]+r.live["b"])

	// A closed registry can be reused.
	require.NoError(t, reg.Redraw("a", Spec{ID: "a"}))
	assert.Equal(t, []string{"a"}, reg.IDs())
}

func TestRegistry_DrawError(t *testing.T) {
	r := newFakeRenderer()
	reg := NewRegistry(r)
	require.NoError(t, reg.Redraw("a", Spec{ID: "a"}))

	r.drawErr = errors.New("canvas gone")
	err := reg.Redraw("a", Spec{ID: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canvas gone")
	assert.Empty(t, reg.IDs(), "failed redraw leaves no stale handle")
	assert.Equal(t, 0, r.live["a"])
}

func TestRegistry_DisposeError(t *testing.T) {
	r := newFakeRenderer()
	reg := NewRegistry(r)
	require.NoError(t, reg.Redraw("a", Spec{ID: "a"}))
	reg.handles["a"].(*fakeHandle).disposeErr = errors.New("busy")

	err := reg.Redraw("a", Spec{ID: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispose a")
	assert.Equal(t, []string{"a"}, reg.IDs(), "new drawing is registered anyway")
}
