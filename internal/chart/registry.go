// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Renderer draws a chart and returns a handle to the drawing.
type Renderer interface {
	Draw(spec Spec) (Handle, error)
}

// Handle is a live drawing. Dispose releases it; it must be safe to call once.
type Handle interface {
	Dispose() error
}

// Registry tracks at most one live handle per chart id.
type Registry struct {
	mu       sync.Mutex
	renderer Renderer
	handles  map[string]Handle
	order    []string
}

// NewRegistry returns an empty Registry drawing through r.
func NewRegistry(r Renderer) *Registry {
	return &Registry{renderer: r, handles: make(map[string]Handle)}
}

// Redraw disposes any handle registered under id and draws spec in its place.
// If disposal fails the old handle is dropped anyway and the error returned
// after the new drawing is registered.
func (g *Registry) Redraw(id string, spec Spec) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var disposeErr error
	if old, ok := g.handles[id]; ok {
		delete(g.handles, id)
		g.remove(id)
		if err := old.Dispose(); err != nil {
			disposeErr = fmt.Errorf("dispose %s: %w", id, err)
		}
	}

	h, err := g.renderer.Draw(spec)
	if err != nil {
		return errors.Join(disposeErr, fmt.Errorf("draw %s: %w", id, err))
	}
	g.handles[id] = h
	g.order = append(g.order, id)
	return disposeErr
}

// Sync redraws every spec under its own id and disposes handles whose id is
// absent from specs.
func (g *Registry) Sync(specs []Spec) error {
	keep := make(map[string]bool, len(specs))
	for _, s := range specs {
		keep[s.ID] = true
	}

	var errs []error
	g.mu.Lock()
	for _, id := range append([]string(nil), g.order...) {
		if keep[id] {
			continue
		}
		h := g.handles[id]
		delete(g.handles, id)
		g.remove(id)
		if err := h.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("dispose %s: %w", id, err))
		}
	}
	g.mu.Unlock()

	for _, s := range specs {
		if err := g.Redraw(s.ID, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close disposes every handle.
func (g *Registry) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var errs []error
	for _, id := range g.order {
		if err := g.handles[id].Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("dispose %s: %w", id, err))
		}
	}
	g.handles = make(map[string]Handle)
	g.order = nil
	return errors.Join(errs...)
}

// IDs returns the registered chart ids in sorted order.
func (g *Registry) IDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, 0, len(g.handles))
	for id := range g.handles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Registry) remove(id string) {
	for i, o := range g.order {
		if o == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			return
		}
	}
}
