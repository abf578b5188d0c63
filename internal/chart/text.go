// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/warboard/warboard/internal/report"
)

// ErrDisposed is returned when a handle is disposed twice.
var ErrDisposed = errors.New("handle already disposed")

var (
	colorBar   = color.New(color.FgCyan)
	colorSpark = color.New(color.FgGreen)
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// TextRenderer draws charts as horizontal bars and sparklines.
type TextRenderer struct {
	W     io.Writer
	Width int // bar width in cells; defaults to 40

	mu   sync.Mutex
	live int
}

// Live returns the number of handles drawn and not yet disposed.
func (r *TextRenderer) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

// Draw writes spec to the renderer's writer.
func (r *TextRenderer) Draw(spec Spec) (Handle, error) {
	width := r.Width
	if width <= 0 {
		width = 40
	}

	var b strings.Builder
	b.WriteString(report.SectionTitle(spec.Title))
	b.WriteByte('\n')

	switch {
	case spec.Len() == 0:
		b.WriteString("  (no data)\n")
	case spec.Kind == Line:
		drawSpark(&b, spec)
	default:
		drawBars(&b, spec, width)
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(r.W, b.String()); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.live++
	r.mu.Unlock()
	return &textHandle{r: r}, nil
}

func drawBars(b *strings.Builder, spec Spec, width int) {
	labelWidth := 0
	for _, l := range spec.Labels {
		labelWidth = max(labelWidth, len([]rune(l)))
	}
	peak := spec.Max()
	for i, v := range spec.Values {
		n := 0
		if peak > 0 && v > 0 {
			n = int(math.Round(v / peak * float64(width)))
		}
		label := spec.Labels[i]
		pad := labelWidth - len([]rune(label))
		fmt.Fprintf(b, "  %s%s %s %s\n", label, strings.Repeat(" ", pad),
			colorBar.Sprint(strings.Repeat("█", n)), report.Number(v, spec.Unit))
	}
}

func drawSpark(b *strings.Builder, spec Spec) {
	lo, hi := spec.Values[0], spec.Values[0]
	var sum float64
	for _, v := range spec.Values {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	line := make([]rune, len(spec.Values))
	for i, v := range spec.Values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparks)-1))
		}
		line[i] = sparks[idx]
	}
	fmt.Fprintf(b, "  %s\n", colorSpark.Sprint(string(line)))
	fmt.Fprintf(b, "  min %s  avg %s  max %s\n",
		report.Number(lo, spec.Unit),
		report.Number(sum/float64(len(spec.Values)), spec.Unit),
		report.Number(hi, spec.Unit))
}

type textHandle struct {
	r        *TextRenderer
	disposed bool
}

func (h *textHandle) Dispose() error {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	if h.disposed {
		return ErrDisposed
	}
	h.disposed = true
	h.r.live--
	return nil
}
