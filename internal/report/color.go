// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"github.com/fatih/color"

	"github.com/warboard/warboard/internal/normalize"
)

// Shared color printers for report output.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
	colorFaint  = color.New(color.Faint)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorPercent colors a completion percentage: 100 and above green, 50 and
// above yellow, anything lower red. Non-numeric values are returned as is.
func ColorPercent(val string) string {
	v, ok := normalize.Parse(val)
	if !ok {
		return val
	}
	switch {
	case v >= 100:
		return colorGreen.Sprint(val)
	case v >= 50:
		return colorYellow.Sprint(val)
	default:
		return colorRed.Sprint(val)
	}
}

// ColorWarning renders a warning line marker.
func ColorWarning(msg string) string {
	return colorYellow.Sprint("! ") + msg
}

// Faint renders secondary text.
func Faint(s string) string {
	return colorFaint.Sprint(s)
}
