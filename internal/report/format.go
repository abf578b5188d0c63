// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/warboard/warboard/internal/normalize"
)

// Number formats a figure for display. Percentages keep two decimals and a
// trailing "%"; whole numbers get thousands separators; anything else is
// rounded to two decimals.
func Number(v float64, unit string) string {
	if unit == "%" {
		return fmt.Sprintf("%.2f%%", v)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(v, 2)
}

// Cell formats a raw cell for display. Numeric cells are re-rendered with
// thousands separators; other text is returned unchanged.
func Cell(raw string) string {
	v, ok := normalize.Parse(raw)
	if !ok {
		return raw
	}
	return Number(v, "")
}

// PercentCell formats a raw percentage cell as NN.NN%.
func PercentCell(raw string) string {
	return Number(normalize.Number(raw, normalize.Percent), "%")
}
