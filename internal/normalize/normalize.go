// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package normalize coerces raw spreadsheet cells into numbers.
//
// Every function in this package is total: any input, including empty or
// garbage strings, produces a finite float64. Malformed cells degrade to 0.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hint tells the normalizer how a column's values are formatted.
type Hint int

const (
	// Plain numbers, possibly with comma thousands separators.
	Plain Hint = iota
	// Percent values, written either as "45%", "45" or as the fraction "0.45".
	Percent
)

// String returns the config name of the hint.
func (h Hint) String() string {
	switch h {
	case Percent:
		return "percent"
	default:
		return "plain"
	}
}

// ParseHint maps a config value to a Hint. The empty string is Plain.
func ParseHint(s string) (Hint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return Plain, nil
	case "percent", "pct", "%":
		return Percent, nil
	default:
		return Plain, fmt.Errorf("unknown hint %q (must be plain or percent)", s)
	}
}

// Number normalizes raw under hint.
//
// Percent cells follow one rule for every row:
//
//   - a trailing "%" means the value is already scaled ("45%" is 45, "0.5%" is 0.5)
//   - without a sign, a magnitude within [0,1] is a fraction and is scaled x100 ("0.45" is 45)
//   - anything else is already a percentage ("45" is 45)
func Number(raw string, hint Hint) float64 {
	v, digits, hadSign, ok := parse(raw)
	if !ok {
		return 0
	}
	if hint == Percent && !hadSign && math.Abs(v) <= 1 {
		return scale100(v, digits)
	}
	return v
}

// scale100 moves the decimal point of digits two places right, so "0.29"
// yields exactly the float64 that "29" does. v is the fallback for inputs
// that are not plain decimals.
func scale100(v float64, digits string) float64 {
	mantissa, exp := digits, 0
	if i := strings.IndexAny(digits, "eE"); i >= 0 {
		e, err := strconv.Atoi(digits[i+1:])
		if err != nil {
			return v * 100
		}
		mantissa, exp = digits[:i], e
	}
	if strings.ContainsAny(mantissa, "xXpP_") {
		return v * 100
	}
	f, err := strconv.ParseFloat(mantissa+"e"+strconv.Itoa(exp+2), 64)
	if err != nil || math.IsInf(f, 0) {
		return v * 100
	}
	return f
}

// Parse reports the plain numeric value of raw and whether raw held a number.
func Parse(raw string) (float64, bool) {
	v, _, _, ok := parse(raw)
	return v, ok
}

// parse cleans raw and parses it. digits is the cleaned text that was
// parsed; hadSign reports a trailing percent sign.
func parse(raw string) (v float64, digits string, hadSign bool, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, "", false, false
	}
	if strings.HasSuffix(s, "%") {
		hadSign = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, "", false, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "", false, false
	}
	return f, s, hadSign, true
}
