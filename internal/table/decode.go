// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyInput is wrapped by DecodeError when the stream carries no data at
// all. A header-only document is not empty.
var ErrEmptyInput = errors.New("empty input")

// DecodeError reports a document that cannot be read as tabular text.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode csv: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode reads a comma-separated document whose first record is the header.
//
// Duplicate header names keep the first occurrence; later columns with the
// same name are dropped and reported as warnings. Records shorter than the
// header leave the unmatched cells missing. Fields beyond the header are
// discarded with a warning. Blank records are skipped.
func Decode(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Err: ErrEmptyInput}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	ds := &Dataset{}
	keep := make([]int, 0, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column %d", i+1)
		}
		if first, dup := seen[name]; dup {
			ds.Warnings = append(ds.Warnings, Warning{
				Line:    1,
				Kind:    WarnDuplicateColumn,
				Message: fmt.Sprintf("column %d %q duplicates column %d; keeping the first", i+1, name, first+1),
			})
			continue
		}
		seen[name] = i
		keep = append(keep, i)
		ds.Columns = append(ds.Columns, name)
	}

	short := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DecodeError{Err: err}
		}
		if blank(rec) {
			continue
		}

		line, _ := cr.FieldPos(0)
		switch {
		case len(rec) > len(header):
			ds.Warnings = append(ds.Warnings, Warning{
				Line:    line,
				Kind:    WarnLongRecord,
				Message: fmt.Sprintf("record has %d fields, header has %d; extra fields dropped", len(rec), len(header)),
			})
		case len(rec) < len(header):
			short++
		}

		cells := make(map[string]string, len(keep))
		for j, idx := range keep {
			if idx < len(rec) {
				cells[ds.Columns[j]] = rec[idx]
			}
		}
		ds.Rows = append(ds.Rows, Row{cells: cells})
	}

	if short > 0 {
		ds.Warnings = append(ds.Warnings, Warning{
			Kind:    WarnShortRecord,
			Message: fmt.Sprintf("%d record(s) have fewer fields than the header; missing cells read as empty", short),
		})
	}
	return ds, nil
}

// DecodeString is Decode over an in-memory document.
func DecodeString(s string) (*Dataset, error) {
	return Decode(strings.NewReader(s))
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
