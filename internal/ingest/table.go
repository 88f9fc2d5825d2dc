// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTable is returned when a source has no header row.
	ErrEmptyTable = errors.New("table has no header row")
	// ErrUnsupportedFormat is returned for file extensions other than csv/xlsx.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Table is a rectangular in-memory view of an input file. Missing cells are
// empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
	// Source is the file name the table was read from, if any.
	Source string
	// Encoding is the text encoding actually used to decode a CSV source.
	Encoding string
	// Sheet is the worksheet read from an XLSX source.
	Sheet string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row and column index; out-of-range is "".
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// newTable builds a table from raw records whose first record is the header.
// Header names are made unique and blank names get a positional placeholder;
// ragged rows are padded to the header width.
func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	header := records[0]
	width := len(header)
	for _, r := range records[1:] {
		if len(r) > width {
			width = len(r)
		}
	}
	if width == 0 {
		return nil, ErrEmptyTable
	}

	cols := make([]string, width)
	used := make(map[string]bool, width)
	next := make(map[string]int, width)
	for i := range cols {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if used[name] {
			base := name
			for used[name] {
				next[base]++
				name = fmt.Sprintf("%s.%d", base, next[base])
			}
		}
		used[name] = true
		cols[i] = name
	}

	rows := make([][]string, 0, len(records)-1)
	for _, r := range records[1:] {
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			r = padded
		}
		rows = append(rows, r)
	}
	return &Table{Columns: cols, Rows: rows}, nil
}
