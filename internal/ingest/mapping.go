// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"errors"
	"fmt"
	"strings"

	"pii-quality/internal/engine"
	"pii-quality/internal/normalize"
)

var (
	// ErrNoColumns is returned when neither an Aadhaar nor a mobile column
	// could be resolved.
	ErrNoColumns = errors.New("select at least one of: aadhaar column or mobile column")
	// ErrUnknownColumn is returned for mapped names that are not in the table.
	ErrUnknownColumn = errors.New("column not found")
)

// Mapping names the table columns that feed each field. Empty means the
// field is not supplied.
type Mapping struct {
	Aadhaar string `json:"aadhaar_col,omitempty" yaml:"aadhaar,omitempty"`
	Mobile  string `json:"mobile_col,omitempty" yaml:"mobile,omitempty"`
	Region  string `json:"country_col,omitempty" yaml:"region,omitempty"`
}

// ResolveMapping validates the explicit mapping against the table and, when
// guess is set, fills unset Aadhaar and mobile columns by detection. The
// region column is never guessed.
func ResolveMapping(t *Table, explicit Mapping, guess bool) (Mapping, error) {
	m := explicit
	for _, name := range []string{m.Aadhaar, m.Mobile, m.Region} {
		if name != "" && t.ColumnIndex(name) < 0 {
			return Mapping{}, fmt.Errorf("%w: %q (have: %s)", ErrUnknownColumn, name, strings.Join(t.Columns, ", "))
		}
	}

	if guess {
		if m.Aadhaar == "" {
			m.Aadhaar = GuessAadhaarColumn(t, m.Mobile, m.Region)
		}
		if m.Mobile == "" {
			m.Mobile = GuessMobileColumn(t, m.Aadhaar, m.Region)
		}
	}

	if m.Aadhaar == "" && m.Mobile == "" {
		return Mapping{}, ErrNoColumns
	}
	return m, nil
}

// Rows converts table rows into engine rows. Region values are normalized
// and upper-cased; rows without one get defaultRegion.
func Rows(t *Table, m Mapping, defaultRegion string) []engine.Row {
	aCol, mCol, rCol := t.ColumnIndex(m.Aadhaar), t.ColumnIndex(m.Mobile), t.ColumnIndex(m.Region)
	def := strings.ToUpper(normalize.Text(defaultRegion))

	rows := make([]engine.Row, t.Len())
	for i := range t.Rows {
		row := engine.Row{Index: i, Region: def}
		if aCol >= 0 {
			row.Aadhaar = t.Cell(i, aCol)
		}
		if mCol >= 0 {
			row.Mobile = t.Cell(i, mCol)
		}
		if rCol >= 0 {
			if region := strings.ToUpper(normalize.Text(t.Cell(i, rCol))); region != "" {
				row.Region = region
			}
		}
		rows[i] = row
	}
	return rows
}
