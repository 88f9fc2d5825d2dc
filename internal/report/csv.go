// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaskedHeader is the column order of masked CSV artifacts.
var MaskedHeader = []string{
	"source_row_index",
	"aadhaar_masked",
	"mobile_masked",
	"aadhaar_valid",
	"aadhaar_reason",
	"aadhaar_category",
	"mobile_valid",
	"mobile_reason",
	"mobile_category",
	"mobile_region",
	"mobile_type",
	"country",
	"overall_valid",
	"q_adjacent_repetition",
	"q_sequential_digits",
	"q_improbable",
}

// UnmaskedHeader appends the sensitive columns to MaskedHeader.
var UnmaskedHeader = append(append([]string{}, MaskedHeader...), "aadhaar_clean", "mobile_e164")

// ErrHeaderMismatch is returned when a masked CSV lacks expected columns.
var ErrHeaderMismatch = errors.New("csv header does not match masked row layout")

// Record renders the row in MaskedHeader order.
func (r MaskedRow) Record() []string {
	return []string{
		strconv.Itoa(r.SourceRowIndex),
		r.AadhaarMasked,
		r.MobileMasked,
		strconv.FormatBool(r.AadhaarValid),
		r.AadhaarReason,
		r.AadhaarCategory,
		strconv.FormatBool(r.MobileValid),
		r.MobileReason,
		r.MobileCategory,
		r.MobileRegion,
		r.MobileType,
		SanitizeFormulaInjection(r.Country),
		strconv.FormatBool(r.OverallValid),
		strconv.FormatBool(r.QAdjacentRepetition),
		strconv.FormatBool(r.QSequentialDigits),
		strconv.FormatBool(r.QImprobable),
	}
}

// Record renders the row in UnmaskedHeader order, revealing the secrets.
func (r UnmaskedRow) Record() []string {
	return append(r.MaskedRow.Record(), r.AadhaarClean.Reveal(), r.MobileE164.Reveal())
}

// WriteMaskedCSV writes rows with a header line.
func WriteMaskedCSV(w io.Writer, rows []MaskedRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MaskedHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.SourceRowIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUnmaskedCSV writes rows including the unmasked columns.
func WriteUnmaskedCSV(w io.Writer, rows []UnmaskedRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(UnmaskedHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.SourceRowIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMaskedCSV parses a masked artifact. Columns are matched by name, so
// extra columns are ignored; a missing source_row_index is an error.
func ReadMaskedCSV(r io.Reader) ([]MaskedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return []MaskedRow{}, nil
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[strings.TrimSpace(name)] = i
	}
	if _, ok := idx["source_row_index"]; !ok {
		return nil, ErrHeaderMismatch
	}

	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	flag := func(rec []string, col string) bool {
		b, _ := strconv.ParseBool(get(rec, col))
		return b
	}

	rows := make([]MaskedRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		index, err := strconv.Atoi(get(rec, "source_row_index"))
		if err != nil {
			return nil, fmt.Errorf("row %d: source_row_index: %w", n+1, err)
		}
		rows = append(rows, MaskedRow{
			SourceRowIndex:      index,
			AadhaarMasked:       get(rec, "aadhaar_masked"),
			MobileMasked:        get(rec, "mobile_masked"),
			AadhaarValid:        flag(rec, "aadhaar_valid"),
			AadhaarReason:       get(rec, "aadhaar_reason"),
			AadhaarCategory:     get(rec, "aadhaar_category"),
			MobileValid:         flag(rec, "mobile_valid"),
			MobileReason:        get(rec, "mobile_reason"),
			MobileCategory:      get(rec, "mobile_category"),
			MobileRegion:        get(rec, "mobile_region"),
			MobileType:          get(rec, "mobile_type"),
			Country:             get(rec, "country"),
			OverallValid:        flag(rec, "overall_valid"),
			QAdjacentRepetition: flag(rec, "q_adjacent_repetition"),
			QSequentialDigits:   flag(rec, "q_sequential_digits"),
			QImprobable:         flag(rec, "q_improbable"),
		})
	}
	return rows, nil
}

// SanitizeFormulaInjection neutralizes spreadsheet formula prefixes in
// free-text cells.
func SanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}
	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}
