// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a named worksheet does not exist.
var ErrSheetNotFound = errors.New("worksheet not found")

// ReadXLSX reads one worksheet of an XLSX workbook. An empty sheet name
// selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, sheet, strings.Join(sheets, ", "))
	}

	// Raw values keep long digit strings from being reformatted by the
	// cell's number format.
	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	for _, rec := range records {
		for i, cell := range rec {
			rec[i] = expandExponent(cell)
		}
	}

	table, err := newTable(records)
	if err != nil {
		return nil, err
	}
	table.Sheet = sheet
	return table, nil
}

// expandExponent rewrites numbers stored in scientific notation, such as
// 2.34123412346E+11, in plain positional form.
func expandExponent(cell string) string {
	if !strings.ContainsAny(cell, "eE") {
		return cell
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
