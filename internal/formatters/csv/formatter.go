// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"strings"

	"pii-quality/internal/formatters"
	"pii-quality/internal/report"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated record listing for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(run *formatters.Run, options formatters.FormatterOptions) (string, error) {
	selected := run.Selected(options.Subset)
	var b strings.Builder

	if run.UseUnmasked(options) {
		rows := make([]report.UnmaskedRow, 0, len(selected))
		for _, i := range selected {
			rows = append(rows, run.Unmasked[i])
		}
		if err := report.WriteUnmaskedCSV(&b, rows); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	rows := make([]report.MaskedRow, 0, len(selected))
	for _, i := range selected {
		rows = append(rows, run.Rows[i])
	}
	if err := report.WriteMaskedCSV(&b, rows); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
