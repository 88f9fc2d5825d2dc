// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Options control how Open decodes a file.
type Options struct {
	// Encoding applies to CSV input.
	Encoding string
	// Sheet applies to XLSX input; empty selects the first sheet.
	Sheet string
}

// Open reads a CSV or XLSX file from fs, dispatching on the extension.
func Open(fs afero.Fs, path string, opts Options) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, fmt.Errorf("%w: %q (expected .csv or .xlsx)", ErrUnsupportedFormat, ext)
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var table *Table
	switch ext {
	case ".csv":
		table, err = ReadCSV(f, opts.Encoding)
	case ".xlsx":
		table, err = ReadXLSX(f, opts.Sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	table.Source = filepath.Base(path)
	return table, nil
}
