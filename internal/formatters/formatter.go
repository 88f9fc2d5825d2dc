// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"pii-quality/internal/engine"
	"pii-quality/internal/report"
	"pii-quality/internal/validators/aadhaar"
	"pii-quality/internal/validators/phone"
)

// ErrUnsupportedFormat is returned by Export for unregistered format names.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Subset selects which records a formatter lists.
type Subset string

const (
	SubsetAll            Subset = "all"
	SubsetValid          Subset = "valid"
	SubsetInvalidAadhaar Subset = "invalid-aadhaar"
	SubsetInvalidMobile  Subset = "invalid-mobile"
)

// Subsets lists the accepted subset names.
var Subsets = []Subset{SubsetAll, SubsetValid, SubsetInvalidAadhaar, SubsetInvalidMobile}

// ParseSubset accepts a subset name; empty means SubsetAll.
func ParseSubset(name string) (Subset, error) {
	s := Subset(strings.ToLower(strings.TrimSpace(name)))
	if s == "" {
		return SubsetAll, nil
	}
	for _, known := range Subsets {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown subset %q (expected all, valid, invalid-aadhaar or invalid-mobile)", name)
}

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose  bool   // Whether to list individual records in summary formats
	NoColor  bool   // Whether to disable colored output
	Unmasked bool   // Whether to include cleaned identifiers; requires Run.Unmasked
	Subset   Subset // Which records to list
}

// Run is everything a formatter can render for one processed batch.
type Run struct {
	Meta     report.Meta
	Stats    report.Stats
	Insights report.Insights
	Rows     []report.MaskedRow
	// Unmasked is only populated when the caller opted in; index-aligned with Rows.
	Unmasked []report.UnmaskedRow
}

// NewRun projects an engine result. Unmasked rows are built only when
// withUnmasked is set.
func NewRun(meta report.Meta, result *engine.Result, withUnmasked bool) *Run {
	rows := report.MaskedRows(result.Records)
	stats := report.StatsFrom(result.Counters)
	meta.Stats = &stats
	run := &Run{
		Meta:     meta,
		Stats:    stats,
		Insights: report.BuildInsights(rows, report.DefaultTopN),
		Rows:     rows,
	}
	if withUnmasked {
		run.Unmasked = report.UnmaskedRows(result.Records)
	}
	return run
}

// Clear scrubs any unmasked values held by the run.
func (r *Run) Clear() {
	for i := range r.Unmasked {
		r.Unmasked[i].Clear()
	}
	r.Unmasked = nil
}

// Selected returns the indexes of Rows that belong to subset.
func (r *Run) Selected(subset Subset) []int {
	idx := make([]int, 0, len(r.Rows))
	for i, row := range r.Rows {
		if inSubset(row, subset) {
			idx = append(idx, i)
		}
	}
	return idx
}

func inSubset(row report.MaskedRow, subset Subset) bool {
	switch subset {
	case SubsetValid:
		return row.OverallValid
	case SubsetInvalidAadhaar:
		return !row.AadhaarValid && row.AadhaarReason != string(aadhaar.ReasonMissing)
	case SubsetInvalidMobile:
		return !row.MobileValid && row.MobileReason != string(phone.ReasonMissing)
	default:
		return true
	}
}

// UseUnmasked reports whether unmasked values should be rendered.
func (r *Run) UseUnmasked(options FormatterOptions) bool {
	return options.Unmasked && len(r.Unmasked) == len(r.Rows)
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the run according to the formatter's specific output format
	Format(run *Run, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".txt", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatInfo provides metadata about a formatter
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
	MimeType    string
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders run with the named formatter from the default registry.
func Export(format string, run *Run, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("%w '%s'. Available formats: %s", ErrUnsupportedFormat, format, strings.Join(List(), ", "))
	}
	return formatter.Format(run, options)
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch name {
	case "json":
		info.MimeType = "application/json"
	case "csv":
		info.MimeType = "text/csv"
	case "yaml":
		info.MimeType = "application/x-yaml"
	case "markdown":
		info.MimeType = "text/markdown"
	case "text":
		info.MimeType = "text/plain"
	default:
		info.MimeType = "application/octet-stream"
	}

	return info
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		formats = append(formats, GetFormatInfo(name))
	}
	return formats
}
