// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"time"

	"pii-quality/internal/engine"
)

// Stats is the persisted summary of a batch.
type Stats struct {
	TotalRows         int `json:"total_rows" yaml:"total_rows"`
	Processed         int `json:"processed" yaml:"processed"`
	DistinctAfter     int `json:"distinct_after" yaml:"distinct_after"`
	AadhaarValid      int `json:"aadhaar_valid" yaml:"aadhaar_valid"`
	AadhaarInvalid    int `json:"aadhaar_invalid" yaml:"aadhaar_invalid"`
	MobileValid       int `json:"mobile_valid" yaml:"mobile_valid"`
	MobileInvalid     int `json:"mobile_invalid" yaml:"mobile_invalid"`
	OverallValid      int `json:"overall_valid" yaml:"overall_valid"`
	EmptyRowsDropped  int `json:"empty_rows_dropped" yaml:"empty_rows_dropped"`
	DuplicatesDropped int `json:"duplicates_dropped" yaml:"duplicates_dropped"`
}

// StatsFrom converts engine counters.
func StatsFrom(c engine.Counters) Stats {
	return Stats{
		TotalRows:         c.TotalRows,
		Processed:         c.ProcessedRows,
		DistinctAfter:     c.DistinctAfterDedup,
		AadhaarValid:      c.AadhaarValid,
		AadhaarInvalid:    c.AadhaarInvalid,
		MobileValid:       c.MobileValid,
		MobileInvalid:     c.MobileInvalid,
		OverallValid:      c.OverallValid,
		EmptyRowsDropped:  c.EmptyRowsDropped,
		DuplicatesDropped: c.DuplicatesDropped,
	}
}

// Meta describes how a run was produced.
type Meta struct {
	RunID         string    `json:"run_id" yaml:"run_id"`
	Label         string    `json:"label" yaml:"label"`
	SourceFile    string    `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	Encoding      string    `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Sheet         string    `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	AadhaarColumn string    `json:"aadhaar_column" yaml:"aadhaar_column"`
	MobileColumn  string    `json:"mobile_column" yaml:"mobile_column"`
	CountryColumn string    `json:"country_column" yaml:"country_column"`
	DefaultRegion string    `json:"default_region" yaml:"default_region"`
	DedupMode     string    `json:"dedup_mode" yaml:"dedup_mode"`
	MaskDefault   bool      `json:"mask_default" yaml:"mask_default"`
	ToolVersion   string    `json:"tool_version,omitempty" yaml:"tool_version,omitempty"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	Stats         *Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
}
