// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"pii-quality/internal/formatters"
	"pii-quality/internal/report"
)

// Document is the top-level structure for JSON/YAML output
type Document struct {
	Meta     report.Meta     `json:"meta" yaml:"meta"`
	Stats    report.Stats    `json:"stats" yaml:"stats"`
	Insights report.Insights `json:"insights" yaml:"insights"`
	Subset   string          `json:"subset" yaml:"subset"`
	Records  []Record        `json:"records" yaml:"records"`
}

// Record is one listed row. Clean values are only set for unmasked output.
type Record struct {
	report.MaskedRow `yaml:",inline"`
	AadhaarClean     string `json:"aadhaar_clean,omitempty" yaml:"aadhaar_clean,omitempty"`
	MobileE164       string `json:"mobile_e164,omitempty" yaml:"mobile_e164,omitempty"`
}

// ConvertRun builds the JSON/YAML document for the selected subset.
func ConvertRun(run *formatters.Run, options formatters.FormatterOptions) Document {
	subset := options.Subset
	if subset == "" {
		subset = formatters.SubsetAll
	}

	meta := run.Meta
	meta.Stats = nil // reported once, at the top level

	doc := Document{
		Meta:     meta,
		Stats:    run.Stats,
		Insights: run.Insights,
		Subset:   string(subset),
		Records:  []Record{},
	}

	unmasked := run.UseUnmasked(options)
	for _, i := range run.Selected(subset) {
		rec := Record{MaskedRow: run.Rows[i]}
		if unmasked {
			rec.AadhaarClean = run.Unmasked[i].AadhaarClean.Reveal()
			rec.MobileE164 = run.Unmasked[i].MobileE164.Reveal()
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc
}
