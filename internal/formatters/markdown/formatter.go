// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"time"

	"pii-quality/internal/formatters"
	"pii-quality/internal/report"
)

// Formatter renders the compliance report
type Formatter struct {
	now func() time.Time
}

// NewFormatter creates a new Markdown formatter
func NewFormatter() *Formatter {
	return &Formatter{now: time.Now}
}

func (f *Formatter) Name() string {
	return "markdown"
}

func (f *Formatter) Description() string {
	return "Markdown compliance report with summary, insights and handling notes"
}

func (f *Formatter) FileExtension() string {
	return ".md"
}

// Format ignores the subset and unmasked options; the report never lists
// records.
func (f *Formatter) Format(run *formatters.Run, _ formatters.FormatterOptions) (string, error) {
	generated := run.Meta.CreatedAt
	if generated.IsZero() {
		generated = f.now()
	}
	return report.BuildMarkdown(run.Meta, run.Stats, run.Insights, generated)
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
