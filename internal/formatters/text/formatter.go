// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"pii-quality/internal/formatters"
	"pii-quality/internal/report"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable summary with colors; --verbose lists records"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(run *formatters.Run, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder
	f.appendSummary(&b, run, options)
	f.appendInsights(&b, run, options)

	if options.Verbose {
		f.appendRecords(&b, run, options)
	}
	return b.String(), nil
}

func (f *Formatter) paint(name string, options formatters.FormatterOptions, format string, args ...interface{}) string {
	if options.NoColor {
		return fmt.Sprintf(format, args...)
	}
	return f.colors[name].Sprintf(format, args...)
}

func (f *Formatter) appendSummary(b *strings.Builder, run *formatters.Run, options formatters.FormatterOptions) {
	s := run.Stats
	title := "Summary"
	if run.Meta.Label != "" {
		title += " (" + run.Meta.Label + ")"
	}
	b.WriteString(f.paint("white", options, "%s\n", title))

	line := func(label string, n int, tone string) {
		value := report.FormatCount(n)
		if tone != "" && n > 0 {
			value = f.paint(tone, options, "%s", value)
		}
		fmt.Fprintf(b, "  %-28s %s\n", label+":", value)
	}
	line("Rows in file", s.TotalRows, "")
	line("Processed after cleaning", s.Processed, "")
	line("Distinct after dedup", s.DistinctAfter, "")
	line("Aadhaar valid", s.AadhaarValid, "green")
	line("Aadhaar invalid", s.AadhaarInvalid, "red")
	line("Mobile valid", s.MobileValid, "green")
	line("Mobile invalid", s.MobileInvalid, "red")
	line("Overall valid records", s.OverallValid, "green")
	fmt.Fprintf(b, "  Dropped rows empty for both fields: %s | Duplicates dropped: %s\n",
		report.FormatCount(s.EmptyRowsDropped), report.FormatCount(s.DuplicatesDropped))
}

func (f *Formatter) appendInsights(b *strings.Builder, run *formatters.Run, options formatters.FormatterOptions) {
	b.WriteString("\n")
	b.WriteString(f.paint("white", options, "Top invalid reasons (Aadhaar)\n"))
	if len(run.Insights.AadhaarReasons) == 0 {
		b.WriteString("  No invalid Aadhaar.\n")
	}
	for _, c := range run.Insights.AadhaarReasons {
		fmt.Fprintf(b, "  %-16s %s\n", c.Key, report.FormatCount(c.Count))
	}

	b.WriteString(f.paint("white", options, "Top regions (Mobile)\n"))
	if len(run.Insights.MobileRegions) == 0 {
		b.WriteString("  No parsed mobile regions.\n")
	}
	for _, c := range run.Insights.MobileRegions {
		fmt.Fprintf(b, "  %-16s %s\n", c.Key, report.FormatCount(c.Count))
	}
}

func (f *Formatter) appendRecords(b *strings.Builder, run *formatters.Run, options formatters.FormatterOptions) {
	selected := run.Selected(options.Subset)
	unmasked := run.UseUnmasked(options)

	b.WriteString("\n")
	subset := options.Subset
	if subset == "" {
		subset = formatters.SubsetAll
	}
	b.WriteString(f.paint("white", options, "Records (%s, %d)\n", subset, len(selected)))
	if len(selected) == 0 {
		b.WriteString("  No records.\n")
		return
	}

	header := fmt.Sprintf("  %-6s %-16s %-18s %-16s %-16s %-8s %s\n",
		"ROW", "AADHAAR", "MOBILE", "AADHAAR_CAT", "MOBILE_CAT", "COUNTRY", "OVERALL")
	b.WriteString(f.paint("white", options, "%s", header))
	b.WriteString("  " + strings.Repeat("-", len(header)-3) + "\n")

	for _, i := range selected {
		row := run.Rows[i]
		aadhaarText, mobileText := row.AadhaarMasked, row.MobileMasked
		if unmasked {
			aadhaarText = run.Unmasked[i].AadhaarClean.Reveal()
			mobileText = run.Unmasked[i].MobileE164.Reveal()
		}

		overall := f.paint("red", options, "%s", "invalid")
		if row.OverallValid {
			overall = f.paint("green", options, "%s", "valid")
		}
		fmt.Fprintf(b, "  %-6d %-16s %-18s %-16s %-16s %-8s %s\n",
			row.SourceRowIndex, dash(aadhaarText), dash(mobileText),
			row.AadhaarCategory, row.MobileCategory, dash(row.Country), overall)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
