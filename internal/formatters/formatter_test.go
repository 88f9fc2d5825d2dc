// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"pii-quality/internal/engine"
	"pii-quality/internal/formatters"
	_ "pii-quality/internal/formatters/csv"
	_ "pii-quality/internal/formatters/json"
	_ "pii-quality/internal/formatters/markdown"
	_ "pii-quality/internal/formatters/text"
	_ "pii-quality/internal/formatters/yaml"
	"pii-quality/internal/report"
	"pii-quality/internal/validators/phone"
)

type plusParser struct{}

func (plusParser) Parse(text, _ string) (phone.ParsedNumber, error) {
	if !strings.HasPrefix(text, "+") {
		return nil, assert.AnError
	}
	return text, nil
}
func (plusParser) IsPossible(phone.ParsedNumber) bool         { return true }
func (plusParser) IsValid(phone.ParsedNumber) bool            { return true }
func (plusParser) LineType(phone.ParsedNumber) phone.LineType { return phone.LineTypeMobile }
func (plusParser) E164(n phone.ParsedNumber) string           { return n.(string) }
func (plusParser) Region(phone.ParsedNumber) string           { return "IN" }

func sampleRun(t *testing.T, unmasked bool) *formatters.Run {
	t.Helper()
	rows := []engine.Row{
		{Index: 0, Aadhaar: "234123412346", Mobile: "+919876543210", Region: "IN"},
		{Index: 1, Aadhaar: "123456789012", Mobile: "98765", Region: "IN"},
		{Index: 2, Aadhaar: "", Mobile: "+919812345678", Region: "IN"},
	}
	res, err := engine.New(plusParser{}, engine.Options{}).Process(context.Background(), rows)
	require.NoError(t, err)

	meta := report.Meta{Label: "test run", AadhaarColumn: "aadhaar", MobileColumn: "mobile", DefaultRegion: "IN",
		DedupMode: "None", MaskDefault: true, CreatedAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}
	return formatters.NewRun(meta, res, unmasked)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "markdown", "text", "yaml"}, formatters.List())

	info := formatters.GetFormatInfo("markdown")
	assert.Equal(t, ".md", info.Extension)
	assert.Equal(t, "text/markdown", info.MimeType)
	assert.Equal(t, formatters.FormatInfo{}, formatters.GetFormatInfo("sarif"))
	assert.Len(t, formatters.GetSupportedFormats(), 5)

	_, err := formatters.Export("sarif", sampleRun(t, false), formatters.FormatterOptions{})
	assert.ErrorIs(t, err, formatters.ErrUnsupportedFormat)
}

func TestNewRun(t *testing.T) {
	run := sampleRun(t, false)
	require.Len(t, run.Rows, 3)
	assert.Nil(t, run.Unmasked)
	require.NotNil(t, run.Meta.Stats)
	assert.Equal(t, 3, run.Stats.Processed)
	assert.Equal(t, []int{0, 2}, run.Selected(formatters.SubsetValid))
	assert.Equal(t, []int{1}, run.Selected(formatters.SubsetInvalidAadhaar))
	assert.Equal(t, []int{1}, run.Selected(formatters.SubsetInvalidMobile))
	assert.Equal(t, []int{0, 1, 2}, run.Selected(formatters.SubsetAll))
}

func TestParseSubset(t *testing.T) {
	s, err := formatters.ParseSubset("")
	require.NoError(t, err)
	assert.Equal(t, formatters.SubsetAll, s)

	s, err = formatters.ParseSubset("Invalid-Aadhaar")
	require.NoError(t, err)
	assert.Equal(t, formatters.SubsetInvalidAadhaar, s)

	_, err = formatters.ParseSubset("some")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	out, err := formatters.Export("json", sampleRun(t, false), formatters.FormatterOptions{Subset: formatters.SubsetValid})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "valid", doc["subset"])
	records := doc["records"].([]any)
	require.Len(t, records, 2)
	first := records[0].(map[string]any)
	assert.Equal(t, "XXXX-XXXX-2346", first["aadhaar_masked"])
	assert.NotContains(t, first, "aadhaar_clean")
	assert.NotContains(t, out, "234123412346")

	stats := doc["stats"].(map[string]any)
	assert.EqualValues(t, 3, stats["total_rows"])
	assert.NotContains(t, doc["meta"], "stats")
}

func TestJSONFormatter_Unmasked(t *testing.T) {
	run := sampleRun(t, true)
	out, err := formatters.Export("json", run, formatters.FormatterOptions{Unmasked: true})
	require.NoError(t, err)
	assert.Contains(t, out, `"aadhaar_clean": "234123412346"`)
	assert.Contains(t, out, `"mobile_e164": "+919876543210"`)

	// Asking for unmasked output without unmasked rows stays masked.
	out, err = formatters.Export("json", sampleRun(t, false), formatters.FormatterOptions{Unmasked: true})
	require.NoError(t, err)
	assert.NotContains(t, out, "234123412346")

	run.Clear()
	assert.Nil(t, run.Unmasked)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := formatters.Export("yaml", sampleRun(t, false), formatters.FormatterOptions{Subset: formatters.SubsetInvalidAadhaar})
	require.NoError(t, err)

	var doc struct {
		Subset  string `yaml:"subset"`
		Records []struct {
			SourceRowIndex int    `yaml:"source_row_index"`
			AadhaarReason  string `yaml:"aadhaar_reason"`
		} `yaml:"records"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "invalid-aadhaar", doc.Subset)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, 1, doc.Records[0].SourceRowIndex)
	assert.Equal(t, "CHECKSUM_FAIL", doc.Records[0].AadhaarReason)
}

func TestCSVFormatter(t *testing.T) {
	out, err := formatters.Export("csv", sampleRun(t, false), formatters.FormatterOptions{})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(report.MaskedHeader, ","), lines[0])
	assert.NotContains(t, out, "234123412346")

	out, err = formatters.Export("csv", sampleRun(t, true), formatters.FormatterOptions{Unmasked: true, Subset: formatters.SubsetValid})
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(report.UnmaskedHeader, ","), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",234123412346,+919876543210"))
}

func TestTextFormatter(t *testing.T) {
	out, err := formatters.Export("text", sampleRun(t, false), formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Contains(t, out, "Summary (test run)")
	assert.Contains(t, out, "Overall valid records:       2")
	assert.Contains(t, out, "CHECKSUM_FAIL")
	assert.NotContains(t, out, "Records (")

	out, err = formatters.Export("text", sampleRun(t, false), formatters.FormatterOptions{NoColor: true, Verbose: true, Subset: formatters.SubsetInvalidMobile})
	require.NoError(t, err)
	assert.Contains(t, out, "Records (invalid-mobile, 1)")
	assert.Contains(t, out, "XXXX-XXXX-9012")
	assert.Contains(t, out, "PARSE_FAIL")
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := formatters.Export("markdown", sampleRun(t, false), formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, "# PII Data Quality & Masking Report")
	assert.Contains(t, out, "**Generated:** 2026-03-04 05:06:07")
	assert.Contains(t, out, "- Label: **test run**")
}
