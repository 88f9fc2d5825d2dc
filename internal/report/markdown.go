// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pii-quality/internal/validators/aadhaar"
	"pii-quality/internal/validators/phone"
)

//go:embed templates/report.md.tmpl
var reportTemplate string

var markdownTmpl = template.Must(template.New("report.md").
	Option("missingkey=error").
	Funcs(sprig.TxtFuncMap()).
	Funcs(template.FuncMap{
		"num":   FormatCount,
		"codes": codeList,
	}).
	Parse(reportTemplate))

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

func codeList(codes []string) string {
	quoted := make([]string, len(codes))
	for i, c := range codes {
		quoted[i] = "`" + c + "`"
	}
	return strings.Join(quoted, ", ")
}

type markdownData struct {
	Meta           Meta
	Stats          Stats
	Insights       Insights
	Generated      time.Time
	AadhaarReasons []string
	MobileReasons  []string
}

// BuildMarkdown renders the compliance report for a run.
func BuildMarkdown(meta Meta, stats Stats, insights Insights, generated time.Time) (string, error) {
	data := markdownData{
		Meta:      meta,
		Stats:     stats,
		Insights:  insights,
		Generated: generated,
	}
	for _, r := range aadhaar.Precedence {
		data.AadhaarReasons = append(data.AadhaarReasons, string(r))
	}
	for _, r := range phone.Precedence {
		data.MobileReasons = append(data.MobileReasons, string(r))
	}

	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
