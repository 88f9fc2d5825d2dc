// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-quality/internal/engine"
	"pii-quality/internal/quality"
	"pii-quality/internal/validators/aadhaar"
	"pii-quality/internal/validators/phone"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Records: []engine.RowRecord{
			{Aadhaar: aadhaar.Outcome{Cleaned: "234123412346", Valid: true, Quality: quality.Flags{SequentialDigits: true}}, Mobile: phone.Outcome{Reason: phone.ReasonMissing}, OverallValid: true},
			{Aadhaar: aadhaar.Outcome{Cleaned: "123456789012", Reason: aadhaar.ReasonChecksum}, Mobile: phone.Outcome{Input: "x", Reason: phone.ReasonParseFail}},
			{Aadhaar: aadhaar.Outcome{Reason: aadhaar.ReasonMissing}, Mobile: phone.Outcome{Input: "+1", Reason: phone.ReasonNotValid}},
		},
		Counters: engine.Counters{
			TotalRows: 4, ProcessedRows: 3, DistinctAfterDedup: 3, EmptyRowsDropped: 1,
			AadhaarValid: 1, AadhaarInvalid: 1, MobileValid: 0, MobileInvalid: 2, OverallValid: 1,
		},
	}
}

func TestObserve(t *testing.T) {
	m := New()
	m.Observe(sampleResult())

	assert.Equal(t, 4.0, testutil.ToFloat64(m.BatchRows.WithLabelValues("total")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchRows.WithLabelValues("empty_dropped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldOutcomes.WithLabelValues("aadhaar", "missing")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FieldOutcomes.WithLabelValues("mobile", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReasonRows.WithLabelValues("aadhaar", "CHECKSUM_FAIL")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ReasonRows.WithLabelValues("aadhaar", "NON_NUMERIC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReasonRows.WithLabelValues("mobile", "PARSE_FAIL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OverallValid))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QualityFlagged))

	// Every reason of both fields is exported, zero or not.
	assert.Equal(t, len(aadhaar.Precedence)+len(phone.Precedence), testutil.CollectAndCount(m.ReasonRows))
}

func TestObserve_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe(sampleResult()) })
	assert.NotPanics(t, func() { New().Observe(nil) })
}

func TestWriteToTextfile(t *testing.T) {
	m := New()
	m.Observe(sampleResult())

	path := filepath.Join(t.TempDir(), "piiq.prom")
	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `piiq_batch_rows{stage="processed"} 3`)
	assert.Contains(t, text, `piiq_field_outcomes{field="aadhaar",result="valid"} 1`)
	assert.True(t, strings.Contains(text, "# TYPE piiq_reason_rows gauge"))

	err = m.WriteToTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
