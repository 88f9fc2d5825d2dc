// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-quality/internal/logger"
)

func TestStartTiming_LogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf})
	o := NewStandardObserver(ObservabilityDebug, log)

	done := o.StartTiming("engine", "process", "batch")
	done(true, map[string]interface{}{"rows": 4})

	out := buf.String()
	assert.Contains(t, out, "stage complete")
	assert.Contains(t, out, "component=engine")
	assert.Contains(t, out, "rows=4")
	assert.Contains(t, out, o.RunID())
}

func TestStartTiming_Off(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf})
	o := NewStandardObserver(ObservabilityOff, log)
	o.StartTiming("engine", "process", "batch")(false, nil)
	assert.Empty(t, buf.String())
}

func TestStartTiming_FailureIsWarning(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.WarnLevel, Output: &buf})
	o := NewStandardObserver(ObservabilityMetrics, log)
	o.StartTiming("ingest", "read", "data.csv")(false, nil)
	assert.Contains(t, buf.String(), "stage failed")
	assert.Contains(t, buf.String(), "source=data.csv")
}

func TestDebugObserver_StepTree(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(&buf, logger.NewNop())
	require.Same(t, d, d.StandardObserver.DebugObserver)

	outer := d.StartStep("pipeline", "run", "data.csv")
	inner := d.StartStep("ingest", "read", "data.csv")
	d.LogDetail("ingest", "encoding utf-8")
	d.LogMetric("ingest", "rows", 12)
	inner(true, "")
	outer(false, "boom")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "> pipeline: run"))
	assert.True(t, strings.HasPrefix(lines[1], "  > ingest: read"))
	assert.Contains(t, lines[2], "encoding utf-8")
	assert.Contains(t, lines[3], "rows = 12")
	assert.True(t, strings.HasPrefix(lines[4], "  < ingest: read ok"))
	assert.True(t, strings.HasPrefix(lines[5], "< pipeline: run FAILED"))
	assert.Contains(t, lines[5], "boom")
}
