// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"pii-quality/internal/logger"
)

// DebugObserver prints an indented step tree for --debug runs.
type DebugObserver struct {
	*StandardObserver
	writer io.Writer
	mu     sync.Mutex
	indent int
}

// NewDebugObserver creates a debug observer writing its tree to writer.
func NewDebugObserver(writer io.Writer, log logger.Logger) *DebugObserver {
	d := &DebugObserver{
		StandardObserver: NewStandardObserver(ObservabilityDebug, log),
		writer:           writer,
	}
	d.StandardObserver.DebugObserver = d
	return d
}

// StartStep begins a processing step with indentation
func (d *DebugObserver) StartStep(component, step, source string) func(success bool, details string) {
	start := time.Now()

	d.mu.Lock()
	fmt.Fprintf(d.writer, "%s> %s: %s (%s)\n", d.pad(), component, step, source)
	d.indent++
	d.mu.Unlock()

	return func(success bool, details string) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.indent--
		status := "ok"
		if !success {
			status = "FAILED"
		}
		fmt.Fprintf(d.writer, "%s< %s: %s %s (%dms) %s\n",
			d.pad(), component, step, status, time.Since(start).Milliseconds(), details)
	}
}

// LogDetail logs a detail within the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.writer, "%s  - %s: %s\n", d.pad(), component, detail)
}

// LogMetric logs a metric value
func (d *DebugObserver) LogMetric(component, metric string, value interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.writer, "%s  # %s: %s = %v\n", d.pad(), component, metric, value)
}

func (d *DebugObserver) pad() string {
	if d.indent <= 0 {
		return ""
	}
	return strings.Repeat("  ", d.indent)
}
