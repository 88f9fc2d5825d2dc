// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"time"

	"github.com/google/uuid"

	"pii-quality/internal/logger"
)

// StandardObserver records one structured entry per pipeline stage.
type StandardObserver struct {
	level         ObservabilityLevel
	log           logger.Logger
	runID         string
	DebugObserver *DebugObserver // Reference to debug observer when in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates observability component. A nil logger discards.
func NewStandardObserver(level ObservabilityLevel, log logger.Logger) *StandardObserver {
	if log == nil {
		log = logger.NewNop()
	}
	return &StandardObserver{
		level: level,
		log:   log,
		runID: uuid.NewString(),
	}
}

// RunID identifies every stage entry emitted by this observer.
func (o *StandardObserver) RunID() string {
	return o.runID
}

// Level returns the observability level.
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, source string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		o.LogOperation(StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			Source:     source,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o.level == ObservabilityOff {
		return
	}
	data.RunID = o.runID

	keyvals := []any{
		"component", data.Component,
		"operation", data.Operation,
		"run_id", data.RunID,
		"duration_ms", data.DurationMs,
		"success", data.Success,
	}
	if data.Source != "" {
		keyvals = append(keyvals, "source", data.Source)
	}
	if data.Error != "" {
		keyvals = append(keyvals, "error", data.Error)
	}

	if !data.Success {
		o.log.Warn("stage failed", keyvals...)
		return
	}

	// Metadata only in debug mode
	if o.level == ObservabilityDebug {
		for k, v := range data.Metadata {
			keyvals = append(keyvals, k, v)
		}
	}
	o.log.Debug("stage complete", keyvals...)
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	RunID      string                 `json:"run_id"`
	Source     string                 `json:"source,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
