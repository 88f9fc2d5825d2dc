// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"strings"

	"pii-quality/internal/normalize"
	"pii-quality/internal/observability"
	"pii-quality/internal/parallel"
	"pii-quality/internal/validators/aadhaar"
	"pii-quality/internal/validators/phone"
)

// Options configure an Engine.
type Options struct {
	// DefaultRegion applies to rows without a region of their own.
	DefaultRegion string
	Dedup         DedupMode
	// Workers bounds row-level concurrency; zero selects the CPU count.
	Workers int
	// Progress, when set, is called once per validated row.
	Progress func(done, total int)
}

// Engine turns rows into decided records.
type Engine struct {
	aadhaar *aadhaar.Validator
	mobile  *phone.Validator
	opts    Options

	processor *parallel.Processor
	observer  *observability.StandardObserver
}

// New creates an engine. A nil parser selects libphonenumber.
func New(parser phone.Parser, opts Options) *Engine {
	mobile := phone.NewValidator(parser, opts.DefaultRegion)
	opts.DefaultRegion = mobile.DefaultRegion()
	if opts.Dedup == "" {
		opts.Dedup = DedupNone
	}
	return &Engine{
		aadhaar:   aadhaar.NewValidator(),
		mobile:    mobile,
		opts:      opts,
		processor: parallel.NewProcessor(opts.Workers, nil),
	}
}

// SetObserver sets the observability component
func (e *Engine) SetObserver(observer *observability.StandardObserver) {
	e.observer = observer
	e.mobile.SetObserver(observer)
	e.processor = parallel.NewProcessor(e.opts.Workers, observer)
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Process validates rows, applies the overall-validity rule and dedups.
// Only a cancelled context produces an error.
func (e *Engine) Process(ctx context.Context, rows []Row) (*Result, error) {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("engine", "process", "batch")
	}

	kept := make([]Row, 0, len(rows))
	for _, row := range rows {
		if normalize.Text(row.Aadhaar) == "" && normalize.Text(row.Mobile) == "" {
			continue
		}
		kept = append(kept, row)
	}
	empty := len(rows) - len(kept)

	records, _, err := parallel.Map(ctx, e.processor, kept, func(_ context.Context, _ int, row Row) (RowRecord, error) {
		return e.decide(row), nil
	}, e.opts.Progress)
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
		}
		return nil, fmt.Errorf("validate rows: %w", err)
	}

	records, dups := dedup(records, e.opts.Dedup)
	result := &Result{
		Records:  records,
		Counters: count(records, len(rows), empty, dups),
		Dedup:    e.opts.Dedup,
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"total_rows":         result.Counters.TotalRows,
			"empty_rows_dropped": empty,
			"duplicates_dropped": dups,
			"overall_valid":      result.Counters.OverallValid,
		})
	}
	return result, nil
}

// Decide validates a single row without filtering or dedup.
func (e *Engine) Decide(row Row) RowRecord {
	return e.decide(row)
}

func (e *Engine) decide(row Row) RowRecord {
	region := strings.ToUpper(normalize.Text(row.Region))
	if region == "" {
		region = e.opts.DefaultRegion
	}

	rec := RowRecord{
		Index:      row.Index,
		RawAadhaar: row.Aadhaar,
		RawMobile:  row.Mobile,
		Region:     region,
		Aadhaar:    e.aadhaar.Validate(row.Aadhaar),
		Mobile:     e.mobile.Validate(row.Mobile, region),
	}
	rec.OverallValid = overallValid(&rec)
	return rec
}
