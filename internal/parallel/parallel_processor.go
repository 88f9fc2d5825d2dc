// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"pii-quality/internal/observability"
)

// Limits bounds the number of workers a Processor may run.
type Limits struct {
	MinWorkers int `json:"min_workers"`
	MaxWorkers int `json:"max_workers"`
}

// DefaultLimits returns sensible default limits
func DefaultLimits() Limits {
	return Limits{
		MinWorkers: 1,
		MaxWorkers: 8, // Cap at 8 workers to avoid resource exhaustion
	}
}

// Workers resolves a requested worker count. Zero or negative selects the
// CPU count; the result always lies within the limits.
func (l Limits) Workers(requested int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if l.MaxWorkers > 0 && workers > l.MaxWorkers {
		workers = l.MaxWorkers
	}
	if workers < l.MinWorkers {
		workers = l.MinWorkers
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalItems    int           `json:"total_items"`
	WorkerCount   int           `json:"worker_count"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// ProgressCallback is called each time an item completes.
type ProgressCallback func(completed, total int)

// Processor runs a function over a slice with a bounded number of workers.
type Processor struct {
	workers  int
	observer *observability.StandardObserver
}

// NewProcessor creates a processor with the given worker count, resolved
// against DefaultLimits.
func NewProcessor(workers int, observer *observability.StandardObserver) *Processor {
	return &Processor{
		workers:  DefaultLimits().Workers(workers),
		observer: observer,
	}
}

// Workers returns the resolved worker count.
func (p *Processor) Workers() int {
	return p.workers
}

// Map applies fn to every item and returns the results in input order. The
// first error cancels the remaining work and is returned.
func Map[T, R any](ctx context.Context, p *Processor, items []T, fn func(ctx context.Context, i int, item T) (R, error), progress ProgressCallback) ([]R, *ProcessingStats, error) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if p.observer != nil {
		finishTiming = p.observer.StartTiming("parallel_processor", "map", "batch")
	}

	results := make([]R, len(items))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, i, items[i])
			if err != nil {
				return err
			}
			results[i] = r
			if progress != nil {
				progress(int(completed.Add(1)), len(items))
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	stats := &ProcessingStats{
		TotalItems:    len(items),
		WorkerCount:   p.workers,
		TotalDuration: time.Since(start),
	}

	if finishTiming != nil {
		finishTiming(err == nil, map[string]interface{}{
			"total_items":  len(items),
			"worker_count": p.workers,
			"duration_ms":  stats.TotalDuration.Milliseconds(),
		})
	}

	if err != nil {
		return nil, stats, err
	}
	return results, stats, nil
}
