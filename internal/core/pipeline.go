// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"pii-quality/internal/engine"
	"pii-quality/internal/formatters"
	"pii-quality/internal/ingest"
	"pii-quality/internal/logger"
	"pii-quality/internal/observability"
	"pii-quality/internal/report"
	"pii-quality/internal/store"
	"pii-quality/internal/validators/phone"
	"pii-quality/internal/version"
)

// RunConfig holds configuration for one validation run.
type RunConfig struct {
	// FS is the filesystem the input is read from; nil selects the OS.
	FS       afero.Fs
	FilePath string
	Encoding string
	Sheet    string

	// Columns names the input columns. Unset Aadhaar/mobile columns are
	// guessed when GuessColumns is set.
	Columns      ingest.Mapping
	GuessColumns bool

	DefaultRegion string
	Dedup         engine.DedupMode
	Workers       int
	Label         string

	// Unmasked keeps cleaned values in memory for output. Saved runs are
	// always masked.
	Unmasked bool

	Parser   phone.Parser
	Observer *observability.StandardObserver
	Logger   logger.Logger
	Progress func(done, total int)
	Now      func() time.Time
}

// RunResult holds everything a run produced.
type RunResult struct {
	Result  *engine.Result
	Mapping ingest.Mapping
	Table   *ingest.Table
	Meta    report.Meta
	Run     *formatters.Run
}

// Run performs the pipeline shared by the CLI: open, map columns, validate,
// summarize.
func Run(ctx context.Context, cfg RunConfig) (*RunResult, error) {
	fs := cfg.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	observer := cfg.Observer
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityMetrics, log)
	}

	table, err := openTable(fs, cfg, observer)
	if err != nil {
		return nil, err
	}
	if requested, err := ingest.CanonicalEncoding(cfg.Encoding); err == nil && table.Encoding != "" && table.Encoding != requested {
		log.Warn("input is not valid UTF-8, decoded as fallback encoding",
			"file", cfg.FilePath, "requested", requested, "used", table.Encoding)
	}

	mapping, err := ingest.ResolveMapping(table, cfg.Columns, cfg.GuessColumns)
	if err != nil {
		return nil, err
	}
	if mapping != cfg.Columns {
		log.Info("resolved columns", "aadhaar", mapping.Aadhaar, "mobile", mapping.Mobile, "region", mapping.Region)
	}

	eng := engine.New(cfg.Parser, engine.Options{
		DefaultRegion: cfg.DefaultRegion,
		Dedup:         cfg.Dedup,
		Workers:       cfg.Workers,
		Progress:      cfg.Progress,
	})
	eng.SetObserver(observer)

	rows := ingest.Rows(table, mapping, eng.Options().DefaultRegion)
	result, err := eng.Process(ctx, rows)
	if err != nil {
		return nil, err
	}
	if !result.Counters.Reconciles() {
		log.Error("counters do not reconcile", "counters", fmt.Sprintf("%+v", result.Counters))
	}

	runID := observer.RunID()
	if runID == "" {
		runID = uuid.NewString()
	}
	label := cfg.Label
	if label == "" {
		label = "run"
	}
	meta := report.Meta{
		RunID:         runID,
		Label:         label,
		SourceFile:    filepath.Base(cfg.FilePath),
		Encoding:      table.Encoding,
		Sheet:         table.Sheet,
		AadhaarColumn: mapping.Aadhaar,
		MobileColumn:  mapping.Mobile,
		CountryColumn: mapping.Region,
		DefaultRegion: eng.Options().DefaultRegion,
		DedupMode:     eng.Options().Dedup.String(),
		MaskDefault:   !cfg.Unmasked,
		ToolVersion:   version.Tool(),
		CreatedAt:     now(),
	}

	log.Debug("run complete", "rows", result.Counters.TotalRows, "distinct", result.Counters.DistinctAfterDedup,
		"overall_valid", result.Counters.OverallValid)

	return &RunResult{
		Result:  result,
		Mapping: mapping,
		Table:   table,
		Meta:    meta,
		Run:     formatters.NewRun(meta, result, cfg.Unmasked),
	}, nil
}

func openTable(fs afero.Fs, cfg RunConfig, observer *observability.StandardObserver) (*ingest.Table, error) {
	var finishStep func(bool, string)
	if observer.DebugObserver != nil {
		finishStep = observer.DebugObserver.StartStep("ingest", "open", cfg.FilePath)
	}
	finishTiming := observer.StartTiming("ingest", "open", cfg.FilePath)

	table, err := ingest.Open(fs, cfg.FilePath, ingest.Options{Encoding: cfg.Encoding, Sheet: cfg.Sheet})
	if err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		if finishStep != nil {
			finishStep(false, err.Error())
		}
		return nil, err
	}

	finishTiming(true, map[string]interface{}{"rows": table.Len(), "columns": len(table.Columns)})
	if finishStep != nil {
		finishStep(true, fmt.Sprintf("%d rows, %d columns", table.Len(), len(table.Columns)))
	}
	return table, nil
}

// Report renders the compliance report for a run.
func Report(rr *RunResult) (string, error) {
	return report.BuildMarkdown(rr.Run.Meta, rr.Run.Stats, rr.Run.Insights, rr.Meta.CreatedAt)
}

// Save persists the masked artifacts of a run.
func Save(ctx context.Context, repo store.Repository, rr *RunResult) (store.RunInfo, error) {
	md, err := Report(rr)
	if err != nil {
		return store.RunInfo{}, fmt.Errorf("render report: %w", err)
	}
	info, err := repo.Save(ctx, store.ArtifactsFrom(rr.Run, md))
	if err != nil {
		return store.RunInfo{}, fmt.Errorf("save run: %w", err)
	}
	return info, nil
}
