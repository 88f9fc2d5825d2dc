// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package store persists masked run artifacts on a filesystem.
package store

import (
	"context"
	"errors"

	"pii-quality/internal/formatters"
	"pii-quality/internal/report"
)

var (
	// ErrRunNotFound is returned by Load for an unknown run name.
	ErrRunNotFound = errors.New("run not found")
	// ErrInvalidRunName is returned for names that are not a single path element.
	ErrInvalidRunName = errors.New("invalid run name")
)

// Artifact file names inside a run directory.
const (
	MetaFile           = "meta.json"
	ReportFile         = "report.md"
	ProcessedFile      = "processed.csv"
	ValidFile          = "valid.csv"
	InvalidAadhaarFile = "invalid_aadhaar.csv"
	InvalidMobileFile  = "invalid_mobile.csv"
)

// Artifacts is everything a saved run holds. Rows are always masked.
type Artifacts struct {
	Meta           report.Meta
	Report         string
	Processed      []report.MaskedRow
	Valid          []report.MaskedRow
	InvalidAadhaar []report.MaskedRow
	InvalidMobile  []report.MaskedRow
}

// ArtifactsFrom splits a run into its persisted subsets. Unmasked values held
// by the run are never copied.
func ArtifactsFrom(run *formatters.Run, reportMD string) *Artifacts {
	pick := func(subset formatters.Subset) []report.MaskedRow {
		idx := run.Selected(subset)
		rows := make([]report.MaskedRow, len(idx))
		for i, j := range idx {
			rows[i] = run.Rows[j]
		}
		return rows
	}
	return &Artifacts{
		Meta:           run.Meta,
		Report:         reportMD,
		Processed:      pick(formatters.SubsetAll),
		Valid:          pick(formatters.SubsetValid),
		InvalidAadhaar: pick(formatters.SubsetInvalidAadhaar),
		InvalidMobile:  pick(formatters.SubsetInvalidMobile),
	}
}

// RunInfo identifies a saved run. Meta is nil when meta.json is missing or
// unreadable.
type RunInfo struct {
	Name string       `json:"name" yaml:"name"`
	Path string       `json:"path" yaml:"path"`
	Meta *report.Meta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Repository stores and retrieves runs.
type Repository interface {
	Save(ctx context.Context, artifacts *Artifacts) (RunInfo, error)
	// List returns saved runs, newest first.
	List(ctx context.Context) ([]RunInfo, error)
	Load(ctx context.Context, name string) (*Artifacts, error)
}
