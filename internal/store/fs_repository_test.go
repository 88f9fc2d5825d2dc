// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-quality/internal/formatters"
	"pii-quality/internal/report"
)

func sampleRun() *formatters.Run {
	rows := []report.MaskedRow{
		{SourceRowIndex: 0, AadhaarMasked: "XXXX-XXXX-2346", AadhaarValid: true, AadhaarCategory: "VALID",
			MobileMasked: "+91-XXX-XXX-3210", MobileValid: true, MobileCategory: "VALID", MobileRegion: "IN", Country: "IN", OverallValid: true},
		{SourceRowIndex: 1, AadhaarMasked: "XXXX-XXXX-9012", AadhaarReason: "CHECKSUM_FAIL", AadhaarCategory: "CHECKSUM_FAIL",
			MobileReason: "MISSING", MobileCategory: "MISSING", Country: "IN"},
		{SourceRowIndex: 2, AadhaarReason: "MISSING", AadhaarCategory: "MISSING",
			MobileReason: "NOT_VALID", MobileCategory: "NOT_VALID", Country: "IN"},
	}
	return &formatters.Run{
		Meta: report.Meta{Label: "March Intake", AadhaarColumn: "aadhaar", MobileColumn: "mobile",
			DefaultRegion: "IN", DedupMode: "None", MaskDefault: true,
			CreatedAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)},
		Rows: rows,
	}
}

func TestRunName(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "20260304_050607_march-intake", RunName(ts, "March Intake"))
	assert.Equal(t, "20260304_050607_run", RunName(ts, ""))
	assert.Equal(t, "20260304_050607_run", RunName(ts, "   "))
}

func TestArtifactsFrom(t *testing.T) {
	a := ArtifactsFrom(sampleRun(), "# report")
	assert.Len(t, a.Processed, 3)
	assert.Len(t, a.Valid, 1)
	require.Len(t, a.InvalidAadhaar, 1)
	assert.Equal(t, 1, a.InvalidAadhaar[0].SourceRowIndex)
	require.Len(t, a.InvalidMobile, 1)
	assert.Equal(t, 2, a.InvalidMobile[0].SourceRowIndex)
}

func TestFSRepository_SaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewFSRepository(fs, "")
	ctx := context.Background()

	info, err := repo.Save(ctx, ArtifactsFrom(sampleRun(), "# report\n"))
	require.NoError(t, err)
	assert.Equal(t, "20260304_050607_march-intake", info.Name)
	assert.Equal(t, filepath.Join(DefaultRoot, info.Name), info.Path)
	require.NotNil(t, info.Meta)
	assert.NotEmpty(t, info.Meta.RunID)

	for _, f := range []string{MetaFile, ReportFile, ProcessedFile, ValidFile, InvalidAadhaarFile, InvalidMobileFile} {
		ok, err := afero.Exists(fs, filepath.Join(info.Path, f))
		require.NoError(t, err)
		assert.True(t, ok, f)
	}

	loaded, err := repo.Load(ctx, info.Name)
	require.NoError(t, err)
	assert.Equal(t, "March Intake", loaded.Meta.Label)
	assert.Equal(t, info.Meta.RunID, loaded.Meta.RunID)
	assert.Equal(t, "# report\n", loaded.Report)
	assert.Equal(t, sampleRun().Rows, loaded.Processed)
	assert.Len(t, loaded.Valid, 1)
	assert.Len(t, loaded.InvalidAadhaar, 1)
	assert.Len(t, loaded.InvalidMobile, 1)
}

func TestFSRepository_SavedFilesHoldNoUnmaskedValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewFSRepository(fs, "runs")
	info, err := repo.Save(context.Background(), ArtifactsFrom(sampleRun(), ""))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, filepath.Join(info.Path, ProcessedFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "aadhaar_clean")
	assert.NotContains(t, string(data), "mobile_e164")
}

func TestFSRepository_SameSecondSameLabel(t *testing.T) {
	repo := NewFSRepository(afero.NewMemMapFs(), "runs")
	ctx := context.Background()

	first, err := repo.Save(ctx, ArtifactsFrom(sampleRun(), ""))
	require.NoError(t, err)
	second, err := repo.Save(ctx, ArtifactsFrom(sampleRun(), ""))
	require.NoError(t, err)
	assert.Equal(t, first.Name+"-2", second.Name)
}

// failingFs refuses to open one file name for writing.
type failingFs struct {
	afero.Fs
	failOn string
}

func (f failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if filepath.Base(name) == f.failOn && flag&os.O_CREATE != 0 {
		return nil, errors.New("disk full")
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestFSRepository_SaveFailureLeavesNoRun(t *testing.T) {
	for _, file := range []string{MetaFile, ReportFile, ValidFile, InvalidMobileFile} {
		t.Run(file, func(t *testing.T) {
			mem := afero.NewMemMapFs()
			repo := NewFSRepository(failingFs{Fs: mem, failOn: file}, "runs")
			ctx := context.Background()

			_, err := repo.Save(ctx, ArtifactsFrom(sampleRun(), "# report"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), file)

			entries, err := afero.ReadDir(mem, "runs")
			require.NoError(t, err)
			assert.Empty(t, entries)

			runs, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, runs)
		})
	}
}

func TestFSRepository_List(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewFSRepository(fs, "runs")
	ctx := context.Background()

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	for i, label := range []string{"b", "a", "c"} {
		run := sampleRun()
		run.Meta.Label = label
		run.Meta.CreatedAt = time.Date(2026, 1, i+1, 0, 0, 0, 0, time.Local)
		_, err := repo.Save(ctx, ArtifactsFrom(run, ""))
		require.NoError(t, err)
	}
	// A directory without meta.json and a stray file.
	require.NoError(t, fs.MkdirAll("runs/20250101_000000_manual", 0o755))
	require.NoError(t, afero.WriteFile(fs, "runs/notes.txt", []byte("x"), 0o644))

	runs, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 4)
	assert.Equal(t, "20260103_000000_c", runs[0].Name)
	assert.Equal(t, "20260102_000000_a", runs[1].Name)
	assert.Equal(t, "20260101_000000_b", runs[2].Name)
	assert.Equal(t, "20250101_000000_manual", runs[3].Name)
	assert.Nil(t, runs[3].Meta)
	require.NotNil(t, runs[0].Meta)
	assert.Equal(t, "c", runs[0].Meta.Label)
}

func TestFSRepository_LoadToleratesMissingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("runs/20250101_000000_partial", 0o755))
	require.NoError(t, afero.WriteFile(fs, "runs/20250101_000000_partial/meta.json", []byte("{not json"), 0o644))

	a, err := NewFSRepository(fs, "runs").Load(context.Background(), "20250101_000000_partial")
	require.NoError(t, err)
	assert.Equal(t, report.Meta{}, a.Meta)
	assert.Empty(t, a.Report)
	assert.Empty(t, a.Processed)
	assert.Empty(t, a.InvalidMobile)
}

func TestFSRepository_LoadErrors(t *testing.T) {
	repo := NewFSRepository(afero.NewMemMapFs(), "runs")
	ctx := context.Background()

	_, err := repo.Load(ctx, "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)

	for _, name := range []string{"", "..", "../etc", `a\b`} {
		_, err = repo.Load(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidRunName, name)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = repo.List(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
