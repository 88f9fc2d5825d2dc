// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/spf13/afero"

	"pii-quality/internal/report"
)

const (
	// DefaultRoot is the directory runs are saved under.
	DefaultRoot = "runs"

	dirTimeFormat = "20060102_150405"
	defaultLabel  = "run"

	filePermissions = 0o644
	dirPermissions  = 0o755
)

// FSRepository keeps each run in its own directory named
// <yyyymmdd_hhmmss>_<label slug> below root.
type FSRepository struct {
	fs   afero.Fs
	root string
	now  func() time.Time
}

var _ Repository = (*FSRepository)(nil)

// NewFSRepository creates a repository rooted at root on fs. An empty root
// selects DefaultRoot.
func NewFSRepository(fs afero.Fs, root string) *FSRepository {
	if root == "" {
		root = DefaultRoot
	}
	return &FSRepository{fs: fs, root: root, now: time.Now}
}

// Root returns the directory runs are saved under.
func (r *FSRepository) Root() string {
	return r.root
}

// RunName builds the directory name for a run created at t.
func RunName(t time.Time, label string) string {
	s := slug.Make(label)
	if s == "" {
		s = defaultLabel
	}
	return t.Format(dirTimeFormat) + "_" + s
}

// Save writes a new run directory. A missing run id or creation time is
// filled in before meta.json is written.
func (r *FSRepository) Save(ctx context.Context, a *Artifacts) (RunInfo, error) {
	if err := ctx.Err(); err != nil {
		return RunInfo{}, err
	}

	meta := a.Meta
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = r.now()
	}

	name, err := r.reserve(RunName(meta.CreatedAt.Local(), meta.Label))
	if err != nil {
		return RunInfo{}, err
	}
	dir := filepath.Join(r.root, name)

	if err := r.writeRun(dir, &meta, a); err != nil {
		if rmErr := r.fs.RemoveAll(dir); rmErr != nil {
			return RunInfo{}, fmt.Errorf("%w (cleanup of %s failed: %v)", err, dir, rmErr)
		}
		return RunInfo{}, err
	}

	return RunInfo{Name: name, Path: dir, Meta: &meta}, nil
}

// writeRun writes every artifact of a run into dir.
func (r *FSRepository) writeRun(dir string, meta *report.Meta, a *Artifacts) error {
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run meta: %w", err)
	}
	if err := afero.WriteFile(r.fs, filepath.Join(dir, MetaFile), metaJSON, filePermissions); err != nil {
		return fmt.Errorf("write %s: %w", MetaFile, err)
	}
	if err := afero.WriteFile(r.fs, filepath.Join(dir, ReportFile), []byte(a.Report), filePermissions); err != nil {
		return fmt.Errorf("write %s: %w", ReportFile, err)
	}

	for _, t := range []struct {
		file string
		rows []report.MaskedRow
	}{
		{ProcessedFile, a.Processed},
		{ValidFile, a.Valid},
		{InvalidAadhaarFile, a.InvalidAadhaar},
		{InvalidMobileFile, a.InvalidMobile},
	} {
		var buf bytes.Buffer
		if err := report.WriteMaskedCSV(&buf, t.rows); err != nil {
			return fmt.Errorf("encode %s: %w", t.file, err)
		}
		if err := afero.WriteFile(r.fs, filepath.Join(dir, t.file), buf.Bytes(), filePermissions); err != nil {
			return fmt.Errorf("write %s: %w", t.file, err)
		}
	}
	return nil
}

// reserve creates the run directory, suffixing the name when a run with the
// same second and label already exists.
func (r *FSRepository) reserve(name string) (string, error) {
	if err := r.fs.MkdirAll(r.root, dirPermissions); err != nil {
		return "", fmt.Errorf("create runs directory: %w", err)
	}
	candidate := name
	for n := 2; ; n++ {
		exists, err := afero.DirExists(r.fs, filepath.Join(r.root, candidate))
		if err != nil {
			return "", fmt.Errorf("check run directory: %w", err)
		}
		if !exists {
			break
		}
		candidate = fmt.Sprintf("%s-%d", name, n)
	}
	if err := r.fs.Mkdir(filepath.Join(r.root, candidate), dirPermissions); err != nil {
		return "", fmt.Errorf("create run directory: %w", err)
	}
	return candidate, nil
}

// List returns every run directory, newest first. A missing root yields an
// empty list.
func (r *FSRepository) List(ctx context.Context) ([]RunInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	exists, err := afero.DirExists(r.fs, r.root)
	if err != nil {
		return nil, fmt.Errorf("check runs directory: %w", err)
	}
	if !exists {
		return []RunInfo{}, nil
	}

	entries, err := afero.ReadDir(r.fs, r.root)
	if err != nil {
		return nil, fmt.Errorf("read runs directory: %w", err)
	}
	runs := make([]RunInfo, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(r.root, e.Name())
		runs = append(runs, RunInfo{Name: e.Name(), Path: dir, Meta: r.readMeta(dir)})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Name > runs[j].Name })
	return runs, nil
}

// Load reads a saved run. Missing artifact files load as empty values.
func (r *FSRepository) Load(ctx context.Context, name string) (*Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRunName, name)
	}
	dir := filepath.Join(r.root, name)
	exists, err := afero.DirExists(r.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("check run directory: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, name)
	}

	a := &Artifacts{}
	if meta := r.readMeta(dir); meta != nil {
		a.Meta = *meta
	}

	md, err := afero.ReadFile(r.fs, filepath.Join(dir, ReportFile))
	switch {
	case err == nil:
		a.Report = string(md)
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read %s: %w", ReportFile, err)
	}

	for _, t := range []struct {
		file string
		dst  *[]report.MaskedRow
	}{
		{ProcessedFile, &a.Processed},
		{ValidFile, &a.Valid},
		{InvalidAadhaarFile, &a.InvalidAadhaar},
		{InvalidMobileFile, &a.InvalidMobile},
	} {
		rows, err := r.readRows(filepath.Join(dir, t.file))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", t.file, err)
		}
		*t.dst = rows
	}
	return a, nil
}

func (r *FSRepository) readMeta(dir string) *report.Meta {
	data, err := afero.ReadFile(r.fs, filepath.Join(dir, MetaFile))
	if err != nil {
		return nil
	}
	var meta report.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil
	}
	return &meta
}

func (r *FSRepository) readRows(path string) ([]report.MaskedRow, error) {
	f, err := r.fs.Open(path)
	if os.IsNotExist(err) {
		return []report.MaskedRow{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return report.ReadMaskedCSV(f)
}
