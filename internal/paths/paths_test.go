// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGetConfigDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	if got := GetConfigDir(); got != filepath.Clean(dir) {
		t.Errorf("expected %q, got %q", dir, got)
	}
	if got := GetConfigFile(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("unexpected config file %q", got)
	}
}

func TestGetConfigDir_Default(t *testing.T) {
	t.Setenv(ConfigDirEnv, "")
	if got := filepath.Base(GetConfigDir()); got != "piiq" && got != ".piiq" {
		t.Errorf("expected piiq directory, got %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := NormalizePath("~/runs/../runs"); got != filepath.Join(home, "runs") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got := NormalizePath(""); got != "" {
		t.Errorf("expected empty path, got %q", got)
	}
	if got := NormalizePath("a//b/"); got != filepath.Join("a", "b") {
		t.Errorf("unexpected clean %q", got)
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath(""); err != nil {
		t.Errorf("empty path should be valid: %v", err)
	}
	if err := ValidatePath("runs/2025"); err != nil {
		t.Errorf("expected valid path: %v", err)
	}

	err := ValidatePath("runs\x00evil")
	var pathErr *PathValidationError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected PathValidationError, got %v", err)
	}
	if pathErr.Reason != "contains null byte" {
		t.Errorf("unexpected reason %q", pathErr.Reason)
	}
}

func TestResolvePath(t *testing.T) {
	got, err := ResolvePath("runs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}
