// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "piiq.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	// With no config file, should return defaults without error
	cfg := LoadConfigOrDefault("")
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format == "" {
		t.Error("expected default format to be set")
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	// A path that doesn't exist should fall back to defaults
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
	if cfg.Defaults.DefaultRegion != "IN" {
		t.Errorf("expected default region IN, got %q", cfg.Defaults.DefaultRegion)
	}
}

func TestLoadConfigOrDefault_ValidFile(t *testing.T) {
	configPath := writeConfig(t, `
defaults:
  format: json
  default_region: gb
  dedup_mode: aadhaar
columns:
  aadhaar: uid
  mobile: phone_no
`)

	cfg := LoadConfigOrDefault(configPath)
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.DefaultRegion != "gb" {
		t.Errorf("expected default_region=gb, got %q", cfg.Defaults.DefaultRegion)
	}
	if cfg.Columns.Aadhaar != "uid" || cfg.Columns.Mobile != "phone_no" {
		t.Errorf("unexpected columns %+v", cfg.Columns)
	}
	// Not set in the file: keeps its default
	if !cfg.Defaults.MaskOutput {
		t.Error("expected mask_output to stay true when absent")
	}
	if cfg.Defaults.RunsDir != "runs" {
		t.Errorf("expected runs_dir=runs, got %q", cfg.Defaults.RunsDir)
	}
}

func TestLoadConfig_ExplicitFalseBool(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "defaults:\n  mask_output: false\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.MaskOutput {
		t.Error("expected mask_output=false when set explicitly")
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, ":::invalid yaml:::")

	// Should fall back to defaults, not panic
	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"dedup mode": "defaults:\n  dedup_mode: everything\n",
		"format":     "defaults:\n  format: sarif\n",
		"region":     "defaults:\n  default_region: IND\n",
		"encoding":   "defaults:\n  encoding: klingon\n",
		"workers":    "defaults:\n  workers: -1\n",
		"log level":  "defaults:\n  log_level: loud\n",
		"profile":    "profiles:\n  bad:\n    dedup_mode: nope\n",
		"runs dir":   "defaults:\n  runs_dir: \"a\\0b\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), "configuration validation failed") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.DedupMode != "None" {
		t.Errorf("expected default dedup_mode=None, got %q", cfg.Defaults.DedupMode)
	}
	if !cfg.Defaults.MaskOutput {
		t.Error("expected mask_output=true by default")
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestLoadConfig_ProfilesInitialized(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cfg.Profiles["compliance"]; !ok {
		t.Error("expected 'compliance' profile to exist in defaults")
	}
}

func TestEffective(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
columns:
  aadhaar: uid
profiles:
  branch:
    description: Branch exports
    default_region: GB
    mask_output: false
    sheet: Customers
    workers: 4
    columns:
      mobile: contact
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := cfg.Effective("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DefaultRegion != "IN" || s.Columns.Aadhaar != "uid" {
		t.Errorf("unexpected defaults %+v", s)
	}

	s, err = cfg.Effective("branch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DefaultRegion != "GB" || s.MaskOutput || s.Sheet != "Customers" || s.Workers != 4 {
		t.Errorf("profile not applied: %+v", s)
	}
	if s.Columns.Aadhaar != "uid" || s.Columns.Mobile != "contact" {
		t.Errorf("unexpected columns %+v", s.Columns)
	}
	if s.Format != "text" {
		t.Errorf("expected format to fall through to defaults, got %q", s.Format)
	}

	if got := cfg.ListProfiles(); len(got) != 2 || got[0] != "branch" || got[1] != "compliance" {
		t.Errorf("unexpected profiles %v", got)
	}

	_, err = cfg.Effective("missing")
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	override := filepath.Join(dir, "override")
	if err := os.MkdirAll(override, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PIIQ_CONFIG_DIR", override)

	if got := FindConfigFile(); got != "" {
		t.Errorf("expected no config, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(override, "config.yaml"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != filepath.Join(override, "config.yaml") {
		t.Errorf("expected override config, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, ".piiq.yaml"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != ".piiq.yaml" {
		t.Errorf("expected .piiq.yaml, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "piiq.yaml"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != "piiq.yaml" {
		t.Errorf("expected piiq.yaml, got %q", got)
	}
}
