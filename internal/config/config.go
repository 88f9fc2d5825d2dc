// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"pii-quality/internal/engine"
	"pii-quality/internal/ingest"
	"pii-quality/internal/paths"
)

// ErrUnknownProfile is returned when a named profile is not configured.
var ErrUnknownProfile = errors.New("unknown profile")

// Defaults holds the settings applied to every run
type Defaults struct {
	Format        string `yaml:"format" validate:"omitempty,oneof=text json yaml csv markdown"`
	DefaultRegion string `yaml:"default_region" validate:"omitempty,len=2,alpha"`
	DedupMode     string `yaml:"dedup_mode" validate:"omitempty,dedupmode"`
	MaskOutput    bool   `yaml:"mask_output"`
	Label         string `yaml:"label"`
	RunsDir       string `yaml:"runs_dir" validate:"omitempty,safepath"`
	Encoding      string `yaml:"encoding" validate:"omitempty,encoding"`
	Workers       int    `yaml:"workers" validate:"gte=0,lte=256"`
	NoColor       bool   `yaml:"no_color"`
	Verbose       bool   `yaml:"verbose"`
	Debug         bool   `yaml:"debug"`
	LogLevel      string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error quiet"`
	LogFormat     string `yaml:"log_format" validate:"omitempty,oneof=text json"`
}

// Columns names the input columns; empty entries are guessed
type Columns struct {
	Aadhaar string `yaml:"aadhaar"`
	Mobile  string `yaml:"mobile"`
	Region  string `yaml:"region"`
}

// Profile represents a named set of overrides for a recurring data source
type Profile struct {
	Description   string  `yaml:"description"`
	Format        string  `yaml:"format" validate:"omitempty,oneof=text json yaml csv markdown"`
	DefaultRegion string  `yaml:"default_region" validate:"omitempty,len=2,alpha"`
	DedupMode     string  `yaml:"dedup_mode" validate:"omitempty,dedupmode"`
	MaskOutput    *bool   `yaml:"mask_output,omitempty"`
	Label         string  `yaml:"label"`
	Encoding      string  `yaml:"encoding" validate:"omitempty,encoding"`
	Sheet         string  `yaml:"sheet"`
	Workers       int     `yaml:"workers" validate:"gte=0,lte=256"`
	Columns       Columns `yaml:"columns"`
}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults Defaults `yaml:"defaults"`

	// Column names used when the CLI does not name them
	Columns Columns `yaml:"columns"`

	// Profiles for different data sources
	Profiles map[string]Profile `yaml:"profiles" validate:"dive"`
}

// Settings is the effective configuration for one run after a profile is applied
type Settings struct {
	Defaults
	Columns Columns
	Sheet   string
	Profile string
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store default values before unmarshaling
	defaultMaskOutput := config.Defaults.MaskOutput

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	// Restore defaults if not explicitly set in config file
	// This handles the case where YAML unmarshaling sets bool fields to false
	// when they're not present in the config file
	if !containsField(data, "defaults", "mask_output") {
		config.Defaults.MaskOutput = defaultMaskOutput
	}

	config.Defaults.RunsDir = paths.NormalizePath(config.Defaults.RunsDir)

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func defaultConfig() *Config {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.DefaultRegion = "IN"
	config.Defaults.DedupMode = string(engine.DedupNone)
	config.Defaults.MaskOutput = true
	config.Defaults.Label = "run"
	config.Defaults.RunsDir = "runs"
	config.Defaults.Encoding = ingest.EncodingUTF8
	config.Defaults.Workers = 0 // auto
	config.Defaults.LogLevel = "warn"
	config.Defaults.LogFormat = "text"

	// Built-in profile for audit hand-offs
	config.Profiles["compliance"] = Profile{
		Description: "Markdown report with Aadhaar+Mobile deduplication for compliance reviews",
		Format:      "markdown",
		DedupMode:   string(engine.DedupAadhaarMobile),
		Label:       "compliance",
	}
	return config
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first (project-specific config)
	for _, name := range []string{"piiq.yaml", "piiq.yml", ".piiq.yaml", ".piiq.yml"} {
		if fileExists(name) {
			return name
		}
	}

	// Explicit override directory
	if dir := os.Getenv(paths.ConfigDirEnv); dir != "" {
		if configFile := filepath.Join(paths.NormalizePath(dir), "config.yaml"); fileExists(configFile) {
			return configFile
		}
	}

	// User config directory (XDG_CONFIG_HOME, ~/.config or APPDATA)
	if dir, err := os.UserConfigDir(); err == nil {
		if configFile := filepath.Join(dir, "piiq", "config.yaml"); fileExists(configFile) {
			return configFile
		}
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the sorted profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// Effective returns the defaults with the named profile applied. An empty
// name returns the defaults unchanged.
func (c *Config) Effective(profileName string) (Settings, error) {
	s := Settings{Defaults: c.Defaults, Columns: c.Columns, Profile: profileName}
	if profileName == "" {
		return s, nil
	}
	p := c.GetProfile(profileName)
	if p == nil {
		return Settings{}, fmt.Errorf("%w '%s'. Available profiles: %v", ErrUnknownProfile, profileName, c.ListProfiles())
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&s.Format, p.Format)
	override(&s.DefaultRegion, p.DefaultRegion)
	override(&s.DedupMode, p.DedupMode)
	override(&s.Label, p.Label)
	override(&s.Encoding, p.Encoding)
	override(&s.Sheet, p.Sheet)
	override(&s.Columns.Aadhaar, p.Columns.Aadhaar)
	override(&s.Columns.Mobile, p.Columns.Mobile)
	override(&s.Columns.Region, p.Columns.Region)
	if p.MaskOutput != nil {
		s.MaskOutput = *p.MaskOutput
	}
	if p.Workers > 0 {
		s.Workers = p.Workers
	}
	return s, nil
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			// Last key - check if it exists
			_, exists := current[key]
			return exists
		}
		// Intermediate key - navigate deeper
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// newValidate builds a validator with the piiq-specific tags registered
func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("dedupmode", func(fl validator.FieldLevel) bool {
		_, err := engine.ParseDedupMode(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("encoding", func(fl validator.FieldLevel) bool {
		_, err := ingest.CanonicalEncoding(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("safepath", func(fl validator.FieldLevel) bool {
		return paths.ValidatePath(fl.Field().String()) == nil
	})
	return v
}

// ValidateConfig validates the configuration values
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := newValidate().Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid value %q for %s (rule %s)", fmt.Sprint(first.Value()), first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults; callers should not crash on a missing/bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}
