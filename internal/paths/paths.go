// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ConfigDirEnv overrides the configuration directory on every platform.
const ConfigDirEnv = "PIIQ_CONFIG_DIR"

const appDirName = "piiq"

// GetConfigDir returns the piiq configuration directory.
// Uses os.UserConfigDir (APPDATA on Windows, XDG_CONFIG_HOME or ~/.config on Unix)
func GetConfigDir() string {
	// Check for explicit override first (works on all platforms)
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return NormalizePath(dir)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+appDirName)
	}
	return "." + appDirName
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// NormalizePath expands a leading ~ and cleans the path for the current platform
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return filepath.Clean(filepath.FromSlash(path))
}

// ResolvePath resolves a path to its absolute form
func ResolvePath(path string) (string, error) {
	// Handle empty path
	if path == "" {
		return "", nil
	}
	return filepath.Abs(NormalizePath(path))
}

// ValidatePath validates a path for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return nil // Empty path is valid
	}

	if runtime.GOOS == "windows" {
		return validateWindowsPath(path)
	}

	return validateUnixPath(path)
}

// validateWindowsPath validates a Windows path
func validateWindowsPath(path string) error {
	if err := validateUnixPath(path); err != nil {
		return err
	}

	// Check for invalid characters
	for i, char := range path {
		if !strings.ContainsRune(`<>:"|?*`, char) {
			continue
		}
		// Skip colon if it's part of a drive letter (position 1: C:)
		if char == ':' && i == 1 {
			continue
		}
		return &PathValidationError{
			Path:   path,
			Reason: "contains invalid character: " + string(char),
		}
	}
	return nil
}

// validateUnixPath validates a Unix path
func validateUnixPath(path string) error {
	// Main restriction is null bytes
	if strings.ContainsRune(path, 0) {
		return &PathValidationError{
			Path:   path,
			Reason: "contains null byte",
		}
	}
	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}
