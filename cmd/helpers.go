// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"pii-quality/internal/config"
	"pii-quality/internal/logger"
)

var envKeyReplacer = strings.NewReplacer("-", "_")

// newLogger builds the process logger. --debug forces debug level.
func newLogger(cmd *cobra.Command, v *viper.Viper, cfg *config.Config) (logger.Logger, error) {
	v.SetDefault("log-level", cfg.Defaults.LogLevel)
	v.SetDefault("log-format", cfg.Defaults.LogFormat)

	level := logger.ParseLevel(v.GetString("log-level"))
	if v.GetBool("debug") {
		level = logger.DebugLevel
	}

	var jsonOut bool
	switch format := strings.ToLower(v.GetString("log-format")); format {
	case "", "text":
	case "json":
		jsonOut = true
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return logger.NewLogger(&logger.Config{
		Level:  level,
		Output: cmd.ErrOrStderr(),
		JSON:   jsonOut,
	}), nil
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newProgress returns a row progress callback drawing a bar on w. It returns
// nil when w is not a terminal.
func newProgress(w io.Writer, noColor bool) func(done, total int) {
	if !isTerminal(w) {
		return nil
	}
	var (
		once sync.Once
		bar  *progressbar.ProgressBar
	)
	return func(_, total int) {
		once.Do(func() {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionEnableColorCodes(!noColor),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Validating rows"),
				progressbar.OptionClearOnFinish(),
			)
		})
		_ = bar.Add(1)
	}
}
