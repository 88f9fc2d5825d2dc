// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pii-quality/internal/config"
	"pii-quality/internal/logger"

	_ "pii-quality/internal/formatters/csv"
	_ "pii-quality/internal/formatters/json"
	_ "pii-quality/internal/formatters/markdown"
	_ "pii-quality/internal/formatters/text"
	_ "pii-quality/internal/formatters/yaml"
)

// envPrefix is the prefix of every environment override (PIIQ_DEFAULT_REGION, ...)
const envPrefix = "PIIQ"

// newRootCmd builds the command tree. Each invocation gets its own viper
// instance so flag, env and config layering never leaks between runs.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	var configFile string
	root := &cobra.Command{
		Use:   "piiq",
		Short: "Aadhaar and mobile number data-quality checks with masked reporting",
		Long: `piiq validates the Aadhaar and mobile number columns of CSV and XLSX files.

Every record is classified as valid or by the first failure reason, counted,
optionally de-duplicated, and reported with identifiers masked. Runs can be
saved locally as masked CSV files, meta.json and a Markdown compliance report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			cfg := loadConfiguration(cmd, configFile)
			log, err := newLogger(cmd, v, cfg)
			if err != nil {
				return err
			}
			ctx := logger.ContextWithLogger(cmd.Context(), log)
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./piiq.yaml, $PIIQ_CONFIG_DIR/config.yaml or the user config dir)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error, quiet)")
	root.PersistentFlags().String("log-format", "", "log format (text, json)")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")

	root.AddCommand(newValidateCmd(v))
	root.AddCommand(newRunsCmd(v))
	root.AddCommand(newChecksCmd(v))
	root.AddCommand(newVerhoeffCmd())
	root.AddCommand(newFormatsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

type configKey struct{}

// configFromContext returns the configuration loaded by the root command.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	cfg, _ := config.LoadConfig("")
	return cfg
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(cmd *cobra.Command, configFile string) *config.Config {
	// If config file is not specified, try to find one in standard locations
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	// Load configuration (will use defaults if file not found)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Using default configuration\n")
		cfg, _ = config.LoadConfig("") // Load default config
	}
	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
