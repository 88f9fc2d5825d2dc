// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pii-quality/internal/config"
	"pii-quality/internal/core"
	"pii-quality/internal/engine"
	"pii-quality/internal/formatters"
	"pii-quality/internal/ingest"
	"pii-quality/internal/logger"
	"pii-quality/internal/metrics"
	"pii-quality/internal/store"
)

func newValidateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate the Aadhaar and mobile columns of a CSV or XLSX file",
		Long: `Validate reads a CSV or XLSX file, validates every Aadhaar number (12 digits,
Verhoeff checksum) and mobile number (libphonenumber, MOBILE or
FIXED_LINE_OR_MOBILE), and prints a summary in the selected format.

Columns not named with --aadhaar-col/--mobile-col are guessed from header
names and cell contents. Every flag can also be set through a PIIQ_<FLAG>
environment variable (for example PIIQ_DEFAULT_REGION=GB), a profile, or the
defaults section of the config file; flags win over environment, environment
over profile, and profile over defaults.`,
		Example: `  piiq validate customers.csv
  piiq validate customers.xlsx --sheet Customers --aadhaar-col uid --mobile-col phone
  piiq validate customers.csv --dedup aadhaar+mobile --format markdown --save --label "March intake"
  piiq validate customers.csv --format csv --subset invalid-mobile > invalid_mobile.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, v, args[0])
		},
	}

	registerValidateFlags(cmd.Flags())
	return cmd
}

// registerValidateFlags declares the validate flags. Every flag name is also
// a viper key and, upper-cased with a PIIQ_ prefix, an environment variable.
func registerValidateFlags(f *pflag.FlagSet) {
	f.String("aadhaar-col", "", "Aadhaar column name (guessed when empty)")
	f.String("mobile-col", "", "mobile column name (guessed when empty)")
	f.String("region-col", "", "optional column holding an ISO region code per row")
	f.Bool("no-guess", false, "do not guess unnamed Aadhaar/mobile columns")
	f.String("default-region", "", "region for numbers without a country code (default IN)")
	f.String("dedup", "", "dedup mode: None, Aadhaar, Mobile, Aadhaar+Mobile")
	f.String("format", "", fmt.Sprintf("output format (%s)", joinFormats()))
	f.String("subset", "", "records listed by record-level formats: all, valid, invalid-aadhaar, invalid-mobile")
	f.StringP("output", "o", "", "write the formatted output to a file instead of stdout")
	f.Bool("unmasked", false, "include cleaned Aadhaar and E.164 mobile values in the output (never saved)")
	f.Bool("save", false, "save the masked run under the runs directory")
	f.String("label", "", "label recorded with the run")
	f.String("runs-dir", "", "directory saved runs are written to (default runs)")
	f.String("encoding", "", "CSV text encoding (utf-8, utf-8-sig, latin-1, cp1252 or any IANA name)")
	f.String("sheet", "", "XLSX worksheet (default: first sheet)")
	f.Int("workers", 0, "row validation workers (0 = number of CPUs)")
	f.String("metrics-file", "", "write Prometheus gauges for the batch to this textfile")
	f.String("profile", "", "apply a named profile from the config file")
	f.BoolP("verbose", "v", false, "list records in text output")
	f.Bool("debug", false, "print the processing step tree to stderr")
}

// applySettings layers the effective config under the env and flag values.
func applySettings(v *viper.Viper, s config.Settings) {
	v.SetDefault("aadhaar-col", s.Columns.Aadhaar)
	v.SetDefault("mobile-col", s.Columns.Mobile)
	v.SetDefault("region-col", s.Columns.Region)
	v.SetDefault("default-region", s.DefaultRegion)
	v.SetDefault("dedup", s.DedupMode)
	v.SetDefault("format", s.Format)
	v.SetDefault("unmasked", !s.MaskOutput)
	v.SetDefault("label", s.Label)
	v.SetDefault("runs-dir", s.RunsDir)
	v.SetDefault("encoding", s.Encoding)
	v.SetDefault("sheet", s.Sheet)
	v.SetDefault("workers", s.Workers)
	v.SetDefault("verbose", s.Verbose)
	v.SetDefault("debug", s.Debug)
	v.SetDefault("no-color", s.NoColor)
}

func runValidate(cmd *cobra.Command, v *viper.Viper, path string) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)
	cfg := configFromContext(ctx)

	settings, err := cfg.Effective(v.GetString("profile"))
	if err != nil {
		return err
	}
	applySettings(v, settings)

	dedup, err := engine.ParseDedupMode(v.GetString("dedup"))
	if err != nil {
		return err
	}
	subset, err := formatters.ParseSubset(v.GetString("subset"))
	if err != nil {
		return err
	}
	format := v.GetString("format")
	if _, ok := formatters.Get(format); !ok {
		return fmt.Errorf("%w '%s'. Available formats: %s", formatters.ErrUnsupportedFormat, format, joinFormats())
	}

	noColor := v.GetBool("no-color")
	debug := v.GetBool("debug")
	unmasked := v.GetBool("unmasked")
	if unmasked {
		log.Warn("output includes unmasked identifiers; saved runs stay masked")
	}

	observer := core.NewObserver(debug, log, cmd.ErrOrStderr())
	rr, err := core.Run(ctx, core.RunConfig{
		FS:       afero.NewOsFs(),
		FilePath: path,
		Encoding: v.GetString("encoding"),
		Sheet:    v.GetString("sheet"),
		Columns: ingest.Mapping{
			Aadhaar: v.GetString("aadhaar-col"),
			Mobile:  v.GetString("mobile-col"),
			Region:  v.GetString("region-col"),
		},
		GuessColumns:  !v.GetBool("no-guess"),
		DefaultRegion: v.GetString("default-region"),
		Dedup:         dedup,
		Workers:       v.GetInt("workers"),
		Label:         v.GetString("label"),
		Unmasked:      unmasked,
		Observer:      observer,
		Logger:        log,
		Progress:      newProgress(cmd.ErrOrStderr(), noColor),
	})
	if err != nil {
		return err
	}
	defer rr.Run.Clear()

	if metricsFile := v.GetString("metrics-file"); metricsFile != "" {
		m := metrics.New()
		m.Observe(rr.Result)
		if err := m.WriteToTextfile(metricsFile); err != nil {
			return err
		}
		log.Info("metrics written", "file", metricsFile)
	}

	if v.GetBool("save") {
		repo := store.NewFSRepository(afero.NewOsFs(), v.GetString("runs-dir"))
		info, err := core.Save(ctx, repo, rr)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved run %s to %s\n", info.Name, info.Path)
	}

	out, err := formatters.Export(format, rr.Run, formatters.FormatterOptions{
		Verbose:  v.GetBool("verbose"),
		NoColor:  noColor,
		Unmasked: unmasked,
		Subset:   subset,
	})
	if err != nil {
		return err
	}

	if outputFile := v.GetString("output"); outputFile != "" {
		if err := os.WriteFile(filepath.Clean(outputFile), []byte(out), 0o600); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func joinFormats() string {
	return strings.Join(formatters.List(), ", ")
}
