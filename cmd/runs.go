// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pii-quality/internal/formatters"
	"pii-quality/internal/report"
	"pii-quality/internal/store"
)

func newRunsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse saved runs",
	}
	cmd.PersistentFlags().String("runs-dir", "", "directory saved runs are read from (default runs)")
	cmd.AddCommand(newRunsListCmd(v), newRunsShowCmd(v))
	return cmd
}

func runsRepository(cmd *cobra.Command, v *viper.Viper) *store.FSRepository {
	v.SetDefault("runs-dir", configFromContext(cmd.Context()).Defaults.RunsDir)
	return store.NewFSRepository(afero.NewOsFs(), v.GetString("runs-dir"))
}

func newRunsListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := runsRepository(cmd, v).List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No saved runs. Use 'piiq validate <file> --save' to create one.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL\tROWS\tDISTINCT\tOVERALL VALID\tCREATED")
			for _, r := range runs {
				label, rows, distinct, valid, created := "-", "-", "-", "-", "-"
				if r.Meta != nil {
					label = r.Meta.Label
					if !r.Meta.CreatedAt.IsZero() {
						created = r.Meta.CreatedAt.Format("2006-01-02 15:04:05")
					}
					if s := r.Meta.Stats; s != nil {
						rows = report.FormatCount(s.TotalRows)
						distinct = report.FormatCount(s.DistinctAfter)
						valid = report.FormatCount(s.OverallValid)
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Name, label, rows, distinct, valid, created)
			}
			return w.Flush()
		},
	}
}

func newRunsShowCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the report of a saved run, or one of its masked CSV files",
		Example: `  piiq runs show 20250301_101500_march-intake
  piiq runs show 20250301_101500_march-intake --rows invalid-aadhaar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := runsRepository(cmd, v).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			rows, _ := cmd.Flags().GetString("rows")
			if rows == "" {
				if a.Report == "" {
					fmt.Fprintf(out, "Run %s has no report.md\n", args[0])
					return nil
				}
				_, err = fmt.Fprint(out, a.Report)
				return err
			}

			subset, err := formatters.ParseSubset(rows)
			if err != nil {
				return err
			}
			switch subset {
			case formatters.SubsetValid:
				return report.WriteMaskedCSV(out, a.Valid)
			case formatters.SubsetInvalidAadhaar:
				return report.WriteMaskedCSV(out, a.InvalidAadhaar)
			case formatters.SubsetInvalidMobile:
				return report.WriteMaskedCSV(out, a.InvalidMobile)
			default:
				return report.WriteMaskedCSV(out, a.Processed)
			}
		},
	}
	cmd.Flags().String("rows", "", "print a masked CSV instead of the report: all, valid, invalid-aadhaar, invalid-mobile")
	return cmd
}
