// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pii-quality/internal/core"
	"pii-quality/internal/formatters"
	"pii-quality/internal/normalize"
	"pii-quality/internal/validators/aadhaar"
	"pii-quality/internal/version"
)

func newChecksCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "checks [check]",
		Short: "Describe the available checks, their failure reasons and masking",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := core.NewHelpSystem(cmd.OutOrStdout(), v.GetBool("no-color"))
			if len(args) == 0 {
				h.ShowChecksHelp()
				return nil
			}
			if !h.ShowCheckHelp(args[0]) {
				return fmt.Errorf("unknown check %q (available: %s)", args[0], strings.Join(h.CheckNames(), ", "))
			}
			return nil
		},
	}
}

func newVerhoeffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verhoeff <digits>",
		Short: "Compute the Verhoeff check digit of 11 digits, or verify a 12-digit Aadhaar number",
		Example: `  piiq verhoeff 23412341234
  piiq verhoeff "2341 2341 2346"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			digits := normalize.DigitsOf(args[0])
			switch len(digits) {
			case aadhaar.Length - 1:
				full, err := aadhaar.WithCheckDigit(digits)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Check digit: %c\n", full[len(full)-1])
				fmt.Fprintf(out, "Full number: %s\n", full)
				fmt.Fprintf(out, "Masked:      %s\n", aadhaar.Mask(full))
				return nil
			case aadhaar.Length:
				expected, err := aadhaar.CheckDigit(digits[:aadhaar.Length-1])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Check digit: %c (expected %c)\n", digits[aadhaar.Length-1], expected)
				fmt.Fprintf(out, "Valid:       %t\n", aadhaar.VerhoeffValid(digits))
				return nil
			default:
				return fmt.Errorf("expected %d or %d digits, got %d", aadhaar.Length-1, aadhaar.Length, len(digits))
			}
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the output formats accepted by validate --format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tEXTENSION\tMIME TYPE\tDESCRIPTION")
			for _, info := range formatters.GetSupportedFormats() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Name, info.Extension, info.MimeType, info.Description)
			}
			return w.Flush()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}
