// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a field check
type CheckInfo struct {
	Name                string       // Name of the check (e.g., "AADHAAR")
	ShortDescription    string       // Short description for the checks list
	DetailedDescription string       // Detailed description of what the check does
	Patterns            []string     // Input shapes the check accepts
	Reasons             []ReasonInfo // Failure reasons in precedence order
	Masking             []string     // Masking formats applied to the field
	QualitySignals      []string     // Advisory flags reported next to the outcome
	Examples            []string     // Usage examples
}

// ReasonInfo documents one failure reason
type ReasonInfo struct {
	Code        string
	Class       string
	Description string
}

// Provider defines the interface for help content providers
type Provider interface {
	GetCheckInfo() CheckInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	out       io.Writer
	colors    map[string]*color.Color
}

// NewSystem creates a new help system writing to stdout
func NewSystem(noColor bool) *System {
	return NewSystemWithWriter(os.Stdout, noColor)
}

// NewSystemWithWriter creates a help system writing to out
func NewSystemWithWriter(out io.Writer, noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	return &System{
		providers: make(map[string]Provider),
		out:       out,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"negative": color.New(color.FgRed),
			"warning":  color.New(color.FgYellow),
			"example":  color.New(color.FgMagenta),
		},
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetCheckInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// CheckNames returns the registered check names in alphabetical order
func (h *System) CheckNames() []string {
	names := make([]string, 0, len(h.providers))
	for _, provider := range h.providers {
		names = append(names, provider.GetCheckInfo().Name)
	}
	sort.Strings(names)
	return names
}

// ShowChecksHelp displays information about all available checks
func (h *System) ShowChecksHelp() {
	h.colors["title"].Fprintln(h.out, "Available Checks")
	fmt.Fprintln(h.out, "================")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  CHECK\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  -----\t-----------")
	for _, name := range h.CheckNames() {
		info := h.providers[strings.ToLower(name)].GetCheckInfo()
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", info.Name)
		fmt.Fprintf(w, "\t%s\n", info.ShortDescription)
	}
	w.Flush()

	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "For detailed information about a specific check, use:")
	h.colors["example"].Fprintln(h.out, "  piiq checks <check>")
}

// ShowCheckHelp displays detailed help for a specific check
func (h *System) ShowCheckHelp(checkName string) bool {
	provider, exists := h.providers[strings.ToLower(checkName)]
	if !exists {
		h.colors["negative"].Fprintf(h.out, "Error: Check '%s' not found.\n", checkName)
		fmt.Fprintln(h.out, "Use 'piiq checks' to see a list of available checks.")
		return false
	}

	info := provider.GetCheckInfo()

	h.colors["title"].Fprintf(h.out, "%s Check\n", info.Name)
	fmt.Fprintln(h.out, strings.Repeat("=", len(info.Name)+6))
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, info.DetailedDescription)
	fmt.Fprintln(h.out)

	h.list("ACCEPTED INPUT:", info.Patterns)

	if len(info.Reasons) > 0 {
		h.colors["header"].Fprintln(h.out, "FAILURE REASONS (reported in this order):")
		w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
		for i, reason := range info.Reasons {
			fmt.Fprintf(w, "  %d. ", i+1)
			h.colors["warning"].Fprintf(w, "%s", reason.Code)
			fmt.Fprintf(w, "\t%s\t%s\n", reason.Class, reason.Description)
		}
		w.Flush()
		fmt.Fprintln(h.out)
	}

	h.list("MASKING:", info.Masking)
	h.list("QUALITY SIGNALS (advisory, never change validity):", info.QualitySignals)

	if len(info.Examples) > 0 {
		h.colors["header"].Fprintln(h.out, "EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Fprint(h.out, "  ")
			h.colors["example"].Fprintln(h.out, example)
		}
	}

	return true
}

func (h *System) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	h.colors["header"].Fprintln(h.out, title)
	for _, item := range items {
		fmt.Fprint(h.out, "  - ")
		h.colors["item"].Fprintln(h.out, item)
	}
	fmt.Fprintln(h.out)
}
