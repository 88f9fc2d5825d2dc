// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"strings"

	"pii-quality/internal/normalize"
)

var (
	aadhaarNames = []string{"aadhaar", "aadhar", "uidai"}
	mobileHints  = []string{"mobile", "phone", "contact", "msisdn"}
)

// GuessAadhaarColumn picks the column most likely to hold Aadhaar numbers:
// first by exact name, then the first column where more than half the rows
// carry at least 12 digits. Returns "" when nothing qualifies.
func GuessAadhaarColumn(t *Table, exclude ...string) string {
	for _, c := range t.Columns {
		name := strings.ToLower(strings.TrimSpace(c))
		for _, n := range aadhaarNames {
			if name == n && !contains(exclude, c) {
				return c
			}
		}
	}
	return guessByDigits(t, exclude, func(n int) bool { return n >= 12 })
}

// GuessMobileColumn picks the column most likely to hold mobile numbers:
// first by a name hint, then the first column where more than half the rows
// carry 10 to 15 digits.
func GuessMobileColumn(t *Table, exclude ...string) string {
	for _, c := range t.Columns {
		if contains(exclude, c) {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(c))
		for _, h := range mobileHints {
			if strings.Contains(name, h) {
				return c
			}
		}
	}
	return guessByDigits(t, exclude, func(n int) bool { return n >= 10 && n <= 15 })
}

func guessByDigits(t *Table, exclude []string, match func(digits int) bool) string {
	if t.Len() == 0 {
		return ""
	}
	for col, name := range t.Columns {
		if contains(exclude, name) {
			continue
		}
		hits := 0
		for row := range t.Rows {
			if match(len(normalize.DigitsOf(t.Cell(row, col)))) {
				hits++
			}
		}
		if 2*hits > t.Len() {
			return name
		}
	}
	return ""
}
