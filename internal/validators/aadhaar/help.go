// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aadhaar

import "pii-quality/internal/help"

// GetCheckInfo returns standardized information about the Aadhaar check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "AADHAAR",
		ShortDescription: "Validates 12-digit Aadhaar numbers with the Verhoeff checksum",
		DetailedDescription: `The AADHAAR check extracts the digits of each value and verifies that exactly twelve remain and that the last digit is the Verhoeff check digit of the first eleven.

Whitespace, hyphens, dots and slashes used to group digits are ignored. Any other character (letters, symbols) marks the value as NON_NUMERIC. Values without a single digit are reported as MISSING.`,

		Patterns: []string{
			"XXXXXXXXXXXX (12 consecutive digits)",
			"XXXX XXXX XXXX (space-separated groups)",
			"XXXX-XXXX-XXXX (hyphen-separated groups)",
		},

		Reasons: []help.ReasonInfo{
			{Code: string(ReasonMissing), Class: string(ReasonMissing.Class()), Description: "No digits in the value"},
			{Code: string(ReasonNonNumeric), Class: string(ReasonNonNumeric.Class()), Description: "Value contains letters or symbols"},
			{Code: string(ReasonLength), Class: string(ReasonLength.Class()), Description: "Digit count is not 12"},
			{Code: string(ReasonChecksum), Class: string(ReasonChecksum.Class()), Description: "Verhoeff checksum does not match"},
		},

		Masking: []string{
			"XXXX-XXXX-#### (last 4 digits visible, applied to invalid values too)",
		},

		QualitySignals: []string{
			"q_adjacent_repetition: a digit repeated 3+ times in a row",
			"q_sequential_digits: an ascending or descending run of 3+ digits",
			"q_improbable: one repeated digit, or a long sequential run",
		},

		Examples: []string{
			"piiq validate customers.csv --aadhaar-col aadhaar",
			"piiq verhoeff 23412341234",
		},
	}
}
