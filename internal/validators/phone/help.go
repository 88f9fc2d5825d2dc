// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import "pii-quality/internal/help"

// GetCheckInfo returns standardized information about the mobile check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "MOBILE",
		ShortDescription: "Validates mobile numbers with libphonenumber and emits E.164",
		DetailedDescription: `The MOBILE check parses each value with libphonenumber, using the row's region column when present and the default region (` + v.defaultRegion + `) otherwise.

A value passes when it parses, is a possible and valid number for its region, and is classified as MOBILE or FIXED_LINE_OR_MOBILE. Valid numbers are rewritten to the canonical E.164 form (+<country code><number>), and that form is the key used for mobile de-duplication.`,

		Patterns: []string{
			"National: 81234 56789, 08123456789",
			"International: +91 81234 56789, +44 7400 123456",
			"Any separators accepted by libphonenumber (spaces, dashes, dots, parentheses)",
		},

		Reasons: []help.ReasonInfo{
			{Code: string(ReasonMissing), Class: string(ReasonMissing.Class()), Description: "Value is empty"},
			{Code: string(ReasonParseFail), Class: string(ReasonParseFail.Class()), Description: "Value could not be parsed as a phone number"},
			{Code: string(ReasonNotValid), Class: string(ReasonNotValid.Class()), Description: "Parsed, but not a possible or valid number for its region"},
			{Code: string(ReasonNotMobile), Class: string(ReasonNotMobile.Class()), Description: "Valid number of a non-mobile line type (fixed line, toll free, ...)"},
		},

		Masking: []string{
			"+CC-XXX-XXX-#### for canonical numbers",
			"+CC-****-****-#### or ***-***-#### for anything else",
			"Invalid numbers have no canonical form and mask to an empty string",
		},

		Examples: []string{
			"piiq validate customers.csv --mobile-col phone --default-region IN",
			"piiq validate customers.xlsx --region-col country_code",
		},
	}
}
