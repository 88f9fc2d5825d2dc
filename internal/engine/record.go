// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"pii-quality/internal/validators/aadhaar"
	"pii-quality/internal/validators/phone"
)

// Row is one input record as handed over by an input source.
type Row struct {
	// Index is the zero-based position of the row in the source table.
	Index   int
	Aadhaar any
	Mobile  any
	// Region is the row's ISO 3166-1 alpha-2 region; "" selects the default.
	Region string
}

// RowRecord is the decision made for one row.
type RowRecord struct {
	Index      int
	RawAadhaar any
	RawMobile  any
	// Region is the row region after the default was applied.
	Region string

	Aadhaar aadhaar.Outcome
	Mobile  phone.Outcome

	OverallValid bool
}

// AadhaarMasked returns the display-safe Aadhaar value.
func (r *RowRecord) AadhaarMasked() string {
	return r.Aadhaar.Masked()
}

// MobileMasked returns the display-safe mobile value.
func (r *RowRecord) MobileMasked() string {
	return r.Mobile.Masked()
}

// AadhaarPresent reports whether the row carried any Aadhaar digits.
func (r *RowRecord) AadhaarPresent() bool {
	return r.Aadhaar.Cleaned != ""
}

// MobilePresent reports whether the row has a canonical mobile number.
func (r *RowRecord) MobilePresent() bool {
	return r.Mobile.E164 != ""
}

// overallValid combines the field outcomes. Fields that are not present do
// not count against the row; a row with nothing present is invalid.
func overallValid(r *RowRecord) bool {
	a, m := r.AadhaarPresent(), r.MobilePresent()
	switch {
	case a && m:
		return r.Aadhaar.Valid && r.Mobile.Valid
	case a:
		return r.Aadhaar.Valid
	case m:
		return r.Mobile.Valid
	default:
		return false
	}
}
