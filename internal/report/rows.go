// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"pii-quality/internal/engine"
	"pii-quality/internal/security"
)

// MaskedRow is the persisted, display-safe projection of a record.
type MaskedRow struct {
	SourceRowIndex      int    `json:"source_row_index" yaml:"source_row_index"`
	AadhaarMasked       string `json:"aadhaar_masked" yaml:"aadhaar_masked"`
	MobileMasked        string `json:"mobile_masked" yaml:"mobile_masked"`
	AadhaarValid        bool   `json:"aadhaar_valid" yaml:"aadhaar_valid"`
	AadhaarReason       string `json:"aadhaar_reason" yaml:"aadhaar_reason"`
	AadhaarCategory     string `json:"aadhaar_category" yaml:"aadhaar_category"`
	MobileValid         bool   `json:"mobile_valid" yaml:"mobile_valid"`
	MobileReason        string `json:"mobile_reason" yaml:"mobile_reason"`
	MobileCategory      string `json:"mobile_category" yaml:"mobile_category"`
	MobileRegion        string `json:"mobile_region" yaml:"mobile_region"`
	MobileType          string `json:"mobile_type" yaml:"mobile_type"`
	Country             string `json:"country" yaml:"country"`
	OverallValid        bool   `json:"overall_valid" yaml:"overall_valid"`
	QAdjacentRepetition bool   `json:"q_adjacent_repetition" yaml:"q_adjacent_repetition"`
	QSequentialDigits   bool   `json:"q_sequential_digits" yaml:"q_sequential_digits"`
	QImprobable         bool   `json:"q_improbable" yaml:"q_improbable"`
}

// UnmaskedRow extends MaskedRow with the cleaned identifiers. It is only
// produced by Unmasked and never persisted by the run repository.
type UnmaskedRow struct {
	MaskedRow    `yaml:",inline"`
	AadhaarClean *security.SecureString `json:"aadhaar_clean" yaml:"aadhaar_clean"`
	MobileE164   *security.SecureString `json:"mobile_e164" yaml:"mobile_e164"`
}

// Clear scrubs the unmasked values.
func (r *UnmaskedRow) Clear() {
	security.ClearAll(r.AadhaarClean, r.MobileE164)
}

// Masked projects a record onto its masked form.
func Masked(rec *engine.RowRecord) MaskedRow {
	return MaskedRow{
		SourceRowIndex:      rec.Index,
		AadhaarMasked:       rec.AadhaarMasked(),
		MobileMasked:        rec.MobileMasked(),
		AadhaarValid:        rec.Aadhaar.Valid,
		AadhaarReason:       string(rec.Aadhaar.Reason),
		AadhaarCategory:     string(rec.Aadhaar.Category()),
		MobileValid:         rec.Mobile.Valid,
		MobileReason:        string(rec.Mobile.Reason),
		MobileCategory:      string(rec.Mobile.Category()),
		MobileRegion:        rec.Mobile.Region,
		MobileType:          string(rec.Mobile.Type),
		Country:             rec.Region,
		OverallValid:        rec.OverallValid,
		QAdjacentRepetition: rec.Aadhaar.Quality.AdjacentRepetition,
		QSequentialDigits:   rec.Aadhaar.Quality.SequentialDigits,
		QImprobable:         rec.Aadhaar.Quality.Improbable,
	}
}

// MaskedRows projects records in order.
func MaskedRows(recs []engine.RowRecord) []MaskedRow {
	out := make([]MaskedRow, len(recs))
	for i := range recs {
		out[i] = Masked(&recs[i])
	}
	return out
}

// Unmasked projects a record including its cleaned Aadhaar digits and
// canonical mobile number. Callers own the returned secrets and should
// Clear them once written.
func Unmasked(rec *engine.RowRecord) UnmaskedRow {
	return UnmaskedRow{
		MaskedRow:    Masked(rec),
		AadhaarClean: security.NewSecureString(rec.Aadhaar.Cleaned),
		MobileE164:   security.NewSecureString(rec.Mobile.E164),
	}
}

// UnmaskedRows projects records in order.
func UnmaskedRows(recs []engine.RowRecord) []UnmaskedRow {
	out := make([]UnmaskedRow, len(recs))
	for i := range recs {
		out[i] = Unmasked(&recs[i])
	}
	return out
}
