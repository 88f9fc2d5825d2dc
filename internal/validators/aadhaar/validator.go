// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aadhaar

import (
	"pii-quality/internal/normalize"
	"pii-quality/internal/quality"
	"pii-quality/internal/validators"
)

// Length is the number of digits in an Aadhaar number, check digit included.
const Length = 12

// Reason is the Aadhaar failure taxonomy. The zero value means valid.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonMissing    Reason = "MISSING"
	ReasonNonNumeric Reason = "NON_NUMERIC"
	ReasonLength     Reason = "LENGTH_NEQ_12"
	ReasonChecksum   Reason = "CHECKSUM_FAIL"
)

// Precedence is the reporting order of Aadhaar reasons. Validate checks them
// in this order and the first failing rule wins.
var Precedence = [...]Reason{ReasonMissing, ReasonNonNumeric, ReasonLength, ReasonChecksum}

// Category maps the reason onto its reporting category.
func (r Reason) Category() validators.Category {
	return validators.Categorize(r, Precedence[:])
}

// Class returns the kind of non-validity the reason represents.
func (r Reason) Class() validators.Class {
	switch r {
	case ReasonNone:
		return validators.ClassNone
	case ReasonMissing:
		return validators.ClassAbsent
	case ReasonNonNumeric:
		return validators.ClassMalformed
	case ReasonLength:
		return validators.ClassStructural
	case ReasonChecksum:
		return validators.ClassSemantic
	default:
		return validators.ClassMalformed
	}
}

// Outcome is the result of validating one Aadhaar value.
type Outcome struct {
	// Cleaned holds the digits extracted from the input, valid or not.
	Cleaned string
	Valid   bool
	Reason  Reason
	Quality quality.Flags
}

// Category is shorthand for o.Reason.Category().
func (o Outcome) Category() validators.Category {
	return o.Reason.Category()
}

// Masked returns the display-safe form of the cleaned digits.
func (o Outcome) Masked() string {
	return Mask(o.Cleaned)
}

// Present reports whether any Aadhaar digits were supplied.
func (o Outcome) Present() bool {
	return o.Cleaned != ""
}

// Validator validates Aadhaar numbers. It holds no mutable state and is safe
// for concurrent use.
type Validator struct{}

// NewValidator creates an Aadhaar validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate classifies one raw value.
func (v *Validator) Validate(raw any) Outcome {
	return Validate(raw)
}

// ValidateAll validates values in order.
func (v *Validator) ValidateAll(values []any) []Outcome {
	out := make([]Outcome, len(values))
	for i, raw := range values {
		out[i] = Validate(raw)
	}
	return out
}

// Validate classifies one raw value against the Aadhaar rules.
func Validate(raw any) Outcome {
	text := normalize.Text(raw)
	digits := normalize.DigitsOf(text)
	out := Outcome{Cleaned: digits, Quality: quality.Detect(digits)}

	switch {
	case digits == "":
		out.Reason = ReasonMissing
	case hasNonNumericPayload(text):
		out.Reason = ReasonNonNumeric
	case len(digits) != Length:
		out.Reason = ReasonLength
	case !VerhoeffValid(digits):
		out.Reason = ReasonChecksum
	default:
		out.Valid = true
	}
	return out
}

// hasNonNumericPayload reports whether text carries anything besides digits,
// spaces and the separators people use to group Aadhaar digits.
func hasNonNumericPayload(text string) bool {
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ', r == '-', r == '.', r == '/':
		default:
			return true
		}
	}
	return false
}

// Mask renders digits as XXXX-XXXX-#### keeping the last four digits visible.
// Shorter inputs keep whatever digits exist. Input without digits masks to "".
func Mask(value string) string {
	digits := normalize.Digits(value)
	if digits == "" {
		return ""
	}
	last4 := digits
	if len(digits) > 4 {
		last4 = digits[len(digits)-4:]
	}
	return "XXXX-XXXX-" + last4
}
