// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

// Field identifies one of the validated record fields.
type Field string

const (
	FieldAadhaar Field = "aadhaar"
	FieldMobile  Field = "mobile"
)

// Category is the reporting label derived from a field's failure reason.
// Besides the two constants below it carries the literal reason code.
type Category string

const (
	CategoryValid   Category = "VALID"
	CategoryInvalid Category = "INVALID"
)

// Class is the coarse kind of non-validity a reason belongs to.
type Class string

const (
	ClassNone           Class = ""
	ClassAbsent         Class = "ABSENT"
	ClassMalformed      Class = "MALFORMED"
	ClassStructural     Class = "STRUCTURAL"
	ClassSemantic       Class = "SEMANTIC"
	ClassClassification Class = "CLASSIFICATION"
)

// Categorize maps reason onto its category using the field's precedence
// list. The empty reason is VALID, a listed reason is reported unchanged and
// anything else collapses to INVALID.
func Categorize[R ~string](reason R, precedence []R) Category {
	if reason == "" {
		return CategoryValid
	}
	for _, known := range precedence {
		if known == reason {
			return Category(reason)
		}
	}
	return CategoryInvalid
}

// Rank returns the position of reason in precedence, or len(precedence) for
// the empty reason and unknown codes. Lower ranks are reported first.
func Rank[R ~string](reason R, precedence []R) int {
	for i, known := range precedence {
		if known == reason {
			return i
		}
	}
	return len(precedence)
}
