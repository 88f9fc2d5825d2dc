// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"strings"

	"pii-quality/internal/normalize"
	"pii-quality/internal/observability"
	"pii-quality/internal/validators"
)

// DefaultRegion is used when neither the caller nor the row supplies one.
const DefaultRegion = "IN"

// Reason is the mobile-number failure taxonomy. The zero value means valid.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonMissing   Reason = "MISSING"
	ReasonParseFail Reason = "PARSE_FAIL"
	ReasonNotValid  Reason = "NOT_VALID"
	ReasonNotMobile Reason = "NOT_MOBILE_TYPE"
)

// Precedence is the reporting order of mobile reasons.
var Precedence = [...]Reason{ReasonMissing, ReasonParseFail, ReasonNotValid, ReasonNotMobile}

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
	case ReasonParseFail:
		return validators.ClassMalformed
	case ReasonNotValid:
		return validators.ClassSemantic
	case ReasonNotMobile:
		return validators.ClassClassification
	default:
		return validators.ClassMalformed
	}
}

// Outcome is the result of validating one phone value.
type Outcome struct {
	// Input is the normalized text that was handed to the parser.
	Input string
	// E164 is the canonical form, set only for valid numbers.
	E164   string
	Valid  bool
	Reason Reason
	Region string
	Type   LineType
}

// Category is shorthand for o.Reason.Category().
func (o Outcome) Category() validators.Category {
	return o.Reason.Category()
}

// Masked returns the display-safe form of the canonical number.
func (o Outcome) Masked() string {
	return Mask(o.E164)
}

// Supplied reports whether any phone text was present in the input.
func (o Outcome) Supplied() bool {
	return o.Input != ""
}

// Validator validates mobile numbers through a Parser.
type Validator struct {
	parser        Parser
	defaultRegion string

	// Observability
	observer *observability.StandardObserver
}

// NewValidator creates a mobile validator. A nil parser selects
// libphonenumber; an empty default region selects DefaultRegion.
func NewValidator(parser Parser, defaultRegion string) *Validator {
	if parser == nil {
		parser = NewLibPhoneNumber()
	}
	defaultRegion = normalizeRegion(defaultRegion)
	if defaultRegion == "" {
		defaultRegion = DefaultRegion
	}
	return &Validator{parser: parser, defaultRegion: defaultRegion}
}

// SetObserver sets the observability component
func (v *Validator) SetObserver(observer *observability.StandardObserver) {
	v.observer = observer
}

// DefaultRegion returns the region used when a row carries none.
func (v *Validator) DefaultRegion() string {
	return v.defaultRegion
}

// Validate classifies one raw value. region overrides the default region for
// this value when non-empty.
func (v *Validator) Validate(raw any, region string) Outcome {
	text := normalize.Text(raw)
	out := Outcome{Input: text}
	if text == "" {
		out.Reason = ReasonMissing
		return out
	}

	region = normalizeRegion(region)
	if region == "" {
		region = v.defaultRegion
	}

	v.classify(&out, region)
	return out
}

// classify runs the parser contract. A panicking parser is contained and
// reported as PARSE_FAIL so one bad value never aborts a batch.
func (v *Validator) classify(out *Outcome, region string) {
	defer func() {
		if r := recover(); r != nil {
			*out = Outcome{Input: out.Input, Reason: ReasonParseFail}
			if v.observer != nil && v.observer.DebugObserver != nil {
				v.observer.DebugObserver.LogDetail("mobile_validator", "parser panic recovered")
			}
		}
	}()

	num, err := v.parser.Parse(out.Input, region)
	if err != nil {
		out.Reason = ReasonParseFail
		return
	}
	if !v.parser.IsPossible(num) || !v.parser.IsValid(num) {
		out.Reason = ReasonNotValid
		return
	}

	out.Type = v.parser.LineType(num)
	if !out.Type.AcceptsMobile() {
		out.Reason = ReasonNotMobile
		return
	}

	out.E164 = v.parser.E164(num)
	out.Region = v.parser.Region(num)
	if out.Region == "" {
		out.Region = region
	}
	out.Valid = true
}

func normalizeRegion(region string) string {
	return strings.ToUpper(normalize.Text(region))
}
