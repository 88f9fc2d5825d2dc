// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// LineType is the line classification reported by a Parser.
type LineType string

const (
	LineTypeNone              LineType = ""
	LineTypeFixedLine         LineType = "FIXED_LINE"
	LineTypeMobile            LineType = "MOBILE"
	LineTypeFixedLineOrMobile LineType = "FIXED_LINE_OR_MOBILE"
	LineTypeTollFree          LineType = "TOLL_FREE"
	LineTypePremiumRate       LineType = "PREMIUM_RATE"
	LineTypeSharedCost        LineType = "SHARED_COST"
	LineTypeVoIP              LineType = "VOIP"
	LineTypePersonalNumber    LineType = "PERSONAL_NUMBER"
	LineTypePager             LineType = "PAGER"
	LineTypeUAN               LineType = "UAN"
	LineTypeVoicemail         LineType = "VOICEMAIL"
	LineTypeUnknown           LineType = "UNKNOWN"
)

// AcceptsMobile reports whether the line type counts as a mobile number.
// Ambiguous fixed-line-or-mobile ranges are accepted.
func (t LineType) AcceptsMobile() bool {
	return t == LineTypeMobile || t == LineTypeFixedLineOrMobile
}

// ParsedNumber is an opaque handle produced by a Parser and only meaningful
// to the Parser that created it.
type ParsedNumber interface{}

// Parser is the phone-number grammar the validator relies on. Implementations
// must be safe for concurrent use and free of side effects.
type Parser interface {
	// Parse interprets text, using defaultRegion (ISO 3166-1 alpha-2) for
	// numbers written without a country calling code.
	Parse(text, defaultRegion string) (ParsedNumber, error)
	IsPossible(n ParsedNumber) bool
	IsValid(n ParsedNumber) bool
	LineType(n ParsedNumber) LineType
	// E164 renders the number as +<country code><national number>.
	E164(n ParsedNumber) string
	// Region returns the region the number belongs to, or "" when unknown.
	Region(n ParsedNumber) string
}

// LibPhoneNumber is the Parser backed by the Go port of Google's
// libphonenumber.
type LibPhoneNumber struct{}

// NewLibPhoneNumber returns the libphonenumber-backed Parser.
func NewLibPhoneNumber() *LibPhoneNumber {
	return &LibPhoneNumber{}
}

// Parse implements Parser.
func (LibPhoneNumber) Parse(text, defaultRegion string) (ParsedNumber, error) {
	num, err := phonenumbers.Parse(text, defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("parse phone number: %w", err)
	}
	return num, nil
}

// IsPossible implements Parser.
func (LibPhoneNumber) IsPossible(n ParsedNumber) bool {
	num, ok := n.(*phonenumbers.PhoneNumber)
	return ok && phonenumbers.IsPossibleNumber(num)
}

// IsValid implements Parser.
func (LibPhoneNumber) IsValid(n ParsedNumber) bool {
	num, ok := n.(*phonenumbers.PhoneNumber)
	return ok && phonenumbers.IsValidNumber(num)
}

// LineType implements Parser.
func (LibPhoneNumber) LineType(n ParsedNumber) LineType {
	num, ok := n.(*phonenumbers.PhoneNumber)
	if !ok {
		return LineTypeUnknown
	}
	return lineTypeOf(phonenumbers.GetNumberType(num))
}

// E164 implements Parser.
func (LibPhoneNumber) E164(n ParsedNumber) string {
	num, ok := n.(*phonenumbers.PhoneNumber)
	if !ok {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// Region implements Parser. Non-geographic and unknown numbers yield "".
func (LibPhoneNumber) Region(n ParsedNumber) string {
	num, ok := n.(*phonenumbers.PhoneNumber)
	if !ok {
		return ""
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == unknownRegion || region == nonGeoRegion {
		return ""
	}
	return region
}

const (
	unknownRegion = "ZZ"
	nonGeoRegion  = "001"
)

func lineTypeOf(t phonenumbers.PhoneNumberType) LineType {
	switch t {
	case phonenumbers.FIXED_LINE:
		return LineTypeFixedLine
	case phonenumbers.MOBILE:
		return LineTypeMobile
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return LineTypeFixedLineOrMobile
	case phonenumbers.TOLL_FREE:
		return LineTypeTollFree
	case phonenumbers.PREMIUM_RATE:
		return LineTypePremiumRate
	case phonenumbers.SHARED_COST:
		return LineTypeSharedCost
	case phonenumbers.VOIP:
		return LineTypeVoIP
	case phonenumbers.PERSONAL_NUMBER:
		return LineTypePersonalNumber
	case phonenumbers.PAGER:
		return LineTypePager
	case phonenumbers.UAN:
		return LineTypeUAN
	case phonenumbers.VOICEMAIL:
		return LineTypeVoicemail
	default:
		return LineTypeUnknown
	}
}

// isCallingCode reports whether cc is an assigned country calling code.
func isCallingCode(cc int) bool {
	return phonenumbers.GetRegionCodeForCountryCode(cc) != unknownRegion
}
