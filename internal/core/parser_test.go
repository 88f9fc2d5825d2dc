// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"strings"

	"pii-quality/internal/validators/phone"
)

// plusParser accepts any +-prefixed number as a valid Indian mobile.
type plusParser struct{}

func (plusParser) Parse(text, _ string) (phone.ParsedNumber, error) {
	if !strings.HasPrefix(text, "+") {
		return nil, errors.New("no country code")
	}
	return text, nil
}

func (plusParser) IsPossible(phone.ParsedNumber) bool         { return true }
func (plusParser) IsValid(phone.ParsedNumber) bool            { return true }
func (plusParser) LineType(phone.ParsedNumber) phone.LineType { return phone.LineTypeMobile }
func (plusParser) E164(n phone.ParsedNumber) string           { return n.(string) }
func (plusParser) Region(phone.ParsedNumber) string           { return "IN" }
