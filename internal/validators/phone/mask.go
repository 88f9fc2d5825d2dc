// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"regexp"
	"strconv"
	"strings"

	"pii-quality/internal/normalize"
)

// e164Shape matches +<1-3 digit cc><3><3><rest>. Used when the leading digits
// are not an assigned calling code.
var e164Shape = regexp.MustCompile(`^\+(\d{1,3})(\d{3})(\d{3})(\d+)$`)

// Mask renders a canonical number as +CC-XXX-XXX-#### keeping the last four
// digits. Values that do not have the canonical shape fall back to
// +CC-****-****-#### or ***-***-####. Empty or digit-free input masks to "".
func Mask(e164 string) string {
	if e164 == "" {
		return ""
	}
	digits := normalize.DigitsOf(e164)
	if digits == "" {
		return ""
	}

	if cc, rest, ok := splitCanonical(e164); ok {
		return "+" + cc + "-XXX-XXX-" + lastN(rest, 4)
	}

	if cc := leadingCountryCode(e164); cc != "" {
		return "+" + cc + "-****-****-" + lastN(digits, 4)
	}
	return "***-***-" + lastN(digits, 4)
}

// splitCanonical splits e164 into its country calling code and the digits
// after the two masked three-digit groups.
func splitCanonical(e164 string) (cc, rest string, ok bool) {
	if len(e164) < 2 || e164[0] != '+' || !normalize.IsDigits(e164[1:]) {
		return "", "", false
	}
	body := e164[1:]

	// Calling codes form a prefix code, so the shortest assigned prefix is the
	// country code.
	for n := 1; n <= 3 && n < len(body); n++ {
		code, err := strconv.Atoi(body[:n])
		if err != nil || !isCallingCode(code) {
			continue
		}
		if len(body) < n+7 {
			break
		}
		return body[:n], body[n+6:], true
	}

	m := e164Shape.FindStringSubmatch(e164)
	if m == nil {
		return "", "", false
	}
	return m[1], m[4], true
}

// leadingCountryCode returns up to three digits following a leading '+'.
func leadingCountryCode(s string) string {
	if !strings.HasPrefix(s, "+") {
		return ""
	}
	end := len(s)
	if end > 4 {
		end = 4
	}
	cc := s[1:end]
	if !normalize.IsDigits(cc) {
		return ""
	}
	return cc
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
