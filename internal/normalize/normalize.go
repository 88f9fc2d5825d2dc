// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalize turns arbitrary cell values into cleaned text and digit
// strings. Every function here is total: dirty spreadsheet data must never make
// a validator fail.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// missingMarkers are textual renderings of "no value" produced by spreadsheet
// and dataframe exports. Compared case-insensitively.
var missingMarkers = map[string]struct{}{
	"nan": {},
}

// Text converts value into whitespace-collapsed, trimmed text. nil, NaN and
// missing markers become "". Compatibility characters (full-width digits,
// no-break spaces) are folded with NFKC before whitespace is collapsed, so
// Text(Text(x)) == Text(x).
func Text(value any) string {
	s, ok := stringify(value)
	if !ok {
		return ""
	}

	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	if _, missing := missingMarkers[strings.ToLower(s)]; missing {
		return ""
	}
	return s
}

// Digits applies Text and keeps only ASCII digits.
func Digits(value any) string {
	return DigitsOf(Text(value))
}

// DigitsOf strips every rune that is not an ASCII digit from already
// normalized text.
func DigitsOf(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// stringify renders value as text. The boolean is false for absent values.
func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case []byte:
		return string(v), true
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case bool:
		return strconv.FormatBool(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// formatFloat avoids exponent notation so 12-digit identifiers read from
// numeric cells keep all their digits.
func formatFloat(f float64, bitSize int) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize), true
}
