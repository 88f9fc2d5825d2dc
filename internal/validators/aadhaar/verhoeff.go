// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aadhaar

import (
	"errors"
	"fmt"
)

// ErrNotDigits is returned by CheckDigit for a body containing non-digits.
var ErrNotDigits = errors.New("verhoeff input must contain only digits")

// Verhoeff dihedral group D5 multiplication table.
var verhoeffD = [10][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
	{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
	{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
	{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
	{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
	{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
	{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
	{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
	{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
}

// Verhoeff position permutation table.
var verhoeffP = [8][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 5, 7, 6, 2, 8, 3, 0, 9, 4},
	{5, 8, 0, 3, 7, 9, 6, 1, 4, 2},
	{8, 9, 1, 6, 0, 4, 3, 5, 2, 7},
	{9, 4, 5, 3, 1, 2, 6, 8, 7, 0},
	{4, 2, 8, 6, 5, 7, 3, 9, 0, 1},
	{2, 7, 9, 3, 8, 0, 6, 4, 1, 5},
	{7, 0, 4, 6, 9, 1, 3, 2, 5, 8},
}

// Verhoeff multiplicative inverse table.
var verhoeffInv = [10]int{0, 4, 3, 2, 1, 5, 6, 7, 8, 9}

// VerhoeffValid reports whether number, check digit included, satisfies the
// Verhoeff checksum. Strings with non-digits and the empty string are invalid.
func VerhoeffValid(number string) bool {
	if number == "" {
		return false
	}
	c := 0
	for i := 0; i < len(number); i++ {
		d := int(number[len(number)-1-i]) - '0'
		if d < 0 || d > 9 {
			return false
		}
		c = verhoeffD[c][verhoeffP[i%8][d]]
	}
	return c == 0
}

// CheckDigit computes the Verhoeff check digit to append to body.
func CheckDigit(body string) (byte, error) {
	c := 0
	for i := 0; i < len(body); i++ {
		d := int(body[len(body)-1-i]) - '0'
		if d < 0 || d > 9 {
			return 0, fmt.Errorf("%w: %q", ErrNotDigits, body)
		}
		c = verhoeffD[c][verhoeffP[(i+1)%8][d]]
	}
	return byte('0' + verhoeffInv[c]), nil
}

// WithCheckDigit returns body followed by its Verhoeff check digit.
func WithCheckDigit(body string) (string, error) {
	d, err := CheckDigit(body)
	if err != nil {
		return "", err
	}
	return body + string(d), nil
}
