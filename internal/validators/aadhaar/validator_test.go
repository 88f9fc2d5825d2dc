// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aadhaar

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-quality/internal/validators"
)

func TestVerhoeffValid_KnownNumbers(t *testing.T) {
	valid := []string{"234123412346", "999941057058", "499118665246", "123456789010"}
	for _, n := range valid {
		assert.True(t, VerhoeffValid(n), n)
	}

	invalid := []string{"123456789012", "234123412345", "", "12a4", "２３"}
	for _, n := range invalid {
		assert.False(t, VerhoeffValid(n), n)
	}
}

func TestCheckDigit(t *testing.T) {
	cases := map[string]byte{
		"23412341234": '6',
		"12345678901": '0',
		"00000000000": '3',
		"98765432101": '2',
	}
	for body, want := range cases {
		got, err := CheckDigit(body)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), body)
	}

	_, err := CheckDigit("12a")
	assert.ErrorIs(t, err, ErrNotDigits)
}

func TestCheckDigit_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		body := fmt.Sprintf("%011d", rng.Int63n(100_000_000_000))
		full, err := WithCheckDigit(body)
		require.NoError(t, err)
		require.Len(t, full, Length)
		assert.True(t, VerhoeffValid(full), full)
	}
}

func TestVerhoeff_DetectsSingleDigitErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		body := fmt.Sprintf("%011d", rng.Int63n(100_000_000_000))
		full, err := WithCheckDigit(body)
		require.NoError(t, err)

		for pos := 0; pos < len(full); pos++ {
			for d := byte('0'); d <= '9'; d++ {
				if full[pos] == d {
					continue
				}
				mutated := []byte(full)
				mutated[pos] = d
				assert.False(t, VerhoeffValid(string(mutated)), "%s -> %s", full, mutated)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		input   any
		cleaned string
		reason  Reason
	}{
		{"valid", "234123412346", "234123412346", ReasonNone},
		{"valid with spaces", "2341 2341 2346", "234123412346", ReasonNone},
		{"valid with hyphens", "2341-2341-2346", "234123412346", ReasonNone},
		{"valid numeric cell", int64(234123412346), "234123412346", ReasonNone},
		{"valid float cell", float64(499118665246), "499118665246", ReasonNone},
		{"wrong checksum", "123456789012", "123456789012", ReasonChecksum},
		{"short", "1234", "1234", ReasonLength},
		{"eleven digits", "23412341234", "23412341234", ReasonLength},
		{"empty", "", "", ReasonMissing},
		{"nil", nil, "", ReasonMissing},
		{"nan marker", "nan", "", ReasonMissing},
		{"letters only", "not given", "", ReasonMissing},
		{"letters mixed in", "ABCD23412341", "23412341", ReasonNonNumeric},
		{"letter O typo", "23412341234O", "23412341234", ReasonNonNumeric},
		{"symbol", "2341#2341#2346", "234123412346", ReasonNonNumeric},
	}
	v := NewValidator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := v.Validate(tc.input)
			assert.Equal(t, tc.cleaned, out.Cleaned)
			assert.Equal(t, tc.reason, out.Reason)
			assert.Equal(t, tc.reason == ReasonNone, out.Valid)
		})
	}
}

func TestValidate_QualityFlagsAreAdvisory(t *testing.T) {
	out := Validate("000000000003")
	assert.True(t, out.Valid)
	assert.True(t, out.Quality.AdjacentRepetition)

	out = Validate("123456789010")
	assert.True(t, out.Valid)
	assert.True(t, out.Quality.Improbable)
}

func TestValidateAll_PreservesOrder(t *testing.T) {
	outs := NewValidator().ValidateAll([]any{"1234", nil, "234123412346"})
	require.Len(t, outs, 3)
	assert.Equal(t, ReasonLength, outs[0].Reason)
	assert.Equal(t, ReasonMissing, outs[1].Reason)
	assert.True(t, outs[2].Valid)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "XXXX-XXXX-2346", Mask("234123412346"))
	assert.Equal(t, "XXXX-XXXX-2346", Mask("2341-2341-2346"))
	assert.Equal(t, "XXXX-XXXX-9012", Mask("123456789012"))
	assert.Equal(t, "XXXX-XXXX-1234", Mask("1234"))
	assert.Equal(t, "XXXX-XXXX-12", Mask("12"))
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "", Mask("abc"))

	assert.Equal(t, "XXXX-XXXX-2346", Validate("234123412346").Masked())
}

func TestReasonCategoryAndClass(t *testing.T) {
	assert.Equal(t, validators.CategoryValid, ReasonNone.Category())
	for _, r := range Precedence {
		assert.Equal(t, validators.Category(r), r.Category())
	}
	assert.Equal(t, validators.CategoryInvalid, Reason("UNEXPECTED").Category())

	assert.Equal(t, validators.ClassNone, ReasonNone.Class())
	assert.Equal(t, validators.ClassAbsent, ReasonMissing.Class())
	assert.Equal(t, validators.ClassMalformed, ReasonNonNumeric.Class())
	assert.Equal(t, validators.ClassStructural, ReasonLength.Class())
	assert.Equal(t, validators.ClassSemantic, ReasonChecksum.Class())
}

func TestPrecedenceOrder(t *testing.T) {
	assert.Equal(t, [...]Reason{"MISSING", "NON_NUMERIC", "LENGTH_NEQ_12", "CHECKSUM_FAIL"}, Precedence)
}
