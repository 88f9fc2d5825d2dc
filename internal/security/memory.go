// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package security

import "fmt"

// Redacted is what a SecureString prints as.
const Redacted = "[REDACTED]"

// SecureString holds an unmasked identifier. It prints, formats and
// marshals as Redacted; the raw value is only available through Reveal.
//
// Clear zeroes the internal buffer. Go may still hold copies elsewhere (every
// Reveal creates one), so this narrows exposure rather than guaranteeing it.
type SecureString struct {
	data []byte
}

// NewSecureString copies s into a mutable buffer.
func NewSecureString(s string) *SecureString {
	data := make([]byte, len(s))
	copy(data, s)
	return &SecureString{data: data}
}

// Reveal returns the raw value. A nil or cleared SecureString reveals "".
func (ss *SecureString) Reveal() string {
	if ss == nil {
		return ""
	}
	return string(ss.data)
}

// Empty reports whether there is no value to reveal.
func (ss *SecureString) Empty() bool {
	return ss == nil || len(ss.data) == 0
}

// String implements fmt.Stringer without exposing the value.
func (ss *SecureString) String() string {
	if ss.Empty() {
		return ""
	}
	return Redacted
}

// Format keeps %v, %s, %q and %#v from exposing the value.
func (ss *SecureString) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprintf(f, "%q", ss.String())
	default:
		fmt.Fprint(f, ss.String())
	}
}

// MarshalJSON keeps encoders from exposing the value.
func (ss *SecureString) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", ss.String())), nil
}

// MarshalYAML keeps YAML encoders from exposing the value.
func (ss *SecureString) MarshalYAML() (interface{}, error) {
	return ss.String(), nil
}

// Clear overwrites the buffer with zeros and releases it.
func (ss *SecureString) Clear() {
	if ss == nil || ss.data == nil {
		return
	}
	for i := range ss.data {
		ss.data[i] = 0
	}
	ss.data = nil
}

// ClearAll clears every non-nil value.
func ClearAll(values ...*SecureString) {
	for _, v := range values {
		v.Clear()
	}
}
