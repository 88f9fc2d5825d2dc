// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct{ info CheckInfo }

func (p fakeProvider) GetCheckInfo() CheckInfo { return p.info }

func newTestSystem(buf *bytes.Buffer) *System {
	h := NewSystemWithWriter(buf, true)
	h.RegisterProvider(fakeProvider{CheckInfo{
		Name:             "ZETA",
		ShortDescription: "last check",
	}})
	h.RegisterProvider(fakeProvider{CheckInfo{
		Name:                "ALPHA",
		ShortDescription:    "first check",
		DetailedDescription: "Checks alpha values.",
		Patterns:            []string{"AAAA"},
		Reasons: []ReasonInfo{
			{Code: "MISSING", Class: "ABSENT", Description: "nothing there"},
			{Code: "BAD", Class: "MALFORMED", Description: "wrong shape"},
		},
		Masking:  []string{"XX-##"},
		Examples: []string{"piiq validate a.csv"},
	}})
	return h
}

func TestCheckNames(t *testing.T) {
	var buf bytes.Buffer
	h := newTestSystem(&buf)

	assert.Equal(t, []string{"ALPHA", "ZETA"}, h.CheckNames())
}

func TestShowChecksHelp(t *testing.T) {
	var buf bytes.Buffer
	h := newTestSystem(&buf)

	h.ShowChecksHelp()

	out := buf.String()
	assert.Contains(t, out, "Available Checks")
	assert.Contains(t, out, "ALPHA")
	assert.Contains(t, out, "first check")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("ALPHA")), bytes.Index(buf.Bytes(), []byte("ZETA")))
}

func TestShowCheckHelp(t *testing.T) {
	var buf bytes.Buffer
	h := newTestSystem(&buf)

	assert.True(t, h.ShowCheckHelp("alpha"))

	out := buf.String()
	assert.Contains(t, out, "ALPHA Check")
	assert.Contains(t, out, "Checks alpha values.")
	assert.Contains(t, out, "ACCEPTED INPUT:")
	assert.Contains(t, out, "1. MISSING")
	assert.Contains(t, out, "2. BAD")
	assert.Contains(t, out, "XX-##")
	assert.Contains(t, out, "piiq validate a.csv")
	assert.NotContains(t, out, "QUALITY SIGNALS")
}

func TestShowCheckHelp_Unknown(t *testing.T) {
	var buf bytes.Buffer
	h := newTestSystem(&buf)

	assert.False(t, h.ShowCheckHelp("nope"))
	assert.Contains(t, buf.String(), "Check 'nope' not found")
}
