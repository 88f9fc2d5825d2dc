// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "piiq "+Version) {
		t.Errorf("unexpected info %q", info)
	}
	if Tool() != "piiq "+Short() {
		t.Errorf("unexpected tool string %q", Tool())
	}
	if len(Full()) != 5 {
		t.Errorf("expected 5 fields, got %d", len(Full()))
	}
}
