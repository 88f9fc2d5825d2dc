// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testReason string

var testPrecedence = []testReason{"MISSING", "BROKEN"}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryValid, Categorize(testReason(""), testPrecedence))
	assert.Equal(t, Category("MISSING"), Categorize(testReason("MISSING"), testPrecedence))
	assert.Equal(t, Category("BROKEN"), Categorize(testReason("BROKEN"), testPrecedence))
	assert.Equal(t, CategoryInvalid, Categorize(testReason("SOMETHING_NEW"), testPrecedence))
	assert.Equal(t, CategoryInvalid, Categorize(testReason("SOMETHING_NEW"), nil))
}

func TestRank(t *testing.T) {
	assert.Equal(t, 0, Rank(testReason("MISSING"), testPrecedence))
	assert.Equal(t, 1, Rank(testReason("BROKEN"), testPrecedence))
	assert.Equal(t, 2, Rank(testReason(""), testPrecedence))
	assert.Equal(t, 2, Rank(testReason("OTHER"), testPrecedence))
}
