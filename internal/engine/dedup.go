// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"errors"
	"fmt"
	"strings"
)

// DedupMode selects the key used to drop repeated records.
type DedupMode string

const (
	DedupNone          DedupMode = "None"
	DedupAadhaar       DedupMode = "Aadhaar"
	DedupMobile        DedupMode = "Mobile"
	DedupAadhaarMobile DedupMode = "Aadhaar+Mobile"
)

// ErrUnknownDedupMode is returned by ParseDedupMode for unrecognized names.
var ErrUnknownDedupMode = errors.New("unknown dedup mode")

// DedupModes lists the modes in display order.
var DedupModes = [...]DedupMode{DedupNone, DedupAadhaar, DedupMobile, DedupAadhaarMobile}

// ParseDedupMode accepts the display names and their lowercase, kebab and
// snake spellings. An empty name means DedupNone.
func ParseDedupMode(name string) (DedupMode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "+", "_", "+", " ", "").Replace(key)

	switch key {
	case "", "none", "off":
		return DedupNone, nil
	case "aadhaar":
		return DedupAadhaar, nil
	case "mobile", "phone":
		return DedupMobile, nil
	case "aadhaar+mobile", "mobile+aadhaar", "both":
		return DedupAadhaarMobile, nil
	}
	return "", fmt.Errorf("%w: %q (expected one of None, Aadhaar, Mobile, Aadhaar+Mobile)", ErrUnknownDedupMode, name)
}

func (m DedupMode) String() string {
	if m == "" {
		return string(DedupNone)
	}
	return string(m)
}

// key returns the dedup key of a record. The second result is false when the
// mode does not deduplicate.
func (m DedupMode) key(r *RowRecord) (string, bool) {
	switch m {
	case DedupAadhaar:
		return r.Aadhaar.Cleaned, true
	case DedupMobile:
		return r.Mobile.E164, true
	case DedupAadhaarMobile:
		return r.Aadhaar.Cleaned + "\x00" + r.Mobile.E164, true
	default:
		return "", false
	}
}

// dedup keeps the first record for every key, in input order, and returns the
// survivors with the number dropped.
func dedup(records []RowRecord, mode DedupMode) ([]RowRecord, int) {
	if _, ok := mode.key(&RowRecord{}); !ok {
		return records, 0
	}

	seen := make(map[string]struct{}, len(records))
	kept := make([]RowRecord, 0, len(records))
	for i := range records {
		k, _ := mode.key(&records[i])
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, records[i])
	}
	return kept, len(records) - len(kept)
}
