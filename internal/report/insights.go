// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"sort"

	"pii-quality/internal/validators"
	"pii-quality/internal/validators/aadhaar"
)

// DefaultTopN is how many entries insight tables show.
const DefaultTopN = 10

// Count is one bucket of an insight table.
type Count struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Insights are the ranked breakdowns shown alongside the summary.
type Insights struct {
	AadhaarReasons []Count `json:"top_invalid_aadhaar_reasons" yaml:"top_invalid_aadhaar_reasons"`
	MobileRegions  []Count `json:"top_mobile_regions" yaml:"top_mobile_regions"`
}

// BuildInsights computes both insight tables with n entries each.
func BuildInsights(rows []MaskedRow, n int) Insights {
	return Insights{
		AadhaarReasons: TopReasons(rows, n),
		MobileRegions:  TopRegions(rows, n),
	}
}

// TopReasons ranks the reasons of supplied-but-invalid Aadhaar values. Equal
// counts are listed in reason precedence order.
func TopReasons(rows []MaskedRow, n int) []Count {
	counts := map[string]int{}
	for _, r := range rows {
		if r.AadhaarValid || r.AadhaarReason == string(aadhaar.ReasonMissing) {
			continue
		}
		key := r.AadhaarReason
		if key == "" {
			key = "OTHER"
		}
		counts[key]++
	}
	return rank(counts, n, func(a, b string) bool {
		ra := validators.Rank(aadhaar.Reason(a), aadhaar.Precedence[:])
		rb := validators.Rank(aadhaar.Reason(b), aadhaar.Precedence[:])
		if ra != rb {
			return ra < rb
		}
		return a < b
	})
}

// TopRegions ranks mobile regions. Rows without a region count as UNKNOWN;
// the table is empty when no row has a region at all.
func TopRegions(rows []MaskedRow, n int) []Count {
	counts := map[string]int{}
	seen := false
	for _, r := range rows {
		key := r.MobileRegion
		if key == "" {
			key = "UNKNOWN"
		} else {
			seen = true
		}
		counts[key]++
	}
	if !seen {
		return []Count{}
	}
	return rank(counts, n, func(a, b string) bool { return a < b })
}

// rank orders buckets by count, breaking ties with keyLess.
func rank(counts map[string]int, n int, keyLess func(a, b string) bool) []Count {
	out := make([]Count, 0, len(counts))
	for k, c := range counts {
		out = append(out, Count{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return keyLess(out[i].Key, out[j].Key)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
