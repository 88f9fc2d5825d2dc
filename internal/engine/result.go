// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import "pii-quality/internal/validators/phone"

// Counters summarize a processed batch.
type Counters struct {
	TotalRows          int
	ProcessedRows      int
	DistinctAfterDedup int
	AadhaarValid       int
	AadhaarInvalid     int
	MobileValid        int
	MobileInvalid      int
	OverallValid       int
	EmptyRowsDropped   int
	DuplicatesDropped  int
}

// Reconciles reports whether the drop counters account for every input row.
func (c Counters) Reconciles() bool {
	return c.TotalRows == c.ProcessedRows+c.EmptyRowsDropped &&
		c.ProcessedRows == c.DistinctAfterDedup+c.DuplicatesDropped
}

// Result is the outcome of processing a batch.
type Result struct {
	// Records holds the surviving rows in input order.
	Records  []RowRecord
	Counters Counters
	Dedup    DedupMode
}

// Valid returns the overall-valid records.
func (r *Result) Valid() []RowRecord {
	return r.filter(func(rec *RowRecord) bool { return rec.OverallValid })
}

// InvalidAadhaar returns records whose Aadhaar was supplied but is not valid.
func (r *Result) InvalidAadhaar() []RowRecord {
	return r.filter(aadhaarInvalid)
}

// InvalidMobile returns records whose mobile was supplied but is not valid.
func (r *Result) InvalidMobile() []RowRecord {
	return r.filter(mobileInvalid)
}

func (r *Result) filter(keep func(*RowRecord) bool) []RowRecord {
	out := make([]RowRecord, 0)
	for i := range r.Records {
		if keep(&r.Records[i]) {
			out = append(out, r.Records[i])
		}
	}
	return out
}

func aadhaarInvalid(rec *RowRecord) bool {
	return rec.Aadhaar.Present() && !rec.Aadhaar.Valid
}

func mobileInvalid(rec *RowRecord) bool {
	return rec.Mobile.Reason != phone.ReasonMissing && !rec.Mobile.Valid
}

func count(records []RowRecord, total, empty, dups int) Counters {
	c := Counters{
		TotalRows:          total,
		ProcessedRows:      total - empty,
		DistinctAfterDedup: len(records),
		EmptyRowsDropped:   empty,
		DuplicatesDropped:  dups,
	}
	for i := range records {
		rec := &records[i]
		if rec.Aadhaar.Valid {
			c.AadhaarValid++
		} else if aadhaarInvalid(rec) {
			c.AadhaarInvalid++
		}
		if rec.Mobile.Valid {
			c.MobileValid++
		} else if mobileInvalid(rec) {
			c.MobileInvalid++
		}
		if rec.OverallValid {
			c.OverallValid++
		}
	}
	return c
}
