// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package quality holds advisory heuristics over digit strings. The flags are
// reported next to a validation outcome and never change its validity.
package quality

// DefaultMinRun is the run length used when no explicit length is given.
const DefaultMinRun = 3

// Flags are the advisory quality signals for one digit string.
type Flags struct {
	AdjacentRepetition bool `json:"q_adjacent_repetition" yaml:"q_adjacent_repetition"`
	SequentialDigits   bool `json:"q_sequential_digits" yaml:"q_sequential_digits"`
	Improbable         bool `json:"q_improbable" yaml:"q_improbable"`
}

// Any reports whether at least one flag is raised.
func (f Flags) Any() bool {
	return f.AdjacentRepetition || f.SequentialDigits || f.Improbable
}

// Detect computes all flags for s with the default run length.
func Detect(s string) Flags {
	return Flags{
		AdjacentRepetition: HasAdjacentRepetition(s, DefaultMinRun),
		SequentialDigits:   HasSequentialDigits(s, DefaultMinRun),
		Improbable:         ImprobablePattern(s),
	}
}

// HasAdjacentRepetition reports whether some character occurs minRun or more
// times consecutively.
func HasAdjacentRepetition(s string, minRun int) bool {
	if s == "" || minRun <= 1 {
		return false
	}
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= minRun {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}

// HasSequentialDigits reports whether s contains a strictly ascending or
// descending run of digits (step +1 or -1) of at least minRun digits. Any
// non-digit byte breaks the current run.
func HasSequentialDigits(s string, minRun int) bool {
	if len(s) < minRun {
		return false
	}
	up, down := 1, 1
	for i := 1; i < len(s); i++ {
		cur, prev := int(s[i])-'0', int(s[i-1])-'0'
		if !isDigit(cur) || !isDigit(prev) {
			up, down = 1, 1
			continue
		}
		switch cur - prev {
		case 1:
			up++
			down = 1
		case -1:
			down++
			up = 1
		default:
			up, down = 1, 1
		}
		if up >= minRun || down >= minRun {
			return true
		}
	}
	return false
}

// AllSameDigit reports whether s is non-empty and every character is identical.
func AllSameDigit(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// ImprobablePattern flags a single repeated digit or a sequential run whose
// length scales with the input (between 3 and 6).
func ImprobablePattern(s string) bool {
	if s == "" {
		return false
	}
	if AllSameDigit(s) {
		return true
	}
	return HasSequentialDigits(s, clamp(len(s), 3, 6))
}

func isDigit(v int) bool {
	return v >= 0 && v <= 9
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
