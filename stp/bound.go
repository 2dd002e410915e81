// SPDX-License-Identifier: MIT
// Package stp: saturating bound arithmetic.
//
// Purpose:
//   - Give the distance matrix a real infinity instead of a "large enough" constant.
//   - Make every addition in the tightening kernel overflow-free by construction.

package stp

import (
	"math"
	"strconv"
)

// Bound is an upper bound on a time difference: a finite int64 or ±infinity.
type Bound int64

const (
	// Inf is "no bound". It dominates every sum it takes part in.
	Inf Bound = math.MaxInt64

	// NegInf mirrors Inf so that Neg is total. It marks an unbounded lower
	// bound in reports and a negatively saturated sum inside the kernel.
	NegInf Bound = -Inf

	// MaxFinite is the largest accepted finite input magnitude. With 2^40 per
	// edge, any path of fewer than 2^22 edges stays exact; longer sums saturate.
	MaxFinite Bound = 1 << 40
)

// IsInf reports whether b is +Inf.
func (b Bound) IsInf() bool { return b == Inf }

// IsNegInf reports whether b is NegInf.
func (b Bound) IsNegInf() bool { return b == NegInf }

// IsFinite reports whether b is neither Inf nor NegInf.
func (b Bound) IsFinite() bool { return b != Inf && b != NegInf }

// Add returns b + o with saturation.
//
// Rules:
//   - Inf + x = Inf (absent edge: no path, whatever x is);
//   - NegInf + finite = NegInf;
//   - finite overflow clamps to Inf upward and NegInf downward.
//
// Complexity: O(1).
func (b Bound) Add(o Bound) Bound {
	if b == Inf || o == Inf {
		return Inf
	}
	if b == NegInf || o == NegInf {
		return NegInf
	}
	s := b + o
	// Signed overflow happens only when both operands share a sign the sum lacks.
	if b > 0 && o > 0 && s < 0 {
		return Inf
	}
	if b < 0 && o < 0 && s >= 0 {
		return NegInf
	}
	if s == math.MinInt64 {
		return NegInf
	}

	return s
}

// Neg returns -b; Inf and NegInf swap.
func (b Bound) Neg() Bound { return -b }

// Min returns the smaller of b and o.
func (b Bound) Min(o Bound) Bound {
	if o < b {
		return o
	}
	return b
}

// String renders finite values in decimal and infinities as "inf"/"-inf".
func (b Bound) String() string {
	switch b {
	case Inf:
		return "inf"
	case NegInf:
		return "-inf"
	}
	return strconv.FormatInt(int64(b), 10)
}

// ValidInput reports whether b is a finite value within [-MaxFinite, MaxFinite].
// Infinities are not accepted here; the edge writers admit Inf only as an
// upper bound and NegInf only as a lower bound.
func ValidInput(b Bound) bool {
	return b >= -MaxFinite && b <= MaxFinite
}
