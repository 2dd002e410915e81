// SPDX-License-Identifier: MIT
// Package tcsp: core types and validation options.

package tcsp

import (
	"fmt"
	"strings"
)

// Interval is one candidate [L, R] for time(J) − time(I). Bounds are inclusive.
// L > R is legal: it is an infeasible candidate the consistency oracle rejects.
type Interval struct {
	I, J int
	L, R int64
}

// Contains reports whether d lies in [L, R].
func (iv Interval) Contains(d int64) bool { return d >= iv.L && d <= iv.R }

// String renders "x[J]-x[I] in [L, R]".
func (iv Interval) String() string {
	return fmt.Sprintf("x[%d]-x[%d] in [%d, %d]", iv.J, iv.I, iv.L, iv.R)
}

// Slot constrains one pair of time points with an ordered list of candidates.
// The order of Intervals defines exploration order only.
type Slot struct {
	I, J      int
	Intervals []Interval
}

// String renders "(I,J) {[l r] ...}".
func (s Slot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d,%d) {", s.I, s.J)
	for k, iv := range s.Intervals {
		if k > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "[%d %d]", iv.L, iv.R)
	}
	sb.WriteByte('}')

	return sb.String()
}

// Problem is a TCSP instance: Points time points (0 is the reference) and
// the slots constraining them.
type Problem struct {
	Points int
	Slots  []Slot
}

// OrderPolicy selects the order in which the search visits slots.
// Ordering changes which solution is found first, never the solution set.
type OrderPolicy int

const (
	// OrderIndex visits slots in declaration order.
	OrderIndex OrderPolicy = iota
	// OrderFewestIntervals visits slots with fewer candidates first
	// (stable: ties keep declaration order).
	OrderFewestIntervals
)

// String implements fmt.Stringer; the names round-trip through ParseOrderPolicy.
func (o OrderPolicy) String() string {
	switch o {
	case OrderIndex:
		return "index"
	case OrderFewestIntervals:
		return "fewest"
	}
	return fmt.Sprintf("OrderPolicy(%d)", int(o))
}

// ValidateOption configures Validate.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	strictPairs bool
}

// WithStrictPairs rejects two slots on the same unordered pair with
// ErrDuplicatePair. Without it duplicates are allowed and both must hold.
func WithStrictPairs() ValidateOption {
	return func(o *validateOptions) { o.strictPairs = true }
}
