// SPDX-License-Identifier: MIT
// Package tcsp: witness verification.

package tcsp

import (
	"fmt"
	"io"
	"math"
)

// Violation is one slot that a schedule fails: x[J] − x[I] lies in none of
// the slot's candidates.
type Violation struct {
	Slot int   // index into Problem.Slots
	I, J int   // constrained points
	Xi   int64 // x[I]
	Xj   int64 // x[J]
	Diff int64 // x[J] − x[I], saturated on overflow
}

// String implements fmt.Stringer.
func (v Violation) String() string {
	return fmt.Sprintf("slot %d: x[%d]=%d, x[%d]=%d, diff %d outside every candidate",
		v.Slot, v.I, v.Xi, v.J, v.Xj, v.Diff)
}

// diff returns b − a, saturating at the int64 limits.
func diff(a, b int64) int64 {
	d := b - a
	switch {
	case a < 0 && b >= 0 && d < 0:
		return math.MaxInt64
	case a > 0 && b < 0 && d > 0:
		return math.MinInt64
	}

	return d
}

// Verify checks the schedule x (one value per time point) against every slot
// and returns the violated ones in slot order. An empty result means x
// satisfies the problem. x[0] is not required to be 0; only differences matter.
// Complexity: O(total intervals).
func (p *Problem) Verify(x []int64) ([]Violation, error) {
	if len(x) != p.Points {
		return nil, fmt.Errorf("Verify: %w: got %d values for %d points", ErrWitnessSize, len(x), p.Points)
	}

	var out []Violation
	for idx, s := range p.Slots {
		if s.I < 0 || s.I >= p.Points || s.J < 0 || s.J >= p.Points {
			return nil, structural(idx, ErrPointOutOfRange)
		}
		d := diff(x[s.I], x[s.J])
		ok := false
		for _, iv := range s.Intervals {
			if iv.Contains(d) {
				ok = true
				break
			}
		}
		if !ok {
			out = append(out, Violation{Slot: idx, I: s.I, J: s.J, Xi: x[s.I], Xj: x[s.J], Diff: d})
		}
	}

	return out, nil
}

// ReadWitness reads exactly n integers from r.
func ReadWitness(r io.Reader, n int) ([]int64, error) {
	tr := newTokenReader(r)
	x := make([]int64, 0, min(n, maxPrealloc))
	for len(x) < n {
		v, err := tr.next(-1)
		if err != nil {
			return nil, err
		}
		x = append(x, v)
	}
	if err := tr.expectEOF(); err != nil {
		return nil, err
	}

	return x, nil
}
