// SPDX-License-Identifier: MIT
// Package tcsp: construction, validation and derived views of a Problem.

package tcsp

import (
	"sort"

	"github.com/katalvlaran/tcsp/stp"
)

// NewProblem returns an empty problem over n time points.
func NewProblem(n int) (*Problem, error) {
	if n < 1 {
		return nil, structural(-1, ErrNoPoints)
	}

	return &Problem{Points: n}, nil
}

// AddSlot appends a slot on (i, j). bounds lists the candidates as flat
// pairs: l1, r1, l2, r2, ... The slot is validated before it is stored.
func (p *Problem) AddSlot(i, j int, bounds ...int64) error {
	if len(bounds)%2 != 0 {
		return structural(len(p.Slots), ErrIntervalMismatch)
	}
	s := Slot{I: i, J: j, Intervals: make([]Interval, 0, len(bounds)/2)}
	for k := 0; k < len(bounds); k += 2 {
		s.Intervals = append(s.Intervals, Interval{I: i, J: j, L: bounds[k], R: bounds[k+1]})
	}
	if err := p.validateSlot(len(p.Slots), s); err != nil {
		return err
	}
	p.Slots = append(p.Slots, s)

	return nil
}

// validBound reports whether v may be written into a distance graph.
func validBound(v int64) bool {
	return v >= -int64(stp.MaxFinite) && v <= int64(stp.MaxFinite)
}

func (p *Problem) validateSlot(idx int, s Slot) error {
	if s.I < 0 || s.I >= p.Points || s.J < 0 || s.J >= p.Points {
		return structural(idx, ErrPointOutOfRange)
	}
	if s.I == s.J {
		return structural(idx, ErrSelfConstraint)
	}
	if len(s.Intervals) == 0 {
		return structural(idx, ErrEmptySlot)
	}
	for _, iv := range s.Intervals {
		if iv.I != s.I || iv.J != s.J {
			return structural(idx, ErrIntervalMismatch)
		}
		if !validBound(iv.L) || !validBound(iv.R) {
			return structural(idx, ErrBoundOutOfRange)
		}
	}

	return nil
}

// Validate checks the whole problem. The first offending slot is reported as
// a *StructuralError wrapping one of the package sentinels.
// Complexity: O(M + total intervals).
func (p *Problem) Validate(opts ...ValidateOption) error {
	var cfg validateOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	if p.Points < 1 {
		return structural(-1, ErrNoPoints)
	}

	var seen map[[2]int]struct{}
	if cfg.strictPairs {
		seen = make(map[[2]int]struct{}, len(p.Slots))
	}
	for idx, s := range p.Slots {
		if err := p.validateSlot(idx, s); err != nil {
			return err
		}
		if seen == nil {
			continue
		}
		key := [2]int{s.I, s.J}
		if s.J < s.I {
			key = [2]int{s.J, s.I}
		}
		if _, dup := seen[key]; dup {
			return structural(idx, ErrDuplicatePair)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// InitialDistanceGraph builds the unconstrained graph the search starts from.
func (p *Problem) InitialDistanceGraph() (*stp.Graph, error) {
	if p.Points < 1 {
		return nil, structural(-1, ErrNoPoints)
	}

	return stp.New(p.Points)
}

// IntervalCount returns the total number of candidate intervals.
func (p *Problem) IntervalCount() int {
	total := 0
	for _, s := range p.Slots {
		total += len(s.Intervals)
	}

	return total
}

// ScenarioSpace returns the number of full assignments (the product of the
// candidate counts), saturating at the largest int.
func (p *Problem) ScenarioSpace() int {
	const maxInt = int(^uint(0) >> 1)
	space := 1
	for _, s := range p.Slots {
		k := len(s.Intervals)
		if k == 0 {
			return 0
		}
		if space > maxInt/k {
			return maxInt
		}
		space *= k
	}

	return space
}

// Order returns the slot indices in the order the policy visits them.
// Unknown policies fall back to OrderIndex.
func (p *Problem) Order(policy OrderPolicy) []int {
	order := make([]int, len(p.Slots))
	for i := range order {
		order[i] = i
	}
	if policy == OrderFewestIntervals {
		sort.SliceStable(order, func(a, b int) bool {
			return len(p.Slots[order[a]].Intervals) < len(p.Slots[order[b]].Intervals)
		})
	}

	return order
}

// ParseOrderPolicy maps "index" / "fewest" onto an OrderPolicy.
func ParseOrderPolicy(name string) (OrderPolicy, error) {
	switch name {
	case "", "index":
		return OrderIndex, nil
	case "fewest", "fewest-intervals":
		return OrderFewestIntervals, nil
	}

	return OrderIndex, ErrUnknownOrder
}
