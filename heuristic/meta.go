// SPDX-License-Identifier: MIT
// Package heuristic: methods over interval selections.

package heuristic

import (
	"github.com/katalvlaran/tcsp/stp"
)

// randomSelection draws one candidate index per slot.
func (r *runner) randomSelection() []int {
	choices := make([]int, len(r.p.Slots))
	for s, slot := range r.p.Slots {
		choices[s] = r.rng.Intn(len(slot.Intervals))
	}

	return choices
}

// walkSelection redraws the candidate of one random slot that has a choice.
func (r *runner) walkSelection(choices []int) {
	open := 0
	for _, slot := range r.p.Slots {
		if len(slot.Intervals) > 1 {
			open++
		}
	}
	if open == 0 {
		return
	}
	pick := r.rng.Intn(open)
	for s, slot := range r.p.Slots {
		if len(slot.Intervals) < 2 {
			continue
		}
		if pick == 0 {
			choices[s] = r.rng.Intn(len(slot.Intervals))
			return
		}
		pick--
	}
}

// selectionSchedule tightens the STP of a selection and reads a schedule off it.
// A consistent selection yields its earliest solution, which satisfies every
// slot. An inconsistent one still yields −D[p][0] per point (0 where
// unbounded) so it can be ranked by its violations.
func (r *runner) selectionSchedule(choices []int) ([]int64, error) {
	if r.graph == nil {
		g, err := r.p.InitialDistanceGraph()
		if err != nil {
			return nil, err
		}
		r.graph = g
	}
	g := r.graph
	g.Reset()
	for s, c := range choices {
		iv := r.p.Slots[s].Intervals[c]
		if err := g.ConstrainEdge(iv.I, iv.J, stp.Bound(iv.R), stp.Bound(iv.L)); err != nil {
			return nil, err
		}
	}
	verdict, err := stp.CheckInPlace(g)
	if err != nil {
		return nil, err
	}
	if verdict == stp.Consistent {
		return stp.EarliestSolution(g)
	}

	x := make([]int64, g.Size())
	for p := range x {
		b, err := stp.EarliestTime(g, p)
		if err != nil {
			return nil, err
		}
		if b.IsFinite() {
			x[p] = int64(b)
		}
	}

	return x, nil
}

// evalSelection scores one selection and offers its schedule.
func (r *runner) evalSelection(choices []int) (ranked[int], error) {
	x, err := r.selectionSchedule(choices)
	if err != nil {
		return ranked[int]{}, err
	}
	v, err := r.score(x)
	if err != nil {
		return ranked[int]{}, err
	}
	solved := r.offer(x, choices, v)

	return ranked[int]{genes: choices, unsat: len(v), solved: solved}, nil
}

func (r *runner) metaRandom() error {
	for it := 0; it < r.opts.Iterations; it++ {
		r.res.Iterations++
		rk, err := r.evalSelection(r.randomSelection())
		if err != nil {
			return err
		}
		if rk.solved {
			return nil
		}
	}

	return nil
}

func (r *runner) metaWalk() error {
	for it := 0; it < r.opts.Iterations; it++ {
		r.res.Iterations++
		choices := r.randomSelection()
		for f := 0; f < r.opts.Flips; f++ {
			rk, err := r.evalSelection(choices)
			if err != nil {
				return err
			}
			if rk.solved {
				return nil
			}
			r.walkSelection(choices)
		}
	}

	return nil
}

func (r *runner) metaGenetic() error {
	return genetic(r, r.randomSelection, r.evalSelection, r.walkSelection)
}
