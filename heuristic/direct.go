// SPDX-License-Identifier: MIT
// Package heuristic: methods over schedules.

package heuristic

import (
	"math"
	"sort"
)

// window is a closed range of values a point may take under one candidate.
type window struct{ lo, hi int64 }

// event is a window endpoint for the sweep.
type event struct {
	at    int64
	delta int // +1 opens, −1 closes
}

// sweep finds where the most windows overlap. It returns how many windows
// miss that place and a value inside it; ok is false when ws is empty.
// Opening events sort before closing ones at equal values, so touching
// closed windows count as overlapping.
func sweep(ws []window) (missed int, at int64, ok bool) {
	if len(ws) == 0 {
		return 0, 0, false
	}
	ev := make([]event, 0, 2*len(ws))
	for _, w := range ws {
		ev = append(ev, event{at: w.lo, delta: 1}, event{at: w.hi, delta: -1})
	}
	sort.Slice(ev, func(a, b int) bool {
		if ev[a].at != ev[b].at {
			return ev[a].at < ev[b].at
		}
		return ev[a].delta > ev[b].delta
	})

	cover, top, topIdx := 0, -1, 0
	for k, e := range ev {
		cover += e.delta
		if cover > top {
			top, topIdx = cover, k
		}
	}
	at = ev[topIdx].at
	if topIdx+1 < len(ev) {
		at += (ev[topIdx+1].at - at) / 2
	}

	return len(ws) - top, at, true
}

// randomSchedule draws x with x[0] = 0 and the rest in [−Range, Range].
func (r *runner) randomSchedule() []int64 {
	x := make([]int64, r.p.Points)
	for i := 1; i < len(x); i++ {
		x[i] = r.rng.Int63n(2*r.opts.Range+1) - r.opts.Range
	}

	return x
}

// walkSchedule moves one point of x (never point 0) to the value where most
// of its candidate windows overlap, the other points held fixed. With
// PickBest the point with the largest drop in missed windows moves; ties go
// to the later point.
func (r *runner) walkSchedule(x []int64) {
	n := len(x)
	if n < 2 {
		return
	}
	windows := make([][]window, n)
	missed := make([]int, n)
	for _, s := range r.p.Slots {
		for _, iv := range s.Intervals {
			// x[J] − x[I] ∈ [L, R] with the other end fixed.
			windows[s.I] = append(windows[s.I], window{lo: x[s.J] - iv.R, hi: x[s.J] - iv.L})
			windows[s.J] = append(windows[s.J], window{lo: x[s.I] + iv.L, hi: x[s.I] + iv.R})
			if !iv.Contains(x[s.J] - x[s.I]) {
				missed[s.I]++
				missed[s.J]++
			}
		}
	}

	if !r.opts.PickBest {
		v := 1 + r.rng.Intn(n-1)
		if _, at, ok := sweep(windows[v]); ok {
			x[v] = at
		}
		return
	}

	bestGain, bestPoint := math.MinInt, 0
	var bestAt int64
	for v := 1; v < n; v++ {
		left, at, ok := sweep(windows[v])
		if !ok {
			continue
		}
		if gain := missed[v] - left; gain >= bestGain {
			bestGain, bestPoint, bestAt = gain, v, at
		}
	}
	if bestPoint > 0 {
		x[bestPoint] = bestAt
	}
}

func (r *runner) directRandom() error {
	for it := 0; it < r.opts.Iterations; it++ {
		r.res.Iterations++
		x := r.randomSchedule()
		v, err := r.score(x)
		if err != nil {
			return err
		}
		if r.offer(x, nil, v) {
			return nil
		}
	}

	return nil
}

func (r *runner) directWalk() error {
	for it := 0; it < r.opts.Iterations; it++ {
		r.res.Iterations++
		x := r.randomSchedule()
		for f := 0; f < r.opts.Flips; f++ {
			v, err := r.score(x)
			if err != nil {
				return err
			}
			if r.offer(x, nil, v) {
				return nil
			}
			r.walkSchedule(x)
		}
	}

	return nil
}

func (r *runner) directGenetic() error {
	eval := func(x []int64) (ranked[int64], error) {
		v, err := r.score(x)
		if err != nil {
			return ranked[int64]{}, err
		}
		solved := r.offer(x, nil, v)

		return ranked[int64]{genes: x, unsat: len(v), solved: solved}, nil
	}

	return genetic(r, r.randomSchedule, eval, r.walkSchedule)
}
