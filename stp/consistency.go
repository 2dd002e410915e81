// SPDX-License-Identifier: MIT
// Package stp: consistency oracle and queries on tightened graphs.
//
// Infeasibility is a value here (Inconsistent), never an error. Errors are
// reserved for misuse: nil graphs and out-of-range points.

package stp

// Verdict is the answer of the consistency oracle.
type Verdict int

const (
	// Consistent means the tightened graph has no negative cycle.
	Consistent Verdict = iota
	// Inconsistent means some diagonal entry went negative.
	Inconsistent
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	if v == Consistent {
		return "CONSISTENT"
	}
	return "INCONSISTENT"
}

// verdictOf maps the negative-cycle test onto a Verdict.
func verdictOf(g *Graph) Verdict {
	if g.HasNegativeCycle() {
		return Inconsistent
	}
	return Consistent
}

// Check tightens a copy of g and reports whether the STP is consistent.
// g itself is left untouched.
// Complexity: O(n²) copy + O(n³).
func Check(g *Graph) (Verdict, error) {
	if g == nil {
		return Inconsistent, ErrNilGraph
	}
	d := g.Clone()
	d.Tighten()

	return verdictOf(d), nil
}

// CheckInPlace tightens g itself and reports its verdict. Callers that need
// the closure afterwards (the search, presenters) use this form.
func CheckInPlace(g *Graph) (Verdict, error) {
	if g == nil {
		return Inconsistent, ErrNilGraph
	}
	g.Tighten()

	return verdictOf(g), nil
}

// IsConsistent is the boolean form of Check. A nil graph is not consistent.
func IsConsistent(g *Graph) bool {
	v, err := Check(g)
	return err == nil && v == Consistent
}

// Solve is the STP-only entry point: it returns the tightened copy of g
// (the minimal network when consistent) together with the verdict.
func Solve(g *Graph) (*Graph, Verdict, error) {
	if g == nil {
		return nil, Inconsistent, stpErrorf(opSolve, ErrNilGraph)
	}
	d := g.Clone()
	d.Tighten()

	return d, verdictOf(d), nil
}

// EarliestTime returns −D[p][0]: the earliest time of p relative to point 0.
// NegInf means p is not bounded from below; it is returned as is so callers
// can tell "unbounded" from a real 0. Reports and EarliestSolution place such
// a point at 0. g should be tightened.
func EarliestTime(g *Graph, p int) (Bound, error) {
	if g == nil {
		return 0, stpErrorf(opEarliestTime, ErrNilGraph)
	}
	if !g.inRange(p) {
		return 0, stpErrorf(opEarliestTime, ErrOutOfRange)
	}

	return g.at(p, 0).Neg(), nil
}

// LatestTime returns D[0][p]: the latest time of p relative to point 0.
// Inf means p is not bounded from above. g should be tightened.
func LatestTime(g *Graph, p int) (Bound, error) {
	if g == nil {
		return 0, stpErrorf(opLatestTime, ErrNilGraph)
	}
	if !g.inRange(p) {
		return 0, stpErrorf(opLatestTime, ErrOutOfRange)
	}

	return g.at(0, p), nil
}

// MinimalNetworkBounds returns the minimal-network interval of time(j) − time(i):
// (−D[j][i], D[i][j]). g should be tightened.
func MinimalNetworkBounds(g *Graph, i, j int) (lower, upper Bound, err error) {
	if g == nil {
		return 0, 0, stpErrorf(opMinimalNetwork, ErrNilGraph)
	}
	if !g.inRange(i) || !g.inRange(j) {
		return 0, 0, stpErrorf(opMinimalNetwork, ErrOutOfRange)
	}

	return g.at(j, i).Neg(), g.at(i, j), nil
}

// EarliestSolution derives one concrete assignment x with x[0] = 0 that
// satisfies every bound in g.
//
// Points are fixed in index order. Each point takes the earliest value allowed
// by the points fixed before it; a point with no lower bound takes 0, or its
// upper bound when that is negative. On a tightened consistent graph the
// window [lo, hi] is never empty (the minimal network is decomposable). When
// every point is bounded from below, x is exactly the earliest-time vector −D[p][0].
//
// g is tightened on a private copy; returns ErrInconsistent on a negative cycle.
// Complexity: O(n³) for the closure + O(n²) for the assignment.
func EarliestSolution(g *Graph) ([]int64, error) {
	if g == nil {
		return nil, stpErrorf(opEarliestSolution, ErrNilGraph)
	}
	d := g.Clone()
	d.Tighten()
	if d.HasNegativeCycle() {
		return nil, stpErrorf(opEarliestSolution, ErrInconsistent)
	}

	n := d.n
	x := make([]Bound, n)

	var (
		p, q   int
		lo, hi Bound
		cand   Bound
	)
	for p = 0; p < n; p++ {
		lo, hi = NegInf, Inf
		if p > 0 {
			// x[p] − x[0] ∈ [−D[p][0], D[0][p]] and likewise for every fixed q.
			for q = 0; q < p; q++ {
				if c := d.at(p, q); c != Inf {
					cand = x[q].Add(c.Neg())
					if cand > lo {
						lo = cand
					}
				}
				if c := d.at(q, p); c != Inf {
					cand = x[q].Add(c)
					if cand < hi {
						hi = cand
					}
				}
			}
		}

		switch {
		case lo != NegInf:
			x[p] = lo
		case hi < 0:
			x[p] = hi
		default:
			x[p] = 0
		}
	}

	out := make([]int64, n)
	for p = 0; p < n; p++ {
		out[p] = int64(x[p])
	}

	return out, nil
}
