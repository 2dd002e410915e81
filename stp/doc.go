// SPDX-License-Identifier: MIT

// Package stp implements Simple Temporal Problems over an integer distance graph.
//
// Overview:
//
//   - A Graph is an N×N matrix D of Bound values where D[i][j] is the tightest
//     known upper bound on time(j) − time(i). Point 0 is the reference point.
//   - A constraint "time(j) − time(i) ∈ [a, b]" is encoded as D[i][j] = b and
//     D[j][i] = −a (SetEdge), or intersected into the current cells (ConstrainEdge).
//   - Tighten runs Floyd–Warshall in place (k → i → j), turning D into its own
//     shortest-path closure. The STP is consistent iff no diagonal entry is negative.
//
// Numeric policy:
//
//   - Inf (math.MaxInt64) means "no bound". NegInf is its mirror and only appears
//     as a reported value (e.g. an unbounded earliest time) or as a saturated sum.
//   - All additions saturate (Bound.Add); an Inf operand never yields a candidate,
//     so sentinel + sentinel can never wrap into a small or negative number.
//   - Input bounds must lie in [−MaxFinite, MaxFinite], except that an upper
//     bound may be Inf and a lower bound NegInf. The reversed infinities would
//     encode an empty interval with no negative cycle, so they are rejected.
//
// Consistency oracle:
//
//   - Check(g)         tightens a copy and reports Consistent / Inconsistent.
//   - CheckInPlace(g)  tightens g itself; search uses it at every node to keep
//     the closure on the shared graph.
//   - EarliestTime, LatestTime, MinimalNetworkBounds read a tightened graph.
//   - EarliestSolution derives one concrete witness assignment.
//
// Complexity:
//
//   - Tighten: O(N³) time, O(1) extra space.
//   - Check:   O(N²) copy + O(N³).
//
// Errors (sentinel):
//
//   - ErrBadSize, ErrOutOfRange, ErrSelfEdge, ErrBoundOutOfRange,
//     ErrSizeMismatch, ErrNilGraph, ErrInconsistent.
package stp
