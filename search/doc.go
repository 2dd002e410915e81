// SPDX-License-Identifier: MIT

// Package search enumerates the consistent scenarios of a TCSP.
//
// A scenario picks exactly one candidate interval per slot such that the
// induced STP has no negative cycle. Solve walks slots depth-first over one
// shared stp.Graph:
//
//	for each candidate c of slot order[d]:
//	    snapshot ← D
//	    D ← D ∩ c         (stp.Graph.ConstrainEdge)
//	    tighten D          (O(n³))
//	    if negative cycle: restore, next c
//	    else recurse into d+1, then restore
//
// Depth d == M is terminal: the prefix is a full scenario and is emitted.
// Enumeration continues after each solution unless the stop policy fires
// (WithMaxSolutions, WithFirstOnly, or a hook returning ErrStop).
//
// Every frame restores its snapshot in a deferred call, so the shared graph
// is back to its initial state whichever way Solve returns.
//
// Options:
//
//   - WithContext(ctx)          cooperative cancellation, checked at every node.
//   - WithOnSolution(fn)        called per solution; ErrStop ends the search cleanly.
//   - WithOnNode(fn)            called after every tightening (search trace).
//   - WithMaxSolutions(n)       stop after n solutions (0 = all).
//   - WithFirstOnly()           shorthand for WithMaxSolutions(1).
//   - WithOrder(policy)         slot order (tcsp.OrderIndex / tcsp.OrderFewestIntervals).
//   - WithoutCollect()          do not keep solutions in Result (stream only).
//   - WithGraph(g)              search over the caller's graph instead of a fresh one.
//   - WithLogger(l)             slog logger (default: discard).
//   - WithTracer(t)             OpenTelemetry tracer (default: global provider).
//
// Complexity: O(K^M · N³) time in the worst case (K candidates per slot),
// O(M · N²) memory for the per-depth snapshots.
//
// The search is sequential. A *Result is never shared with other goroutines
// while Solve runs.
package search
