// SPDX-License-Identifier: MIT

// Package heuristic searches for a TCSP witness without exhausting the
// choice tree.
//
// Every method scores a candidate schedule by the number of slots it violates
// (tcsp.Problem.Verify) and keeps the best one seen. A Result with Solved set
// carries a schedule that satisfies every slot; otherwise it carries the
// closest schedule found and its violations. Nothing is proven about
// unsolved runs: use package search for a definite answer.
//
// Two representations:
//
//   - Direct methods evolve the schedule itself. x[0] stays 0 and the other
//     points start uniformly in [−Range, Range]. A walk moves one point to the
//     middle of the place where most of its candidate windows overlap, given
//     the other points (a sweep over the window endpoints).
//   - Meta methods evolve the interval selection, one candidate index per
//     slot. A selection is scored through its STP: the tightened graph gives
//     the earliest schedule, which satisfies every slot when the selection is
//     consistent. A walk redraws the candidate of one slot that has a choice.
//
// Three strategies for each: random sampling, restarts with walks
// (Iterations × Flips), and a genetic pool (select the fittest Retain share,
// refill by one-point crossover, walk each gene with probability Mutation).
//
// Runs are reproducible: the same problem, method and options, Seed included,
// give the same Result apart from Elapsed.
package heuristic
