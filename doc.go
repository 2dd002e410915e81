// SPDX-License-Identifier: MIT

// Package tcsp is the module root of a Temporal Constraint Satisfaction
// Problem solver: an STP kernel (Floyd–Warshall tightening over a distance
// graph) driving a backtracking search over per-constraint interval choices.
//
// Packages:
//
//	stp/     — distance graph, saturating Bound arithmetic, tightening,
//	           consistency oracle, earliest/latest/minimal-network queries
//	tcsp/    — Problem / Slot / Interval, validation, text loader and writer,
//	           witness verifier, seeded instance generator, slot orders
//	search/  — depth-first scenario enumeration with snapshot restore,
//	           stop policies, hooks, opt-in backjumping, Prometheus metrics,
//	           OpenTelemetry span
//	heuristic/ — randomised local search for one schedule over schedules or
//	           interval selections (random, walk and genetic strategies)
//	config/  — YAML/JSON + TCSP_* environment configuration
//	store/   — SQLite run history
//	cmd/tcsp — command line: solve, stp, heuristic, verify, generate, runs
//
// Quick example (x1 − x0 ∈ [1,5] ∪ [10,20], three points):
//
//	p, _ := tcsp.NewProblem(3)
//	_ = p.AddSlot(0, 1, 1, 5, 10, 20)
//	res, _ := search.Solve(p)
//	// res.Verdict == search.Satisfiable, len(res.Solutions) == 2,
//	// earliest schedules [0 1 0] and [0 10 0].
//
// Kernels never log and never panic on user input; infeasibility is a
// value (stp.Inconsistent, search.Unsatisfiable), not an error.
package tcsp
