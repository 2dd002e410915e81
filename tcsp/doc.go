// SPDX-License-Identifier: MIT

// Package tcsp models Temporal Constraint Satisfaction Problems.
//
// A Problem has N time points (point 0 is the reference) and M constraint
// slots. Each Slot constrains one pair (I, J) and offers an ordered list of
// candidate Intervals for time(J) − time(I). Solving means choosing one
// interval per slot so that the induced STP is consistent; see package search.
//
// This package holds the static side of the problem:
//
//   - Problem, Slot, Interval and their validation (StructuralError);
//   - InitialDistanceGraph, the empty stp.Graph every search starts from;
//   - Parse / ParseSTP / Format for the plain-text exchange format;
//   - Verify, a witness checker for concrete schedules;
//   - Generate, a deterministic generator of solvable instances;
//   - Order, the slot exploration orders.
//
// Text format (whitespace separated):
//
//	N
//	M
//	i j K  l1 r1  l2 r2 ... lK rK     (M times)
//
// STP-only format:
//
//	N
//	E
//	i j a b                            (E times)
package tcsp
