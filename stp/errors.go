// SPDX-License-Identifier: MIT
// Package stp: sentinel error set.
// Algorithms return these sentinels (optionally wrapped with an operation tag)
// and tests match them via errors.Is. Nothing in this package panics on user input.

package stp

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSize is returned when a graph is requested with n <= 0 points.
	ErrBadSize = errors.New("stp: graph size must be > 0")

	// ErrOutOfRange indicates a time point index outside 0..N-1.
	ErrOutOfRange = errors.New("stp: time point out of range")

	// ErrSelfEdge indicates an edge request with i == j.
	ErrSelfEdge = errors.New("stp: edge endpoints must differ")

	// ErrBoundOutOfRange indicates a finite bound outside [-MaxFinite, MaxFinite].
	ErrBoundOutOfRange = errors.New("stp: bound out of range")

	// ErrSizeMismatch indicates two graphs of different order were combined.
	ErrSizeMismatch = errors.New("stp: graph size mismatch")

	// ErrNilGraph indicates a nil *Graph was passed.
	ErrNilGraph = errors.New("stp: graph is nil")

	// ErrInconsistent is returned by queries that need a consistent network
	// (e.g. EarliestSolution) when the graph contains a negative cycle.
	ErrInconsistent = errors.New("stp: network is inconsistent")
)

// Operation tags used for error wrapping.
const (
	opNew              = "New"
	opSetEdge          = "SetEdge"
	opConstrainEdge    = "ConstrainEdge"
	opClearEdge        = "ClearEdge"
	opCopyFrom         = "CopyFrom"
	opEarliestTime     = "EarliestTime"
	opLatestTime       = "LatestTime"
	opMinimalNetwork   = "MinimalNetworkBounds"
	opEarliestSolution = "EarliestSolution"
	opSolve            = "Solve"
)

// stpErrorf wraps err with the operation tag.
func stpErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
