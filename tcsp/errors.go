// SPDX-License-Identifier: MIT

package tcsp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPoints indicates a problem declared with fewer than one time point.
	ErrNoPoints = errors.New("tcsp: problem needs at least one time point")

	// ErrPointOutOfRange indicates a slot endpoint outside 0..N-1.
	ErrPointOutOfRange = errors.New("tcsp: time point out of range")

	// ErrSelfConstraint indicates a slot with I == J.
	ErrSelfConstraint = errors.New("tcsp: slot endpoints must differ")

	// ErrEmptySlot indicates a slot with no candidate interval.
	ErrEmptySlot = errors.New("tcsp: slot has no candidate interval")

	// ErrIntervalMismatch indicates an interval whose endpoints disagree with
	// its slot, or a bound list that does not come in (l, r) pairs.
	ErrIntervalMismatch = errors.New("tcsp: interval does not match its slot")

	// ErrBoundOutOfRange indicates a bound outside [-stp.MaxFinite, stp.MaxFinite].
	ErrBoundOutOfRange = errors.New("tcsp: bound out of range")

	// ErrDuplicatePair indicates two slots on the same unordered pair
	// (reported only under WithStrictPairs).
	ErrDuplicatePair = errors.New("tcsp: duplicate slot for time point pair")

	// ErrCountMismatch indicates declared counts that the input does not honour.
	ErrCountMismatch = errors.New("tcsp: declared count does not match input")

	// ErrSyntax indicates a token that is not an integer.
	ErrSyntax = errors.New("tcsp: malformed token")

	// ErrWitnessSize indicates a schedule whose length differs from N.
	ErrWitnessSize = errors.New("tcsp: witness length does not match point count")

	// ErrBadGenerateOptions indicates unusable generator parameters.
	ErrBadGenerateOptions = errors.New("tcsp: invalid generate options")

	// ErrUnknownOrder indicates an unrecognised slot order name.
	ErrUnknownOrder = errors.New("tcsp: unknown slot order")
)

// StructuralError reports malformed input: bad counts, bad indices or bad
// bounds. It aborts loading before any search starts.
//
// Slot is the offending slot index, or -1 when the error is not tied to a slot.
// Token is the 1-based input token position for parse errors, or 0.
type StructuralError struct {
	Slot  int
	Token int
	Err   error
}

// Error implements error.
func (e *StructuralError) Error() string {
	msg := strings.TrimPrefix(e.Err.Error(), "tcsp: ")
	switch {
	case e.Slot >= 0 && e.Token > 0:
		return fmt.Sprintf("tcsp: slot %d (token %d): %s", e.Slot, e.Token, msg)
	case e.Slot >= 0:
		return fmt.Sprintf("tcsp: slot %d: %s", e.Slot, msg)
	case e.Token > 0:
		return fmt.Sprintf("tcsp: token %d: %s", e.Token, msg)
	}
	return "tcsp: " + msg
}

// Unwrap exposes the sentinel for errors.Is.
func (e *StructuralError) Unwrap() error { return e.Err }

// structural builds a *StructuralError not tied to an input position.
func structural(slot int, err error) error {
	return &StructuralError{Slot: slot, Err: err}
}
