// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	exitOK       = 0
	exitNegative = 1
	exitError    = 2
)

// ExitError carries a process exit code through cobra's error return.
//
// A Silent error has already been reported on stdout (a negative verdict,
// a failed verification) and prints nothing further.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Silent suppresses the error line on stderr.
	Silent bool

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error returns a formatted error message.
func (e *ExitError) Error() string {
	if e.Wrapped != nil {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("exit %d", e.Code)
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Wrapped
}

// negative is the silent exit used for a "no" answer.
func negative() error {
	return &ExitError{Code: exitNegative, Silent: true}
}

// exitCodeOf maps an Execute error onto a process exit code.
func exitCodeOf(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return exitError
}
