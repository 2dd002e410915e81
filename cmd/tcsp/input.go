// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"
)

// openInput returns the named file, or stdin for "" and "-".
func (a *app) openInput(name string) (io.ReadCloser, string, error) {
	if name == "" || name == "-" {
		return io.NopCloser(a.in), "-", nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, name, usageErr(err)
	}

	return f, name, nil
}

// argOrStdin returns args[0] when present.
func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
