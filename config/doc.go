// SPDX-License-Identifier: MIT

// Package config loads the tcsp command configuration.
//
// Priority: environment (TCSP_*) > file (YAML, with JSON fallback) > defaults.
// A missing file is not an error; the defaults apply. The merged result is
// checked with struct-tag validation before it is returned.
package config
