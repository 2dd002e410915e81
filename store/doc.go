// SPDX-License-Identifier: MIT

// Package store persists search runs and their solutions in SQLite
// (modernc.org/sqlite, no cgo). Each run gets a random UUID; solutions are
// stored per run with their choice vector and earliest schedule as JSON.
package store
