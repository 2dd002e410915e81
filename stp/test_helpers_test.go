// SPDX-License-Identifier: MIT
// Package stp_test contains shared fixtures for the stp tests.

package stp_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcsp/stp"
)

// mustNew allocates an n-point graph or fails the test.
func mustNew(tb testing.TB, n int) *stp.Graph {
	tb.Helper()
	g, err := stp.New(n)
	require.NoError(tb, err)

	return g
}

// mustSetEdge writes time(j) − time(i) ∈ [lower, upper] or fails the test.
func mustSetEdge(tb testing.TB, g *stp.Graph, i, j int, lower, upper stp.Bound) {
	tb.Helper()
	require.NoError(tb, g.SetEdge(i, j, upper, lower))
}

// mustAt reads D[i][j] or fails the test.
func mustAt(tb testing.TB, g *stp.Graph, i, j int) stp.Bound {
	tb.Helper()
	v, err := g.At(i, j)
	require.NoError(tb, err)

	return v
}

// setDirected writes a single directed cell D[i][j] = w, leaving D[j][i] alone.
// SetEdge always writes both directions, so the opposite cell is restored.
func setDirected(tb testing.TB, g *stp.Graph, i, j int, w stp.Bound) {
	tb.Helper()
	back := mustAt(tb, g, j, i)
	require.NoError(tb, g.SetEdge(i, j, w, back.Neg()))
}

// randomGraph builds a deterministic graph around a hidden schedule, so the
// result is always consistent: each edge brackets the true difference.
func randomGraph(tb testing.TB, n, edges int, seed int64) (*stp.Graph, []int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	x := make([]int64, n)
	for p := 1; p < n; p++ {
		x[p] = int64(rng.Intn(100))
	}
	g := mustNew(tb, n)
	for e := 0; e < edges; e++ {
		i, j := rng.Intn(n), rng.Intn(n)
		if i == j {
			continue
		}
		diff := x[j] - x[i]
		lo := stp.Bound(diff - int64(rng.Intn(20)))
		hi := stp.Bound(diff + int64(rng.Intn(20)))
		require.NoError(tb, g.ConstrainEdge(i, j, hi, lo))
	}

	return g, x
}
