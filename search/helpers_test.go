// SPDX-License-Identifier: MIT
// Package search_test holds shared fixtures for the search tests.

package search_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcsp/search"
	"github.com/katalvlaran/tcsp/stp"
	"github.com/katalvlaran/tcsp/tcsp"
)

// mustProblem builds an n-point problem from (i, j, bounds...) rows.
func mustProblem(tb testing.TB, n int, rows ...[]int64) *tcsp.Problem {
	tb.Helper()
	p, err := tcsp.NewProblem(n)
	require.NoError(tb, err)
	for _, r := range rows {
		require.NoError(tb, p.AddSlot(int(r[0]), int(r[1]), r[2:]...))
	}

	return p
}

// mustSolve runs Solve and fails on error.
func mustSolve(tb testing.TB, p *tcsp.Problem, opts ...search.Option) *search.Result {
	tb.Helper()
	res, err := search.Solve(p, opts...)
	require.NoError(tb, err)

	return res
}

// choiceKeys renders every solution's choice vector, sorted, so two runs can
// be compared as sets.
func choiceKeys(res *search.Result) []string {
	keys := make([]string, 0, len(res.Solutions))
	for _, s := range res.Solutions {
		keys = append(keys, fmt.Sprint(s.Choices))
	}
	sort.Strings(keys)

	return keys
}

// bruteForce enumerates the full cartesian product of candidates and keeps
// the combinations whose STP is consistent. Reference oracle for Solve.
func bruteForce(tb testing.TB, p *tcsp.Problem, base *stp.Graph) []string {
	tb.Helper()
	keys := []string{}
	pick := make([]int, len(p.Slots))

	var rec func(s int)
	rec = func(s int) {
		if s == len(p.Slots) {
			g := base.Clone()
			for k, c := range pick {
				iv := p.Slots[k].Intervals[c]
				require.NoError(tb, g.ConstrainEdge(iv.I, iv.J, stp.Bound(iv.R), stp.Bound(iv.L)))
			}
			if stp.IsConsistent(g) {
				keys = append(keys, fmt.Sprint(pick))
			}
			return
		}
		for c := range p.Slots[s].Intervals {
			pick[s] = c
			rec(s + 1)
		}
	}
	rec(0)
	sort.Strings(keys)

	return keys
}
