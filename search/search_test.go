// SPDX-License-Identifier: MIT

package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcsp/search"
	"github.com/katalvlaran/tcsp/stp"
	"github.com/katalvlaran/tcsp/tcsp"
)

func TestSolve_TwoCandidatesOnePair(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 3, []int64{0, 1, 1, 5, 10, 20})
	res := mustSolve(t, p)

	assert.Equal(t, search.Satisfiable, res.Verdict)
	require.Len(t, res.Solutions, 2)
	assert.Equal(t, []int64{0, 1, 0}, res.Solutions[0].Earliest)
	assert.Equal(t, []int64{0, 10, 0}, res.Solutions[1].Earliest)
	assert.Equal(t, []int{0}, res.Solutions[0].Choices)
	assert.Equal(t, []int{1}, res.Solutions[1].Choices)
	assert.Equal(t, tcsp.Interval{I: 0, J: 1, L: 10, R: 20}, res.Solutions[1].Intervals[0])

	lo, hi, err := stp.MinimalNetworkBounds(res.Solutions[1].Graph, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, stp.Bound(10), lo)
	assert.Equal(t, stp.Bound(20), hi)

	earliest, err := stp.EarliestTime(res.Solutions[0].Graph, 2)
	require.NoError(t, err)
	assert.Equal(t, stp.NegInf, earliest, "point 2 has no lower bound in the network")

	assert.Equal(t, 2, res.Stats.Nodes)
	assert.Zero(t, res.Stats.DeadEnds)
	assert.Equal(t, 3, res.Stats.Tightenings)
	assert.Equal(t, 1, res.Stats.MaxDepth)
	assert.False(t, res.Stats.Stopped)
}

func TestSolve_InvertedCandidates(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 2,
		[]int64{0, 1, 5, 1, 9, 3},
		[]int64{0, 1, 7, 2},
	)
	res := mustSolve(t, p)

	assert.Equal(t, search.Unsatisfiable, res.Verdict)
	assert.Empty(t, res.Solutions)
	assert.Equal(t, 2, res.Stats.Nodes)
	assert.Equal(t, 2, res.Stats.DeadEnds)
	assert.Zero(t, res.Stats.MaxDepth)
}

func TestSolve_ExactlyOneCombination(t *testing.T) {
	t.Parallel()

	// x2 − x0 ∈ [30, 31] is fixed on the base graph; only [10,11] + [20,21] reaches it.
	base, err := stp.New(3)
	require.NoError(t, err)
	require.NoError(t, base.SetEdge(0, 2, 31, 30))

	p := mustProblem(t, 3,
		[]int64{0, 1, 0, 1, 10, 11},
		[]int64{1, 2, 0, 1, 20, 21},
	)
	res := mustSolve(t, p, search.WithGraph(base))

	require.Len(t, res.Solutions, 1)
	assert.Equal(t, []int{1, 1}, res.Solutions[0].Choices)
	assert.Equal(t, bruteForce(t, p, base), choiceKeys(res))

	x := res.Solutions[0].Earliest
	assert.Equal(t, []int64{0, 10, 30}, x)
}

func TestSolve_DuplicatePairsIntersect(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 2,
		[]int64{0, 1, 0, 1, 10, 11},
		[]int64{0, 1, 5, 6, 10, 12},
	)
	res := mustSolve(t, p)

	require.Len(t, res.Solutions, 1)
	assert.Equal(t, []int{1, 1}, res.Solutions[0].Choices)
	lo, hi, err := stp.MinimalNetworkBounds(res.Solutions[0].Graph, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, stp.Bound(10), lo)
	assert.Equal(t, stp.Bound(11), hi)
}

func TestSolve_NoSlots(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 3)
	res := mustSolve(t, p)

	assert.Equal(t, search.Satisfiable, res.Verdict)
	require.Len(t, res.Solutions, 1)
	assert.Empty(t, res.Solutions[0].Choices)
	assert.Equal(t, []int64{0, 0, 0}, res.Solutions[0].Earliest)
	assert.Zero(t, res.Stats.Nodes)
}

func TestSolve_InconsistentRoot(t *testing.T) {
	t.Parallel()

	base, err := stp.New(2)
	require.NoError(t, err)
	require.NoError(t, base.SetEdge(0, 1, 1, 5))

	p := mustProblem(t, 2, []int64{0, 1, 0, 10})
	res := mustSolve(t, p, search.WithGraph(base))

	assert.Equal(t, search.Unsatisfiable, res.Verdict)
	assert.Zero(t, res.Stats.Nodes)
	assert.Equal(t, 1, res.Stats.Tightenings)
}

func TestSolve_RestoresSharedGraph(t *testing.T) {
	t.Parallel()

	p, _, err := tcsp.Generate(tcsp.GenerateOptions{Variables: 5, Constraints: 7, Intervals: 3, Seed: 11})
	require.NoError(t, err)

	g, err := p.InitialDistanceGraph()
	require.NoError(t, err)
	mustSolve(t, p, search.WithGraph(g))

	for i := 0; i < g.Size(); i++ {
		for j := 0; j < g.Size(); j++ {
			v, err := g.At(i, j)
			require.NoError(t, err)
			if i == j {
				assert.Equal(t, stp.Bound(0), v)
				continue
			}
			assert.Equal(t, stp.Inf, v, "D[%d][%d] leaked", i, j)
		}
	}

	// An untightened caller graph comes back untightened.
	base, err := stp.New(5)
	require.NoError(t, err)
	require.NoError(t, base.SetEdge(0, 1, 500, -500))
	require.NoError(t, base.SetEdge(1, 2, 500, -500))
	before := base.Clone()
	mustSolve(t, p, search.WithGraph(base))
	assert.True(t, before.Equal(base))
}

func TestSolve_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 12; seed++ {
		// Tight spread and a small horizon make many combinations inconsistent.
		p, _, err := tcsp.Generate(tcsp.GenerateOptions{
			Variables: 5, Constraints: 6, Intervals: 3, Seed: seed, Horizon: 20, Spread: 3,
		})
		require.NoError(t, err)
		base, err := p.InitialDistanceGraph()
		require.NoError(t, err)

		res := mustSolve(t, p)
		assert.Equal(t, bruteForce(t, p, base), choiceKeys(res), "seed %d", seed)
		assert.Equal(t, search.Satisfiable, res.Verdict, "generated instances are satisfiable")
	}
}

func TestSolve_OrderDoesNotChangeSolutionSet(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 8; seed++ {
		p, _, err := tcsp.Generate(tcsp.GenerateOptions{Variables: 6, Constraints: 7, Intervals: 2, Seed: seed, Horizon: 30, Spread: 4})
		require.NoError(t, err)
		// Vary the candidate counts so the two orders actually differ.
		p.Slots[0].Intervals = p.Slots[0].Intervals[:1]

		byIndex := mustSolve(t, p, search.WithOrder(tcsp.OrderIndex))
		byFewest := mustSolve(t, p, search.WithOrder(tcsp.OrderFewestIntervals))
		assert.Equal(t, choiceKeys(byIndex), choiceKeys(byFewest), "seed %d", seed)
	}
}

func TestSolve_EarliestPassesVerify(t *testing.T) {
	t.Parallel()

	p, _, err := tcsp.Generate(tcsp.GenerateOptions{Variables: 6, Constraints: 9, Intervals: 3, Seed: 5})
	require.NoError(t, err)
	res := mustSolve(t, p)
	require.NotEmpty(t, res.Solutions)

	for _, s := range res.Solutions {
		v, err := p.Verify(s.Earliest)
		require.NoError(t, err)
		assert.Empty(t, v, "solution %d", s.Index)
		assert.Zero(t, s.Earliest[0])
	}
}

func TestSolve_StopPolicies(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 3,
		[]int64{0, 1, 1, 2, 3, 4, 5, 6},
		[]int64{1, 2, 1, 2, 3, 4},
	)

	all := mustSolve(t, p)
	require.Len(t, all.Solutions, 6)

	first := mustSolve(t, p, search.WithFirstOnly())
	require.Len(t, first.Solutions, 1)
	assert.True(t, first.Stats.Stopped)
	assert.Equal(t, all.Solutions[0].Choices, first.Solutions[0].Choices)

	four := mustSolve(t, p, search.WithMaxSolutions(4))
	assert.Len(t, four.Solutions, 4)
	assert.True(t, four.Stats.Stopped)

	seen := 0
	stopped := mustSolve(t, p, search.WithOnSolution(func(*search.Solution) error {
		seen++
		if seen == 3 {
			return search.ErrStop
		}
		return nil
	}))
	assert.Equal(t, 3, seen)
	assert.Len(t, stopped.Solutions, 3)
	assert.True(t, stopped.Stats.Stopped)
}

func TestSolve_StreamWithoutCollect(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 3, []int64{0, 1, 1, 2, 3, 4}, []int64{1, 2, 0, 0, 1, 1})
	var got [][]int
	res := mustSolve(t, p, search.WithoutCollect(), search.WithOnSolution(func(s *search.Solution) error {
		got = append(got, s.Choices)
		return nil
	}))

	assert.Empty(t, res.Solutions)
	assert.Equal(t, 4, res.Stats.Solutions)
	assert.Equal(t, search.Satisfiable, res.Verdict)
	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, got)
}

func TestSolve_HookErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	p := mustProblem(t, 2, []int64{0, 1, 1, 2, 3, 4})

	g, err := p.InitialDistanceGraph()
	require.NoError(t, err)
	res, err := search.Solve(p, search.WithGraph(g), search.WithOnSolution(func(*search.Solution) error { return boom }))
	require.ErrorIs(t, err, boom)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Stats.Solutions)

	fresh, err := stp.New(2)
	require.NoError(t, err)
	assert.True(t, fresh.Equal(g), "graph restored after hook error")

	_, err = search.Solve(p, search.WithOnNode(func(search.Node) error { return boom }))
	require.ErrorIs(t, err, boom)
}

func TestSolve_OnNodeTrace(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 2,
		[]int64{0, 1, 0, 5},
		[]int64{0, 1, 7, 9, 2, 3},
	)
	var nodes []search.Node
	res := mustSolve(t, p, search.WithOnNode(func(n search.Node) error {
		nodes = append(nodes, n)
		return nil
	}))

	require.Len(t, nodes, res.Stats.Nodes)
	require.Len(t, nodes, 3)
	assert.Equal(t, search.Node{Depth: 0, Slot: 0, Candidate: 0, Interval: p.Slots[0].Intervals[0], Consistent: true}, nodes[0])
	assert.False(t, nodes[1].Consistent)
	assert.Equal(t, 1, nodes[1].Depth)
	assert.True(t, nodes[2].Consistent)
	assert.Equal(t, 1, res.Stats.DeadEnds)
}

func TestSolve_Canceled(t *testing.T) {
	t.Parallel()

	p, _, err := tcsp.Generate(tcsp.GenerateOptions{Variables: 6, Constraints: 10, Intervals: 3, Seed: 2})
	require.NoError(t, err)
	g, err := p.InitialDistanceGraph()
	require.NoError(t, err)
	before := g.Clone()

	ctx, cancel := context.WithCancel(context.Background())
	res, err := search.Solve(p, search.WithContext(ctx), search.WithGraph(g), search.WithOnNode(func(n search.Node) error {
		if n.Depth == 3 {
			cancel()
		}
		return nil
	}))
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.True(t, before.Equal(g))
}

func TestSolve_InputErrors(t *testing.T) {
	t.Parallel()

	_, err := search.Solve(nil)
	require.ErrorIs(t, err, search.ErrNilProblem)

	p := mustProblem(t, 2, []int64{0, 1, 0, 1})
	_, err = search.Solve(p, search.WithMaxSolutions(-1))
	require.ErrorIs(t, err, search.ErrBadMaxSolutions)

	g, err := stp.New(3)
	require.NoError(t, err)
	_, err = search.Solve(p, search.WithGraph(g))
	require.ErrorIs(t, err, search.ErrGraphSize)

	p.Slots = append(p.Slots, tcsp.Slot{I: 0, J: 5, Intervals: []tcsp.Interval{{I: 0, J: 5}}})
	_, err = search.Solve(p)
	require.ErrorIs(t, err, tcsp.ErrPointOutOfRange)
	var se *tcsp.StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Slot)
}

func TestFirst(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 3, []int64{0, 1, 1, 5, 10, 20})
	s, err := search.First(p, search.WithoutCollect())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, []int{0}, s.Choices)

	none := mustProblem(t, 2, []int64{0, 1, 3, 1})
	s, err = search.First(none)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestVerdictString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SATISFIABLE", search.Satisfiable.String())
	assert.Equal(t, "UNSATISFIABLE", search.Unsatisfiable.String())
}
