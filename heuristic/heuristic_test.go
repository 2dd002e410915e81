// SPDX-License-Identifier: MIT

package heuristic_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tcsp/heuristic"
	"github.com/katalvlaran/tcsp/tcsp"
)

var allMethods = []heuristic.Method{
	heuristic.DirectRandom,
	heuristic.DirectWalk,
	heuristic.DirectGenetic,
	heuristic.MetaRandom,
	heuristic.MetaWalk,
	heuristic.MetaGenetic,
}

// mustProblem builds a problem over n points; each slot is i, j, l1, r1, ...
func mustProblem(t *testing.T, n int, slots ...[]int64) *tcsp.Problem {
	t.Helper()
	p, err := tcsp.NewProblem(n)
	require.NoError(t, err)
	for _, s := range slots {
		require.NoError(t, p.AddSlot(int(s[0]), int(s[1]), s[2:]...))
	}

	return p
}

// unsatisfiable has two slots on (0, 1) with disjoint single candidates.
func unsatisfiable(t *testing.T) *tcsp.Problem {
	t.Helper()
	return mustProblem(t, 2, []int64{0, 1, 0, 5}, []int64{0, 1, 10, 20})
}

func generated(t *testing.T, seed int64, intervals int) *tcsp.Problem {
	t.Helper()
	p, _, err := tcsp.Generate(tcsp.GenerateOptions{
		Variables: 5, Constraints: 6, Intervals: intervals, Seed: seed, Horizon: 40, Spread: 4,
	})
	require.NoError(t, err)

	return p
}

func TestSolve_DirectWalkFindsWindow(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 2, []int64{0, 1, 5, 7})
	for _, opt := range []heuristic.Option{heuristic.WithSeed(3), heuristic.WithRandomPoint()} {
		res, err := heuristic.Solve(p, heuristic.DirectWalk,
			heuristic.WithIterations(1), heuristic.WithFlips(2), heuristic.WithRange(0), opt)
		require.NoError(t, err)
		assert.True(t, res.Solved)
		assert.Empty(t, res.Violations)
		assert.Equal(t, int64(0), res.Witness[0])
		assert.Equal(t, int64(6), res.Witness[1])
		assert.Equal(t, 1, res.Iterations)
		assert.Equal(t, 2, res.Evaluations)
		assert.Nil(t, res.Choices)
	}
}

func TestSolve_DirectRandomZeroRange(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 3, []int64{0, 1, -1, 1}, []int64{1, 2, 0, 0})
	res, err := heuristic.Solve(p, heuristic.DirectRandom, heuristic.WithRange(0))
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, []int64{0, 0, 0}, res.Witness)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 1, res.Evaluations)
	assert.Equal(t, heuristic.DirectRandom, res.Method)
}

func TestSolve_UnsatisfiableExhaustsBudget(t *testing.T) {
	t.Parallel()

	p := unsatisfiable(t)
	for _, m := range allMethods {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			t.Parallel()
			res, err := heuristic.Solve(p, m,
				heuristic.WithIterations(3), heuristic.WithFlips(2), heuristic.WithPoolSize(4))
			require.NoError(t, err)
			assert.False(t, res.Solved)
			assert.NotEmpty(t, res.Violations)
			assert.Equal(t, 3, res.Iterations)
			assert.Len(t, res.Witness, 2)
			if m >= heuristic.MetaRandom {
				assert.Len(t, res.Choices, 2)
			}
		})
	}
}

func TestSolve_NoSlotsSolvedAtOnce(t *testing.T) {
	t.Parallel()

	p := mustProblem(t, 3)
	for _, m := range allMethods {
		res, err := heuristic.Solve(p, m)
		require.NoError(t, err, m)
		assert.True(t, res.Solved, m)
		assert.Len(t, res.Witness, 3, m)
		assert.Equal(t, int64(0), res.Witness[0], m)
		assert.Equal(t, 1, res.Evaluations, m)
	}
}

func TestSolve_MetaRandomSingleCandidates(t *testing.T) {
	t.Parallel()

	p := generated(t, 5, 1)
	res, err := heuristic.Solve(p, heuristic.MetaRandom, heuristic.WithIterations(1))
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, make([]int, len(p.Slots)), res.Choices)

	v, err := p.Verify(res.Witness)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSolve_MetaSearchSolvesGenerated(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 3; seed++ {
		p := generated(t, seed, 2)
		for _, m := range []heuristic.Method{heuristic.MetaWalk, heuristic.MetaGenetic} {
			res, err := heuristic.Solve(p, m,
				heuristic.WithSeed(seed), heuristic.WithIterations(200),
				heuristic.WithPoolSize(30), heuristic.WithMutation(0.5))
			require.NoError(t, err)
			require.True(t, res.Solved, "%s seed %d", m, seed)
			assert.Len(t, res.Choices, len(p.Slots))

			v, err := p.Verify(res.Witness)
			require.NoError(t, err)
			assert.Empty(t, v)
		}
	}
}

func TestSolve_ViolationsMatchVerify(t *testing.T) {
	t.Parallel()

	p := generated(t, 9, 3)
	for _, m := range allMethods {
		res, err := heuristic.Solve(p, m,
			heuristic.WithIterations(4), heuristic.WithFlips(3), heuristic.WithPoolSize(5))
		require.NoError(t, err, m)
		require.Len(t, res.Witness, p.Points, m)

		v, err := p.Verify(res.Witness)
		require.NoError(t, err)
		assert.Equal(t, v, res.Violations, m)
		assert.Equal(t, len(v) == 0, res.Solved, m)
		assert.Positive(t, res.Evaluations, m)
	}
}

func TestSolve_SameSeedSameResult(t *testing.T) {
	t.Parallel()

	p := generated(t, 11, 3)
	for _, m := range allMethods {
		opts := []heuristic.Option{
			heuristic.WithSeed(7), heuristic.WithIterations(5), heuristic.WithFlips(4), heuristic.WithPoolSize(6),
		}
		a, err := heuristic.Solve(p, m, opts...)
		require.NoError(t, err)
		b, err := heuristic.Solve(p, m, opts...)
		require.NoError(t, err)

		assert.Equal(t, a.Witness, b.Witness, m)
		assert.Equal(t, a.Choices, b.Choices, m)
		assert.Equal(t, a.Violations, b.Violations, m)
		assert.Equal(t, a.Iterations, b.Iterations, m)
		assert.Equal(t, a.Evaluations, b.Evaluations, m)
	}
}

func TestSolve_Errors(t *testing.T) {
	t.Parallel()

	p := unsatisfiable(t)

	_, err := heuristic.Solve(nil, heuristic.DirectRandom)
	assert.ErrorIs(t, err, heuristic.ErrNilProblem)

	_, err = heuristic.Solve(p, heuristic.Method(99))
	assert.ErrorIs(t, err, heuristic.ErrUnknownMethod)

	bad := map[string]heuristic.Option{
		"iterations": heuristic.WithIterations(0),
		"flips":      heuristic.WithFlips(heuristic.MaxFlips + 1),
		"pool":       heuristic.WithPoolSize(0),
		"retain":     heuristic.WithRetain(1.5),
		"mutation":   heuristic.WithMutation(-0.1),
		"range":      heuristic.WithRange(-1),
	}
	for name, opt := range bad {
		_, err = heuristic.Solve(p, heuristic.DirectWalk, opt)
		assert.ErrorIs(t, err, heuristic.ErrBadOptions, name)
	}

	_, err = heuristic.Solve(&tcsp.Problem{}, heuristic.MetaWalk)
	assert.ErrorIs(t, err, tcsp.ErrNoPoints)

	broken := &tcsp.Problem{Points: 2, Slots: []tcsp.Slot{{I: 0, J: 1}}}
	_, err = heuristic.Solve(broken, heuristic.MetaWalk)
	var se *tcsp.StructuralError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, tcsp.ErrEmptySlot)
}

func TestSolve_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, m := range allMethods {
		res, err := heuristic.Solve(unsatisfiable(t), m, heuristic.WithContext(ctx))
		assert.ErrorIs(t, err, context.Canceled, m)
		require.NotNil(t, res, m)
		assert.False(t, res.Solved, m)
		assert.Zero(t, res.Evaluations, m)
	}
}

func TestSolve_LogsRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := heuristic.Solve(unsatisfiable(t), heuristic.MetaRandom,
		heuristic.WithIterations(2), heuristic.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"heuristic finished"`)
	assert.Contains(t, buf.String(), `"method":"meta-random"`)
	assert.Contains(t, buf.String(), `"msg":"improved"`)
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	names := heuristic.MethodNames()
	require.Len(t, names, len(allMethods))
	for i, name := range names {
		m, err := heuristic.ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, allMethods[i], m)
		assert.Equal(t, name, m.String())
	}

	_, err := heuristic.ParseMethod("simulated-annealing")
	assert.ErrorIs(t, err, heuristic.ErrUnknownMethod)
	assert.Equal(t, "Method(42)", heuristic.Method(42).String())
}
