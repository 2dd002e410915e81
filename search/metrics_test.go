// SPDX-License-Identifier: MIT

package search

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/katalvlaran/tcsp/tcsp"
)

// Not parallel: the collectors are process-wide.
func TestObserve_CountsRun(t *testing.T) {
	p, err := tcsp.NewProblem(3)
	require.NoError(t, err)
	require.NoError(t, p.AddSlot(0, 1, 1, 5, 10, 20))
	require.NoError(t, p.AddSlot(0, 1, 30, 40))

	nodes := testutil.ToFloat64(searchNodes)
	dead := testutil.ToFloat64(searchDeadEnds)
	unsat := testutil.ToFloat64(searchRuns.WithLabelValues(outcomeUnsatisfiable))

	res, err := Solve(p)
	require.NoError(t, err)
	assert.Equal(t, Unsatisfiable, res.Verdict)

	assert.Equal(t, nodes+4, testutil.ToFloat64(searchNodes))
	assert.Equal(t, dead+2, testutil.ToFloat64(searchDeadEnds))
	assert.Equal(t, unsat+1, testutil.ToFloat64(searchRuns.WithLabelValues(outcomeUnsatisfiable)))
}

// Not parallel: the collectors are process-wide.
func TestObserve_CountsBackjumps(t *testing.T) {
	p, err := tcsp.NewProblem(4)
	require.NoError(t, err)
	require.NoError(t, p.AddSlot(0, 1, 0, 0, 100, 100))
	require.NoError(t, p.AddSlot(2, 3, 0, 0, 1, 1))
	require.NoError(t, p.AddSlot(0, 1, 50, 50))

	jumps := testutil.ToFloat64(searchBackjumps)

	res, err := Solve(p, WithBackjumping())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.Backjumps)
	assert.Equal(t, jumps+2, testutil.ToFloat64(searchBackjumps))
}

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	sat := &Result{Verdict: Satisfiable}
	unsat := &Result{Verdict: Unsatisfiable}
	assert.Equal(t, outcomeSatisfiable, outcomeOf(sat, nil))
	assert.Equal(t, outcomeUnsatisfiable, outcomeOf(unsat, nil))
	assert.Equal(t, outcomeCanceled, outcomeOf(sat, context.DeadlineExceeded))
	assert.Equal(t, outcomeError, outcomeOf(sat, errors.New("x")))
}

func TestSolve_LogsAndTraces(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := tcsp.NewProblem(2)
	require.NoError(t, err)
	require.NoError(t, p.AddSlot(0, 1, 1, 5))

	res, err := Solve(p,
		WithLogger(logger),
		WithTracer(noop.NewTracerProvider().Tracer("test")),
		WithLogger(nil), // ignored
		WithTracer(nil), // ignored
	)
	require.NoError(t, err)
	assert.Equal(t, Satisfiable, res.Verdict)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"msg":"solution found"`), out)
	assert.True(t, strings.Contains(out, `"msg":"search finished"`), out)
	assert.True(t, strings.Contains(out, `"verdict":"SATISFIABLE"`), out)
}
