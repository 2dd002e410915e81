// SPDX-License-Identifier: MIT

package heuristic

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics, registered on the default registry.
var (
	// heuristicRuns counts Solve calls by method and outcome.
	heuristicRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tcsp_heuristic_runs_total",
		Help: "Total heuristic runs by method and outcome",
	}, []string{"method", "outcome"})

	// heuristicEvaluations counts candidate schedules scored.
	heuristicEvaluations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcsp_heuristic_evaluations_total",
		Help: "Total candidate schedules scored by heuristics",
	})

	// heuristicDuration tracks Solve wall time.
	heuristicDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tcsp_heuristic_duration_seconds",
		Help:    "Heuristic run duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
)

// Run outcomes used as the "outcome" label.
const (
	outcomeSolved   = "solved"
	outcomeUnsolved = "unsolved"
	outcomeCanceled = "canceled"
	outcomeError    = "error"
)

// observe records one finished run.
func observe(res *Result, err error) {
	heuristicEvaluations.Add(float64(res.Evaluations))
	heuristicDuration.Observe(res.Elapsed.Seconds())
	heuristicRuns.WithLabelValues(res.Method.String(), outcomeOf(res, err)).Inc()
}

func outcomeOf(res *Result, err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	case err != nil:
		return outcomeError
	case res.Solved:
		return outcomeSolved
	}
	return outcomeUnsolved
}
