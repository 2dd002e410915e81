// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics, registered on the default registry.
var (
	// searchRuns counts Solve calls by outcome.
	searchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tcsp_search_runs_total",
		Help: "Total search runs by outcome",
	}, []string{"outcome"})

	// searchNodes counts candidates applied to the shared graph.
	searchNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcsp_search_nodes_total",
		Help: "Total candidate intervals applied during search",
	})

	// searchDeadEnds counts candidates pruned by a negative cycle.
	searchDeadEnds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcsp_search_dead_ends_total",
		Help: "Total candidate intervals pruned as inconsistent",
	})

	// searchBackjumps counts dead ends that skipped at least one depth.
	searchBackjumps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcsp_search_backjumps_total",
		Help: "Total backjumps taken during search",
	})

	// searchSolutions counts emitted scenarios.
	searchSolutions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcsp_search_solutions_total",
		Help: "Total consistent scenarios emitted",
	})

	// searchDuration tracks Solve wall time.
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tcsp_search_duration_seconds",
		Help:    "Search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	})
)

// Run outcomes used as the "outcome" label.
const (
	outcomeSatisfiable   = "satisfiable"
	outcomeUnsatisfiable = "unsatisfiable"
	outcomeCanceled      = "canceled"
	outcomeError         = "error"
)

// observe records one finished run.
func observe(res *Result, err error) {
	searchNodes.Add(float64(res.Stats.Nodes))
	searchDeadEnds.Add(float64(res.Stats.DeadEnds))
	searchBackjumps.Add(float64(res.Stats.Backjumps))
	searchSolutions.Add(float64(res.Stats.Solutions))
	searchDuration.Observe(res.Stats.Elapsed.Seconds())
	searchRuns.WithLabelValues(outcomeOf(res, err)).Inc()
}

func outcomeOf(res *Result, err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	case err != nil:
		return outcomeError
	case res.Verdict == Satisfiable:
		return outcomeSatisfiable
	}
	return outcomeUnsatisfiable
}
