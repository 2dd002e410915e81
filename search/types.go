// SPDX-License-Identifier: MIT
// Package search: options, sentinels and result types.

package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tcsp/stp"
	"github.com/katalvlaran/tcsp/tcsp"
)

var (
	// ErrNilProblem is returned when Solve receives a nil problem.
	ErrNilProblem = errors.New("search: problem is nil")

	// ErrGraphSize indicates a WithGraph graph whose size differs from the problem.
	ErrGraphSize = errors.New("search: graph size does not match problem")

	// ErrStop may be returned by OnSolution or OnNode to end the search early.
	// Solve then returns the solutions found so far and a nil error.
	ErrStop = errors.New("search: stop requested")

	// ErrBadMaxSolutions indicates a negative solution limit.
	ErrBadMaxSolutions = errors.New("search: max solutions must be >= 0")
)

// tracerName identifies spans produced by this package.
const tracerName = "github.com/katalvlaran/tcsp/search"

// Verdict is the overall answer for a problem.
type Verdict int

const (
	// Unsatisfiable means no consistent scenario was found.
	Unsatisfiable Verdict = iota
	// Satisfiable means at least one consistent scenario was found.
	Satisfiable
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	if v == Satisfiable {
		return "SATISFIABLE"
	}
	return "UNSATISFIABLE"
}

// Node describes one tightening step, reported to the OnNode hook.
type Node struct {
	Depth      int           // number of slots assigned before this step
	Slot       int           // index into Problem.Slots
	Candidate  int           // index into the slot's Intervals
	Interval   tcsp.Interval // the candidate applied
	Consistent bool          // false: the candidate was pruned
}

// Solution is one consistent scenario.
type Solution struct {
	// Index is the 0-based emission order.
	Index int

	// Choices[s] is the chosen candidate index of Problem.Slots[s].
	Choices []int

	// Intervals[s] is Problem.Slots[s].Intervals[Choices[s]].
	Intervals []tcsp.Interval

	// Graph is the tightened distance graph of the scenario (the minimal network).
	Graph *stp.Graph

	// Earliest is a concrete schedule derived from Graph (stp.EarliestSolution).
	Earliest []int64
}

// Stats are the search counters.
type Stats struct {
	Nodes       int           // candidates applied
	DeadEnds    int           // candidates pruned by a negative cycle
	Backjumps   int           // dead ends that skipped at least one depth
	Tightenings int           // Floyd–Warshall runs, root included
	Solutions   int           // scenarios emitted
	MaxDepth    int           // deepest consistent prefix
	Stopped     bool          // the stop policy ended the search early
	Elapsed     time.Duration // wall time of Solve
}

// Result is what Solve returns.
type Result struct {
	Verdict   Verdict
	Solutions []*Solution // empty under WithoutCollect
	Stats     Stats
}

// Option configures Solve.
type Option func(*Options)

// Options holds the search configuration.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnSolution, if non-nil, receives every solution as it is found.
	// Returning ErrStop ends the search; any other error aborts it.
	OnSolution func(*Solution) error

	// OnNode, if non-nil, is called after every candidate is tightened.
	// Returning ErrStop ends the search; any other error aborts it.
	OnNode func(Node) error

	// MaxSolutions stops the search after that many solutions; 0 means all.
	MaxSolutions int

	// Order is the slot exploration order.
	Order tcsp.OrderPolicy

	// Backjump enables graph-based backjumping: a depth where every
	// candidate fails returns straight to the deepest slot its conflicts
	// involve. The solution set and its order are unchanged.
	Backjump bool

	// Collect keeps solutions in Result.Solutions. Default true.
	Collect bool

	// Graph, if non-nil, is used as the shared graph. It must have
	// Problem.Points points and is restored before Solve returns.
	Graph *stp.Graph

	// Logger receives Debug records; defaults to a discarding logger.
	Logger *slog.Logger

	// Tracer starts the Solve span; defaults to the global provider.
	Tracer trace.Tracer
}

// DefaultOptions returns the enumerate-everything configuration.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Order:   tcsp.OrderIndex,
		Collect: true,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:  otel.Tracer(tracerName),
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnSolution installs the per-solution hook.
func WithOnSolution(fn func(*Solution) error) Option {
	return func(o *Options) { o.OnSolution = fn }
}

// WithOnNode installs the per-node trace hook.
func WithOnNode(fn func(Node) error) Option {
	return func(o *Options) { o.OnNode = fn }
}

// WithMaxSolutions stops the search after n solutions (0 = unlimited).
func WithMaxSolutions(n int) Option {
	return func(o *Options) { o.MaxSolutions = n }
}

// WithFirstOnly stops at the first solution.
func WithFirstOnly() Option {
	return WithMaxSolutions(1)
}

// WithOrder selects the slot exploration order.
func WithOrder(policy tcsp.OrderPolicy) Option {
	return func(o *Options) { o.Order = policy }
}

// WithBackjumping enables conflict-directed jumps over depths that cannot
// repair a dead end.
func WithBackjumping() Option {
	return func(o *Options) { o.Backjump = true }
}

// WithoutCollect leaves Result.Solutions empty; use with WithOnSolution.
func WithoutCollect() Option {
	return func(o *Options) { o.Collect = false }
}

// WithGraph searches over g instead of a fresh initial graph.
func WithGraph(g *stp.Graph) Option {
	return func(o *Options) { o.Graph = g }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracer sets the tracer. A nil tracer is ignored.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}
