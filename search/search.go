// SPDX-License-Identifier: MIT
// Package search: the backtracking engine.

package search

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tcsp/stp"
	"github.com/katalvlaran/tcsp/tcsp"
)

// errHalt unwinds the recursion once the stop policy fired.
var errHalt = errors.New("search: halt")

// engine carries the state of one Solve call.
type engine struct {
	p     *tcsp.Problem
	opts  Options
	order []int        // order[d] is the slot assigned at depth d
	g     *stp.Graph   // the shared graph
	snaps []*stp.Graph // snaps[d+1] holds the graph as depth d found it; snaps[0] the untightened root
	pick  []int        // pick[s] is the current candidate of slot s
	res   *Result

	scratch *stp.Graph // conflict analysis under backjumping
}

// Solve enumerates the consistent scenarios of p.
//
// The problem is validated first (permissive duplicate-pair policy); a
// structural error is returned as is. The root graph is tightened before
// any slot is assigned, and an inconsistent root yields zero solutions.
// A problem with no slots has exactly one, empty, scenario.
//
// On cancellation or a hook error the partial Result is returned with the
// error. The shared graph is restored on every path.
func Solve(p *tcsp.Problem, opts ...Option) (*Result, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	sopts := DefaultOptions()
	for _, fn := range opts {
		fn(&sopts)
	}
	if sopts.MaxSolutions < 0 {
		return nil, ErrBadMaxSolutions
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := sopts.Graph
	if g == nil {
		var err error
		if g, err = p.InitialDistanceGraph(); err != nil {
			return nil, err
		}
	} else if g.Size() != p.Points {
		return nil, fmt.Errorf("search: %w: graph has %d points, problem %d", ErrGraphSize, g.Size(), p.Points)
	}

	ctx, span := sopts.Tracer.Start(sopts.Ctx, "search.Solve",
		trace.WithAttributes(
			attribute.Int("tcsp.points", p.Points),
			attribute.Int("tcsp.slots", len(p.Slots)),
			attribute.Int("tcsp.intervals", p.IntervalCount()),
			attribute.String("tcsp.order", sopts.Order.String()),
			attribute.Bool("tcsp.backjump", sopts.Backjump),
		),
	)
	defer span.End()
	sopts.Ctx = ctx

	e := &engine{
		p:     p,
		opts:  sopts,
		order: p.Order(sopts.Order),
		g:     g,
		snaps: make([]*stp.Graph, len(p.Slots)+1),
		pick:  make([]int, len(p.Slots)),
		res:   &Result{Verdict: Unsatisfiable},
	}
	for d := range e.snaps {
		e.snaps[d] = g.Clone()
	}
	if sopts.Backjump {
		e.scratch = g.Clone()
	}

	start := time.Now()
	err := e.run()
	e.res.Stats.Elapsed = time.Since(start)
	if e.res.Stats.Solutions > 0 {
		e.res.Verdict = Satisfiable
	}
	observe(e.res, err)

	span.SetAttributes(
		attribute.String("tcsp.verdict", e.res.Verdict.String()),
		attribute.Int("tcsp.nodes", e.res.Stats.Nodes),
		attribute.Int("tcsp.dead_ends", e.res.Stats.DeadEnds),
		attribute.Int("tcsp.backjumps", e.res.Stats.Backjumps),
		attribute.Int("tcsp.solutions", e.res.Stats.Solutions),
		attribute.Bool("tcsp.stopped", e.res.Stats.Stopped),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	sopts.Logger.Debug("search finished",
		slog.String("verdict", e.res.Verdict.String()),
		slog.Int("nodes", e.res.Stats.Nodes),
		slog.Int("dead_ends", e.res.Stats.DeadEnds),
		slog.Int("backjumps", e.res.Stats.Backjumps),
		slog.Int("solutions", e.res.Stats.Solutions),
		slog.Bool("stopped", e.res.Stats.Stopped),
		slog.Duration("elapsed", e.res.Stats.Elapsed),
	)

	return e.res, err
}

// First returns the first solution in the chosen order, or nil when the
// problem is unsatisfiable.
func First(p *tcsp.Problem, opts ...Option) (*Solution, error) {
	opts = append(opts, WithFirstOnly(), func(o *Options) { o.Collect = true })
	res, err := Solve(p, opts...)
	if err != nil {
		return nil, err
	}
	if len(res.Solutions) == 0 {
		return nil, nil
	}

	return res.Solutions[0], nil
}

// run tightens the root and starts the descent. The root snapshot is
// restored afterwards so the caller's graph is left exactly as it was.
func (e *engine) run() error {
	root := e.snaps[0]
	defer func() { _ = e.g.CopyFrom(root) }()

	verdict, err := stp.CheckInPlace(e.g)
	if err != nil {
		return err
	}
	e.res.Stats.Tightenings++
	if verdict == stp.Inconsistent {
		return nil
	}

	_, err = e.advance(0)
	if errors.Is(err, errHalt) {
		e.res.Stats.Stopped = true
		return nil
	}

	return err
}

// checkCtx reports cancellation.
func (e *engine) checkCtx() error {
	select {
	case <-e.opts.Ctx.Done():
		return e.opts.Ctx.Err()
	default:
		return nil
	}
}

// advance explores depth d. At d == len(order) the prefix is a full scenario.
//
// The returned depth tells the callers where to resume: the frame at that
// depth moves on to its next candidate and every deeper frame returns at
// once. Without backjumping it is always d. With backjumping, a depth where
// no candidate survived tightening returns the deepest depth its conflicts
// depend on; −1 means no assignment of the earlier slots can help.
func (e *engine) advance(d int) (int, error) {
	if err := e.checkCtx(); err != nil {
		return d, err
	}
	if d == len(e.order) {
		return d, e.emit()
	}

	slot := e.order[d]
	live := false
	culprit := -1
	for c, iv := range e.p.Slots[slot].Intervals {
		resume, consistent, err := e.try(d, slot, c, iv)
		if err != nil {
			return d, err
		}
		if consistent {
			live = true
			if resume < d {
				return resume, nil
			}
			continue
		}
		if e.opts.Backjump {
			k, err := e.conflictDepth(d, iv)
			if err != nil {
				return d, err
			}
			if k > culprit {
				culprit = k
			}
		}
	}

	if !live && e.opts.Backjump {
		if culprit < d-1 {
			e.res.Stats.Backjumps++
		}
		return culprit, nil
	}

	return d, nil
}

// try applies candidate c of slot at depth d, recurses when the graph stays
// consistent, and always restores the graph to its state on entry.
// It reports the resume depth of the subtree and whether the candidate survived.
func (e *engine) try(d, slot, c int, iv tcsp.Interval) (int, bool, error) {
	if err := e.checkCtx(); err != nil {
		return d, false, err
	}

	snap := e.snaps[d+1]
	_ = snap.CopyFrom(e.g)
	defer func() { _ = e.g.CopyFrom(snap) }()

	e.res.Stats.Nodes++
	if err := e.g.ConstrainEdge(iv.I, iv.J, stp.Bound(iv.R), stp.Bound(iv.L)); err != nil {
		return d, false, fmt.Errorf("search: slot %d candidate %d: %w", slot, c, err)
	}
	verdict, err := stp.CheckInPlace(e.g)
	if err != nil {
		return d, false, err
	}
	e.res.Stats.Tightenings++

	consistent := verdict == stp.Consistent
	if e.opts.OnNode != nil {
		err = e.opts.OnNode(Node{Depth: d, Slot: slot, Candidate: c, Interval: iv, Consistent: consistent})
		if err != nil {
			return d, consistent, hookErr("OnNode", err)
		}
	}
	if !consistent {
		e.res.Stats.DeadEnds++
		return d, false, nil
	}
	if d+1 > e.res.Stats.MaxDepth {
		e.res.Stats.MaxDepth = d + 1
	}

	e.pick[slot] = c

	resume, err := e.advance(d + 1)

	return resume, true, err
}

// conflictDepth returns the deepest depth k such that the slots assigned at
// depths 0..k, together with iv, are already inconsistent; −1 when iv
// contradicts the root graph alone. Consistency only shrinks as slots are
// added, so the shortest failing prefix is found by bisection over the
// per-depth snapshots: snaps[n+1] holds the closure after n assigned slots.
func (e *engine) conflictDepth(d int, iv tcsp.Interval) (int, error) {
	lo, hi := 0, d // prefix length d is known to fail
	for lo < hi {
		mid := (lo + hi) / 2
		bad, err := e.failsWith(mid, iv)
		if err != nil {
			return -1, err
		}
		if bad {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo - 1, nil
}

// failsWith reports whether iv is inconsistent with the first prefix assigned slots.
func (e *engine) failsWith(prefix int, iv tcsp.Interval) (bool, error) {
	if err := e.scratch.CopyFrom(e.snaps[prefix+1]); err != nil {
		return false, err
	}
	if err := e.scratch.ConstrainEdge(iv.I, iv.J, stp.Bound(iv.R), stp.Bound(iv.L)); err != nil {
		return false, err
	}
	verdict, err := stp.CheckInPlace(e.scratch)
	if err != nil {
		return false, err
	}
	e.res.Stats.Tightenings++

	return verdict == stp.Inconsistent, nil
}

// emit builds the solution for the current full assignment and applies the
// stop policy.
func (e *engine) emit() error {
	sol := &Solution{
		Index:     e.res.Stats.Solutions,
		Choices:   make([]int, len(e.pick)),
		Intervals: make([]tcsp.Interval, len(e.pick)),
		Graph:     e.g.Clone(),
	}
	copy(sol.Choices, e.pick)
	for s, c := range sol.Choices {
		sol.Intervals[s] = e.p.Slots[s].Intervals[c]
	}
	earliest, err := stp.EarliestSolution(sol.Graph)
	if err != nil {
		return fmt.Errorf("search: solution %d: %w", sol.Index, err)
	}
	sol.Earliest = earliest

	e.res.Stats.Solutions++
	if e.opts.Collect {
		e.res.Solutions = append(e.res.Solutions, sol)
	}
	e.opts.Logger.Debug("solution found",
		slog.Int("index", sol.Index),
		slog.Int("nodes", e.res.Stats.Nodes),
		slog.Any("choices", sol.Choices),
	)

	if e.opts.OnSolution != nil {
		if err = e.opts.OnSolution(sol); err != nil {
			return hookErr("OnSolution", err)
		}
	}
	if e.opts.MaxSolutions > 0 && e.res.Stats.Solutions >= e.opts.MaxSolutions {
		return errHalt
	}

	return nil
}

// hookErr maps ErrStop onto a clean halt and wraps anything else.
func hookErr(hook string, err error) error {
	if errors.Is(err, ErrStop) {
		return errHalt
	}

	return fmt.Errorf("search: %s hook: %w", hook, err)
}
