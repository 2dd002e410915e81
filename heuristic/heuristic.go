// SPDX-License-Identifier: MIT
// Package heuristic: the driver shared by all methods.

package heuristic

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tcsp/stp"
	"github.com/katalvlaran/tcsp/tcsp"
)

// runner carries the state of one Solve call.
type runner struct {
	p    *tcsp.Problem
	opts Options
	rng  *rand.Rand
	res  *Result
	best int // violations of res.Witness; −1 before the first offer

	graph *stp.Graph // scratch STP for meta scoring
}

// Solve runs method m on p and returns the best schedule found.
//
// The problem is validated first; a structural error is returned as is.
// On cancellation the partial Result is returned together with ctx.Err().
func Solve(p *tcsp.Problem, m Method, opts ...Option) (*Result, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if m < DirectRandom || m > MetaGenetic {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	hopts := DefaultOptions()
	for _, fn := range opts {
		fn(&hopts)
	}
	if err := hopts.validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seed := hopts.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	ctx, span := hopts.Tracer.Start(hopts.Ctx, "heuristic.Solve",
		trace.WithAttributes(
			attribute.String("tcsp.method", m.String()),
			attribute.Int("tcsp.points", p.Points),
			attribute.Int("tcsp.slots", len(p.Slots)),
			attribute.Int64("tcsp.seed", seed),
		),
	)
	defer span.End()
	hopts.Ctx = ctx

	r := &runner{
		p:    p,
		opts: hopts,
		rng:  rand.New(rand.NewSource(seed)),
		res:  &Result{Method: m},
		best: -1,
	}

	start := time.Now()
	var err error
	switch m {
	case DirectRandom:
		err = r.directRandom()
	case DirectWalk:
		err = r.directWalk()
	case DirectGenetic:
		err = r.directGenetic()
	case MetaRandom:
		err = r.metaRandom()
	case MetaWalk:
		err = r.metaWalk()
	case MetaGenetic:
		err = r.metaGenetic()
	}
	r.res.Elapsed = time.Since(start)
	r.res.Solved = r.best == 0
	observe(r.res, err)

	span.SetAttributes(
		attribute.Bool("tcsp.solved", r.res.Solved),
		attribute.Int("tcsp.violations", len(r.res.Violations)),
		attribute.Int("tcsp.iterations", r.res.Iterations),
		attribute.Int("tcsp.evaluations", r.res.Evaluations),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	hopts.Logger.Debug("heuristic finished",
		slog.String("method", m.String()),
		slog.Bool("solved", r.res.Solved),
		slog.Int("violations", len(r.res.Violations)),
		slog.Int("iterations", r.res.Iterations),
		slog.Int("evaluations", r.res.Evaluations),
		slog.Duration("elapsed", r.res.Elapsed),
	)

	return r.res, err
}

// checkCtx reports cancellation.
func (r *runner) checkCtx() error {
	select {
	case <-r.opts.Ctx.Done():
		return r.opts.Ctx.Err()
	default:
		return nil
	}
}

// score verifies x against the problem.
func (r *runner) score(x []int64) ([]tcsp.Violation, error) {
	if err := r.checkCtx(); err != nil {
		return nil, err
	}
	r.res.Evaluations++

	return r.p.Verify(x)
}

// offer keeps x (and the selection behind it) when it beats the best so far.
// It reports whether x satisfies every slot.
func (r *runner) offer(x []int64, choices []int, violations []tcsp.Violation) bool {
	if r.best < 0 || len(violations) < r.best {
		r.best = len(violations)
		r.res.Witness = append([]int64(nil), x...)
		r.res.Choices = append([]int(nil), choices...)
		r.res.Violations = violations
		r.opts.Logger.Debug("improved",
			slog.Int("violations", r.best),
			slog.Int("evaluations", r.res.Evaluations),
		)
	}

	return len(violations) == 0
}

// gene is either representation: a schedule or an interval selection.
type gene interface{ ~int64 | ~int }

// ranked is a gene with its violation count.
type ranked[T gene] struct {
	genes  []T
	unsat  int
	solved bool
}

// genetic runs the select / crossover / mutate loop shared by both
// representations. eval scores and offers one gene.
func genetic[T gene](r *runner, fresh func() []T, eval func([]T) (ranked[T], error), mutate func([]T)) error {
	pool := make([][]T, r.opts.PoolSize)
	for i := range pool {
		pool[i] = fresh()
	}

	scored := make([]ranked[T], 0, r.opts.PoolSize)
	for gen := 0; gen < r.opts.Iterations; gen++ {
		r.res.Iterations++

		scored = scored[:0]
		for _, g := range pool {
			rk, err := eval(g)
			if err != nil {
				return err
			}
			if rk.solved {
				return nil
			}
			scored = append(scored, rk)
		}
		sort.SliceStable(scored, func(a, b int) bool { return scored[a].unsat < scored[b].unsat })

		keep := min(len(scored), int(float64(len(scored))*r.opts.Retain)+1)
		next := make([][]T, 0, r.opts.PoolSize)
		for _, rk := range scored[:keep] {
			next = append(next, rk.genes)
		}
		for len(next) < r.opts.PoolSize {
			a, b := next[r.rng.Intn(len(next))], next[r.rng.Intn(len(next))]
			next = append(next, crossover(r.rng, a, b))
		}
		for _, g := range next {
			if r.rng.Float64() < r.opts.Mutation {
				mutate(g)
			}
		}
		pool = next
	}

	for _, g := range pool {
		rk, err := eval(g)
		if err != nil {
			return err
		}
		if rk.solved {
			return nil
		}
	}

	return nil
}

// crossover joins a head of a with the tail of b at a random cut in [1, len−1].
func crossover[T gene](rng *rand.Rand, a, b []T) []T {
	child := make([]T, len(a))
	cut := 0
	if len(a) > 1 {
		cut = 1 + rng.Intn(len(a)-1)
	}
	copy(child, a[:cut])
	copy(child[cut:], b[cut:])

	return child
}
