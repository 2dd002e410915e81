// SPDX-License-Identifier: MIT
// Package heuristic: options, sentinels and result types.

package heuristic

import (
	"context"
	"errors"
	"fmt"
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
	ErrNilProblem = errors.New("heuristic: problem is nil")

	// ErrUnknownMethod indicates an unrecognised method name.
	ErrUnknownMethod = errors.New("heuristic: unknown method")

	// ErrBadOptions indicates unusable tuning parameters.
	ErrBadOptions = errors.New("heuristic: invalid options")
)

// tracerName identifies spans produced by this package.
const tracerName = "github.com/katalvlaran/tcsp/heuristic"

// Limits on the tuning parameters.
const (
	MaxIterations = 1 << 20
	MaxFlips      = 1 << 20
	MaxPoolSize   = 1 << 12
)

// Method selects representation and strategy.
type Method int

const (
	// DirectRandom samples schedules uniformly.
	DirectRandom Method = iota
	// DirectWalk restarts from random schedules and walks each one.
	DirectWalk
	// DirectGenetic evolves a pool of schedules.
	DirectGenetic
	// MetaRandom samples interval selections uniformly.
	MetaRandom
	// MetaWalk restarts from random selections and walks each one.
	MetaWalk
	// MetaGenetic evolves a pool of interval selections.
	MetaGenetic
)

var methodNames = [...]string{
	DirectRandom:  "direct-random",
	DirectWalk:    "direct-walk",
	DirectGenetic: "direct-genetic",
	MetaRandom:    "meta-random",
	MetaWalk:      "meta-walk",
	MetaGenetic:   "meta-genetic",
}

// String implements fmt.Stringer; the names round-trip through ParseMethod.
func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a method name such as "meta-walk" onto a Method.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return Method(m), nil
		}
	}

	return DirectRandom, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// MethodNames lists every method name in declaration order.
func MethodNames() []string {
	out := make([]string, len(methodNames))
	copy(out, methodNames[:])

	return out
}

// Result is the best schedule a run found.
type Result struct {
	Method Method

	// Solved reports that Witness satisfies every slot.
	Solved bool

	// Witness is the best schedule seen, one value per time point.
	Witness []int64

	// Violations are the slots Witness fails, as reported by Problem.Verify.
	Violations []tcsp.Violation

	// Choices is the interval selection behind Witness (meta methods only).
	Choices []int

	Iterations  int           // samples, restarts or generations started
	Evaluations int           // candidates scored
	Elapsed     time.Duration // wall time of Solve
}

// Option configures Solve.
type Option func(*Options)

// Options holds the tuning parameters.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// Seed feeds the generator; 0 selects a fixed default.
	Seed int64

	// Iterations bounds samples (random), restarts (walk) or generations (genetic).
	Iterations int

	// Flips bounds the walks per restart.
	Flips int

	// PoolSize is the genetic population.
	PoolSize int

	// Retain is the share of the pool kept between generations, in [0, 1].
	// At least one gene always survives.
	Retain float64

	// Mutation is the chance that a gene is walked each generation, in [0, 1].
	Mutation float64

	// Range bounds the initial direct schedules to [−Range, Range].
	Range int64

	// PickBest makes a direct walk move the point with the largest gain;
	// otherwise a random point is moved.
	PickBest bool

	// Logger receives Debug records; defaults to a discarding logger.
	Logger *slog.Logger

	// Tracer starts the Solve span; defaults to the global provider.
	Tracer trace.Tracer
}

// Defaults used by DefaultOptions.
const (
	DefaultIterations       = 50
	DefaultFlips            = 20
	DefaultPoolSize         = 20
	DefaultRetain           = 0.5
	DefaultMutation         = 0.3
	DefaultRange      int64 = 100

	defaultSeed int64 = 1
)

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		Iterations: DefaultIterations,
		Flips:      DefaultFlips,
		PoolSize:   DefaultPoolSize,
		Retain:     DefaultRetain,
		Mutation:   DefaultMutation,
		Range:      DefaultRange,
		PickBest:   true,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:     otel.Tracer(tracerName),
	}
}

func (o Options) validate() error {
	switch {
	case o.Iterations < 1 || o.Iterations > MaxIterations:
		return fmt.Errorf("%w: iterations must be in [1, %d]", ErrBadOptions, MaxIterations)
	case o.Flips < 1 || o.Flips > MaxFlips:
		return fmt.Errorf("%w: flips must be in [1, %d]", ErrBadOptions, MaxFlips)
	case o.PoolSize < 1 || o.PoolSize > MaxPoolSize:
		return fmt.Errorf("%w: pool size must be in [1, %d]", ErrBadOptions, MaxPoolSize)
	case !(o.Retain >= 0 && o.Retain <= 1):
		return fmt.Errorf("%w: retain must be in [0, 1]", ErrBadOptions)
	case !(o.Mutation >= 0 && o.Mutation <= 1):
		return fmt.Errorf("%w: mutation must be in [0, 1]", ErrBadOptions)
	case o.Range < 0 || o.Range > int64(stp.MaxFinite):
		return fmt.Errorf("%w: range must be in [0, %d]", ErrBadOptions, int64(stp.MaxFinite))
	}

	return nil
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSeed sets the generator seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithIterations sets the sample, restart or generation budget.
func WithIterations(n int) Option {
	return func(o *Options) { o.Iterations = n }
}

// WithFlips sets the walks per restart.
func WithFlips(n int) Option {
	return func(o *Options) { o.Flips = n }
}

// WithPoolSize sets the genetic population.
func WithPoolSize(n int) Option {
	return func(o *Options) { o.PoolSize = n }
}

// WithRetain sets the surviving share of each generation.
func WithRetain(share float64) Option {
	return func(o *Options) { o.Retain = share }
}

// WithMutation sets the per-gene walk probability.
func WithMutation(p float64) Option {
	return func(o *Options) { o.Mutation = p }
}

// WithRange sets the initial schedule range of direct methods.
func WithRange(r int64) Option {
	return func(o *Options) { o.Range = r }
}

// WithRandomPoint makes direct walks move a random point instead of the best one.
func WithRandomPoint() Option {
	return func(o *Options) { o.PickBest = false }
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
