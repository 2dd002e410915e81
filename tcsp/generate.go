// SPDX-License-Identifier: MIT
// Package tcsp: deterministic generator of solvable instances.
//
// A hidden schedule x (x[0] = 0, x[p] ∈ [0, Horizon]) is drawn first. Every
// slot then receives sorted, pairwise disjoint candidates, exactly one of
// which contains x[J] − x[I]. The instance is therefore satisfiable by
// construction and x is returned as its witness.

package tcsp

import (
	"fmt"
	"math/rand"
)

// Generator defaults, applied when the corresponding option is zero.
const (
	DefaultGenerateHorizon int64 = 100
	DefaultGenerateSpread  int64 = 10

	// MaxGenerateVariables bounds the pair table Generate materialises.
	MaxGenerateVariables = 4096

	// defaultGenerateSeed is used when Seed == 0, so a zero seed stays reproducible.
	defaultGenerateSeed int64 = 1
)

// GenerateOptions parameterises Generate.
type GenerateOptions struct {
	Variables   int   // time points, including point 0; >= 2 when Constraints > 0
	Constraints int   // slots; at most Variables·(Variables−1)/2 distinct pairs
	Intervals   int   // candidates per slot; >= 1
	Seed        int64 // 0 selects a fixed default seed
	Horizon     int64 // hidden schedule range [0, Horizon]
	Spread      int64 // maximum candidate half-width and gap
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.Horizon == 0 {
		o.Horizon = DefaultGenerateHorizon
	}
	if o.Spread == 0 {
		o.Spread = DefaultGenerateSpread
	}
	if o.Seed == 0 {
		o.Seed = defaultGenerateSeed
	}

	return o
}

func (o GenerateOptions) validate() error {
	switch {
	case o.Variables < 1 || o.Variables > MaxGenerateVariables:
		return fmt.Errorf("%w: variables must be in [1, %d]", ErrBadGenerateOptions, MaxGenerateVariables)
	case o.Constraints < 0:
		return fmt.Errorf("%w: constraints must be >= 0", ErrBadGenerateOptions)
	case o.Constraints > o.Variables*(o.Variables-1)/2:
		return fmt.Errorf("%w: %d constraints exceed the %d distinct pairs",
			ErrBadGenerateOptions, o.Constraints, o.Variables*(o.Variables-1)/2)
	case o.Intervals < 1:
		return fmt.Errorf("%w: intervals must be >= 1", ErrBadGenerateOptions)
	case o.Horizon < 0 || o.Spread < 0:
		return fmt.Errorf("%w: horizon and spread must be >= 0", ErrBadGenerateOptions)
	}
	// Worst case reach: |diff| ≤ Horizon, plus Intervals·(2·Spread+Spread+1) outward.
	reach := o.Horizon + int64(o.Intervals)*(3*o.Spread+1)
	if reach < 0 || !validBound(reach) {
		return fmt.Errorf("%w: horizon/spread too large", ErrBadGenerateOptions)
	}

	return nil
}

// Generate draws a random satisfiable problem and its hidden witness.
// Equal options (including Seed) produce identical output.
// Complexity: O(Variables² + Constraints·Intervals).
func Generate(opts GenerateOptions) (*Problem, []int64, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	x := make([]int64, opts.Variables)
	for p := 1; p < opts.Variables; p++ {
		x[p] = rng.Int63n(opts.Horizon + 1)
	}

	// All unordered pairs i < j, shuffled; the first Constraints are used.
	pairs := make([][2]int, 0, opts.Variables*(opts.Variables-1)/2)
	for i := 0; i < opts.Variables; i++ {
		for j := i + 1; j < opts.Variables; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	rng.Shuffle(len(pairs), func(a, b int) { pairs[a], pairs[b] = pairs[b], pairs[a] })

	p := &Problem{Points: opts.Variables, Slots: make([]Slot, 0, opts.Constraints)}
	for c := 0; c < opts.Constraints; c++ {
		i, j := pairs[c][0], pairs[c][1]
		p.Slots = append(p.Slots, Slot{I: i, J: j, Intervals: candidates(rng, i, j, x[j]-x[i], opts)})
	}

	return p, x, nil
}

// candidates builds opts.Intervals sorted disjoint intervals around d, one of
// which contains it.
func candidates(rng *rand.Rand, i, j int, d int64, opts GenerateOptions) []Interval {
	k := opts.Intervals
	hit := rng.Intn(k)
	out := make([]Interval, k)

	width := func() int64 { return rng.Int63n(opts.Spread + 1) }
	gap := func() int64 { return 1 + rng.Int63n(opts.Spread+1) }

	out[hit] = Interval{I: i, J: j, L: d - width(), R: d + width()}
	for c := hit - 1; c >= 0; c-- {
		r := out[c+1].L - gap()
		out[c] = Interval{I: i, J: j, L: r - 2*width(), R: r}
	}
	for c := hit + 1; c < k; c++ {
		l := out[c-1].R + gap()
		out[c] = Interval{I: i, J: j, L: l, R: l + 2*width()}
	}

	return out
}
