// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tcsp/heuristic"
	"github.com/katalvlaran/tcsp/tcsp"
)

type heuristicFlags struct {
	method      string
	seed        int64
	iterations  int
	flips       int
	pool        int
	retain      float64
	mutation    float64
	rng         int64
	randomPoint bool
	timeout     time.Duration
	witness     string
	exitCode    bool
}

func newHeuristicCmd(a *app) *cobra.Command {
	var f heuristicFlags
	cmd := &cobra.Command{
		Use:   "heuristic [file]",
		Short: "Look for one schedule with a randomised local search",
		Long: `Reads a TCSP and searches for a single satisfying schedule, either over the
time values themselves (direct-*) or over interval selections scored through
their STP (meta-*). Each representation has random, walk and genetic variants.
The best schedule found is printed even when some slots stay violated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHeuristic(cmd, argOrStdin(args), f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.method, "method", "m", "", "method: "+strings.Join(heuristic.MethodNames(), ", "))
	fl.Int64Var(&f.seed, "seed", 0, "random seed")
	fl.IntVar(&f.iterations, "iterations", 0, "samples, restarts or generations")
	fl.IntVar(&f.flips, "flips", 0, "walk steps per restart")
	fl.IntVar(&f.pool, "pool", 0, "genetic population size")
	fl.Float64Var(&f.retain, "retain", 0, "share of the pool kept per generation")
	fl.Float64Var(&f.mutation, "mutation", 0, "per-gene mutation probability")
	fl.Int64Var(&f.rng, "range", 0, "initial direct schedules are drawn from [-range, range]")
	fl.BoolVar(&f.randomPoint, "random-point", false, "direct walks move a random point instead of the best one")
	fl.DurationVar(&f.timeout, "timeout", 0, "abort after this long (0 = no limit)")
	fl.StringVar(&f.witness, "witness", "", "write the best schedule to this file")
	fl.BoolVar(&f.exitCode, "exit-code", false, "exit 1 when no satisfying schedule was found")

	return cmd
}

// mergeHeuristicFlags overlays explicitly set flags on the loaded config.
func (a *app) mergeHeuristicFlags(cmd *cobra.Command, f heuristicFlags) {
	fl := cmd.Flags()
	h := &a.cfg.Heuristic
	if fl.Changed("method") {
		h.Method = f.method
	}
	if fl.Changed("seed") {
		h.Seed = f.seed
	}
	if fl.Changed("iterations") {
		h.Iterations = f.iterations
	}
	if fl.Changed("flips") {
		h.Flips = f.flips
	}
	if fl.Changed("pool") {
		h.PoolSize = f.pool
	}
	if fl.Changed("retain") {
		h.Retain = f.retain
	}
	if fl.Changed("mutation") {
		h.Mutation = f.mutation
	}
	if fl.Changed("range") {
		h.Range = f.rng
	}
}

func (a *app) runHeuristic(cmd *cobra.Command, name string, f heuristicFlags) error {
	a.mergeHeuristicFlags(cmd, f)
	if err := a.cfg.Validate(); err != nil {
		return usageErr(err)
	}
	h := a.cfg.Heuristic
	method, err := heuristic.ParseMethod(h.Method)
	if err != nil {
		return usageErr(err)
	}

	rc, source, err := a.openInput(name)
	if err != nil {
		return err
	}
	defer rc.Close()

	p, err := tcsp.Parse(rc)
	if err != nil {
		return usageErr(err)
	}
	a.logger.Debug("problem loaded",
		slog.String("source", source),
		slog.Int("points", p.Points),
		slog.Int("slots", len(p.Slots)),
	)

	ctx := cmd.Context()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	opts := []heuristic.Option{
		heuristic.WithContext(ctx),
		heuristic.WithSeed(h.Seed),
		heuristic.WithIterations(h.Iterations),
		heuristic.WithFlips(h.Flips),
		heuristic.WithPoolSize(h.PoolSize),
		heuristic.WithRetain(h.Retain),
		heuristic.WithMutation(h.Mutation),
		heuristic.WithRange(h.Range),
		heuristic.WithLogger(a.logger),
	}
	if f.randomPoint {
		opts = append(opts, heuristic.WithRandomPoint())
	}

	res, err := heuristic.Solve(p, method, opts...)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		a.logger.Warn("heuristic timed out", slog.Int("evaluations", res.Evaluations))
	case errors.Is(err, heuristic.ErrBadOptions):
		return usageErr(err)
	case err != nil:
		return err
	}
	if res.Witness == nil {
		return err
	}

	if f.witness != "" {
		if werr := writeWitnessFile(f.witness, res.Witness); werr != nil {
			return werr
		}
	}
	if perr := presentHeuristic(a.out, a.cfg.Output.Format, res); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	if f.exitCode && !res.Solved {
		return negative()
	}

	return nil
}

// writeWitnessFile stores x in the format read by verify.
func writeWitnessFile(path string, x []int64) error {
	line := make([]string, len(x))
	for i, v := range x {
		line[i] = fmt.Sprint(v)
	}

	return os.WriteFile(path, []byte(strings.Join(line, " ")+"\n"), 0o644)
}

type jsonHeuristicResult struct {
	Method      string   `json:"method"`
	Solved      bool     `json:"solved"`
	Witness     []int64  `json:"witness"`
	Choices     []int    `json:"choices,omitempty"`
	Violations  []string `json:"violations"`
	Iterations  int      `json:"iterations"`
	Evaluations int      `json:"evaluations"`
	ElapsedMS   float64  `json:"elapsed_ms"`
}

// presentHeuristic writes a heuristic result; matrix output falls back to the table.
func presentHeuristic(w io.Writer, format string, res *heuristic.Result) error {
	if format == formatJSON {
		out := jsonHeuristicResult{
			Method:      res.Method.String(),
			Solved:      res.Solved,
			Witness:     res.Witness,
			Choices:     res.Choices,
			Violations:  make([]string, 0, len(res.Violations)),
			Iterations:  res.Iterations,
			Evaluations: res.Evaluations,
			ElapsedMS:   float64(res.Elapsed.Microseconds()) / 1000,
		}
		for _, v := range res.Violations {
			out.Violations = append(out.Violations, v.String())
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	solved := "no"
	if res.Solved {
		solved = "yes"
	}
	fmt.Fprintf(w, "method:      %s\n", res.Method)
	fmt.Fprintf(w, "solved:      %s\n", solved)
	fmt.Fprintf(w, "violations:  %d\n", len(res.Violations))
	fmt.Fprintf(w, "evaluations: %d (iterations %d)\n", res.Evaluations, res.Iterations)
	if res.Choices != nil {
		fmt.Fprintf(w, "choices:     %v\n", res.Choices)
	}
	fmt.Fprintf(w, "schedule:    %v\n", res.Witness)
	for _, v := range res.Violations {
		fmt.Fprintln(w, v)
	}

	return nil
}
