// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tcsp/search"
	"github.com/katalvlaran/tcsp/store"
	"github.com/katalvlaran/tcsp/tcsp"
)

type solveFlags struct {
	order        string
	maxSolutions int
	first        bool
	timeout      time.Duration
	strictPairs  bool
	backjump     bool
	save         bool
	exitCode     bool
	trace        bool
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Enumerate the consistent scenarios of a TCSP",
		Long: `Reads a TCSP in the text format (N, M, then "i j K l1 r1 ... lK rK" per slot)
from file or stdin and prints every consistent scenario with its tightened bounds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, argOrStdin(args), f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.order, "order", "", "slot order: index or fewest")
	fl.IntVar(&f.maxSolutions, "max-solutions", 0, "stop after this many solutions (0 = all)")
	fl.BoolVar(&f.first, "first", false, "stop at the first solution")
	fl.DurationVar(&f.timeout, "timeout", 0, "abort the search after this long (0 = no limit)")
	fl.BoolVar(&f.strictPairs, "strict-pairs", false, "reject two slots on the same pair of points")
	fl.BoolVar(&f.backjump, "backjump", false, "jump back over slots that cannot repair a dead end")
	fl.BoolVar(&f.save, "save", false, "record the run in the store")
	fl.BoolVar(&f.exitCode, "exit-code", false, "exit 1 when the problem is unsatisfiable")
	fl.BoolVar(&f.trace, "trace", false, "log every search node at debug level")

	return cmd
}

// mergeSolveFlags overlays explicitly set flags on the loaded config.
func (a *app) mergeSolveFlags(cmd *cobra.Command, f solveFlags) {
	fl := cmd.Flags()
	if fl.Changed("order") {
		a.cfg.Search.Order = f.order
	}
	if fl.Changed("max-solutions") {
		a.cfg.Search.MaxSolutions = f.maxSolutions
	}
	if fl.Changed("first") {
		a.cfg.Search.FirstOnly = f.first
	}
	if fl.Changed("timeout") {
		a.cfg.Search.Timeout = f.timeout
	}
	if fl.Changed("strict-pairs") {
		a.cfg.Search.StrictPairs = f.strictPairs
	}
	if fl.Changed("backjump") {
		a.cfg.Search.Backjump = f.backjump
	}
	if fl.Changed("save") {
		a.cfg.Store.Enabled = f.save
	}
}

func (a *app) runSolve(cmd *cobra.Command, name string, f solveFlags) error {
	a.mergeSolveFlags(cmd, f)
	if err := a.cfg.Validate(); err != nil {
		return usageErr(err)
	}
	order, err := tcsp.ParseOrderPolicy(a.cfg.Search.Order)
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
	if a.cfg.Search.StrictPairs {
		if err = p.Validate(tcsp.WithStrictPairs()); err != nil {
			return usageErr(err)
		}
	}
	a.logger.Debug("problem loaded",
		slog.String("source", source),
		slog.Int("points", p.Points),
		slog.Int("slots", len(p.Slots)),
		slog.Int("scenarios", p.ScenarioSpace()),
	)

	ctx := cmd.Context()
	if a.cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Search.Timeout)
		defer cancel()
	}

	opts := []search.Option{
		search.WithContext(ctx),
		search.WithOrder(order),
		search.WithMaxSolutions(a.cfg.Search.MaxSolutions),
		search.WithLogger(a.logger),
	}
	if a.cfg.Search.FirstOnly {
		opts = append(opts, search.WithFirstOnly())
	}
	if a.cfg.Search.Backjump {
		opts = append(opts, search.WithBackjumping())
	}
	if f.trace {
		opts = append(opts, search.WithOnNode(func(n search.Node) error {
			a.logger.Debug("node",
				slog.Int("depth", n.Depth),
				slog.Int("slot", n.Slot),
				slog.Int("candidate", n.Candidate),
				slog.String("interval", n.Interval.String()),
				slog.Bool("consistent", n.Consistent),
			)
			return nil
		}))
	}

	res, err := search.Solve(p, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			a.logger.Warn("search timed out", slog.Int("solutions", res.Stats.Solutions))
		}
		var se *tcsp.StructuralError
		if errors.As(err, &se) {
			return usageErr(err)
		}
		return err
	}

	var runID string
	if a.cfg.Store.Enabled {
		if runID, err = a.saveRun(cmd.Context(), source, p, order, res); err != nil {
			return err
		}
	}

	if err = presentSolve(a.out, a.cfg.Output.Format, res, runID); err != nil {
		return err
	}
	if f.exitCode && res.Verdict == search.Unsatisfiable {
		return negative()
	}

	return nil
}

// saveRun records res in the configured store.
func (a *app) saveRun(ctx context.Context, source string, p *tcsp.Problem, order tcsp.OrderPolicy, res *search.Result) (string, error) {
	st, err := store.Open(a.cfg.Store.Path)
	if err != nil {
		return "", err
	}
	defer st.Close()

	sols := make([]store.Solution, 0, len(res.Solutions))
	for _, s := range res.Solutions {
		sols = append(sols, store.Solution{Index: s.Index, Choices: s.Choices, Earliest: s.Earliest})
	}
	id, err := st.SaveRun(ctx, store.Run{
		Source:    source,
		Points:    p.Points,
		Slots:     len(p.Slots),
		Order:     order.String(),
		Verdict:   res.Verdict.String(),
		Nodes:     res.Stats.Nodes,
		DeadEnds:  res.Stats.DeadEnds,
		Solutions: res.Stats.Solutions,
		Stopped:   res.Stats.Stopped,
		Elapsed:   res.Stats.Elapsed,
	}, sols)
	if err != nil {
		return "", err
	}
	a.logger.Info("run stored", slog.String("id", id), slog.String("path", a.cfg.Store.Path))

	return id, nil
}
