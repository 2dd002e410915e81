// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tcsp/stp"
	"github.com/katalvlaran/tcsp/tcsp"
)

func newSTPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stp [file]",
		Short: "Check a Simple Temporal Problem for consistency",
		Long: `Reads an STP ("N E" then "i j a b" per constraint, meaning a <= x[j]-x[i] <= b),
tightens it and prints CONSISTENT with the minimal network, or INCONSISTENT and exits 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, source, err := a.openInput(argOrStdin(args))
			if err != nil {
				return err
			}
			defer rc.Close()

			g, err := tcsp.ParseSTP(rc)
			if err != nil {
				return usageErr(err)
			}
			d, v, err := stp.Solve(g)
			if err != nil {
				return err
			}
			a.logger.Debug("stp checked", slog.String("source", source), slog.Int("points", d.Size()), slog.String("verdict", v.String()))

			if err = presentSTP(a.out, a.cfg.Output.Format, d, v); err != nil {
				return err
			}
			if v == stp.Inconsistent {
				return negative()
			}

			return nil
		},
	}
}
