// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tcsp/tcsp"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify problem witness",
		Short: "Check a schedule against a TCSP",
		Long: `Reads a TCSP and a witness file holding one integer per time point, and prints
PASS, or FAIL followed by every violated slot (exit 1). Either file may be "-" for stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" && args[1] == "-" {
				return usageErr(fmt.Errorf("problem and witness cannot both be read from stdin"))
			}

			prc, _, err := a.openInput(args[0])
			if err != nil {
				return err
			}
			defer prc.Close()
			p, err := tcsp.Parse(prc)
			if err != nil {
				return usageErr(err)
			}

			wrc, _, err := a.openInput(args[1])
			if err != nil {
				return err
			}
			defer wrc.Close()
			x, err := tcsp.ReadWitness(wrc, p.Points)
			if err != nil {
				return usageErr(err)
			}

			violations, err := p.Verify(x)
			if err != nil {
				return usageErr(err)
			}
			a.logger.Debug("witness verified", slog.Int("slots", len(p.Slots)), slog.Int("violations", len(violations)))

			if len(violations) == 0 {
				fmt.Fprintln(a.out, "PASS")
				return nil
			}
			fmt.Fprintln(a.out, "FAIL")
			for _, v := range violations {
				fmt.Fprintln(a.out, v)
			}

			return negative()
		},
	}
}
