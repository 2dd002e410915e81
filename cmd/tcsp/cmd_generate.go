// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tcsp/tcsp"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		opts    tcsp.GenerateOptions
		witness string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random solvable TCSP",
		Long: `Draws a hidden schedule, builds disjoint candidate intervals around it and prints
the problem in the text format read by solve. The same seed gives the same problem.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, x, err := tcsp.Generate(opts)
			if err != nil {
				return usageErr(err)
			}
			if err = p.Format(a.out); err != nil {
				return err
			}
			if witness == "" {
				return nil
			}

			return writeWitnessFile(witness, x)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&opts.Variables, "variables", "v", 5, "number of time points, including point 0")
	fl.IntVarP(&opts.Constraints, "constraints", "c", 5, "number of slots")
	fl.IntVarP(&opts.Intervals, "intervals", "i", 1, "candidate intervals per slot")
	fl.Int64Var(&opts.Seed, "seed", 0, "random seed (0 = fixed default)")
	fl.Int64Var(&opts.Horizon, "horizon", 0, "hidden schedule range (0 = default)")
	fl.Int64Var(&opts.Spread, "spread", 0, "maximum candidate half-width and gap (0 = default)")
	fl.StringVar(&witness, "witness", "", "also write the hidden schedule to this file")

	return cmd
}
