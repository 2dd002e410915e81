// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tcsp/store"
)

func newRunsCmd(a *app) *cobra.Command {
	runs := &cobra.Command{
		Use:   "runs",
		Short: "Inspect runs recorded with solve --save",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			rs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tVERDICT\tSOLUTIONS\tNODES")
			for _, r := range rs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
					r.ID, r.CreatedAt.Format(time.RFC3339), r.Source, r.Verdict, r.Solutions, r.Nodes)
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 = all)")

	show := &cobra.Command{
		Use:   "show id",
		Short: "Show one stored run and its solutions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			r, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return usageErr(err)
			}
			sols, err := st.Solutions(cmd.Context(), r.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "id:        %s\n", r.ID)
			fmt.Fprintf(a.out, "created:   %s\n", r.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(a.out, "source:    %s\n", r.Source)
			fmt.Fprintf(a.out, "problem:   %d points, %d slots, order %s\n", r.Points, r.Slots, r.Order)
			fmt.Fprintf(a.out, "verdict:   %s\n", r.Verdict)
			fmt.Fprintf(a.out, "solutions: %d\n", r.Solutions)
			fmt.Fprintf(a.out, "nodes:     %d (dead ends %d)\n", r.Nodes, r.DeadEnds)
			fmt.Fprintf(a.out, "elapsed:   %s\n", r.Elapsed)
			for _, s := range sols {
				fmt.Fprintf(a.out, "solution %d choices %v earliest %v\n", s.Index, s.Choices, s.Earliest)
			}
			return nil
		},
	}

	runs.AddCommand(list, show)

	return runs
}
