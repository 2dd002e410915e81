// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/tcsp/search"
	"github.com/katalvlaran/tcsp/stp"
)

// Output formats.
const (
	formatTable  = "table"
	formatMatrix = "matrix"
	formatJSON   = "json"
)

// jsonMatrix renders a graph with finite cells as numbers and infinities as
// the strings "inf" / "-inf".
func jsonMatrix(g *stp.Graph) [][]any {
	rows := g.Rows()
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = make([]any, len(row))
		for j, b := range row {
			if b.IsFinite() {
				out[i][j] = int64(b)
				continue
			}
			out[i][j] = b.String()
		}
	}

	return out
}

type jsonInterval struct {
	I int   `json:"i"`
	J int   `json:"j"`
	L int64 `json:"l"`
	R int64 `json:"r"`
}

type jsonSolution struct {
	Index     int            `json:"index"`
	Choices   []int          `json:"choices"`
	Intervals []jsonInterval `json:"intervals"`
	Earliest  []int64        `json:"earliest"`
	Network   [][]any        `json:"network"`
}

type jsonStats struct {
	Nodes       int     `json:"nodes"`
	DeadEnds    int     `json:"dead_ends"`
	Tightenings int     `json:"tightenings"`
	Solutions   int     `json:"solutions"`
	MaxDepth    int     `json:"max_depth"`
	Stopped     bool    `json:"stopped"`
	ElapsedMS   float64 `json:"elapsed_ms"`
}

type jsonSolveResult struct {
	RunID     string         `json:"run_id,omitempty"`
	Verdict   string         `json:"verdict"`
	Stats     jsonStats      `json:"stats"`
	Solutions []jsonSolution `json:"solutions"`
}

func toJSONSolution(s *search.Solution) jsonSolution {
	js := jsonSolution{
		Index:     s.Index,
		Choices:   s.Choices,
		Intervals: make([]jsonInterval, len(s.Intervals)),
		Earliest:  s.Earliest,
		Network:   jsonMatrix(s.Graph),
	}
	for k, iv := range s.Intervals {
		js.Intervals[k] = jsonInterval{I: iv.I, J: iv.J, L: iv.L, R: iv.R}
	}

	return js
}

// presentSolve writes a search result in the configured format.
func presentSolve(w io.Writer, format string, res *search.Result, runID string) error {
	switch format {
	case formatJSON:
		out := jsonSolveResult{
			RunID:   runID,
			Verdict: res.Verdict.String(),
			Stats: jsonStats{
				Nodes:       res.Stats.Nodes,
				DeadEnds:    res.Stats.DeadEnds,
				Tightenings: res.Stats.Tightenings,
				Solutions:   res.Stats.Solutions,
				MaxDepth:    res.Stats.MaxDepth,
				Stopped:     res.Stats.Stopped,
				ElapsedMS:   float64(res.Stats.Elapsed.Microseconds()) / 1000,
			},
			Solutions: make([]jsonSolution, 0, len(res.Solutions)),
		}
		for _, s := range res.Solutions {
			out.Solutions = append(out.Solutions, toJSONSolution(s))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case formatMatrix:
		fmt.Fprintln(w, res.Verdict)
		for _, s := range res.Solutions {
			fmt.Fprintf(w, "# solution %d %v\n", s.Index, s.Choices)
			fmt.Fprint(w, s.Graph)
		}
		return nil
	}

	fmt.Fprintf(w, "verdict:   %s\n", res.Verdict)
	fmt.Fprintf(w, "solutions: %d\n", res.Stats.Solutions)
	fmt.Fprintf(w, "nodes:     %d (dead ends %d)\n", res.Stats.Nodes, res.Stats.DeadEnds)
	if res.Stats.Stopped {
		fmt.Fprintln(w, "stopped:   yes")
	}
	for _, s := range res.Solutions {
		fmt.Fprintf(w, "\n--- solution %d\n", s.Index)
		for k, iv := range s.Intervals {
			fmt.Fprintf(w, "slot %d %s\n", k, iv)
		}
		if err := writePointTable(w, s.Graph, s.Earliest); err != nil {
			return err
		}
	}

	return nil
}

// reportedEarliest shows a point with no lower bound at the reference time 0.
func reportedEarliest(b stp.Bound) stp.Bound {
	if b.IsNegInf() {
		return 0
	}
	return b
}

// writePointTable prints earliest/latest per point and, when given, a schedule.
// An unbounded earliest time is printed as 0; latest stays "inf".
func writePointTable(w io.Writer, g *stp.Graph, schedule []int64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if schedule != nil {
		fmt.Fprintln(tw, "point\tearliest\tlatest\tschedule")
	} else {
		fmt.Fprintln(tw, "point\tearliest\tlatest")
	}
	for p := 0; p < g.Size(); p++ {
		lo, err := stp.EarliestTime(g, p)
		if err != nil {
			return err
		}
		lo = reportedEarliest(lo)
		hi, err := stp.LatestTime(g, p)
		if err != nil {
			return err
		}
		if schedule != nil {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p, lo, hi, schedule[p])
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p, lo, hi)
	}

	return tw.Flush()
}

type jsonSTPResult struct {
	Verdict  string  `json:"verdict"`
	Network  [][]any `json:"network"`
	Earliest []int64 `json:"earliest,omitempty"`
}

// presentSTP writes an STP-only verdict and its tightened network.
func presentSTP(w io.Writer, format string, g *stp.Graph, v stp.Verdict) error {
	var schedule []int64
	if v == stp.Consistent {
		var err error
		if schedule, err = stp.EarliestSolution(g); err != nil {
			return err
		}
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonSTPResult{Verdict: v.String(), Network: jsonMatrix(g), Earliest: schedule})
	case formatMatrix:
		fmt.Fprintln(w, v)
		fmt.Fprint(w, g)
		return nil
	}

	fmt.Fprintln(w, v)
	if v != stp.Consistent {
		return nil
	}

	return writePointTable(w, g, schedule)
}
