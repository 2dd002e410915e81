// SPDX-License-Identifier: MIT

package search_test

import (
	"testing"

	"github.com/katalvlaran/tcsp/search"
	"github.com/katalvlaran/tcsp/tcsp"
)

var sinkRes *search.Result

func benchmarkSolve(b *testing.B, opts tcsp.GenerateOptions, sopts ...search.Option) {
	p, _, err := tcsp.Generate(opts)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkRes, err = search.Solve(p, sopts...)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve_Small(b *testing.B) {
	benchmarkSolve(b, tcsp.GenerateOptions{Variables: 5, Constraints: 6, Intervals: 2, Seed: 1})
}

func BenchmarkSolve_Medium(b *testing.B) {
	benchmarkSolve(b, tcsp.GenerateOptions{Variables: 10, Constraints: 12, Intervals: 3, Seed: 1})
}

func BenchmarkSolve_FirstOnly(b *testing.B) {
	benchmarkSolve(b, tcsp.GenerateOptions{Variables: 10, Constraints: 20, Intervals: 3, Seed: 1}, search.WithFirstOnly())
}

func BenchmarkSolve_FewestFirst(b *testing.B) {
	benchmarkSolve(b, tcsp.GenerateOptions{Variables: 10, Constraints: 12, Intervals: 3, Seed: 1},
		search.WithOrder(tcsp.OrderFewestIntervals))
}
