// SPDX-License-Identifier: MIT

package tcsp_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/tcsp/tcsp"
)

// ExampleParse loads the text format and prints the slots.
func ExampleParse() {
	p, err := tcsp.Parse(strings.NewReader("3\n2\n0 1 2 1 5 10 20\n1 2 1 0 4\n"))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.Points, len(p.Slots), p.ScenarioSpace())
	for _, s := range p.Slots {
		fmt.Println(s)
	}
	// Output:
	// 3 2 2
	// (0,1) {[1 5] [10 20]}
	// (1,2) {[0 4]}
}

// ExampleProblem_Verify checks two schedules against the same problem.
func ExampleProblem_Verify() {
	p, _ := tcsp.NewProblem(3)
	_ = p.AddSlot(0, 1, 1, 5, 10, 20)
	_ = p.AddSlot(1, 2, 0, 4)

	for _, x := range [][]int64{{0, 10, 12}, {0, 7, 20}} {
		v, _ := p.Verify(x)
		if len(v) == 0 {
			fmt.Println("PASS")
			continue
		}
		fmt.Println("FAIL")
		for _, bad := range v {
			fmt.Println(bad)
		}
	}
	// Output:
	// PASS
	// FAIL
	// slot 0: x[0]=0, x[1]=7, diff 7 outside every candidate
	// slot 1: x[1]=7, x[2]=20, diff 13 outside every candidate
}

// ExampleProblem_Format writes a problem back in the text format.
func ExampleProblem_Format() {
	p, _ := tcsp.NewProblem(2)
	_ = p.AddSlot(0, 1, -3, -1, 2, 8)
	_ = p.Format(os.Stdout)
	// Output:
	// 2
	// 1
	// 0 1 2 -3 -1 2 8
}
