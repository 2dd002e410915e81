// SPDX-License-Identifier: MIT

// Command tcsp solves Temporal Constraint Satisfaction Problems.
//
//	tcsp solve problem.txt            enumerate consistent scenarios
//	tcsp stp network.txt              STP-only consistency check
//	tcsp heuristic -m meta-walk p.txt look for one schedule by local search
//	tcsp verify problem.txt x.txt     check a schedule against a problem
//	tcsp generate -v 6 -c 8 -i 3      print a random solvable problem
//	tcsp runs list | show ID          inspect stored runs
//
// Exit status: 0 success, 1 negative answer (UNSATISFIABLE or unsolved with
// --exit-code, INCONSISTENT, FAIL), 2 malformed input or usage error.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
