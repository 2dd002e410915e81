// SPDX-License-Identifier: MIT
// Package stp: Floyd–Warshall tightening.
//
// Purpose:
//   - Canonical dense APSP over Bound with deterministic loop order.
//   - In-place, O(n³) time, O(1) extra space.
//
// Contract:
//   - Inf means "no bound"; the diagonal is 0 unless a negative cycle was found.
//   - k must stay the outermost loop: paths through points < k are settled
//     before they are used to relax further pairs.

package stp

// Tighten runs the k → i → j relaxation D[i][j] = min(D[i][j], D[i][k] + D[k][j])
// in place. Afterwards g is its own shortest-path closure; running it again is a
// no-op unless the graph holds a negative cycle.
//
// Overflow policy: an Inf operand short-circuits before any addition, and the
// remaining sums go through Bound.Add, which saturates.
func (g *Graph) Tighten() {
	n := g.n
	data := g.data

	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand Bound
	)

	for k = 0; k < n; k++ { // intermediate point
		baseK = k * n

		for i = 0; i < n; i++ { // source point
			ik = data[i*n+k]
			if ik == Inf { // i has no bound towards k: nothing to relax via k
				continue
			}
			baseI = i * n

			for j = 0; j < n; j++ { // destination point
				kj = data[baseK+j]
				if kj == Inf {
					continue
				}
				cand = ik.Add(kj)
				if cand < data[baseI+j] { // strict improvement only
					data[baseI+j] = cand
				}
			}
		}
	}
}
