// SPDX-License-Identifier: MIT
// Package stp: the distance graph.
//
// Graph is a row-major N×N matrix of Bound values stored in one flat slice.
// D[i][j] is the tightest known upper bound on time(j) − time(i).
//
// Lifecycle:
//   - New(n): diagonal 0, off-diagonal Inf.
//   - SetEdge / ConstrainEdge / ClearEdge mutate single cells.
//   - Tighten must run before any consistency question is asked.

package stp

import (
	"strings"
)

// Graph is the STP distance graph.
type Graph struct {
	n    int     // number of time points
	data []Bound // flat backing storage, len == n*n
}

// New creates an n-point distance graph with no constraints:
// 0 on the diagonal and Inf everywhere else.
// Complexity: O(n²).
func New(n int) (*Graph, error) {
	if n <= 0 {
		return nil, stpErrorf(opNew, ErrBadSize)
	}
	g := &Graph{n: n, data: make([]Bound, n*n)}
	g.Reset()

	return g, nil
}

// Size returns the number of time points.
func (g *Graph) Size() int { return g.n }

// Reset restores the unconstrained state (0 diagonal, Inf elsewhere) in place.
// Complexity: O(n²).
func (g *Graph) Reset() {
	var i, j, base int
	for i = 0; i < g.n; i++ {
		base = i * g.n
		for j = 0; j < g.n; j++ {
			if i == j {
				g.data[base+j] = 0
				continue
			}
			g.data[base+j] = Inf
		}
	}
}

// inRange reports whether p is a valid time point.
func (g *Graph) inRange(p int) bool { return p >= 0 && p < g.n }

// at is the unchecked accessor used by kernels after validation.
func (g *Graph) at(i, j int) Bound { return g.data[i*g.n+j] }

// set is the unchecked writer used by kernels after validation.
func (g *Graph) set(i, j int, v Bound) { g.data[i*g.n+j] = v }

// At returns D[i][j].
func (g *Graph) At(i, j int) (Bound, error) {
	if !g.inRange(i) || !g.inRange(j) {
		return 0, ErrOutOfRange
	}

	return g.at(i, j), nil
}

// validateEdge checks endpoints and bounds shared by the edge writers.
func (g *Graph) validateEdge(i, j int, upper, lower Bound) error {
	if !g.inRange(i) || !g.inRange(j) {
		return ErrOutOfRange
	}
	if i == j {
		return ErrSelfEdge
	}
	// An upper bound of NegInf or a lower bound of Inf is an empty interval
	// that tightening cannot detect.
	if (upper != Inf && !ValidInput(upper)) || (lower != NegInf && !ValidInput(lower)) {
		return ErrBoundOutOfRange
	}

	return nil
}

// SetEdge writes the constraint time(j) − time(i) ∈ [lower, upper] verbatim:
// D[i][j] = upper, D[j][i] = −lower. Previous cell values are overwritten.
// upper may be Inf and lower NegInf (unbounded sides); any other value must
// satisfy ValidInput.
func (g *Graph) SetEdge(i, j int, upper, lower Bound) error {
	if err := g.validateEdge(i, j, upper, lower); err != nil {
		return stpErrorf(opSetEdge, err)
	}
	g.set(i, j, upper)
	g.set(j, i, lower.Neg())

	return nil
}

// ConstrainEdge intersects time(j) − time(i) ∈ [lower, upper] into the graph:
// each cell keeps the tighter of its current value and the new one.
// On a tightened graph this never loosens a derived bound.
func (g *Graph) ConstrainEdge(i, j int, upper, lower Bound) error {
	if err := g.validateEdge(i, j, upper, lower); err != nil {
		return stpErrorf(opConstrainEdge, err)
	}
	g.set(i, j, g.at(i, j).Min(upper))
	g.set(j, i, g.at(j, i).Min(lower.Neg()))

	return nil
}

// ClearEdge resets both directions between i and j to Inf.
func (g *Graph) ClearEdge(i, j int) error {
	if !g.inRange(i) || !g.inRange(j) {
		return stpErrorf(opClearEdge, ErrOutOfRange)
	}
	if i == j {
		return stpErrorf(opClearEdge, ErrSelfEdge)
	}
	g.set(i, j, Inf)
	g.set(j, i, Inf)

	return nil
}

// HasNegativeCycle reports whether any diagonal entry is negative.
// Meaningful only after Tighten.
// Complexity: O(n).
func (g *Graph) HasNegativeCycle() bool {
	for i := 0; i < g.n; i++ {
		if g.data[i*g.n+i] < 0 {
			return true
		}
	}

	return false
}

// Clone returns a deep copy.
// Complexity: O(n²).
func (g *Graph) Clone() *Graph {
	cp := make([]Bound, len(g.data))
	copy(cp, g.data)

	return &Graph{n: g.n, data: cp}
}

// CopyFrom overwrites g with the contents of src (snapshot restore).
// Both graphs must have the same size. No allocation.
func (g *Graph) CopyFrom(src *Graph) error {
	if src == nil {
		return stpErrorf(opCopyFrom, ErrNilGraph)
	}
	if src.n != g.n {
		return stpErrorf(opCopyFrom, ErrSizeMismatch)
	}
	copy(g.data, src.data)

	return nil
}

// Equal reports whether g and o have the same size and identical cells.
func (g *Graph) Equal(o *Graph) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.n != o.n {
		return false
	}
	for idx := range g.data {
		if g.data[idx] != o.data[idx] {
			return false
		}
	}

	return true
}

// Rows returns the matrix as a fresh [][]Bound (for presenters and encoders).
func (g *Graph) Rows() [][]Bound {
	rows := make([][]Bound, g.n)
	for i := 0; i < g.n; i++ {
		rows[i] = make([]Bound, g.n)
		copy(rows[i], g.data[i*g.n:(i+1)*g.n])
	}

	return rows
}

// String renders one row per line, cells separated by a single space.
func (g *Graph) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < g.n; i++ {
		for j = 0; j < g.n; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.at(i, j).String())
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
