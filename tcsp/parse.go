// SPDX-License-Identifier: MIT
// Package tcsp: plain-text loader and writer.
//
// Both formats are whitespace separated; line layout is irrelevant. Every
// malformed input yields a *StructuralError carrying the slot index (or -1)
// and the 1-based token position.

package tcsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/tcsp/stp"
)

// maxPrealloc caps capacity hints taken from untrusted counts.
const maxPrealloc = 1 << 12

// tokenReader yields integer tokens and remembers its position.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	return &tokenReader{sc: sc}
}

// next returns the next integer token; slot tags the error on failure.
func (t *tokenReader) next(slot int) (int64, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, err
		}
		return 0, &StructuralError{Slot: slot, Token: t.pos + 1, Err: fmt.Errorf("%w: unexpected end of input", ErrCountMismatch)}
	}
	t.pos++
	v, err := strconv.ParseInt(t.sc.Text(), 10, 64)
	if err != nil {
		return 0, &StructuralError{Slot: slot, Token: t.pos, Err: fmt.Errorf("%w: %q", ErrSyntax, t.sc.Text())}
	}

	return v, nil
}

// nextCount reads a non-negative count that must fit an int.
func (t *tokenReader) nextCount(slot int) (int, error) {
	v, err := t.next(slot)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > int64(^uint32(0)>>1) {
		return 0, &StructuralError{Slot: slot, Token: t.pos, Err: fmt.Errorf("%w: count %d", ErrCountMismatch, v)}
	}

	return int(v), nil
}

// expectEOF rejects trailing tokens.
func (t *tokenReader) expectEOF() error {
	if t.sc.Scan() {
		return &StructuralError{Slot: -1, Token: t.pos + 1, Err: fmt.Errorf("%w: trailing input %q", ErrCountMismatch, t.sc.Text())}
	}

	return t.sc.Err()
}

// Parse reads the TCSP text format:
//
//	N M (i j K (l r){K}){M}
//
// The returned problem is validated (permissive duplicate-pair policy).
func Parse(r io.Reader) (*Problem, error) {
	tr := newTokenReader(r)

	n, err := tr.nextCount(-1)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, &StructuralError{Slot: -1, Token: tr.pos, Err: ErrNoPoints}
	}
	m, err := tr.nextCount(-1)
	if err != nil {
		return nil, err
	}

	p := &Problem{Points: n, Slots: make([]Slot, 0, min(m, maxPrealloc))}
	var i, j, k int
	for s := 0; s < m; s++ {
		start := tr.pos + 1
		if i, err = tr.nextCount(s); err != nil {
			return nil, pointErr(err, s, tr.pos)
		}
		if j, err = tr.nextCount(s); err != nil {
			return nil, pointErr(err, s, tr.pos)
		}
		if k, err = tr.nextCount(s); err != nil {
			return nil, err
		}
		bounds := make([]int64, 0, 2*min(k, maxPrealloc))
		var v int64
		for b := 0; b < 2*k; b++ {
			if v, err = tr.next(s); err != nil {
				return nil, err
			}
			bounds = append(bounds, v)
		}
		if err = p.AddSlot(i, j, bounds...); err != nil {
			var se *StructuralError
			if errors.As(err, &se) {
				se.Token = start
			}
			return nil, err
		}
	}
	if err = tr.expectEOF(); err != nil {
		return nil, err
	}

	return p, nil
}

// pointErr turns a negative index, which nextCount reports as a count
// problem, into ErrPointOutOfRange.
func pointErr(err error, slot, tok int) error {
	var se *StructuralError
	if errors.As(err, &se) && errors.Is(se.Err, ErrCountMismatch) && se.Token == tok {
		return &StructuralError{Slot: slot, Token: tok, Err: ErrPointOutOfRange}
	}

	return err
}

// ParseSTP reads the STP-only format:
//
//	N E (i j a b){E}
//
// Each line constrains time(j) − time(i) ∈ [a, b]. Repeated pairs intersect.
// b may be stp.Inf and a may be stp.NegInf (unbounded sides); any other bound
// outside [-stp.MaxFinite, stp.MaxFinite] is ErrBoundOutOfRange.
// The returned graph is not tightened.
func ParseSTP(r io.Reader) (*stp.Graph, error) {
	tr := newTokenReader(r)

	n, err := tr.nextCount(-1)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, &StructuralError{Slot: -1, Token: tr.pos, Err: ErrNoPoints}
	}
	e, err := tr.nextCount(-1)
	if err != nil {
		return nil, err
	}
	g, err := stp.New(n)
	if err != nil {
		return nil, err
	}

	var i, j int
	var a, b int64
	for s := 0; s < e; s++ {
		start := tr.pos + 1
		if i, err = tr.nextCount(s); err != nil {
			return nil, pointErr(err, s, tr.pos)
		}
		if j, err = tr.nextCount(s); err != nil {
			return nil, pointErr(err, s, tr.pos)
		}
		if a, err = tr.next(s); err != nil {
			return nil, err
		}
		if b, err = tr.next(s); err != nil {
			return nil, err
		}
		if err = g.ConstrainEdge(i, j, stp.Bound(b), stp.Bound(a)); err != nil {
			return nil, &StructuralError{Slot: s, Token: start, Err: mapGraphErr(err)}
		}
	}
	if err = tr.expectEOF(); err != nil {
		return nil, err
	}

	return g, nil
}

// mapGraphErr translates stp sentinels into the tcsp vocabulary.
func mapGraphErr(err error) error {
	switch {
	case errors.Is(err, stp.ErrOutOfRange):
		return ErrPointOutOfRange
	case errors.Is(err, stp.ErrSelfEdge):
		return ErrSelfConstraint
	case errors.Is(err, stp.ErrBoundOutOfRange):
		return ErrBoundOutOfRange
	}

	return err
}

// Format writes p in the text format read by Parse: N and M on their own
// lines, then one line per slot.
func (p *Problem) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n", p.Points, len(p.Slots))
	for _, s := range p.Slots {
		fmt.Fprintf(bw, "%d %d %d", s.I, s.J, len(s.Intervals))
		for _, iv := range s.Intervals {
			fmt.Fprintf(bw, " %d %d", iv.L, iv.R)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
