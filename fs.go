// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import (
	"fmt"

	"github.com/irifrance/fstra/mat"
	"github.com/irifrance/fstra/z"
)

// An operand pairs an ordered fanout source list with a conditional
// matrix whose rows are indexed by the joint binary code of the sources,
// most significant bit first.
type operand struct {
	fsL []z.Var
	m   *mat.M
}

// unit is the neutral operand for merge: no sources, one row.
func unit() operand {
	return operand{nil, mat.Ident(1)}
}

func (o operand) check() {
	if o.m.Rows() != 1<<uint(len(o.fsL)) {
		panic(fmt.Sprintf("fstra: %d matrix rows for %d sources",
			o.m.Rows(), len(o.fsL)))
	}
}

// merge tensors two operands into one, deduplicating sources.  The
// result's source list is a's followed by the elements of b's not already
// present, in first occurrence order; row x of the result is the
// Kronecker product of a's row at x's a-projection and b's row at x's
// b-projection, so a source shared by both operands drives both views
// with the same bit.
func merge(a, b operand) operand {
	a.check()
	b.check()
	L := make([]z.Var, 0, len(a.fsL)+len(b.fsL))
	L = append(L, a.fsL...)
	for _, e := range b.fsL {
		if indexOf(L, e) < 0 {
			L = append(L, e)
		}
	}
	rows := 1 << uint(len(L))
	c := mat.New(rows, a.m.Cols()*b.m.Cols())
	for x := 0; x < rows; x++ {
		x1, x2 := decompose(x, L, a.fsL, b.fsL)
		r1 := rowByCode(a.m, a.fsL, x1)
		r2 := rowByCode(b.m, b.fsL, x2)
		c.SetRow(x, mat.KronRows(r1, r2))
	}
	return operand{L, c}
}

// decompose splits the joint code x over L into the sub-codes over L1 and
// L2.  The bit of L[j] sits at position len(L)-1-j of x, and likewise for
// the sub-lists.
func decompose(x int, L, L1, L2 []z.Var) (int, int) {
	x1 := 0
	for i, e := range L1 {
		j := indexOf(L, e)
		if j < 0 {
			continue
		}
		if x&(1<<uint(len(L)-1-j)) != 0 {
			x1 |= 1 << uint(len(L1)-1-i)
		}
	}
	x2 := 0
	for i, e := range L2 {
		j := indexOf(L, e)
		if j < 0 {
			continue
		}
		if x&(1<<uint(len(L)-1-j)) != 0 {
			x2 |= 1 << uint(len(L2)-1-i)
		}
	}
	return x1, x2
}

func rowByCode(m *mat.M, fsL []z.Var, code int) []float64 {
	if len(fsL) == 0 {
		return m.Row(0)
	}
	return m.Row(code % m.Rows())
}

func indexOf(L []z.Var, e z.Var) int {
	for i, v := range L {
		if v == e {
			return i
		}
	}
	return -1
}

// dedupVars keeps the first occurrence of every element.
func dedupVars(vs []z.Var) []z.Var {
	out := vs[:0]
	for _, v := range vs {
		if indexOf(out, v) < 0 {
			out = append(out, v)
		}
	}
	return out
}

func maxVar(vs []z.Var) z.Var {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
