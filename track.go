// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import (
	"github.com/irifrance/fstra/mat"
	"github.com/irifrance/fstra/z"
)

// operandFor returns the view a consumer reads for fanin signal m in the
// current cycle.  A branching node or register output contributes itself
// as an explicit source over the 2x2 identity; a linear node passes its
// (fs list, optM) pair through.  An inverter on the edge swaps the
// matrix columns.
func (a *Analyzer) operandFor(m z.Lit) operand {
	v := m.Var()
	var o operand
	if a.isSource(v) {
		o = operand{[]z.Var{v}, mat.Ident(2)}
	} else {
		st := &a.state[v]
		o = operand{st.fsL, st.optM}
	}
	if !m.IsPos() {
		o = operand{o.fsL, o.m.Clone().SwapCols(0, 1)}
	}
	return o
}

// track builds the input and output matrices of and gate v by merging
// its fanin operands and applying the gate transfer matrix.  When the
// projected merged source list would exceed the budget, each operand is
// first marginalized by the removal list.
func (a *Analyzer) track(v z.Var) {
	c0, c1 := a.s.Ins(v.Pos())
	fanins := [2]z.Lit{c0, c1}

	proj := make([]z.Var, 0, 8)
	for _, f := range fanins {
		fv := f.Var()
		if a.isSource(fv) {
			proj = append(proj, fv)
		} else {
			proj = append(proj, a.state[fv].fsL...)
		}
	}
	proj = dedupVars(proj)
	rm := a.removalList(proj)

	cur := unit()
	for _, f := range fanins {
		o := a.marginalize(a.operandFor(f), rm)
		cur = merge(cur, o)
	}
	st := &a.state[v]
	st.fsL = cur.fsL
	st.iptM = cur.m
	st.optM = mat.Mul(cur.m, a.ptms[v])
}

// marginalize sums the sources of o that appear in rm out of its matrix
// against their nominal vectors, keeping the remaining sources in order.
// The row selector grows one factor per source: the 2x2 identity for kept
// sources, the transposed nominal vector for removed ones.
func (a *Analyzer) marginalize(o operand, rm map[z.Var]bool) operand {
	o.check()
	if len(rm) == 0 {
		return o
	}
	hit := false
	for _, e := range o.fsL {
		if rm[e] {
			hit = true
			break
		}
	}
	if !hit {
		return o
	}
	sel := mat.Ident(1)
	keep := make([]z.Var, 0, len(o.fsL))
	for _, e := range o.fsL {
		if rm[e] {
			sel = mat.Kron(sel, mat.RowVec(a.nv[e][0], a.nv[e][1]))
		} else {
			sel = mat.Kron(sel, mat.Ident(2))
			keep = append(keep, e)
		}
	}
	return operand{keep, mat.Mul(sel, o.m)}
}
