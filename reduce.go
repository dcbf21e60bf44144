// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import (
	"sort"

	"github.com/irifrance/fstra/mat"
	"github.com/irifrance/fstra/z"
)

// removalList selects the sources to marginalize when fsL exceeds the
// budget: the |fsL| - MaxSources sources with the smallest combined
// priority, ties broken by smaller index.  Within budget it returns nil.
func (a *Analyzer) removalList(fsL []z.Var) map[z.Var]bool {
	over := len(fsL) - a.opts.MaxSources
	if over <= 0 {
		return nil
	}
	cand := append([]z.Var(nil), fsL...)
	sort.Slice(cand, func(i, j int) bool {
		pi, pj := a.prio[cand[i]], a.prio[cand[j]]
		if pi != pj {
			return pi < pj
		}
		return cand[i] < cand[j]
	})
	rm := make(map[z.Var]bool, over)
	for _, v := range cand[:over] {
		rm[v] = true
	}
	a.logf("cycle %d: marginalizing %d of %d sources", a.cycle, over, len(fsL))
	return rm
}

// reduceIterative eliminates every source of v's output matrix, highest
// index first.  Each step replaces the maximal source by that node's own
// conditional view, recomputes the removal list under the budget, and
// folds the step's reducer into an accumulated one.  The maximal index
// is a total order that parallels "most recently created source", so
// every expansion strictly lowers it and the walk terminates at the
// reduced REoptM, a single row over the output alphabet.
func (a *Analyzer) reduceIterative(v z.Var) *mat.M {
	st := &a.state[v]
	cur := append([]z.Var(nil), st.fsL...)
	var com *mat.M
	for len(cur) > 0 {
		mx := maxVar(cur)
		ls := &a.state[mx]

		proj := make([]z.Var, 0, len(cur)+len(ls.fsL))
		for _, e := range cur {
			if e == mx {
				proj = append(proj, ls.fsL...)
			} else {
				proj = append(proj, e)
			}
		}
		proj = dedupVars(proj)
		rm := a.removalList(proj)

		red := unit()
		for _, e := range cur {
			var o operand
			if e == mx {
				o = operand{ls.fsL, ls.optM}
			} else {
				o = operand{[]z.Var{e}, mat.Ident(2)}
			}
			red = merge(red, a.marginalize(o, rm))
		}
		if com == nil {
			com = red.m
		} else {
			com = mat.Mul(red.m, com)
		}
		cur = red.fsL
	}
	if com == nil {
		return st.optM
	}
	return mat.Mul(com, st.optM)
}
