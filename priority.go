// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import (
	"github.com/irifrance/fstra/logic"
	"github.com/irifrance/fstra/z"
)

// initPriorities assigns every node a scalar priority combining a
// backward and a forward score.  The backward score attenuates the fanin
// scores and adds the size of the node's un-reduced source list, which is
// structural and so computed once from a symbolic list-only pass; the
// forward score is the levelized distance to the deepest node.  Both are
// normalized by their sums over all nodes and mixed by the lambda
// weights.
func (a *Analyzer) initPriorities() {
	n := a.s.Len()
	pre := make([]float64, n)
	lists := make([][]z.Var, n)
	for i := 1; i < n; i++ {
		m := a.s.At(i)
		v := m.Var()
		if a.s.Type(m) != logic.SAnd {
			pre[v] = 1
			continue
		}
		c0, c1 := a.s.Ins(m)
		l := make([]z.Var, 0, 4)
		for _, f := range [2]z.Lit{c0, c1} {
			fv := f.Var()
			if a.isSource(fv) {
				l = append(l, fv)
			} else {
				l = append(l, lists[fv]...)
			}
		}
		l = dedupVars(l)
		lists[v] = l
		pre[v] = a.opts.Theta*(pre[c0.Var()]+pre[c1.Var()]) + float64(len(l))
	}

	lvl := a.s.Levels()
	depth := 0
	for _, l := range lvl {
		if l > depth {
			depth = l
		}
	}
	suc := make([]float64, n)
	sumPre, sumSuc := 0.0, 0.0
	for i := 1; i < n; i++ {
		suc[i] = float64(depth - lvl[i])
		sumPre += pre[i]
		sumSuc += suc[i]
	}
	a.prio = make([]float64, n)
	for i := 1; i < n; i++ {
		p := 0.0
		if sumPre > 0 {
			p += a.opts.Lambda1 * pre[i] / sumPre
		}
		if sumSuc > 0 {
			p += a.opts.Lambda2 * suc[i] / sumSuc
		}
		a.prio[i] = p
	}
}
