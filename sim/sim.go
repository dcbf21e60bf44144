// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package sim provides reference simulation of sequential circuits: a
// deterministic three-valued simulator whose waveform serves as the
// nominal trace for the reliability analyzer, and a Monte Carlo fault
// simulator used to cross check analytic reliabilities.
package sim

import (
	"github.com/irifrance/fstra/logic"
	"github.com/irifrance/fstra/z"
)

// Three-valued signal values.
const (
	Lo int8 = 0
	Hi int8 = 1
	X  int8 = -1
)

// Waveform records the three-valued value of every node at every
// simulated cycle.  It implements the analyzer's Trace: deterministic
// values map to one-hot probability pairs, X to [1/2,1/2].
type Waveform struct {
	vals [][]int8 // vals[t-1][var]
}

// Value returns the nominal probability pair of variable v at 1-based
// cycle t.
func (w *Waveform) Value(v z.Var, t int) (p0, p1 float64, ok bool) {
	if t < 1 || t > len(w.vals) || int(v) >= len(w.vals[t-1]) {
		return 0, 0, false
	}
	switch w.vals[t-1][v] {
	case Lo:
		return 1, 0, true
	case Hi:
		return 0, 1, true
	default:
		return 0.5, 0.5, true
	}
}

// At returns the raw three-valued value of variable v at cycle t.
func (w *Waveform) At(v z.Var, t int) int8 {
	return w.vals[t-1][v]
}

// Cycles returns the number of simulated cycles.
func (w *Waveform) Cycles() int {
	return len(w.vals)
}

// Run simulates s for ncycles cycles.  stim[t-1][i] holds the value of
// inputs[i] at cycle t; missing cycles or entries read as X.  Latches
// start from their declared initial values and step at cycle boundaries.
func Run(s *logic.S, inputs []z.Lit, stim [][]int8, ncycles int) *Waveform {
	n := s.Len()
	ls := make([]int8, n)
	for _, l := range s.Latches {
		ls[l.Var()] = initVal(s, l)
	}
	w := &Waveform{vals: make([][]int8, 0, ncycles)}
	for t := 1; t <= ncycles; t++ {
		vs := make([]int8, n)
		vs[s.T.Var()] = Hi
		for i, in := range inputs {
			v := X
			if t-1 < len(stim) && i < len(stim[t-1]) {
				v = stim[t-1][i]
			}
			vs[in.Var()] = v
		}
		for _, l := range s.Latches {
			vs[l.Var()] = ls[l.Var()]
		}
		eval3(s, vs)
		w.vals = append(w.vals, vs)
		for _, l := range s.Latches {
			ls[l.Var()] = litVal(vs, s.Next(l))
		}
	}
	return w
}

func initVal(s *logic.S, l z.Lit) int8 {
	switch s.Init(l) {
	case s.F:
		return Lo
	case s.T:
		return Hi
	default:
		return X
	}
}

// eval3 computes all and gates three-valued in index order: a zero
// operand dominates, otherwise X is contagious.
func eval3(s *logic.S, vs []int8) {
	n := s.Len()
	for i := 1; i < n; i++ {
		m := s.At(i)
		if s.Type(m) != logic.SAnd {
			continue
		}
		c0, c1 := s.Ins(m)
		va, vb := litVal(vs, c0), litVal(vs, c1)
		switch {
		case va == Lo || vb == Lo:
			vs[i] = Lo
		case va == X || vb == X:
			vs[i] = X
		default:
			vs[i] = Hi
		}
	}
}

// litVal reads the value of a signed literal: X is preserved, otherwise
// the polarity applies.
func litVal(vs []int8, m z.Lit) int8 {
	v := vs[m.Var()]
	if v == X {
		return X
	}
	if !m.IsPos() {
		return 1 - v
	}
	return v
}
