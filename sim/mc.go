// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sim

import (
	"math/rand"

	"github.com/irifrance/fstra/logic"
	"github.com/irifrance/fstra/z"
)

// MonteCarlo estimates, by sampling, the probability that each output of
// s agrees with its nominal value at each cycle when every and gate flips
// its result independently with probability rate.  The stimulus must be
// deterministic; X inputs and X latch initial values read as 0.  The
// result is indexed [cycle-1][output].
func MonteCarlo(s *logic.S, outs []z.Lit, inputs []z.Lit, stim [][]int8, ncycles, trials int, rate float64, rng *rand.Rand) [][]float64 {
	nominal := Run(s, inputs, stim, ncycles)
	agree := make([][]float64, ncycles)
	for t := range agree {
		agree[t] = make([]float64, len(outs))
	}
	n := s.Len()
	for trial := 0; trial < trials; trial++ {
		ls := make([]bool, n)
		for _, l := range s.Latches {
			ls[l.Var()] = initVal(s, l) == Hi
		}
		for t := 1; t <= ncycles; t++ {
			vs := make([]bool, n)
			vs[s.T.Var()] = true
			for i, in := range inputs {
				on := false
				if t-1 < len(stim) && i < len(stim[t-1]) {
					on = stim[t-1][i] == Hi
				}
				vs[in.Var()] = on
			}
			for _, l := range s.Latches {
				vs[l.Var()] = ls[l.Var()]
			}
			for i := 1; i < n; i++ {
				m := s.At(i)
				if s.Type(m) != logic.SAnd {
					continue
				}
				c0, c1 := s.Ins(m)
				g := boolVal(vs, c0) && boolVal(vs, c1)
				if rng.Float64() < rate {
					g = !g
				}
				vs[i] = g
			}
			for _, l := range s.Latches {
				ls[l.Var()] = boolVal(vs, s.Next(l))
			}
			for oi, o := range outs {
				got := boolVal(vs, o)
				want := nominal.At(o.Var(), t)
				if !o.IsPos() && want != X {
					want = 1 - want
				}
				if (want == Hi) == got {
					agree[t-1][oi]++
				}
			}
		}
	}
	for t := range agree {
		for oi := range agree[t] {
			agree[t][oi] /= float64(trials)
		}
	}
	return agree
}

func boolVal(vs []bool, m z.Lit) bool {
	v := vs[m.Var()]
	if !m.IsPos() {
		return !v
	}
	return v
}
