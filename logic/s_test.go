// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package logic_test

import (
	"testing"

	"github.com/irifrance/fstra/logic"
	"github.com/irifrance/fstra/z"
)

func TestSLatch(t *testing.T) {
	s := logic.NewS()
	toggle := s.Lit()
	r := s.Latch(s.F)
	c := s.Choice(toggle, r, r.Not())
	s.SetNext(r, c)

	if s.Next(r) != c {
		t.Errorf("next not expected: expected %s got %s", c, s.Next(r))
	}
	if s.Init(r) != s.F {
		t.Errorf("init: expected %s got %s", s.F, s.Init(r))
	}
	if s.Type(r) != logic.SLatch {
		t.Errorf("latch type")
	}
}

type op struct {
	a z.Lit
	b z.Lit
	g z.Lit
}

func TestSLogic(t *testing.T) {
	s := logic.NewS()
	a := s.Lit()
	b := s.Lit()
	ops := []op{
		{a: s.T, b: s.Lit()},
		{a: s.F, b: s.Lit()},
		{a: a, b: a},
		{a: a, b: a.Not()},
		{a: a, b: b},
		{a: b, b: a},
		{a: s.Lit(), b: s.Lit()}}

	for i := range ops {
		ops[i].g = s.And(ops[i].a, ops[i].b)
	}
	if ops[0].g != ops[0].b {
		t.Errorf("t simp")
	}
	if ops[1].g != ops[1].a {
		t.Errorf("f simp")
	}
	if ops[2].g != ops[2].a {
		t.Errorf("= simp")
	}
	if ops[3].g != s.F {
		t.Errorf("!= simp")
	}
	if ops[4].g != ops[5].g {
		t.Errorf("h simp")
	}
}

func TestSGrowStrash(t *testing.T) {
	s := logic.NewS()
	N := 1020
	ins := make([]z.Lit, 0, N)
	for i := 0; i < N; i++ {
		ins = append(ins, s.Lit())
	}
	gs := make([]z.Lit, N/2)
	for i := 0; i < N/2; i++ {
		j := len(ins) - 1 - i
		a, b := ins[i], ins[j]
		g := s.And(a, b)
		gs[i] = g
	}
	for i := 0; i < N/2; i++ {
		j := len(ins) - 1 - i
		a, b := ins[i], ins[j]
		g := s.And(a, b)
		if g != gs[i] {
			t.Errorf("invalid strash")
		}
	}
}

func TestSEval(t *testing.T) {
	s := logic.NewS()
	a, b := s.Lit(), s.Lit()
	g := s.And(a, b.Not())
	vs := make([]bool, s.Len())
	vs[a.Var()] = true
	vs[b.Var()] = false
	s.Eval(vs)
	if !vs[g.Var()] {
		t.Errorf("bad and eval")
	}
	if !vs[s.T.Var()] {
		t.Errorf("bad const eval")
	}
	vs[b.Var()] = true
	s.Eval(vs)
	if vs[g.Var()] {
		t.Errorf("bad negated eval")
	}
}

func TestSLevels(t *testing.T) {
	s := logic.NewS()
	a, b, c := s.Lit(), s.Lit(), s.Lit()
	g1 := s.And(a, b)
	g2 := s.And(g1, c)
	lvl := s.Levels()
	if lvl[a.Var()] != 0 || lvl[g1.Var()] != 1 || lvl[g2.Var()] != 2 {
		t.Errorf("levels %v", lvl)
	}
	if s.Depth() != 2 {
		t.Errorf("depth %d", s.Depth())
	}
}

func TestSFanoutSizes(t *testing.T) {
	s := logic.NewS()
	a, b := s.Lit(), s.Lit()
	g1 := s.And(a, b)
	g2 := s.And(a, g1)
	refs := s.FanoutSizes(g2)
	if refs[a.Var()] != 2 {
		t.Errorf("fanout of a: %d", refs[a.Var()])
	}
	if refs[g1.Var()] != 1 {
		t.Errorf("fanout of g1: %d", refs[g1.Var()])
	}
	if refs[g2.Var()] != 1 {
		t.Errorf("fanout of g2 (output): %d", refs[g2.Var()])
	}
	r := s.Latch(s.F)
	d := s.And(a, r)
	s.SetNext(r, d)
	refs = s.FanoutSizes(g2)
	if refs[d.Var()] != 1 {
		t.Errorf("fanout of latch next: %d", refs[d.Var()])
	}
	if refs[r.Var()] != 1 {
		t.Errorf("fanout of latch: %d", refs[r.Var()])
	}
}
