// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package logic

import (
	"github.com/irifrance/fstra/z"
)

// Type classifies a node of a sequential circuit.
type Type byte

const (
	SConst Type = iota // the constant node backing S.F and S.T
	SInput             // a primary input
	SLatch             // a latch (register) output
	SAnd               // a two input and gate
)

// Type S represents a sequential boolean circuit: an and-inverter graph
// with latches.
//
// Nodes are numbered by z.Var in creation order.  And gates are created
// after their operands, so for and gates index order is topological order.
// A latch's next-state function may be defined (SetNext) after gates that
// read the latch, which is how sequential loops close without ever forming
// a combinational cycle.
type S struct {
	nodes   []node
	strash  []uint32
	F       z.Lit
	T       z.Lit
	Latches []z.Lit
}

type node struct {
	a   z.Lit // and: first conjunct.  latch: initial value (F, T or LitNull for X)
	b   z.Lit // and: second conjunct.  latch: next state, LitNull until SetNext
	typ Type
	n   uint32 // next in strash chain
}

// NewS creates a new sequential circuit.
func NewS() *S {
	s := &S{}
	initS(s, 128)
	return s
}

// NewSCap creates a new sequential circuit with initial capacity capHint.
func NewSCap(capHint int) *S {
	s := &S{}
	initS(s, capHint)
	return s
}

func initS(s *S, capHint int) {
	if capHint < 2 {
		capHint = 2
	}
	s.nodes = make([]node, 2, capHint)
	s.strash = make([]uint32, capHint)
	s.nodes[1].typ = SConst
	s.F = z.Var(1).Neg()
	s.T = s.F.Not()
}

// Len returns the number of nodes used to represent s, including the
// reserved constant node.
func (s *S) Len() int {
	return len(s.nodes)
}

// At returns the i'th node as a positive literal.  Elements from 1..Len(s)
// are in creation order.
func (s *S) At(i int) z.Lit {
	return z.Var(i).Pos()
}

// Type returns the type of m's node.
func (s *S) Type(m z.Lit) Type {
	return s.nodes[m.Var()].typ
}

// Lit creates a fresh primary input and returns its positive literal.
func (s *S) Lit() z.Lit {
	n, i := s.newNode()
	n.typ = SInput
	return z.Var(i).Pos()
}

// Latch creates a latch with initial value init, which must be s.F, s.T,
// or z.LitNull for an undefined (X) initial value.  The next state is
// undefined until SetNext is called.
func (s *S) Latch(init z.Lit) z.Lit {
	if init != s.F && init != s.T && init != z.LitNull {
		panic("logic: invalid latch initial value")
	}
	n, i := s.newNode()
	n.typ = SLatch
	n.a = init
	m := z.Var(i).Pos()
	s.Latches = append(s.Latches, m)
	return m
}

// SetNext sets the next-state function of latch m to nxt.
func (s *S) SetNext(m, nxt z.Lit) {
	n := &s.nodes[m.Var()]
	if n.typ != SLatch || !m.IsPos() {
		panic("logic: SetNext on non-latch")
	}
	n.b = nxt
}

// SetInit sets the initial value of latch m to init, which must be s.F,
// s.T, or z.LitNull for X.
func (s *S) SetInit(m, init z.Lit) {
	n := &s.nodes[m.Var()]
	if n.typ != SLatch || !m.IsPos() {
		panic("logic: SetInit on non-latch")
	}
	if init != s.F && init != s.T && init != z.LitNull {
		panic("logic: invalid latch initial value")
	}
	n.a = init
}

// Next returns the next-state function of latch m.
func (s *S) Next(m z.Lit) z.Lit {
	return s.nodes[m.Var()].b
}

// Init returns the initial value of latch m: s.F, s.T, or z.LitNull for X.
func (s *S) Init(m z.Lit) z.Lit {
	return s.nodes[m.Var()].a
}

// Ins returns the operands of m's node.  For an and gate these are the two
// conjuncts; for other nodes both are z.LitNull.
func (s *S) Ins(m z.Lit) (z.Lit, z.Lit) {
	n := &s.nodes[m.Var()]
	if n.typ != SAnd {
		return z.LitNull, z.LitNull
	}
	return n.a, n.b
}

// And returns a literal equivalent to "a and b", which may be a new gate.
// Structurally identical gates are shared.
func (s *S) And(a, b z.Lit) z.Lit {
	if a == b {
		return a
	}
	if a == b.Not() {
		return s.F
	}
	if a > b {
		a, b = b, a
	}
	if a == s.F {
		return s.F
	}
	if a == s.T {
		return b
	}
	c := strashCode(a, b)
	i := c % uint32(cap(s.nodes))
	si := s.strash[i]
	for si != 0 {
		n := &s.nodes[si]
		if n.typ == SAnd && n.a == a && n.b == b {
			return z.Var(si).Pos()
		}
		si = n.n
	}
	m, j := s.newNode()
	m.typ = SAnd
	m.a = a
	m.b = b
	k := c % uint32(cap(s.nodes))
	m.n = s.strash[k]
	s.strash[k] = j
	return z.Var(j).Pos()
}

// Ands constructs a conjunction of a sequence of literals.  If ms is
// empty, then Ands returns s.T.
func (s *S) Ands(ms ...z.Lit) z.Lit {
	a := s.T
	for _, m := range ms {
		a = s.And(a, m)
	}
	return a
}

// Or constructs a literal which is the disjunction of a and b.
func (s *S) Or(a, b z.Lit) z.Lit {
	return s.And(a.Not(), b.Not()).Not()
}

// Ors constructs a literal which is the disjunction of the literals in ms.
// If ms is empty, then Ors returns s.F.
func (s *S) Ors(ms ...z.Lit) z.Lit {
	d := s.F
	for _, m := range ms {
		d = s.Or(d, m)
	}
	return d
}

// Implies constructs a literal equivalent to (a implies b).
func (s *S) Implies(a, b z.Lit) z.Lit {
	return s.Or(a.Not(), b)
}

// Xor constructs a literal equivalent to (a xor b).
func (s *S) Xor(a, b z.Lit) z.Lit {
	return s.Or(s.And(a, b.Not()), s.And(a.Not(), b))
}

// Choice constructs a literal equivalent to "if i then t else e".
func (s *S) Choice(i, t, e z.Lit) z.Lit {
	return s.Or(s.And(i, t), s.And(i.Not(), e))
}

// Eval evaluates the combinational part of the circuit under vs, where
// vs[v] holds the value of variable v.  Inputs and latches must be set by
// the caller; and gates are computed in index order.  Latch next-state
// values are not applied; use Next to step time.
func (s *S) Eval(vs []bool) {
	vs[s.T.Var()] = true
	for i := range s.nodes {
		n := &s.nodes[i]
		if n.typ != SAnd {
			continue
		}
		va, vb := vs[n.a.Var()], vs[n.b.Var()]
		if !n.a.IsPos() {
			va = !va
		}
		if !n.b.IsPos() {
			vb = !vb
		}
		vs[i] = va && vb
	}
}

// Levels returns, for each variable index, the combinational level of its
// node: 0 for constants, inputs and latch outputs, and one more than the
// maximal operand level for and gates.
func (s *S) Levels() []int {
	lvl := make([]int, len(s.nodes))
	for i := range s.nodes {
		n := &s.nodes[i]
		if n.typ != SAnd {
			continue
		}
		la, lb := lvl[n.a.Var()], lvl[n.b.Var()]
		if lb > la {
			la = lb
		}
		lvl[i] = la + 1
	}
	return lvl
}

// Depth returns the maximal combinational level over all nodes.
func (s *S) Depth() int {
	d := 0
	for _, l := range s.Levels() {
		if l > d {
			d = l
		}
	}
	return d
}

// FanoutSizes counts, for each variable index, how many times the node is
// referenced: as an and gate operand, as a latch next state, or as one of
// the given root (output) literals.
func (s *S) FanoutSizes(roots ...z.Lit) []int {
	refs := make([]int, len(s.nodes))
	for i := range s.nodes {
		n := &s.nodes[i]
		switch n.typ {
		case SAnd:
			refs[n.a.Var()]++
			refs[n.b.Var()]++
		case SLatch:
			if n.b != z.LitNull {
				refs[n.b.Var()]++
			}
		}
	}
	for _, m := range roots {
		refs[m.Var()]++
	}
	return refs
}

func (s *S) newNode() (*node, uint32) {
	if len(s.nodes) == cap(s.nodes) {
		s.grow()
	}
	id := len(s.nodes)
	s.nodes = s.nodes[:id+1]
	return &s.nodes[id], uint32(id)
}

func (s *S) grow() {
	newCap := cap(s.nodes) * 2
	nodes := make([]node, len(s.nodes), newCap)
	strash := make([]uint32, newCap)
	copy(nodes, s.nodes)
	ucap := uint32(newCap)
	for i := range nodes {
		n := &nodes[i]
		if n.typ != SAnd {
			continue
		}
		c := strashCode(n.a, n.b)
		j := c % ucap
		n.n = strash[j]
		strash[j] = uint32(i)
	}
	s.nodes = nodes
	s.strash = strash
}

func strashCode(a, b z.Lit) uint32 {
	return uint32((a << 13) * b)
}
