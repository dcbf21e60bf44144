// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Lit is a literal: a variable together with a polarity.  The positive
// literal of variable v is coded 2v, its negation 2v+1.  LitNull, which is
// not associated with any variable, is the zero value.
type Lit uint32

// LitNull is the null literal.
const LitNull Lit = 0

// Var returns the variable underlying m.
func (m Lit) Var() Var {
	return Var(m >> 1)
}

// IsPos tells whether m has positive polarity.
func (m Lit) IsPos() bool {
	return m&1 == 0
}

// Not returns the negation of m.
func (m Lit) Not() Lit {
	return m ^ 1
}

// Pos returns the positive literal of m's variable.
func (m Lit) Pos() Lit {
	return m &^ 1
}

// Sign returns 1 if m is positive, -1 otherwise.
func (m Lit) Sign() int {
	if m.IsPos() {
		return 1
	}
	return -1
}

// Dimacs returns the dimacs coding of m, a signed non-zero integer.
func (m Lit) Dimacs() int {
	if m.IsPos() {
		return int(m >> 1)
	}
	return -int(m >> 1)
}

// Dimacs2Lit translates a dimacs coded literal to a Lit.
func Dimacs2Lit(d int) Lit {
	if d < 0 {
		return Lit(-2*d + 1)
	}
	return Lit(2 * d)
}

func (m Lit) String() string {
	if m == LitNull {
		return "?"
	}
	if m.IsPos() {
		return fmt.Sprintf("%d", m.Var())
	}
	return fmt.Sprintf("-%d", m.Var())
}
