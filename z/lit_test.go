// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "testing"

func TestLitDimacs(t *testing.T) {
	for i := 1; i < 100; i++ {
		if Dimacs2Lit(i).Dimacs() != i {
			t.Errorf("dimacs conversion %d", i)
		}
		if Dimacs2Lit(-i).Dimacs() != -i {
			t.Errorf("dimacs - conversion %d", i)
		}
		if !Dimacs2Lit(i).IsPos() {
			t.Errorf("not positive: %d", i)
		}
		if Dimacs2Lit(-i).IsPos() {
			t.Errorf("not negative: -%d", i)
		}
	}
}

func TestLitNot(t *testing.T) {
	for v := Var(1); v < 64; v++ {
		m := v.Pos()
		if m.Not() != v.Neg() {
			t.Errorf("not of %s", m)
		}
		if m.Not().Not() != m {
			t.Errorf("double not of %s", m)
		}
		if m.Not().Var() != v {
			t.Errorf("var of not %s", m)
		}
		if m.Not().Pos() != m {
			t.Errorf("pos of not %s", m)
		}
	}
}
