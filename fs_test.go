// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import (
	"math"
	"testing"

	"github.com/irifrance/fstra/mat"
	"github.com/irifrance/fstra/z"
)

func TestDecompose(t *testing.T) {
	L := []z.Var{2, 3, 4}
	L1 := []z.Var{2, 4}
	L2 := []z.Var{3}
	// x carries L[0] in the most significant bit
	x := 0b101 // 2=1, 3=0, 4=1
	x1, x2 := decompose(x, L, L1, L2)
	if x1 != 0b11 {
		t.Errorf("x1 = %b", x1)
	}
	if x2 != 0 {
		t.Errorf("x2 = %b", x2)
	}
	x1, x2 = decompose(0b010, L, L1, L2)
	if x1 != 0 || x2 != 1 {
		t.Errorf("x1,x2 = %b,%b", x1, x2)
	}
}

func TestMergeDisjoint(t *testing.T) {
	A := mat.New(2, 2)
	A.SetRow(0, []float64{0.9, 0.1})
	A.SetRow(1, []float64{0.2, 0.8})
	B := mat.New(2, 2)
	B.SetRow(0, []float64{0.6, 0.4})
	B.SetRow(1, []float64{0.3, 0.7})
	a := operand{[]z.Var{2}, A}
	b := operand{[]z.Var{3}, B}

	c := merge(a, b)
	if len(c.fsL) != 2 || c.fsL[0] != 2 || c.fsL[1] != 3 {
		t.Fatalf("merged list %v", c.fsL)
	}
	if c.m.Rows() != 4 || c.m.Cols() != 4 {
		t.Fatalf("merged shape %dx%d", c.m.Rows(), c.m.Cols())
	}
	for x := 0; x < 4; x++ {
		xa, xb := x>>1, x&1
		want := mat.KronRows(A.Row(xa), B.Row(xb))
		for j, wv := range want {
			if c.m.At(x, j) != wv {
				t.Errorf("row %d col %d: %f != %f", x, j, c.m.At(x, j), wv)
			}
		}
	}

	// commutative up to permutation of rows and columns
	d := merge(b, a)
	for x := 0; x < 4; x++ {
		xa, xb := x>>1, x&1
		xd := xb<<1 | xa
		for ja := 0; ja < 2; ja++ {
			for jb := 0; jb < 2; jb++ {
				if c.m.At(x, ja*2+jb) != d.m.At(xd, jb*2+ja) {
					t.Errorf("not commutative at %d (%d,%d)", x, ja, jb)
				}
			}
		}
	}
}

func TestMergeShared(t *testing.T) {
	A := mat.New(2, 2)
	A.SetRow(0, []float64{0.9, 0.1})
	A.SetRow(1, []float64{0.2, 0.8})
	a := operand{[]z.Var{2}, A}
	b := operand{[]z.Var{2}, mat.Ident(2)}

	c := merge(a, b)
	// a shared source causes no growth in the source list or row count
	if len(c.fsL) != 1 || c.fsL[0] != 2 {
		t.Fatalf("merged list %v", c.fsL)
	}
	if c.m.Rows() != 2 {
		t.Fatalf("row growth on shared source: %d", c.m.Rows())
	}
	// the same bit drives both views
	for x := 0; x < 2; x++ {
		want := mat.KronRows(A.Row(x), mat.Ident(2).Row(x))
		for j, wv := range want {
			if c.m.At(x, j) != wv {
				t.Errorf("row %d col %d: %f != %f", x, j, c.m.At(x, j), wv)
			}
		}
	}
}

func TestMergeUnit(t *testing.T) {
	b := operand{nil, mat.RowVec(0.25, 0.75)}
	c := merge(unit(), b)
	if len(c.fsL) != 0 || c.m.Rows() != 1 || c.m.Cols() != 2 {
		t.Fatalf("unit merge shape")
	}
	if c.m.At(0, 1) != 0.75 {
		t.Errorf("unit merge value")
	}
}

func TestOperandCheck(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("shape mismatch not caught")
		}
	}()
	o := operand{[]z.Var{2, 3}, mat.Ident(2)}
	o.check()
}

func TestGatePTM(t *testing.T) {
	f := 0.01
	m := gatePTM(andTT, 2, f)
	if m.Rows() != 4 || m.Cols() != 2 {
		t.Fatalf("shape %dx%d", m.Rows(), m.Cols())
	}
	for r := 0; r < 4; r++ {
		p1 := f
		if r == 3 {
			p1 = 1 - f
		}
		if math.Abs(m.At(r, 1)-p1) > 1e-12 {
			t.Errorf("row %d: %f", r, m.At(r, 1))
		}
		if math.Abs(m.At(r, 0)+m.At(r, 1)-1) > 1e-12 {
			t.Errorf("row %d not stochastic", r)
		}
	}
	// zero fault rate gives one-hot rows
	m = gatePTM(andTT, 2, 0)
	for r := 0; r < 4; r++ {
		want := 0.0
		if r == 3 {
			want = 1.0
		}
		if m.At(r, 1) != want {
			t.Errorf("fault free row %d: %f", r, m.At(r, 1))
		}
	}
}

func TestRevBits(t *testing.T) {
	if revBits(0b01, 2) != 0b10 {
		t.Errorf("rev 01")
	}
	if revBits(0b11, 2) != 0b11 {
		t.Errorf("rev 11")
	}
	if revBits(0b100, 3) != 0b001 {
		t.Errorf("rev 100")
	}
}
