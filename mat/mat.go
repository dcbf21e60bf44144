// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package mat provides the small dense float64 matrices underlying the
// probabilistic transfer matrix computations.
//
// Matrices are stored flat in row-major order.  The package is deliberately
// tiny: identities, products, Kronecker products of rows and of matrices,
// column swaps and a row-stochastic check.
package mat

import "fmt"

// M is a dense matrix with row-major flat storage.
type M struct {
	rows, cols int
	d          []float64
}

// New creates a zero matrix with r rows and c columns.
func New(r, c int) *M {
	if r <= 0 || c <= 0 {
		panic(fmt.Sprintf("mat: invalid shape %dx%d", r, c))
	}
	return &M{rows: r, cols: c, d: make([]float64, r*c)}
}

// Ident creates the n by n identity.
func Ident(n int) *M {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.d[i*n+i] = 1
	}
	return m
}

// RowVec creates a 1 by len(vs) matrix holding vs.
func RowVec(vs ...float64) *M {
	m := New(1, len(vs))
	copy(m.d, vs)
	return m
}

// Rows returns the number of rows of m.
func (m *M) Rows() int {
	return m.rows
}

// Cols returns the number of columns of m.
func (m *M) Cols() int {
	return m.cols
}

// At returns the element at row i, column j.
func (m *M) At(i, j int) float64 {
	return m.d[i*m.cols+j]
}

// Set sets the element at row i, column j to v.
func (m *M) Set(i, j int, v float64) {
	m.d[i*m.cols+j] = v
}

// Row returns row i of m as a slice aliasing m's storage.
func (m *M) Row(i int) []float64 {
	return m.d[i*m.cols : (i+1)*m.cols]
}

// SetRow copies vs into row i of m.
func (m *M) SetRow(i int, vs []float64) {
	if len(vs) != m.cols {
		panic(fmt.Sprintf("mat: row length %d != %d cols", len(vs), m.cols))
	}
	copy(m.Row(i), vs)
}

// Clone returns a deep copy of m.
func (m *M) Clone() *M {
	n := &M{rows: m.rows, cols: m.cols, d: make([]float64, len(m.d))}
	copy(n.d, m.d)
	return n
}

// SwapCols exchanges columns i and j in place and returns m.
func (m *M) SwapCols(i, j int) *M {
	for r := 0; r < m.rows; r++ {
		row := m.Row(r)
		row[i], row[j] = row[j], row[i]
	}
	return m
}

// Mul returns the matrix product a*b.  The column count of a must equal
// the row count of b.
func Mul(a, b *M) *M {
	if a.cols != b.rows {
		panic(fmt.Sprintf("mat: product shape mismatch %dx%d * %dx%d",
			a.rows, a.cols, b.rows, b.cols))
	}
	c := New(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		ra := a.Row(i)
		rc := c.Row(i)
		for k, av := range ra {
			if av == 0 {
				continue
			}
			rb := b.Row(k)
			for j, bv := range rb {
				rc[j] += av * bv
			}
		}
	}
	return c
}

// KronRows returns the Kronecker product of two row vectors: a slice of
// length len(a)*len(b) with a's index in the most significant position.
func KronRows(a, b []float64) []float64 {
	r := make([]float64, len(a)*len(b))
	for i, av := range a {
		for j, bv := range b {
			r[i*len(b)+j] = av * bv
		}
	}
	return r
}

// Kron returns the Kronecker product of a and b: a matrix with
// a.Rows()*b.Rows() rows and a.Cols()*b.Cols() columns where block (i,j)
// is a[i][j] * b.
func Kron(a, b *M) *M {
	c := New(a.rows*b.rows, a.cols*b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			av := a.At(i, j)
			if av == 0 {
				continue
			}
			for k := 0; k < b.rows; k++ {
				for l := 0; l < b.cols; l++ {
					c.Set(i*b.rows+k, j*b.cols+l, av*b.At(k, l))
				}
			}
		}
	}
	return c
}

// RowStochastic tells whether every row of m sums to 1 within eps.
func (m *M) RowStochastic(eps float64) bool {
	for i := 0; i < m.rows; i++ {
		s := 0.0
		for _, v := range m.Row(i) {
			s += v
		}
		if s < 1-eps || s > 1+eps {
			return false
		}
	}
	return true
}

func (m *M) String() string {
	s := fmt.Sprintf("%dx%d", m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		s += fmt.Sprintf("\n%v", m.Row(i))
	}
	return s
}
