// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import "github.com/irifrance/fstra/mat"

// andTT is the truth table of a two input and gate, LSB first over the
// inputs: only assignment 11 yields 1.
const andTT uint64 = 0x8

// gatePTM builds the (2^k, 2) probabilistic transfer matrix of a gate
// from its k-input truth table tt and the fault rate f.  Truth table bit
// i is indexed LSB first over the inputs; matrix rows are indexed by the
// merge column code, which carries the first input in the most
// significant position, so row r reads tt at the bit-reversal of r.
// Each row is the one-hot of the fault free output perturbed by f:
// p <- p*(1-f) + (1-p)*f.  Input polarities are not applied here; callers
// swap columns of upstream matrices instead.
func gatePTM(tt uint64, k int, f float64) *mat.M {
	rows := 1 << uint(k)
	m := mat.New(rows, 2)
	for r := 0; r < rows; r++ {
		i := revBits(r, k)
		p0, p1 := 1.0, 0.0
		if tt>>uint(i)&1 == 1 {
			p0, p1 = 0.0, 1.0
		}
		m.Set(r, 0, p0*(1-f)+p1*f)
		m.Set(r, 1, p1*(1-f)+p0*f)
	}
	return m
}

// revBits reverses the k low bits of x.
func revBits(x, k int) int {
	r := 0
	for i := 0; i < k; i++ {
		if x&(1<<uint(i)) != 0 {
			r |= 1 << uint(k-1-i)
		}
	}
	return r
}
