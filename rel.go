// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import "github.com/irifrance/fstra/mat"

// outputReliability contracts a reduced 1x2 output row with the nominal
// vector of the endpoint.  Both the row and the nominal pair live in the
// node domain; an inverter on the output edge maps both into the signal
// domain before the contraction.
func outputReliability(re *mat.M, v0, v1 float64, complemented bool) float64 {
	r0, r1 := re.At(0, 0), re.At(0, 1)
	if complemented {
		r0, r1 = r1, r0
		v0, v1 = v1, v0
	}
	return r0*v0 + r1*v1
}
