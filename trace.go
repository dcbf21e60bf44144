// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import "github.com/irifrance/fstra/z"

// Trace provides the nominal (fault free) value of circuit signals, as
// produced by a reference simulation.  Value returns the probability pair
// for variable v at 1-based cycle t: [1,0] or [0,1] for deterministic
// values, [1/2,1/2] for an unknown (X) value, and ok=false when the trace
// holds no value for (v, t).
type Trace interface {
	Value(v z.Var, t int) (p0, p1 float64, ok bool)
}
