// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package z provides literals and variables for circuit signals.
//
// A z.Var is a strictly positive integer naming a node of a circuit.  A
// z.Lit is a variable together with a polarity, coded as 2*v for the
// positive literal and 2*v+1 for its negation.  The coding makes negation
// a bit flip and keeps literals usable directly as slice indices.
package z
