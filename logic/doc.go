// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package logic provides sequential and-inverter circuits.
//
// A circuit is built from primary inputs, latches and structurally hashed
// two input and gates, with negation coded on edges via z.Lit polarity.
// The representation is the substrate for the reliability analyzer in the
// fstra package: node indices are stable, and gate creation order is
// topological, and latches close sequential loops without introducing
// combinational cycles.
package logic
