// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package aiger implements ascii and binary aiger format readers and an
// ascii writer for the inputs/latches/outputs subset of version 1.9 that
// the reliability analyzer consumes.  Files carrying bad state,
// constraint, justice or fairness sections are rejected.
//
// The aiger objects are backed by sequential circuits as represented in
// *logic.S.
package aiger
