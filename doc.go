// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package fstra estimates the signal reliability of sequential circuits
// under a uniform per-gate transient fault model.
//
// Given an and-inverter circuit (logic.S), a nominal trace of fault-free
// values, and a fault rate, the analyzer computes for every cycle and
// every output the probability that the faulty circuit agrees with the
// nominal one.  The method is a probabilistic transfer matrix analysis
// with fanout source tracking: instead of the exponential joint
// distribution of all signals, each node carries a conditional matrix
// indexed by an explicit ordered list of fanout sources, and low priority
// sources are marginalized against their nominal distributions to keep
// matrix heights bounded.
//
// The central objects are
//
//	gate PTM    a (2^k, 2) row-stochastic matrix from a gate's truth
//	            table perturbed by the fault rate
//	fs list     the ordered fanout sources a matrix's rows are indexed by
//	optM        a node's output conditional matrix over its fs list
//	REoptM      optM after iterative reduction at an output endpoint
//
// See Analyzer for the entry point.
package fstra
