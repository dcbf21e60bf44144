// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command fstra estimates the per-cycle reliability of every output of an
// aiger circuit under a uniform per-gate transient fault model, using a
// random input stimulus simulated in-process as the nominal trace.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/irifrance/fstra"
	"github.com/irifrance/fstra/logic/aiger"
	"github.com/irifrance/fstra/sim"
)

var usage = `usage: fstra [options] <aiger file>

fstra reads an ascii or binary aiger circuit, drives it with a random
deterministic stimulus, and reports for each cycle and each primary
output the probability that the faulty circuit agrees with the fault
free one.

Options:
`

var (
	cycles  = flag.Int("n", 5, "number of cycles to analyze")
	mfs     = flag.Int("mfs", 5, "fanout source budget per matrix")
	rate    = flag.Float64("rate", 0.01, "per-gate fault rate")
	seed    = flag.Int64("seed", 1, "stimulus seed")
	verbose = flag.Bool("v", false, "log debug information to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("fstra: %s", err)
	}
	defer f.Close()
	br := bufio.NewReader(f)
	var g *aiger.T
	if pk, e := br.Peek(3); e == nil && string(pk) == "aig" {
		g, err = aiger.ReadBinary(br)
	} else {
		g, err = aiger.ReadAscii(br)
	}
	if err != nil {
		log.Fatalf("fstra: %s: %s", flag.Arg(0), err)
	}

	rng := rand.New(rand.NewSource(*seed))
	stim := make([][]int8, *cycles)
	for t := range stim {
		stim[t] = make([]int8, len(g.Inputs))
		for i := range stim[t] {
			stim[t][i] = int8(rng.Intn(2))
		}
	}
	w := sim.Run(g.Sys(), g.Inputs, stim, *cycles)

	opts := fstra.Defaults()
	opts.MaxSources = *mfs
	opts.FaultRate = *rate
	if *verbose {
		opts.Debug = log.New(os.Stderr, "fstra: ", 0)
	}
	an, err := fstra.New(g.Sys(), g.Outputs, w, opts)
	if err != nil {
		log.Fatalf("fstra: %s", err)
	}
	rels, err := an.Run(*cycles)
	if err != nil {
		log.Fatalf("fstra: %s", err)
	}
	for _, r := range rels {
		if r.Register {
			if *verbose {
				fmt.Printf("Cycle %d, register %d\n", r.Cycle, r.Output-len(g.Outputs))
			}
			continue
		}
		nm := fmt.Sprintf("%d", r.Output)
		if s, ok := g.OutputName(r.Output); ok {
			nm = s
		}
		fmt.Printf("Cycle %d, PO %s, Reliability: %.6f\n", r.Cycle, nm, r.R)
	}
}
