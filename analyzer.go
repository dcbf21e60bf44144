// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fstra

import (
	"errors"
	"log"
	"sync"

	"github.com/irifrance/fstra/logic"
	"github.com/irifrance/fstra/mat"
	"github.com/irifrance/fstra/z"
)

// Configuration errors, returned at entry.
var (
	ErrFaultRate  = errors.New("fstra: fault rate not in [0,1]")
	ErrCycles     = errors.New("fstra: cycle count not positive")
	ErrMaxSources = errors.New("fstra: fanout source budget less than 1")
	ErrTheta      = errors.New("fstra: attenuation not in (0,1]")
)

// Options configures an Analyzer.
type Options struct {
	FaultRate  float64 // per-gate transient fault probability
	MaxSources int     // fanout source list budget per matrix
	Theta      float64 // attenuation of the backward priority score
	Lambda1    float64 // weight of the backward priority score
	Lambda2    float64 // weight of the forward priority score
	Debug      *log.Logger
}

// Defaults returns the default options: fault rate 0.01, source budget 5,
// attenuation 0.8, priority weights 0.75/0.25.
func Defaults() Options {
	return Options{
		FaultRate:  0.01,
		MaxSources: 5,
		Theta:      0.8,
		Lambda1:    0.75,
		Lambda2:    0.25,
	}
}

// Rel is one reliability record: output out agrees with its nominal value
// at cycle t with probability R.  Register endpoints (latch next state
// inputs) are reported with R 1; their contribution shows up at the
// cycles and outputs that read them.
type Rel struct {
	Cycle    int
	Output   int
	R        float64
	Register bool
}

// state is the per-cycle data attached to one node.
type state struct {
	fsL  []z.Var
	iptM *mat.M
	optM *mat.M
}

// Analyzer computes per-cycle, per-output reliabilities of a sequential
// circuit under a uniform gate fault model.  The circuit is read only;
// one Analyzer must not be used from multiple goroutines.
type Analyzer struct {
	s    *logic.S
	outs []z.Lit
	tr   Trace
	opts Options

	refs []int     // fanout reference counts per var
	prio []float64 // combined priorities per var
	ptms []*mat.M  // gate transfer matrices per and var

	cycle   int
	state   []state
	inherit []*mat.M // latch output rows for the current cycle
	nv      [][2]float64
	nvOK    []bool
}

// New creates an Analyzer for the circuit s with the given output
// literals, reading nominal values from tr.
func New(s *logic.S, outs []z.Lit, tr Trace, opts Options) (*Analyzer, error) {
	if opts.FaultRate < 0 || opts.FaultRate > 1 {
		return nil, ErrFaultRate
	}
	if opts.MaxSources < 1 {
		return nil, ErrMaxSources
	}
	if opts.Theta <= 0 || opts.Theta > 1 {
		return nil, ErrTheta
	}
	a := &Analyzer{
		s:    s,
		outs: append([]z.Lit(nil), outs...),
		tr:   tr,
		opts: opts,
	}
	a.refs = s.FanoutSizes(outs...)
	n := s.Len()
	a.ptms = make([]*mat.M, n)
	for i := 1; i < n; i++ {
		m := s.At(i)
		if s.Type(m) == logic.SAnd {
			a.ptms[m.Var()] = gatePTM(andTT, 2, opts.FaultRate)
		}
	}
	a.initPriorities()
	return a, nil
}

// Analyze runs a fresh analyzer with default options overridden by mfs
// and rate, for ncycles cycles.
func Analyze(s *logic.S, outs []z.Lit, tr Trace, ncycles, mfs int, rate float64) ([]Rel, error) {
	opts := Defaults()
	opts.MaxSources = mfs
	opts.FaultRate = rate
	a, err := New(s, outs, tr, opts)
	if err != nil {
		return nil, err
	}
	return a.Run(ncycles)
}

// Run analyzes ncycles cycles and returns one record per combinational
// output per cycle, ordered by (cycle, output).  Outputs whose nominal
// value is missing from the trace are skipped after a debug log entry.
func (a *Analyzer) Run(ncycles int) ([]Rel, error) {
	if ncycles < 1 {
		return nil, ErrCycles
	}
	n := a.s.Len()
	a.inherit = make([]*mat.M, n)
	for _, l := range a.s.Latches {
		a.inherit[l.Var()] = a.initVec(a.s.Init(l))
	}
	var rels []Rel
	for t := 1; t <= ncycles; t++ {
		a.cycle = t
		a.loadNominal(t)
		a.state = make([]state, n)
		for i := 1; i < n; i++ {
			m := a.s.At(i)
			v := m.Var()
			switch a.s.Type(m) {
			case logic.SConst:
				a.state[v] = state{optM: mat.RowVec(0, 1)}
			case logic.SInput:
				a.state[v] = state{optM: mat.RowVec(a.nv[v][0], a.nv[v][1])}
			case logic.SLatch:
				a.state[v] = state{optM: a.inherit[v]}
			case logic.SAnd:
				a.track(v)
			}
		}
		rels = append(rels, a.collect(t)...)
	}
	return rels, nil
}

// endpoint is a combinational output: a primary output, or a latch next
// state function feeding register latch.
type endpoint struct {
	m     z.Lit
	out   int
	latch z.Var // 0 for primary outputs
}

// collect reduces every combinational output of the current cycle,
// records reliabilities, and hands register rows to the next cycle.
// Reductions of distinct endpoint nodes run concurrently; everything they
// read is fixed for the cycle.
func (a *Analyzer) collect(t int) []Rel {
	eps := make([]endpoint, 0, len(a.outs)+len(a.s.Latches))
	for i, m := range a.outs {
		eps = append(eps, endpoint{m: m, out: i})
	}
	for j, l := range a.s.Latches {
		eps = append(eps, endpoint{m: a.s.Next(l), out: len(a.outs) + j, latch: l.Var()})
	}
	uniq := make([]z.Var, 0, len(eps))
	for _, ep := range eps {
		v := ep.m.Var()
		if indexOf(uniq, v) < 0 {
			uniq = append(uniq, v)
		}
	}
	re := make(map[z.Var]*mat.M, len(uniq))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, v := range uniq {
		wg.Add(1)
		go func(v z.Var) {
			defer wg.Done()
			r := a.reduceIterative(v)
			mu.Lock()
			re[v] = r
			mu.Unlock()
		}(v)
	}
	wg.Wait()

	next := make([]*mat.M, a.s.Len())
	rels := make([]Rel, 0, len(eps))
	for _, ep := range eps {
		r := re[ep.m.Var()]
		if ep.latch != 0 {
			nx := r.Clone()
			if !ep.m.IsPos() {
				nx.SwapCols(0, 1)
			}
			next[ep.latch] = nx
			rels = append(rels, Rel{Cycle: t, Output: ep.out, R: 1, Register: true})
			continue
		}
		v := ep.m.Var()
		if !a.nvOK[v] {
			a.logf("cycle %d output %d: no nominal value, skipped", t, ep.out)
			continue
		}
		rr := outputReliability(r, a.nv[v][0], a.nv[v][1], !ep.m.IsPos())
		rels = append(rels, Rel{Cycle: t, Output: ep.out, R: rr})
	}
	a.inherit = next
	return rels
}

// loadNominal fetches the nominal vectors of every node for cycle t.
// Nodes the trace cannot resolve get the unknown vector and are marked so
// endpoint collection can skip them.
func (a *Analyzer) loadNominal(t int) {
	n := a.s.Len()
	if a.nv == nil {
		a.nv = make([][2]float64, n)
		a.nvOK = make([]bool, n)
	}
	for i := 1; i < n; i++ {
		p0, p1, ok := a.tr.Value(z.Var(i), t)
		if !ok {
			p0, p1 = 0.5, 0.5
		}
		a.nv[i] = [2]float64{p0, p1}
		a.nvOK[i] = ok
	}
	// the constant node is true as a positive literal
	a.nv[a.s.T.Var()] = [2]float64{0, 1}
	a.nvOK[a.s.T.Var()] = true
}

// initVec is the cycle 1 latch output row for the declared initial value.
func (a *Analyzer) initVec(init z.Lit) *mat.M {
	switch init {
	case a.s.F:
		return mat.RowVec(1, 0)
	case a.s.T:
		return mat.RowVec(0, 1)
	default:
		return mat.RowVec(0.5, 0.5)
	}
}

// isSource tells whether v must be tracked explicitly downstream: its
// value is reused by more than one consumer, or it is a register output.
func (a *Analyzer) isSource(v z.Var) bool {
	return a.refs[v] > 1 || a.s.Type(v.Pos()) == logic.SLatch
}

func (a *Analyzer) logf(format string, args ...interface{}) {
	if a.opts.Debug != nil {
		a.opts.Debug.Printf(format, args...)
	}
}
