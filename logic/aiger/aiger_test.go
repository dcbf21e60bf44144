// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aiger

import (
	"bytes"
	"testing"

	"github.com/irifrance/fstra/logic"
)

var expectedAscii = `aag 4 1 1 2 1
2
4 6 0
4
5
6 2 4
c
aiger file created by fstra
`

func makeExample() *T {
	sys := logic.NewSCap(11)
	in := sys.Lit()
	m := sys.Latch(sys.F)
	a := sys.And(in, m)
	sys.SetNext(m, a)
	return MakeFor(sys, m, m.Not())
}

func TestWriteAscii(t *testing.T) {
	sys := makeExample()
	var buf bytes.Buffer
	if err := sys.WriteAscii(&buf); err != nil {
		t.Errorf("unexpected error in write ascii")
	}
	if buf.String() != expectedAscii {
		t.Errorf("unexpected output: %s\nvs\n%s", buf.String(), expectedAscii)
	}
}

func TestWriteReadAscii(t *testing.T) {
	sys := makeExample()
	var buf bytes.Buffer
	if err := sys.WriteAscii(&buf); err != nil {
		t.Fatalf("write: %s", err)
	}
	g, err := ReadAscii(&buf)
	if err != nil {
		t.Fatalf("read: %s", err)
	}
	if len(g.Inputs) != 1 || len(g.Latches) != 1 || len(g.Outputs) != 2 {
		t.Errorf("counts after round trip: %d %d %d",
			len(g.Inputs), len(g.Latches), len(g.Outputs))
	}
	m := g.Latches[0]
	if g.Init(m) != g.S.F {
		t.Errorf("latch init after round trip")
	}
	if g.Sys().Type(g.Next(m).Pos()) != logic.SAnd {
		t.Errorf("latch next after round trip")
	}
	if g.Outputs[0] != m {
		t.Errorf("output 0 not the latch")
	}
	if g.Outputs[1] != m.Not() {
		t.Errorf("output 1 not the negated latch")
	}
}

// the example circuit in binary coding: gate 6 = and(2, 4), written as
// deltas 6-4 and 4-2.
var binaryExample = "aig 4 1 1 2 1\n6 0\n4\n5\n\x02\x02i0 first-input\nc\ndone\n"

func TestReadBinary(t *testing.T) {
	g, err := ReadBinary(bytes.NewBufferString(binaryExample))
	if err != nil {
		t.Fatalf("error reading binary: '%s'", err)
	}
	if len(g.Inputs) != 1 || len(g.Latches) != 1 || len(g.Outputs) != 2 {
		t.Errorf("counts: %d %d %d", len(g.Inputs), len(g.Latches), len(g.Outputs))
	}
	if nm, ok := g.InputName(0); !ok || nm != "first-input" {
		t.Errorf("input symbol: %q %v", nm, ok)
	}
	m := g.Latches[0]
	nxt := g.Next(m)
	if g.Sys().Type(nxt.Pos()) != logic.SAnd {
		t.Errorf("latch next not an and gate")
	}
	c0, c1 := g.Sys().Ins(nxt.Pos())
	if c0 != g.Inputs[0] && c1 != g.Inputs[0] {
		t.Errorf("and children don't include the input")
	}
}

func TestReadUnsupported(t *testing.T) {
	src := "aag 1 0 0 0 0 1 0 0 0\n"
	if _, err := ReadAscii(bytes.NewBufferString(src)); err != Unsupported {
		t.Errorf("expected Unsupported, got %v", err)
	}
}

func TestNames(t *testing.T) {
	g := Make(10)
	g.NewIn()
	if err := g.NameInput(0, "i"); err != nil {
		t.Errorf("couldn't name input 0 'i'")
	}
	nm, ok := g.InputName(0)
	if nm != "i" {
		t.Errorf("name didn't work.")
	}
	if !ok {
		t.Errorf("not ok")
	}
	if err := g.NameInput(0, "a\nb"); err != InvalidName {
		t.Errorf("newline in name accepted")
	}
	if err := g.NameInput(-1, "x"); err != InvalidIndex {
		t.Errorf("negative index accepted")
	}
}
