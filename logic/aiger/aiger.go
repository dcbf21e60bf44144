// Copyright 2026 The Fstra Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aiger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/irifrance/fstra/logic"
	"github.com/irifrance/fstra/z"
)

// Errors related to IO and formatting
var (
	PrematureEOF       = errors.New("premature EOF")
	ReadError          = errors.New("read error")
	UnexpectedChar     = errors.New("unexpected char")
	BadHeader          = errors.New("bad header")
	BinaryMismatch     = errors.New("binary mismatch")
	InvalidLatchInit   = errors.New("invalid latch init value")
	LitOOB             = errors.New("literal out of bounds")
	BadDeltaEncoding   = errors.New("bad delta encoding")
	InvalidIndex       = errors.New("invalid index")
	InvalidName        = errors.New("invalid symbol name")
	SignedInput        = errors.New("input is negated")
	SignedLatch        = errors.New("latch is negated")
	SignedAnd          = errors.New("and gate def is negated")
	CombLoop           = errors.New("combinational logic has a loop")
	AndMultiplyDefined = errors.New("and gate multiply defined")
	UndefinedLit       = errors.New("literal not defined")
	Unsupported        = errors.New("unsupported aiger section (B/C/J/F)")
)

// Type T holds a circuit read from or written to disk in Aiger format,
// restricted to the inputs/latches/outputs subset the reliability
// analyzer consumes.
type T struct {
	*logic.S // the circuit backing this Aiger object
	Inputs   []z.Lit
	Outputs  []z.Lit
	symbols  map[byte]map[int]string
}

// MakeFor makes an Aiger object from a circuit.  The circuit is the
// backing store for the Aiger object, no copy is made.
func MakeFor(sys *logic.S, ms ...z.Lit) *T {
	result := &T{
		S:       sys,
		symbols: map[byte]map[int]string{},
	}
	for _, k := range []byte{'i', 'l', 'o'} {
		result.symbols[k] = make(map[int]string)
	}
	n := sys.Len()
	for i := 1; i < n; i++ {
		m := sys.At(i)
		if sys.Type(m) == logic.SInput {
			result.Inputs = append(result.Inputs, m)
		}
	}
	result.Outputs = make([]z.Lit, len(ms))
	copy(result.Outputs, ms)
	return result
}

// Make makes an Aiger object with initial capacity hint c for the
// underlying circuit.
func Make(c int) *T {
	return MakeFor(logic.NewSCap(c))
}

// Sys returns the circuit backing this Aiger object.
func (a *T) Sys() *logic.S {
	return a.S
}

// NewIn creates a fresh primary input.
func (a *T) NewIn() z.Lit {
	m := a.S.Lit()
	a.Inputs = append(a.Inputs, m)
	return m
}

// SetOutput appends m to the outputs.
func (a *T) SetOutput(m z.Lit) {
	a.Outputs = append(a.Outputs, m)
}

func (a *T) name(k byte, index, bound int, nm string) error {
	if index < 0 || index > bound {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	a.symbols[k][index] = nm
	return nil
}

// NameInput names the index'th input nm.
func (a *T) NameInput(index int, nm string) error {
	return a.name('i', index, len(a.Inputs), nm)
}

// InputName gives the name of the index'th input, if any.
func (a *T) InputName(index int) (string, bool) {
	nm, found := a.symbols['i'][index]
	return nm, found
}

// NameLatch names the index'th latch nm.
func (a *T) NameLatch(index int, nm string) error {
	return a.name('l', index, len(a.Latches), nm)
}

// LatchName gives the name of the index'th latch, if any.
func (a *T) LatchName(index int) (string, bool) {
	nm, found := a.symbols['l'][index]
	return nm, found
}

// NameOutput names the index'th output nm.
func (a *T) NameOutput(index int, nm string) error {
	return a.name('o', index, len(a.Outputs), nm)
}

// OutputName gives the name of the index'th output, if any.
func (a *T) OutputName(index int) (string, bool) {
	nm, found := a.symbols['o'][index]
	return nm, found
}

// WriteAscii writes an ASCII version of AIGER format for the object a to
// the writer w.
func (a *T) WriteAscii(w io.Writer) error {
	hdr := makeHeader(a)
	bw := bufio.NewWriter(w)
	hdr.write(bw)
	for _, m := range a.Inputs {
		writeLit(bw, m, a.S)
		bw.WriteString("\n")
	}
	for _, m := range a.Latches {
		writeLit(bw, m, a.S)
		bw.WriteString(" ")
		writeLit(bw, a.Next(m), a.S)
		switch a.Init(m) {
		case a.S.F:
			bw.WriteString(" 0\n")
		case a.S.T:
			bw.WriteString(" 1\n")
		case z.LitNull:
			bw.WriteString(" ")
			writeLit(bw, m, a.S)
			bw.WriteString("\n")
		default:
			panic("invalid initial value")
		}
	}
	for _, m := range a.Outputs {
		writeLit(bw, m, a.S)
		bw.WriteString("\n")
	}
	a.writeAsciiAnds(bw)
	a.writeSymtab(bw)
	bw.WriteString("c\naiger file created by fstra\n")
	return bw.Flush()
}

func (a *T) writeAsciiAnds(w *bufio.Writer) {
	// topologic order is friendly to other readers
	dfs := newsDfs(a.S, func(s *logic.S, m z.Lit) {
		if s.Type(m) != logic.SAnd {
			return
		}
		writeLit(w, m, s)
		w.WriteString(" ")
		c0, c1 := s.Ins(m)
		writeLit(w, c0, s)
		w.WriteString(" ")
		writeLit(w, c1, s)
		w.WriteString("\n")
	})
	nexts := make([]z.Lit, 0, len(a.Latches))
	for _, m := range a.Latches {
		nexts = append(nexts, a.Next(m))
	}
	dfs.post(a.Outputs...)
	dfs.post(nexts...)
}

func (a *T) writeSymtab(w *bufio.Writer) {
	for _, k := range []byte{'i', 'l', 'o'} {
		for i, nm := range a.symbols[k] {
			fmt.Fprintf(w, "%c%d %s\n", k, i, nm)
		}
	}
}

// ReadAscii reads an ascii coded Aiger file.  The B/C/J/F sections of
// version 1.9 are not supported and yield Unsupported.
func ReadAscii(r io.Reader) (*T, error) {
	br := bufio.NewReader(r)
	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if hdr.Binary {
		return nil, BinaryMismatch
	}
	rdr := makeReader(Make(int(hdr.Max+1)), hdr)
	if err := rdr.readAsciiInputs(hdr, br); err != nil {
		return nil, err
	}
	if err := rdr.readLatches(hdr, br, true); err != nil {
		return nil, err
	}
	if err := rdr.readOutputs(hdr.Out, hdr.Max, br); err != nil {
		return nil, err
	}
	if err := rdr.readAsciiAnds(hdr, br); err != nil {
		return nil, err
	}
	if err := rdr.readSymsAndComments(br); err != nil {
		return nil, err
	}
	if err := rdr.commit(true); err != nil {
		return nil, err
	}
	return rdr.T, nil
}

// ReadBinary reads a binary Aiger file.  The B/C/J/F sections of version
// 1.9 are not supported and yield Unsupported.
func ReadBinary(r io.Reader) (*T, error) {
	br := bufio.NewReader(r)
	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if !hdr.Binary {
		return nil, BinaryMismatch
	}
	rdr := makeReader(Make(int(hdr.Max+1)), hdr)
	var i uint
	for i = 0; i < hdr.In; i++ {
		m := rdr.S.Lit()
		rdr.mapLit((i+1)*2, m)
		rdr.Inputs = append(rdr.Inputs, m)
	}
	if err := rdr.readLatches(hdr, br, false); err != nil {
		return nil, err
	}
	if err := rdr.readOutputs(hdr.Out, hdr.Max, br); err != nil {
		return nil, err
	}
	if err := rdr.readBinaryAnds(hdr, br); err != nil {
		return nil, err
	}
	if err := rdr.readSymsAndComments(br); err != nil {
		return nil, err
	}
	if err := rdr.commit(false); err != nil {
		return nil, err
	}
	return rdr.T, nil
}

// data for aiger ands read in ascii mode; kept aside to detect
// combinational loops and multiple definitions before committing to the
// strashed circuit.
type aigAnd struct {
	children [2]uint
	defined  bool
	mapped   bool
	dfsColor uint8
}

type reader struct {
	*T
	AigLatches    []uint // only used in ascii reading
	AigLatchNexts []uint
	AigOutputs    []uint
	varMap        []z.Var
	AigAnds       []aigAnd
}

func makeReader(a *T, hdr *header) *reader {
	rdr := &reader{
		T:             a,
		AigLatches:    make([]uint, 0, hdr.Latch),
		AigLatchNexts: make([]uint, 0, hdr.Latch),
		AigOutputs:    make([]uint, 0, hdr.Out),
		varMap:        make([]z.Var, hdr.Max+1),
	}
	rdr.varMap[0] = a.S.F.Var()
	return rdr
}

func (rdr *reader) mapLit(aigerLit uint, m z.Lit) {
	rdr.varMap[int(aigerLit>>1)] = m.Var()
}

// litFor translates an on-disk literal.  Aiger literal 0 is the constant
// false; our constant variable's positive literal is true, so the
// polarity flips for the constant slot.
func (rdr *reader) litFor(aigerLit uint) z.Lit {
	v := aigerLit >> 1
	rv := rdr.varMap[v]
	if rv == 0 {
		return z.LitNull
	}
	m := rv.Pos()
	if v == 0 {
		m = rdr.S.F
	}
	if aigerLit&1 != 0 {
		m = m.Not()
	}
	return m
}

// once everything is read, use the aiger literal mapping to connect latch
// nexts and outputs.
func (rdr *reader) commit(ascii bool) error {
	offset := len(rdr.Inputs) + 1 // only used in binary (ascii=false)
	for i, u := range rdr.AigLatchNexts {
		var id uint
		if ascii {
			id = rdr.AigLatches[i]
		} else {
			id = uint(offset+i) * 2
		}
		m := rdr.litFor(id)
		n := rdr.litFor(u)
		if m == z.LitNull || n == z.LitNull {
			return UndefinedLit
		}
		rdr.SetNext(m, n)
	}
	for _, u := range rdr.AigOutputs {
		m := rdr.litFor(u)
		if m == z.LitNull {
			return UndefinedLit
		}
		rdr.T.Outputs = append(rdr.T.Outputs, m)
	}
	return nil
}

// each latch line holds the next state and optionally a reset value:
// 0, 1, or the latch literal itself for an X initial value.
func (rdr *reader) readLatches(hdr *header, br *bufio.Reader, ascii bool) error {
	var i uint
	for i = 0; i < hdr.Latch; i++ {
		var m z.Lit
		lit := (hdr.In + i + 1) * 2
		if ascii {
			latch, err := readUint(br)
			if err != nil {
				return err
			}
			if latch&1 != 0 {
				return SignedLatch
			}
			rdr.AigLatches = append(rdr.AigLatches, latch)
			m = rdr.S.Latch(rdr.S.F)
			rdr.mapLit(latch, m)
			lit = latch
			if err := readSP(br); err != nil {
				return err
			}
		} else {
			m = rdr.S.Latch(rdr.S.F)
			rdr.mapLit(lit, m)
		}
		nxt, err := readUint(br)
		if err != nil {
			return err
		}
		if nxt > hdr.Max*2+1 {
			return LitOOB
		}
		rdr.AigLatchNexts = append(rdr.AigLatchNexts, nxt)
		b, e := br.ReadByte()
		if e == io.EOF {
			return PrematureEOF
		}
		if e != nil {
			return ReadError
		}
		if b == '\n' {
			continue
		}
		if b != ' ' {
			return UnexpectedChar
		}
		ini, err := readUint(br)
		if err != nil {
			return err
		}
		switch {
		case ini == 0:
			rdr.S.SetInit(m, rdr.S.F)
		case ini == 1:
			rdr.S.SetInit(m, rdr.S.T)
		case ini == lit:
			rdr.S.SetInit(m, z.LitNull)
		default:
			return InvalidLatchInit
		}
		if err := readNL(br); err != nil {
			return err
		}
	}
	return nil
}

func (rdr *reader) readAsciiInputs(hdr *header, r *bufio.Reader) error {
	var i uint
	for i = 0; i < hdr.In; i++ {
		in, err := readUint(r)
		if err != nil {
			return err
		}
		if in > hdr.Max*2+1 {
			return LitOOB
		}
		if in&1 != 0 {
			return SignedInput
		}
		m := rdr.S.Lit()
		rdr.Inputs = append(rdr.Inputs, m)
		rdr.mapLit(in, m)
		if err := readNL(r); err != nil {
			return err
		}
	}
	return nil
}

func (rdr *reader) readOutputs(nOut, max uint, r *bufio.Reader) error {
	var i uint
	for i = 0; i < nOut; i++ {
		u, e := readUint(r)
		if e != nil {
			return e
		}
		if u > 2*max+1 {
			return LitOOB
		}
		rdr.AigOutputs = append(rdr.AigOutputs, u)
		if err := readNL(r); err != nil {
			return err
		}
	}
	return nil
}

func (rdr *reader) readBinaryAnds(hdr *header, r *bufio.Reader) error {
	id := (hdr.In + hdr.Latch + 1) * 2
	var i uint
	for i = 0; i < hdr.And; i++ {
		delta0, err := read7(r)
		if err != nil {
			return err
		}
		if delta0 > id {
			return BadDeltaEncoding
		}
		c0 := id - delta0
		delta1, err := read7(r)
		if err != nil {
			return err
		}
		if delta1 > c0 {
			return BadDeltaEncoding
		}
		c1 := c0 - delta1
		m := rdr.And(rdr.litFor(c1), rdr.litFor(c0))
		rdr.mapLit(id, m)
		id += 2
	}
	return nil
}

func (rdr *reader) readAsciiAnds(hdr *header, r *bufio.Reader) error {
	rdr.AigAnds = make([]aigAnd, hdr.Max+1)
	var i uint
	for i = 0; i < hdr.And; i++ {
		g, err := readUint(r)
		if err != nil {
			return err
		}
		if g > hdr.Max*2+1 {
			return LitOOB
		}
		if g&1 != 0 {
			return SignedAnd
		}
		if err := readSP(r); err != nil {
			return err
		}
		c0, err := readUint(r)
		if err != nil {
			return err
		}
		if c0 > hdr.Max*2+1 {
			return LitOOB
		}
		if err := readSP(r); err != nil {
			return err
		}
		c1, err := readUint(r)
		if err != nil {
			return err
		}
		if c1 > hdr.Max*2+1 {
			return LitOOB
		}
		if err := readNL(r); err != nil {
			return err
		}
		aa := &rdr.AigAnds[int(g>>1)]
		if aa.defined {
			return AndMultiplyDefined
		}
		aa.defined = true
		aa.children[0] = c0
		aa.children[1] = c1
	}
	return rdr.mapAnds()
}

func (rdr *reader) mapAnds() error {
	// the constant, inputs and latches need no and definition
	rdr.AigAnds[0].defined = true
	rdr.AigAnds[0].mapped = true
	for u, v := range rdr.varMap {
		if u == 0 || v == 0 {
			continue
		}
		ag := &rdr.AigAnds[u]
		ag.defined = true
		ag.mapped = true
	}
	for i := 0; i < len(rdr.AigAnds); i++ {
		ag := &rdr.AigAnds[i]
		if ag.defined && !ag.mapped {
			if err := rdr.mapAndsRec(ag, uint(i*2)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rdr *reader) mapAndsRec(ag *aigAnd, aig uint) error {
	switch ag.dfsColor {
	case 0:
		ag.dfsColor = 1
		c0, c1 := ag.children[0], ag.children[1]
		ag0 := &rdr.AigAnds[int(c0>>1)]
		if !ag0.defined {
			return UndefinedLit
		}
		if !ag0.mapped {
			if err := rdr.mapAndsRec(ag0, c0); err != nil {
				return err
			}
		}
		m := rdr.litFor(c0)
		ag1 := &rdr.AigAnds[int(c1>>1)]
		if !ag1.defined {
			return UndefinedLit
		}
		if !ag1.mapped {
			if err := rdr.mapAndsRec(ag1, c1); err != nil {
				return err
			}
		}
		n := rdr.litFor(c1)
		rdr.mapLit(aig, rdr.And(m, n))
		ag.dfsColor = 2
		ag.mapped = true
	case 1:
		return CombLoop
	case 2:
	default:
		panic("unknown dfs color")
	}
	return nil
}

func (rdr *reader) readSymsAndComments(r *bufio.Reader) error {
	for {
		b, e := r.ReadByte()
		if e == io.EOF {
			return nil
		}
		if b != 'i' && b != 'l' && b != 'o' && b != 'c' {
			continue
		}
		if b == 'c' {
			bn, e := r.ReadByte()
			if e == io.EOF {
				return PrematureEOF
			}
			if e != nil {
				return e
			}
			if bn == '\n' {
				// comments follow to end of file
				return nil
			}
			r.UnreadByte()
			return Unsupported
		}
		index, err := readUint(r)
		if err != nil {
			return err
		}
		if err := readSP(r); err != nil {
			return err
		}
		bs, err := r.ReadBytes('\n')
		if err == io.EOF {
			return PrematureEOF
		}
		if err != nil {
			return err
		}
		rdr.symbols[b][int(index)] = string(bs[0 : len(bs)-1])
	}
}

// header for aiger files; only the M I L O A counts are supported.
type header struct {
	Binary bool
	Max    uint
	In     uint
	Latch  uint
	Out    uint
	And    uint
}

func makeHeader(a *T) *header {
	s := a.S
	n := s.Len()
	nAnd := uint(0)
	for i := 1; i < n; i++ {
		if s.Type(s.At(i)) == logic.SAnd {
			nAnd++
		}
	}
	return &header{
		Max:   uint(a.Len() - 1),
		In:    uint(len(a.Inputs)),
		Latch: uint(len(a.Latches)),
		Out:   uint(len(a.Outputs)),
		And:   nAnd}
}

func (h *header) write(w *bufio.Writer) {
	if h.Binary {
		w.WriteString("aig ")
	} else {
		w.WriteString("aag ")
	}
	fmt.Fprintf(w, "%d %d %d %d %d\n", h.Max, h.In, h.Latch, h.Out, h.And)
}

// readHeader accepts version 1 headers (M I L O A) and version 1.9
// headers whose B/C/J/F counts are all zero.
func readHeader(r *bufio.Reader) (*header, error) {
	result := &header{}
	buf := make([]byte, 0, 3)
	buf, err := readNonWS(r, buf)
	if err != nil {
		return nil, err
	}
	switch string(buf) {
	case "aag":
		result.Binary = false
	case "aig":
		result.Binary = true
	default:
		return nil, BadHeader
	}
	wantSpace := true
	i := 0
	var counts [9]uint
	for {
		if !wantSpace {
			if i > 8 {
				return nil, BadHeader
			}
			counts[i], err = readUint(r)
			i++
			if err != nil {
				return nil, err
			}
			wantSpace = true
			continue
		}
		b, e := r.ReadByte()
		if e == io.EOF {
			return nil, PrematureEOF
		}
		if b == '\n' {
			if i < 5 {
				return nil, BadHeader
			}
			break
		}
		if b != ' ' {
			return nil, BadHeader
		}
		wantSpace = false
	}
	for j := 5; j < i; j++ {
		if counts[j] != 0 {
			return nil, Unsupported
		}
	}
	result.Max = counts[0]
	result.In = counts[1]
	result.Latch = counts[2]
	result.Out = counts[3]
	result.And = counts[4]
	return result, nil
}

// readNL reads a newline character and returns nil unless there was none.
func readNL(r *bufio.Reader) error {
	b, e := r.ReadByte()
	if e == io.EOF {
		return PrematureEOF
	}
	if e != nil {
		return e
	}
	if b != '\n' {
		return UnexpectedChar
	}
	return nil
}

// readSP reads a single space.
func readSP(r *bufio.Reader) error {
	b, e := r.ReadByte()
	if e == io.EOF {
		return PrematureEOF
	}
	if e != nil {
		return e
	}
	if b != ' ' {
		return UnexpectedChar
	}
	return nil
}

// reads non-white space and puts the result in buf.
func readNonWS(r *bufio.Reader, buf []byte) ([]byte, error) {
	buf = buf[:0]
	for {
		b, e := r.ReadByte()
		if e == io.EOF {
			break
		}
		if e != nil {
			return buf, e
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			r.UnreadByte()
			break
		}
		buf = append(buf, b)
	}
	return buf, nil
}

// reads a uint
func readUint(r *bufio.Reader) (uint, error) {
	var result uint
	first := true
	for {
		b, e := r.ReadByte()
		if e == io.EOF {
			if first {
				return 0, PrematureEOF
			}
			break
		}
		if e != nil {
			return 0, e
		}
		if b >= '0' && b <= '9' {
			result *= 10
			result += uint(b - '0')
			first = false
			continue
		}
		r.UnreadByte()
		break
	}
	if first {
		return 0, UnexpectedChar
	}
	return result, nil
}

// write a literal in AIGER style: 0 and 1 are the constants, other
// literals are offset by the reserved constant variable.
func writeLit(w *bufio.Writer, m z.Lit, s *logic.S) error {
	if m == s.F {
		_, err := w.WriteString("0")
		return err
	}
	if m == s.T {
		_, err := w.WriteString("1")
		return err
	}
	_, err := fmt.Fprintf(w, "%d", uint(m-2))
	return err
}

// for binary aiger coding of and deltas
func read7(r *bufio.Reader) (result uint, err error) {
	var i int
	for {
		b, e := r.ReadByte()
		if e == io.EOF {
			return 0, PrematureEOF
		}
		result |= (uint(b) & 0x7f) << uint8(7*i)
		i++
		if b&0x80 == 0 {
			break
		}
	}
	return
}
