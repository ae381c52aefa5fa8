package aig

import (
	"bufio"
	"fmt"
	"io"
)

// Encode serializes an AIG in the binary AIGER format (spec §4.4): an
// ASCII header "aig M I L O A", one ASCII decimal line per latch
// next-state literal, one ASCII decimal line per output literal, then the
// And gates as delta-encoded varint pairs in index order.
func Encode(a *AIG) []byte {
	numAnd := len(a.Gates)
	maxVar := a.NumInputs + len(a.LatchDrain) + numAnd

	var buf []byte
	buf = append(buf, fmt.Sprintf("aig %d %d %d %d %d\n", maxVar, a.NumInputs, len(a.LatchDrain), len(a.Outputs), numAnd)...)

	for _, l := range a.LatchDrain {
		buf = append(buf, fmt.Sprintf("%d\n", l)...)
	}
	for _, l := range a.Outputs {
		buf = append(buf, fmt.Sprintf("%d\n", l)...)
	}

	firstAndVar := a.NumInputs + len(a.LatchDrain) + 1
	for i, gate := range a.Gates {
		lhs := uint32(firstAndVar+i) * 2
		l, r := uint32(gate.Left), uint32(gate.Right)
		rhs0, rhs1 := l, r
		if rhs1 > rhs0 {
			rhs0, rhs1 = rhs1, rhs0
		}
		buf = putVarint(buf, lhs-rhs0)
		buf = putVarint(buf, rhs0-rhs1)
	}

	return buf
}

// countingReader wraps a *bufio.Reader and tracks how many bytes have been
// consumed, so a ParseError can name the byte offset at which decoding
// failed (spec §4.4, §7).
type countingReader struct {
	br     *bufio.Reader
	offset int64
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.br.ReadByte()
	if err == nil {
		c.offset++
	}
	return b, err
}

func (c *countingReader) ReadString(delim byte) (string, error) {
	s, err := c.br.ReadString(delim)
	c.offset += int64(len(s))
	return s, err
}

// Decode parses the binary AIGER format written by Encode. Magic must be
// exactly "aig"; a header whose M disagrees with I+L+A, a truncated
// varint, or a missing literal line surfaces as a ParseError naming the
// byte offset at which the failure was detected (spec §4.4, §7).
func Decode(r io.Reader) (*AIG, error) {
	c := &countingReader{br: bufio.NewReader(r)}

	magic := make([]byte, 3)
	for i := range magic {
		b, err := c.ReadByte()
		if err != nil {
			return nil, &ParseError{Offset: c.offset, Message: "truncated magic"}
		}
		magic[i] = b
	}
	if string(magic) != "aig" {
		return nil, &ParseError{Offset: c.offset, Message: fmt.Sprintf("bad magic %q, want \"aig\"", magic)}
	}

	headerLine, err := c.ReadString('\n')
	if err != nil {
		return nil, &ParseError{Offset: c.offset, Message: "truncated header line"}
	}

	var maxVar, numInputs, numLatches, numOutputs, numAnd int
	n, err := fmt.Sscanf(" "+headerLine, " %d %d %d %d %d\n", &maxVar, &numInputs, &numLatches, &numOutputs, &numAnd)
	if err != nil || n != 5 {
		return nil, &ParseError{Offset: c.offset, Message: "malformed header line"}
	}
	if numInputs+numLatches+numAnd != maxVar {
		return nil, &ParseError{Offset: c.offset, Message: "header M does not equal I+L+A"}
	}

	out := &AIG{NumInputs: numInputs}

	out.LatchDrain = make([]Lit, numLatches)
	for i := 0; i < numLatches; i++ {
		v, err := readDecimalLine(c)
		if err != nil {
			return nil, &ParseError{Offset: c.offset, Message: fmt.Sprintf("latch %d: %s", i, err)}
		}
		out.LatchDrain[i] = Lit(v)
	}

	out.Outputs = make([]Lit, numOutputs)
	for i := 0; i < numOutputs; i++ {
		v, err := readDecimalLine(c)
		if err != nil {
			return nil, &ParseError{Offset: c.offset, Message: fmt.Sprintf("output %d: %s", i, err)}
		}
		out.Outputs[i] = Lit(v)
	}

	out.Gates = make([]AndGate, numAnd)
	firstAndVar := numInputs + numLatches + 1
	for i := 0; i < numAnd; i++ {
		lhs := uint32(firstAndVar+i) * 2
		d0, err := readVarint(c)
		if err != nil {
			return nil, &ParseError{Offset: c.offset, Message: fmt.Sprintf("gate %d delta0: %s", i, err)}
		}
		d1, err := readVarint(c)
		if err != nil {
			return nil, &ParseError{Offset: c.offset, Message: fmt.Sprintf("gate %d delta1: %s", i, err)}
		}
		rhs0 := lhs - d0
		rhs1 := rhs0 - d1
		out.Gates[i] = AndGate{Left: Lit(rhs0), Right: Lit(rhs1)}
	}

	return out, nil
}

func readDecimalLine(c *countingReader) (uint32, error) {
	line, err := c.ReadString('\n')
	if err != nil && len(line) == 0 {
		return 0, err
	}
	var v uint32
	if _, err := fmt.Sscanf(line, "%d", &v); err != nil {
		return 0, err
	}
	return v, nil
}
