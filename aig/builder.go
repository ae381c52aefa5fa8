package aig

import "fmt"

// draftKind tags a Builder's internal, pre-renumbering node representation.
type draftKind uint8

const (
	draftInput draftKind = iota
	draftLatch
	draftAnd
	draftPlaceholder
	draftDead
)

// draftNode is one construction-time AIG node. Variable ids in this phase
// are plain creation-order indices (1-based; 0 is the reserved constant
// variable and has no draftNode); And.Left/Right and Latch.drain reference
// other draftNodes by the Lit they were handed back at creation time.
type draftNode struct {
	kind  draftKind
	left  Lit // And: left operand. Latch: next-state drain (set by ConnectDrain).
	right Lit // And: right operand. Unused otherwise.
	hasDrain bool
	label string // diagnostic name, set for placeholders
}

// LatchSink is a write-once handle for a latch's next-state driver,
// distinct from the latch's output literal (spec §9: "NextState is a
// write-once handle distinct from the latch's output literal").
type LatchSink struct{ idx int }

// Builder is the mutable AIG under construction. Indices assigned during
// construction are NOT the final AIGER layout; Finalize renumbers into the
// required [PI][latch][And] contiguous blocks after GC.
type Builder struct {
	nodes        []draftNode
	latchSealed  bool
	primaryOutputs []Lit
}

// NewBuilder returns an empty AIG builder.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) append(n draftNode) Lit {
	b.nodes = append(b.nodes, n)
	return MkLit(uint32(len(b.nodes)), false)
}

// Input allocates a fresh primary-input literal. Permitted only before the
// first Latch call (spec §4.4).
func (b *Builder) Input() Lit {
	if b.latchSealed {
		panic("aig: Input called after a Latch was already declared")
	}
	return b.append(draftNode{kind: draftInput})
}

// Placeholder allocates a named local-input hole (spec §9), to be filled
// exactly once via ReplacePlaceholder during lowering stage B.
func (b *Builder) Placeholder(label string) Lit {
	return b.append(draftNode{kind: draftPlaceholder, label: label})
}

// And appends a new And gate over a, c. The result literal has sign 0.
func (b *Builder) And(a, c Lit) Lit {
	return b.append(draftNode{kind: draftAnd, left: a, right: c})
}

// Not toggles a literal's sign; it allocates nothing.
func (b *Builder) Not(l Lit) Lit { return l.Not() }

// Latch declares a new 1-bit register and returns its write-once drain
// sink plus its (initial-value-0) state literal.
func (b *Builder) Latch() (LatchSink, Lit) {
	b.latchSealed = true
	lit := b.append(draftNode{kind: draftLatch})
	return LatchSink{idx: len(b.nodes) - 1}, lit
}

// ConnectDrain writes the next-state driver for a latch. Each sink may be
// connected exactly once.
func (b *Builder) ConnectDrain(sink LatchSink, lit Lit) error {
	n := &b.nodes[sink.idx]
	if n.kind != draftLatch {
		return fmt.Errorf("aig: ConnectDrain target is not a latch")
	}
	if n.hasDrain {
		return fmt.Errorf("aig: latch already has a next-state driver")
	}
	n.left = lit
	n.hasDrain = true
	return nil
}

// Latch2 is the initial-value-aware latch helper used throughout package
// lower: a unit-delay register whose *logical* initial value is `initial`,
// even though the physical AIGER latch always starts at 0. It achieves
// this by XOR'ing the sign across both ends of the latch (spec §4.5,
// Torch/Repeater/Comparator all use this).
func (b *Builder) Latch2(input Lit, initial bool) Lit {
	sink, state := b.Latch()
	drain := input
	out := state
	if initial {
		drain = drain.Not()
		out = out.Not()
	}
	_ = b.ConnectDrain(sink, drain)
	return out
}

// Output appends a primary output literal.
func (b *Builder) Output(lit Lit) {
	b.primaryOutputs = append(b.primaryOutputs, lit)
}

// Mux builds if(sel){onTrue}else{onFalse} = (sel AND onTrue) OR (NOT sel
// AND onFalse), expressed with AND/NOT only: NOT(NOT(sel AND onTrue) AND
// NOT(NOT sel AND onFalse)).
func (b *Builder) Mux(sel, onTrue, onFalse Lit) Lit {
	t := b.And(sel, onTrue)
	f := b.And(sel.Not(), onFalse)
	return b.And(t.Not(), f.Not()).Not()
}

// Or builds a OR c = NOT(NOT a AND NOT c).
func (b *Builder) Or(a, c Lit) Lit {
	return b.And(a.Not(), c.Not()).Not()
}

// OrAll OR-reduces a slice of literals, returning False for an empty slice.
func (b *Builder) OrAll(lits []Lit) Lit {
	if len(lits) == 0 {
		return False
	}
	acc := lits[0]
	for _, l := range lits[1:] {
		acc = b.Or(acc, l)
	}
	return acc
}

// ReplacePlaceholder is stage B's "replace node X with literal L": every
// consumer currently sourcing from ph (with whatever sign it references
// ph at) is redirected to with, XOR-ing sign as spec §4.5 describes, and
// ph is marked dead.
func (b *Builder) ReplacePlaceholder(ph Lit, with Lit) error {
	idx := ph.Index()
	if int(idx) < 1 || int(idx) > len(b.nodes) {
		return fmt.Errorf("aig: ReplacePlaceholder: literal %d out of range", ph)
	}
	n := &b.nodes[idx-1]
	if n.kind != draftPlaceholder {
		return fmt.Errorf("aig: ReplacePlaceholder: literal %d is not a placeholder", ph)
	}
	b.substituteAll(idx, with)
	n.kind = draftDead
	return nil
}

// substituteAll rewrites every reference to variable oldIdx, across all
// And operands, latch drains, and primary outputs, to point at `with`
// instead (propagating sign per the XOR rule).
func (b *Builder) substituteAll(oldIdx uint32, with Lit) {
	sub := func(l Lit) Lit {
		if l.Index() != oldIdx {
			return l
		}
		return MkLit(with.Index(), l.Sign() != with.Sign())
	}
	for i := range b.nodes {
		n := &b.nodes[i]
		switch n.kind {
		case draftAnd:
			n.left = sub(n.left)
			n.right = sub(n.right)
		case draftLatch:
			if n.hasDrain {
				n.left = sub(n.left)
			}
		}
	}
	for i, l := range b.primaryOutputs {
		b.primaryOutputs[i] = sub(l)
	}
}

// UnfilledPlaceholders returns the diagnostic labels of every placeholder
// that was never replaced — an aborting bug per spec §4.5's "An unbound
// local-input ... indicates a bug and must abort with a diagnostic naming
// the compile-node and slot."
func (b *Builder) UnfilledPlaceholders() []string {
	var labels []string
	for _, n := range b.nodes {
		if n.kind == draftPlaceholder {
			labels = append(labels, n.label)
		}
	}
	return labels
}
