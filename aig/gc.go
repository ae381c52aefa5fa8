package aig

// GC runs the dead-gate and constant-folding rewrites of spec §4.5 stage C
// to a fixed point: unreferenced And/Latch gates are dropped, And gates
// with a constant-false operand collapse to False, And gates with a
// constant-true operand collapse to their other operand, And gates over
// identical sources collapse to
// that source or to False, and a latch permanently driven by constant
// false collapses to False. Returns the number of gates removed.
func (b *Builder) GC() int {
	removed := 0
	for {
		changed := false

		refCount := b.computeRefCounts()

		for i := range b.nodes {
			n := &b.nodes[i]
			if n.kind == draftDead || n.kind == draftInput || n.kind == draftPlaceholder {
				continue
			}
			idx := uint32(i + 1)

			if n.kind == draftAnd || n.kind == draftLatch {
				if refCount[idx] == 0 {
					n.kind = draftDead
					removed++
					changed = true
					continue
				}
			}

			switch n.kind {
			case draftAnd:
				if repl, ok := foldAnd(n.left, n.right); ok {
					b.substituteAll(idx, repl)
					n.kind = draftDead
					removed++
					changed = true
				}
			case draftLatch:
				if n.hasDrain && n.left == False {
					b.substituteAll(idx, False)
					n.kind = draftDead
					removed++
					changed = true
				}
			}
		}

		if !changed {
			return removed
		}
	}
}

// foldAnd reports the constant-folded replacement for an And(a, c) gate,
// if one applies: a constant operand collapses to the other side (or to
// False), and two references to the same source collapse to that source
// (equal sign) or to False (opposite signs, x AND NOT x).
func foldAnd(a, c Lit) (Lit, bool) {
	if a == False || c == False {
		return False, true
	}
	if a == True {
		return c, true
	}
	if c == True {
		return a, true
	}
	if a.Index() == c.Index() {
		if a.Sign() == c.Sign() {
			return a, true
		}
		return False, true
	}
	return 0, false
}

// computeRefCounts tallies, for every live variable index, how many times
// it is referenced by a live And operand, a live latch drain, or a
// primary output.
func (b *Builder) computeRefCounts() map[uint32]int {
	counts := make(map[uint32]int, len(b.nodes))
	count := func(l Lit) {
		if l.Index() != 0 {
			counts[l.Index()]++
		}
	}
	for _, n := range b.nodes {
		switch n.kind {
		case draftAnd:
			count(n.left)
			count(n.right)
		case draftLatch:
			if n.hasDrain {
				count(n.left)
			}
		}
	}
	for _, l := range b.primaryOutputs {
		count(l)
	}
	return counts
}
