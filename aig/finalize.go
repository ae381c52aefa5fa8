package aig

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// AndGate is one finalized And gate: Left and Right reference only
// literals whose variable index is strictly smaller than this gate's own
// (spec §4.4's "every And gate's two operands must reference literals
// with a strictly smaller variable index").
type AndGate struct {
	Left, Right Lit
}

// AIG is the immutable, AIGER-ready graph produced by Builder.Finalize:
// variable indices are assigned in contiguous [PI][latch][And] blocks.
type AIG struct {
	NumInputs  int
	LatchDrain []Lit // next-state driver per latch, in latch-block order
	Gates      []AndGate
	Outputs    []Lit
}

// Finalize performs GC to a fixed point, verifies every placeholder was
// filled, and assigns final contiguous AIGER indices via a topological
// ordering of the surviving And gates (spec §4.5: "assign linear AIG
// indices by breadth-first topological ordering from PIs and latch
// outputs"). It is the single exit point from Builder to AIG.
func (b *Builder) Finalize() (*AIG, error) {
	if unfilled := b.UnfilledPlaceholders(); len(unfilled) > 0 {
		return nil, fmt.Errorf("aig: %d unbound local-input(s), first: %s", len(unfilled), unfilled[0])
	}

	b.GC()

	var inputs, latches, ands []int // 0-based draft indices, in creation order
	for i, n := range b.nodes {
		switch n.kind {
		case draftInput:
			inputs = append(inputs, i)
		case draftLatch:
			latches = append(latches, i)
		case draftAnd:
			ands = append(ands, i)
		}
	}

	andOrder, err := topoSortAnds(ands, b.nodes)
	if err != nil {
		return nil, err
	}

	remap := make(map[uint32]uint32, len(inputs)+len(latches)+len(ands))
	next := uint32(1)
	for _, i := range inputs {
		remap[uint32(i+1)] = next
		next++
	}
	for _, i := range latches {
		remap[uint32(i+1)] = next
		next++
	}
	for _, i := range andOrder {
		remap[uint32(i+1)] = next
		next++
	}

	remapLit := func(l Lit) Lit {
		if l.Index() == 0 {
			return l
		}
		newIdx, ok := remap[l.Index()]
		if !ok {
			// Dead/folded-away node with a dangling reference is a builder bug.
			panic(fmt.Sprintf("aig: Finalize: literal %d has no live remap", l))
		}
		return MkLit(newIdx, l.Sign())
	}

	out := &AIG{NumInputs: len(inputs)}

	out.LatchDrain = make([]Lit, len(latches))
	for k, i := range latches {
		out.LatchDrain[k] = remapLit(b.nodes[i].left)
	}

	out.Gates = make([]AndGate, len(andOrder))
	for k, i := range andOrder {
		n := b.nodes[i]
		out.Gates[k] = AndGate{Left: remapLit(n.left), Right: remapLit(n.right)}
	}

	out.Outputs = make([]Lit, len(b.primaryOutputs))
	for k, l := range b.primaryOutputs {
		out.Outputs[k] = remapLit(l)
	}

	return out, nil
}

// topoSortAnds orders the surviving And gates so that any And gate
// depending on another (through a non-latch, non-placeholder path) is
// numbered after it, using gonum's topo.SortStabilized over the And-gate
// dependency subgraph (ties broken by draft index).
func topoSortAnds(ands []int, nodes []draftNode) ([]int, error) {
	g := simple.NewDirectedGraph()
	for _, i := range ands {
		g.AddNode(simple.Node(int64(i)))
	}
	isAnd := make(map[int]bool, len(ands))
	for _, i := range ands {
		isAnd[i] = true
	}
	for _, i := range ands {
		n := nodes[i]
		for _, operand := range []Lit{n.left, n.right} {
			if operand.Index() == 0 {
				continue
			}
			srcIdx := int(operand.Index()) - 1
			if isAnd[srcIdx] {
				g.SetEdge(g.NewEdge(simple.Node(int64(srcIdx)), simple.Node(int64(i))))
			}
		}
	}

	sorted, err := topo.SortStabilized(g, nil)
	if err != nil {
		return nil, fmt.Errorf("aig: Finalize: And-gate dependency cycle: %w", err)
	}

	order := make([]int, len(sorted))
	for k, node := range sorted {
		order[k] = int(node.ID())
	}
	return order, nil
}
