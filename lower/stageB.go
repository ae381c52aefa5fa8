package lower

import (
	"fmt"

	"github.com/rscomp/redaig/aig"
	"github.com/rscomp/redaig/compilegraph"
)

// sourced is one live incoming compile edge of a node, paired with its
// source's stage-A output representation (gatherIncoming collects them,
// filtered by LinkType).
type sourced struct {
	out compilegraph.NodeID
	ss  int
	rep NodeOutput
}

func gatherIncoming(c *ctx, id compilegraph.NodeID, lt compilegraph.LinkType, both bool) []sourced {
	var out []sourced
	for _, e := range c.g.EdgesDirected(id, compilegraph.Incoming) {
		if !both && e.Link.Type != lt {
			continue
		}
		out = append(out, sourced{out: e.From, ss: e.Link.SS, rep: c.outputs[e.From]})
	}
	return out
}

// orReduceBinary computes the OR-reduction of a Binary placeholder slot
// from its incoming sources, per spec §4.5 stage B.
func orReduceBinary(b *aig.Builder, srcs []sourced) aig.Lit {
	acc := aig.False
	for _, s := range srcs {
		var contribution aig.Lit
		switch s.rep.Kind {
		case OutputBinary:
			contribution = s.rep.Bin
		case OutputHex:
			if s.ss < 15 {
				contribution = restOr(b, s.rep.Hex[:], s.ss)
			} else {
				contribution = aig.False
			}
		default:
			contribution = aig.False
		}
		acc = b.Or(acc, contribution)
	}
	return acc
}

// orReduceHex computes the 15-plane OR-reduction of a Hex placeholder
// slot from its incoming sources, per spec §4.5 stage B's "max-tree"
// shift-and-OR rule.
func orReduceHex(b *aig.Builder, srcs []sourced) [15]aig.Lit {
	var acc [15]aig.Lit
	for i := range acc {
		acc[i] = aig.False
	}
	for _, s := range srcs {
		switch s.rep.Kind {
		case OutputBinary:
			for i := 0; i <= 14-s.ss; i++ {
				acc[i] = b.Or(acc[i], s.rep.Bin)
			}
		case OutputHex:
			for i := 0; i <= 14-s.ss; i++ {
				acc[i] = b.Or(acc[i], s.rep.Hex[i+s.ss])
			}
		}
	}
	return acc
}

// runStageB replaces every placeholder with the OR-reduction of the
// compile edges feeding its slot, per spec §4.5 stage B.
func runStageB(c *ctx) error {
	for _, id := range c.g.NodeIDs() {
		n, ok := c.g.Node(id)
		if !ok {
			continue
		}
		if err := wireNode(c, n); err != nil {
			return err
		}
	}
	return nil
}

func wireNode(c *ctx, n *compilegraph.CompileNode) error {
	switch n.Type.Kind {
	case compilegraph.KindLamp, compilegraph.KindTrapdoor, compilegraph.KindNoteBlock, compilegraph.KindTorch:
		srcs := gatherIncoming(c, n.ID, compilegraph.Default, true)
		return replaceSlot(c, n.ID, "in", orReduceBinary(c.b, srcs))

	case compilegraph.KindRepeater:
		defSrcs := gatherIncoming(c, n.ID, compilegraph.Default, false)
		if err := replaceSlot(c, n.ID, "in", orReduceBinary(c.b, defSrcs)); err != nil {
			return err
		}
		if n.Type.Locking {
			sideSrcs := gatherIncoming(c, n.ID, compilegraph.Side, false)
			if err := replaceSlot(c, n.ID, "lock", orReduceBinary(c.b, sideSrcs)); err != nil {
				return err
			}
		}

	case compilegraph.KindComparator:
		defSrcs := gatherIncoming(c, n.ID, compilegraph.Default, false)
		sideSrcs := gatherIncoming(c, n.ID, compilegraph.Side, false)
		dHex := orReduceHex(c.b, defSrcs)
		sHex := orReduceHex(c.b, sideSrcs)
		for i := 0; i < 15; i++ {
			if err := replaceSlot(c, n.ID, fmt.Sprintf("D%d", i), dHex[i]); err != nil {
				return err
			}
			if err := replaceSlot(c, n.ID, fmt.Sprintf("S%d", i), sHex[i]); err != nil {
				return err
			}
		}

	case compilegraph.KindWire:
		srcs := gatherIncoming(c, n.ID, compilegraph.Default, true)
		hex := orReduceHex(c.b, srcs)
		for i := 0; i < 15; i++ {
			if err := replaceSlot(c, n.ID, fmt.Sprintf("bus%d", i), hex[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func replaceSlot(c *ctx, id compilegraph.NodeID, slot string, with aig.Lit) error {
	key := slotKey{id, slot}
	ph, ok := c.placeholders[key]
	if !ok {
		return nil
	}
	if err := c.b.ReplacePlaceholder(ph, with); err != nil {
		return &CompileError{Node: fmt.Sprint(id), Slot: slot, Message: err.Error()}
	}
	delete(c.placeholders, key)
	return nil
}
