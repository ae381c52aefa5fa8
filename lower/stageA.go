package lower

import (
	"fmt"

	"github.com/rscomp/redaig/aig"
	"github.com/rscomp/redaig/compilegraph"
)

// runStageA walks the compile graph, allocating each node's placeholder
// local-inputs and building its internal gates/latches (spec §4.5 stage
// A). Lever/Button/PressurePlate nodes are built in a first sweep, since
// aig.Builder.Input is only permitted before the first latch is declared.
func runStageA(c *ctx) error {
	ids := c.g.NodeIDs()
	for _, inputSweep := range []bool{true, false} {
		for _, id := range ids {
			n, ok := c.g.Node(id)
			if !ok {
				continue
			}
			k := n.Type.Kind
			isPI := k == compilegraph.KindLever || k == compilegraph.KindButton || k == compilegraph.KindPressurePlate
			if isPI != inputSweep {
				continue
			}
			if err := buildNode(c, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func blockRef(n *compilegraph.CompileNode) compilegraph.BlockRef {
	if n.Block == nil {
		return compilegraph.BlockRef{}
	}
	return *n.Block
}

func buildNode(c *ctx, n *compilegraph.CompileNode) error {
	switch n.Type.Kind {
	case compilegraph.KindLever, compilegraph.KindButton, compilegraph.KindPressurePlate:
		lit := c.b.Input()
		c.outputs[n.ID] = NodeOutput{Kind: OutputBinary, Bin: lit}
		c.inputTable = append(c.inputTable, InputTableEntry{NodeID: n.ID, Block: blockRef(n), PIIndex: len(c.inputTable)})

	case compilegraph.KindLamp, compilegraph.KindTrapdoor, compilegraph.KindNoteBlock:
		ph := c.b.Placeholder(fmt.Sprintf("%s#%d.in", n.Type.Kind, n.ID))
		c.placeholders[slotKey{n.ID, "in"}] = ph
		c.b.Output(ph)
		c.outputs[n.ID] = NodeOutput{Kind: OutputNone}
		c.outputTable = append(c.outputTable, OutputTableEntry{NodeID: n.ID, Block: blockRef(n), OutputIndex: len(c.outputTable)})

	case compilegraph.KindConstant:
		if n.State.OutputStrength > 0 {
			c.outputs[n.ID] = NodeOutput{Kind: OutputBinary, Bin: aig.True}
		} else {
			c.outputs[n.ID] = NodeOutput{Kind: OutputBinary, Bin: aig.False}
		}

	case compilegraph.KindTorch:
		ph := c.b.Placeholder(fmt.Sprintf("Torch#%d.in", n.ID))
		c.placeholders[slotKey{n.ID, "in"}] = ph
		out := c.b.Not(c.b.Latch2(ph, n.State.Powered))
		c.outputs[n.ID] = NodeOutput{Kind: OutputBinary, Bin: out}

	case compilegraph.KindRepeater:
		if err := buildRepeater(c, n); err != nil {
			return err
		}

	case compilegraph.KindComparator:
		if err := buildComparator(c, n); err != nil {
			return err
		}

	case compilegraph.KindWire:
		var hex [15]aig.Lit
		for i := 0; i < 15; i++ {
			ph := c.b.Placeholder(fmt.Sprintf("Wire#%d.bus%d", n.ID, i))
			c.placeholders[slotKey{n.ID, fmt.Sprintf("bus%d", i)}] = ph
			hex[i] = ph
		}
		c.outputs[n.ID] = NodeOutput{Kind: OutputHex, Hex: hex}

	default:
		return &CompileError{Node: fmt.Sprint(n.ID), Message: fmt.Sprintf("unknown node kind %v", n.Type.Kind)}
	}
	return nil
}

// buildRepeater lowers Repeater(delay, locking) per spec §4.5: a chain of
// `delay` unit-delay latches with an optional locking mux on the first
// stage and, when delay >= 2, pulse-extension feedback driving the first
// latch's next state.
func buildRepeater(c *ctx, n *compilegraph.CompileNode) error {
	d := n.Type.RepeaterDelay
	if d < 1 || d > 4 {
		return &CompileError{Node: fmt.Sprint(n.ID), Message: fmt.Sprintf("repeater delay %d out of range 1..=4", d)}
	}

	x := c.b.Placeholder(fmt.Sprintf("Repeater#%d.in", n.ID))
	c.placeholders[slotKey{n.ID, "in"}] = x

	// Declare all d latch sinks up front: drains may reference literals
	// (e.g. the pulse-extension feedback from s_{d-1}) built after their
	// own latch, which Builder permits since drains aren't part of the
	// And-gate topological-order invariant.
	sinks := make([]aig.LatchSink, d)
	states := make([]aig.Lit, d)
	for k := 0; k < d; k++ {
		sinks[k], states[k] = c.b.Latch()
		states[k] = xorInitial(states[k], n.State.Powered)
	}

	i0 := x
	if n.Type.Locking {
		lock := c.b.Placeholder(fmt.Sprintf("Repeater#%d.lock", n.ID))
		c.placeholders[slotKey{n.ID, "lock"}] = lock
		i0 = c.b.Mux(lock, states[d-1], x)
	}

	if d == 1 {
		if err := connectRepeaterDrain(c, sinks[0], i0, n.State.Powered); err != nil {
			return err
		}
		c.outputs[n.ID] = NodeOutput{Kind: OutputBinary, Bin: states[0]}
		return nil
	}

	s0, sLast := states[0], states[d-1]
	pulse := c.b.Or(
		c.b.And(s0, c.b.Not(sLast)),
		c.b.And(i0, c.b.Not(c.b.And(c.b.Not(s0), sLast))),
	)
	if err := connectRepeaterDrain(c, sinks[0], pulse, n.State.Powered); err != nil {
		return err
	}
	if err := connectRepeaterDrain(c, sinks[1], states[0], n.State.Powered); err != nil {
		return err
	}
	for k := 2; k < d; k++ {
		if err := connectRepeaterDrain(c, sinks[k], states[k-1], n.State.Powered); err != nil {
			return err
		}
	}

	c.outputs[n.ID] = NodeOutput{Kind: OutputBinary, Bin: states[d-1]}
	return nil
}

// connectRepeaterDrain wires a latch's drain to `driver`, XOR'ing the sign
// on the drain side to encode `initial` (the output side is XOR'd
// separately by the caller via xorInitial on each state literal as soon as
// the latch is declared). Both ends must flip together for the initial-value trick to be
// sound (spec §3's Latch note).
func connectRepeaterDrain(c *ctx, sink aig.LatchSink, driver aig.Lit, initial bool) error {
	if initial {
		driver = c.b.Not(driver)
	}
	return c.b.ConnectDrain(sink, driver)
}

func xorInitial(l aig.Lit, initial bool) aig.Lit {
	if initial {
		return l.Not()
	}
	return l
}

// buildComparator lowers Comparator(mode, far_input) per spec §4.5: two
// 15-wide hex local-input buses D (default) and S (side), a 15-wide output
// bus built from the Compare/Subtract combining rule, each bit latched
// through latch2 to model the comparator's one-tick register.
func buildComparator(c *ctx, n *compilegraph.CompileNode) error {
	// A comparator that is externally observed must flush its powered/
	// locked/output-power triple back to a physical block each tick (spec
	// §4.6's Flush step); one with no block back-link has nowhere to
	// flush to, which is a hard compile error (spec §4.5 failure modes).
	if n.IsOutput && n.Block == nil {
		return &CompileError{Node: fmt.Sprint(n.ID), Message: compilegraph.ErrMissingBlock.Error()}
	}

	var d, s [15]aig.Lit
	for i := 0; i < 15; i++ {
		dp := c.b.Placeholder(fmt.Sprintf("Comparator#%d.D%d", n.ID, i))
		sp := c.b.Placeholder(fmt.Sprintf("Comparator#%d.S%d", n.ID, i))
		c.placeholders[slotKey{n.ID, fmt.Sprintf("D%d", i)}] = dp
		c.placeholders[slotKey{n.ID, fmt.Sprintf("S%d", i)}] = sp
		d[i], s[i] = dp, sp
	}

	var o [15]aig.Lit
	for i := range o {
		o[i] = aig.False
	}

	accumulate := func(target int, contribution aig.Lit) {
		if target < 0 || target > 14 {
			return
		}
		o[target] = c.b.Or(o[target], contribution)
	}

	if n.Type.FarInput != nil {
		k := *n.Type.FarInput
		i := 14
		switch n.Type.Mode {
		case compilegraph.Compare:
			rest := restOr(c.b, s[:], i+1)
			accumulate(i, c.b.And(d[i], c.b.Not(rest)))
		default: // Subtract
			if k >= 0 && k <= i {
				accumulate(i-k, c.b.And(d[i], c.b.Not(s[k])))
			}
		}
	} else {
		switch n.Type.Mode {
		case compilegraph.Compare:
			for i := 0; i < 15; i++ {
				rest := restOr(c.b, s[:], i+1)
				accumulate(i, c.b.And(d[i], c.b.Not(rest)))
			}
		default: // Subtract
			for i := 0; i < 15; i++ {
				for k := 0; k <= i; k++ {
					accumulate(i-k, c.b.And(d[i], c.b.Not(s[k])))
				}
			}
		}
	}

	initialBit := func(i int) bool { return n.State.OutputStrength >= i+1 }

	var hex [15]aig.Lit
	for i := 0; i < 15; i++ {
		hex[i] = c.b.Latch2(o[i], initialBit(i))
	}
	c.outputs[n.ID] = NodeOutput{Kind: OutputHex, Hex: hex}
	return nil
}

// restOr ORs plane[from:] of a 15-wide bus, returning False when from is
// past the end (the "OR of nothing" base case used at the top bucket).
func restOr(b *aig.Builder, plane []aig.Lit, from int) aig.Lit {
	if from >= len(plane) {
		return aig.False
	}
	return b.OrAll(plane[from:])
}
