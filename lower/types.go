package lower

import (
	"github.com/rscomp/redaig/aig"
	"github.com/rscomp/redaig/compilegraph"
)

// OutputKind tags a node's stage-A output representation (spec §4.5).
type OutputKind uint8

const (
	// OutputNone marks a sink node with no single AIG-literal output.
	OutputNone OutputKind = iota
	// OutputBinary is a single 1-bit literal.
	OutputBinary
	// OutputHex is a 15-wire thermometer-encoded bus.
	OutputHex
)

// NodeOutput is one node's stage-A output: exactly one of Bin or Hex is
// meaningful, selected by Kind.
type NodeOutput struct {
	Kind OutputKind
	Bin  aig.Lit
	Hex  [15]aig.Lit
}

// InputTableEntry maps an externally-driven PI to the compile node that
// owns it (Lever/Button/PressurePlate), keyed by PI index (0-based).
type InputTableEntry struct {
	NodeID  compilegraph.NodeID
	Block   compilegraph.BlockRef
	PIIndex int
}

// OutputTableEntry maps an externally-observed primary output to the
// compile node that owns it (Lamp/Trapdoor/NoteBlock), keyed by output
// index (0-based).
type OutputTableEntry struct {
	NodeID      compilegraph.NodeID
	Block       compilegraph.BlockRef
	OutputIndex int
}

// Result bundles the finalized AIG with the host-facing lookup tables
// needed to drive inputs and observe outputs at simulation time.
type Result struct {
	AIG          *aig.AIG
	InputTable   []InputTableEntry
	OutputTable  []OutputTableEntry
}

// slotKey names one placeholder hole: a compile node plus a slot label
// ("in", "lock", "D0".."D14", "S0".."S14", "bus0".."bus14").
type slotKey struct {
	node compilegraph.NodeID
	slot string
}

// ctx carries the shared, single-pass-lived state threaded between
// stage A and stage B.
type ctx struct {
	g  *compilegraph.CompileGraph
	b  *aig.Builder

	outputs      map[compilegraph.NodeID]NodeOutput
	placeholders map[slotKey]aig.Lit

	inputTable  []InputTableEntry
	outputTable []OutputTableEntry
}
