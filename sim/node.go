package sim

import (
	"github.com/rscomp/redaig/compilegraph"
	"github.com/rscomp/redaig/host"
)

// PendingNone is the "no scheduled tick" sentinel for Node.PendingTick
// (spec §3: "pending_tick (wheel slot or 255 = none)").
const PendingNone uint8 = 255

// ForwardLink is one outgoing fan-out edge from a simulator Node: which
// node it feeds, whether into that node's Side (vs Default) histogram,
// and the SS distance the edge imposes.
type ForwardLink struct {
	Target     compilegraph.NodeID
	Side       bool
	SSDistance int
}

// NodeInput is a 16-bucket histogram of how many currently-live incoming
// edges of one LinkType deliver each signal strength.
type NodeInput struct {
	SSCounts [16]uint8
}

// Add records one more incoming edge delivering ss.
func (ni *NodeInput) Add(ss int) { ni.SSCounts[ss]++ }

// Remove un-records one incoming edge delivering ss.
func (ni *NodeInput) Remove(ss int) {
	if ni.SSCounts[ss] > 0 {
		ni.SSCounts[ss]--
	}
}

// HighestNonZero returns the index of the highest bucket with a nonzero
// count, used by tick_node to read a node's current Default/Side power
// level from its histogram (spec §4.6's "indices of the highest non-zero
// bucket").
func (ni *NodeInput) HighestNonZero() int {
	for i := 15; i >= 1; i-- {
		if ni.SSCounts[i] > 0 {
			return i
		}
	}
	return 0
}

// Total returns the sum of all bucket counts — the node's true in-degree
// of that LinkType (spec §3's histogram invariant).
func (ni *NodeInput) Total() int {
	total := 0
	for _, c := range ni.SSCounts {
		total += int(c)
	}
	return total
}

// Node is the simulator's per-compile-node runtime record (spec §3).
type Node struct {
	ID   compilegraph.NodeID
	Kind compilegraph.NodeKind

	RepeaterDelay int
	Locking       bool
	Mode          compilegraph.ComparatorMode
	FarInput      *int
	Instrument    int
	Note          int

	DefaultIn NodeInput
	SideIn    NodeInput
	Updates   []ForwardLink

	Powered     bool
	OutputPower int
	Locked      bool
	Changed     bool

	PendingTick         uint8
	PendingTickPriority host.TickPriority

	IsIO         bool
	GroupID      int
	InputGroupID *int

	Block *compilegraph.BlockRef
}
