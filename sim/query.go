package sim

import "github.com/rscomp/redaig/compilegraph"

// Powered reports a node's current powered flag.
func (s *Simulator) Powered(id compilegraph.NodeID) (bool, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return false, false
	}
	return n.Powered, true
}

// OutputPower reports a node's current output signal strength.
func (s *Simulator) OutputPower(id compilegraph.NodeID) (int, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return 0, false
	}
	return n.OutputPower, true
}

// Locked reports whether a locking repeater currently sees a powered Side
// input (always false for non-locking repeaters and every other kind).
func (s *Simulator) Locked(id compilegraph.NodeID) (bool, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return false, false
	}
	return n.Locked, true
}

// GroupCount reports how many independent scheduler islands the graph
// was partitioned into.
func (s *Simulator) GroupCount() int { return len(s.groups) }
