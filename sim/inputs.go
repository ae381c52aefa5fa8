package sim

import (
	"github.com/rscomp/redaig/compilegraph"
	"github.com/rscomp/redaig/host"
)

// SetLever drives a Lever/PressurePlate input node to a new powered
// state, propagating the change exactly as a tick_node flip would.
func (s *Simulator) SetLever(id compilegraph.NodeID, powered bool) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	if n.Powered == powered {
		return
	}
	s.setNode(host.PriorityNormal, n, powered, strengthFor(powered))
}

// PressButton powers a Button on immediately and schedules its
// auto-release 10 ticks later (spec §4.6).
func (s *Simulator) PressButton(id compilegraph.NodeID) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	if n.Powered {
		return
	}
	s.setNode(host.PriorityNormal, n, true, 15)
	s.ScheduleTick(id, 10, host.PriorityNormal)
}
