package sim

import (
	"github.com/rscomp/redaig/compilegraph"
	"github.com/rscomp/redaig/host"
)

// getBoolInput samples a node's Default histogram as the boolean
// "currently receiving any power" signal tick_node rules read (spec
// §4.6).
func (s *Simulator) getBoolInput(n *Node) bool { return n.DefaultIn.HighestNonZero() > 0 }

func strengthFor(powered bool) int {
	if powered {
		return 15
	}
	return 0
}

// calculateComparatorOutput applies the Compare/Subtract combining rule
// to concrete input/side power levels, honoring far_input per the
// same override spec §4.2 describes for the abstract-interpretation
// lattice, specialized to a single concrete default-power sample: an
// unset far_input leaves inputPower untouched; otherwise a non-maximal
// reading is replaced by the far value (only a strength-15 reading is
// trusted as "truly at range").
func calculateComparatorOutput(mode compilegraph.ComparatorMode, inputPower, sidePower int, farInput *int) int {
	d := inputPower
	if farInput != nil && d != 15 {
		d = *farInput
	}
	switch mode {
	case compilegraph.Compare:
		if d > sidePower {
			return d
		}
		return 0
	default: // Subtract
		v := d - sidePower
		if v < 0 {
			v = 0
		}
		return v
	}
}

// tickNode is the per-type tick rule (spec §4.6).
func (s *Simulator) tickNode(priority host.TickPriority, grp *Group, n *Node) {
	switch n.Kind {
	case compilegraph.KindRepeater:
		if n.Locked {
			return
		}
		in := s.getBoolInput(n)
		if in != n.Powered {
			s.setNode(priority, n, in, strengthFor(in))
		}

	case compilegraph.KindTorch:
		wantPowered := !s.getBoolInput(n)
		if wantPowered != n.Powered {
			s.setNode(priority, n, wantPowered, strengthFor(wantPowered))
		}

	case compilegraph.KindComparator:
		inputPower := n.DefaultIn.HighestNonZero()
		sidePower := n.SideIn.HighestNonZero()
		out := calculateComparatorOutput(n.Mode, inputPower, sidePower, n.FarInput)
		if out != n.OutputPower || (out > 0) != n.Powered {
			s.setNode(priority, n, out > 0, out)
		}

	case compilegraph.KindLamp:
		if n.Powered {
			s.setNode(priority, n, false, 0)
		}

	case compilegraph.KindButton:
		if n.Powered {
			s.setNode(priority, n, false, 0)
		}

	case compilegraph.KindNoteBlock:
		s.events = append(s.events, Event{Kind: NoteBlockPlay, Node: n.ID, Instrument: n.Instrument, Note: n.Note})
	}
}

// setNode applies a node's new powered/power pair, propagates the delta
// to every fan-out target's histogram, and recurses into updateNode for
// each target whose delivered SS actually changed (spec §4.6).
func (s *Simulator) setNode(priority host.TickPriority, n *Node, powered bool, newPower int) {
	oldPower := n.OutputPower
	n.Powered = powered
	n.OutputPower = newPower
	n.Changed = true

	for _, link := range n.Updates {
		target, ok := s.nodes[link.Target]
		if !ok {
			continue
		}
		oldSS := deliveredSS(oldPower, link.SSDistance)
		newSS := deliveredSS(newPower, link.SSDistance)
		if oldSS == newSS {
			continue
		}
		hist := &target.DefaultIn
		if link.Side {
			hist = &target.SideIn
		}
		hist.Remove(oldSS)
		hist.Add(newSS)
		s.updateNode(priority, target)
	}
}

// tickPriorityFor is the conventional per-type scheduling priority,
// mirroring vanilla redstone's relative update order: torches update
// before repeaters, which update before plain wire-driven logic.
func tickPriorityFor(kind compilegraph.NodeKind) host.TickPriority {
	switch kind {
	case compilegraph.KindTorch:
		return host.PriorityHigher
	case compilegraph.KindRepeater:
		return host.PriorityHigh
	default:
		return host.PriorityNormal
	}
}

// updateNode computes whether target's own state now disagrees with its
// histograms and, if so, enqueues a future tick for it (spec §4.6). A
// target that already has a pending tick is left to that tick: no new tick
// is enqueued, and the update's priority does not reorder or advance a
// tick already waiting in the current slot.
func (s *Simulator) updateNode(priority host.TickPriority, target *Node) {
	var wantsTick bool
	var delay int

	switch target.Kind {
	case compilegraph.KindRepeater:
		if target.Locking {
			locked := target.SideIn.HighestNonZero() > 0
			if locked != target.Locked {
				target.Locked = locked
				target.Changed = true
			}
		}
		in := s.getBoolInput(target)
		wantsTick = !target.Locked && in != target.Powered
		delay = target.RepeaterDelay

	case compilegraph.KindTorch:
		wantsTick = (!s.getBoolInput(target)) != target.Powered
		delay = 1

	case compilegraph.KindComparator:
		wantsTick = true
		delay = 1

	case compilegraph.KindLamp:
		in := target.DefaultIn.HighestNonZero() > 0
		if in && !target.Powered {
			// On-transition is immediate, not scheduled.
			s.setNode(priority, target, true, 15)
			return
		}
		wantsTick = (!in) && target.Powered
		delay = 2

	default:
		return
	}

	if !wantsTick {
		return
	}
	if target.PendingTick != PendingNone {
		return
	}
	s.ScheduleTick(target.ID, delay, tickPriorityFor(target.Kind))
}
