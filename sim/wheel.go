package sim

import (
	"github.com/rscomp/redaig/compilegraph"
	"github.com/rscomp/redaig/host"
)

const numSlots = 16

// priorityIndex maps a TickPriority to the 0..3 lane index processed in
// descending-priority order (Highest first).
func priorityIndex(p host.TickPriority) int {
	switch p {
	case host.PriorityHighest:
		return 0
	case host.PriorityHigher:
		return 1
	case host.PriorityHigh:
		return 2
	default:
		return 3
	}
}

var lanePriority = [4]host.TickPriority{
	host.PriorityHighest, host.PriorityHigher, host.PriorityHigh, host.PriorityNormal,
}

// TickScheduler is a 16-slot circular wheel of 4 priority queues each,
// indexed by (current_tick + delay) mod 16 (spec §4.6).
type TickScheduler struct {
	slots [numSlots][4][]compilegraph.NodeID
}

// Schedule pushes node into the slot (at + delay) mod 16, lane priority.
func (w *TickScheduler) Schedule(at int, node compilegraph.NodeID, delay int, priority host.TickPriority) int {
	slot := (at + delay) % numSlots
	w.slots[slot][priorityIndex(priority)] = append(w.slots[slot][priorityIndex(priority)], node)
	return slot
}

// Swap empties the given slot, returning its prior contents for draining.
func (w *TickScheduler) Swap(slot int) [4][]compilegraph.NodeID {
	old := w.slots[slot]
	w.slots[slot] = [4][]compilegraph.NodeID{}
	return old
}

// SlotEmpty reports whether a slot has no pending work in any lane.
func (w *TickScheduler) SlotEmpty(slot int) bool {
	for _, lane := range w.slots[slot] {
		if len(lane) > 0 {
			return false
		}
	}
	return true
}
