package sim

import (
	"sort"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/rscomp/redaig/compilegraph"
	"github.com/rscomp/redaig/host"
)

// Simulator is the parallel tick-driven engine of spec §4.6.
type Simulator struct {
	nodes   map[compilegraph.NodeID]*Node
	groups  []*Group
	groupOf map[compilegraph.NodeID]int

	globalTick int
	world      host.World
	ioOnly     bool

	events []Event
}

func deliveredSS(srcStrength, distance int) int {
	v := srcStrength - distance
	if v < 0 {
		return 0
	}
	return v
}

// NewSimulator builds one Node per live compile-graph node and discovers
// scheduler groups. ioOnly gates the flush step to IO nodes only.
func NewSimulator(g *compilegraph.CompileGraph, world host.World, ioOnly bool) *Simulator {
	s := &Simulator{
		nodes:   make(map[compilegraph.NodeID]*Node),
		groupOf: make(map[compilegraph.NodeID]int),
		world:   world,
		ioOnly:  ioOnly,
	}

	for _, id := range g.NodeIDs() {
		cn, ok := g.Node(id)
		if !ok {
			continue
		}
		n := &Node{
			ID:            id,
			Kind:          cn.Type.Kind,
			RepeaterDelay: cn.Type.RepeaterDelay,
			Locking:       cn.Type.Locking,
			Mode:          cn.Type.Mode,
			FarInput:      cn.Type.FarInput,
			Instrument:    cn.Type.Instrument,
			Note:          cn.Type.Note,
			Powered:       cn.State.Powered,
			OutputPower:   cn.State.OutputStrength,
			Locked:        cn.State.RepeaterLocked,
			IsIO:          cn.IsInput || cn.IsOutput,
			Block:         cn.Block,
			PendingTick:   PendingNone,
		}
		for _, e := range g.EdgesDirected(id, compilegraph.Outgoing) {
			n.Updates = append(n.Updates, ForwardLink{Target: e.To, Side: e.Link.Type == compilegraph.Side, SSDistance: e.Link.SS})
		}
		s.nodes[id] = n
	}

	// Seed histograms from the graph's current steady state so Total()
	// matches true in-degree before the first tick runs.
	for _, id := range g.NodeIDs() {
		for _, e := range g.EdgesDirected(id, compilegraph.Incoming) {
			src, ok := g.Node(e.From)
			if !ok {
				continue
			}
			dst := s.nodes[id]
			ss := deliveredSS(src.State.OutputStrength, e.Link.SS)
			if e.Link.Type == compilegraph.Side {
				dst.SideIn.Add(ss)
			} else {
				dst.DefaultIn.Add(ss)
			}
		}
	}

	s.groups = discoverGroups(g)
	for _, grp := range s.groups {
		for _, id := range grp.Nodes {
			s.groupOf[id] = grp.ID
			s.nodes[id].GroupID = grp.ID
		}
	}
	// input_group_id is left nil: the grouping closure above is a full
	// weakly-connected component, so by construction no live edge crosses
	// a group boundary and no node has a cross-group input (see group.go).

	s.settleInitialState()

	return s
}

// settleInitialState resolves any disagreement between a freshly-built
// node's Powered/OutputPower and the live histogram it was seeded with: a
// compile graph loaded from a live world can carry a lamp that isn't lit
// yet even though its input already reads "on" (the block world settles
// lamps on the next scheduled tick, not instantaneously on load). A single
// sweep calling updateNode on every node either applies the node's
// immediate transition (Lamp's on-edge) or schedules its delayed one
// (Torch/Repeater/Comparator/Lamp's off-edge), exactly as the first real
// tick would if the mismatch had arisen from a propagated change instead
// of from initial load.
func (s *Simulator) settleInitialState() {
	for _, id := range sortedNodeIDs(s.nodes) {
		n := s.nodes[id]
		s.updateNode(tickPriorityFor(n.Kind), n)
	}
}

func sortedNodeIDs(nodes map[compilegraph.NodeID]*Node) []compilegraph.NodeID {
	ids := make([]compilegraph.NodeID, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ScheduleTick enqueues node into its group's wheel. Per spec §7 this is
// a SimulatorError (logged, not fatal) if the node was elided by a pass.
func (s *Simulator) ScheduleTick(id compilegraph.NodeID, delay int, priority host.TickPriority) {
	n, ok := s.nodes[id]
	if !ok {
		glog.Warningf("%v", &SimulatorError{Message: "schedule_tick for elided node"})
		return
	}
	grp := s.groups[s.groupOf[id]]
	slot := grp.Wheel.Schedule(s.globalTick, id, delay, priority)
	n.PendingTick = uint8(slot)
	n.PendingTickPriority = priority
}

// Step advances the global tick by one, dispatching each group's current
// wheel slot in parallel (spec §4.6's "global tick step").
func (s *Simulator) Step() error {
	s.globalTick++
	curSlot := s.globalTick % numSlots
	curParity := s.globalTick % 2
	nextParity := (s.globalTick + 1) % 2

	var eg errgroup.Group
	for _, grp := range s.groups {
		grp := grp
		eg.Go(func() error {
			s.dispatchGroup(grp, curSlot, curParity)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, grp := range s.groups {
		grp.HasWork[nextParity] = !grp.Wheel.SlotEmpty((s.globalTick + 1) % numSlots)
	}

	return nil
}

func (s *Simulator) dispatchGroup(grp *Group, curSlot, curParity int) {
	lanes := grp.Wheel.Swap(curSlot)
	for _, lane := range lanes {
		for _, id := range lane {
			n := s.nodes[id]
			if n.PendingTick == uint8(curSlot) {
				n.PendingTick = PendingNone
			}
			if n.InputGroupID != nil && s.groups[*n.InputGroupID].HasWork[curParity] {
				// Input group has pending work this tick; it must execute
				// first, so defer this node to next tick.
				s.ScheduleTick(id, 1, n.PendingTickPriority)
				continue
			}
			s.tickNode(n.PendingTickPriority, grp, n)
		}
	}
}

// Flush iterates every Changed node, writes its powered/power/locked
// triple back through the host World, and clears Changed (spec §4.6).
// When ioOnly is set, non-IO nodes are skipped.
func (s *Simulator) Flush() {
	for _, n := range s.nodes {
		if !n.Changed {
			continue
		}
		if s.ioOnly && !n.IsIO {
			n.Changed = false
			continue
		}
		if n.Block != nil {
			s.world.SetBlock(n.Block.Pos, host.SimpleBlock{PoweredV: n.Powered, PowerV: n.OutputPower, LockedV: n.Locked})
		}
		n.Changed = false
	}
}

// Events drains and returns the simulator's accumulated event list.
func (s *Simulator) Events() []Event {
	out := s.events
	s.events = nil
	return out
}

// Reset drains every scheduled tick back into the host world's own tick
// queue (preserving relative delay and priority), clears the wheels, and
// clears the event list (spec §4.6).
func (s *Simulator) Reset() {
	for _, grp := range s.groups {
		for slot := 0; slot < numSlots; slot++ {
			lanes := grp.Wheel.Swap(slot)
			delay := (slot - s.globalTick%numSlots + numSlots) % numSlots
			for _, lane := range lanes {
				for _, id := range lane {
					n, ok := s.nodes[id]
					if !ok || n.Block == nil {
						continue
					}
					s.world.ScheduleTick(n.Block.Pos, delay, n.PendingTickPriority)
				}
			}
		}
		grp.HasWork = [2]bool{}
	}
	for _, n := range s.nodes {
		n.PendingTick = PendingNone
	}
	s.events = nil
}
