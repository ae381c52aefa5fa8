// File: builder.go
// Role: a small in-module convenience layer for assembling CompileGraphs in
// tests and examples. The real builder — translating a Minecraft world's
// block states into a CompileGraph — is an external collaborator (spec §1)
// and out of scope here; this type exists only so redaig's own tests and
// examples don't need one.
//
// Modeled on the teacher's builder package, but without its functional
// options: a plain wrapper around a *CompileGraph with one method per node
// kind, rather than a generator of the teacher's canonical topologies
// (star, wheel, complete, ...).
package compilegraph

// Builder accumulates nodes and edges onto a CompileGraph with a terser
// call surface than the raw AddNode/AddEdge API. It is not safe for
// concurrent use; callers build on one goroutine, as the teacher's builder
// package constructors do.
type Builder struct {
	g *CompileGraph
}

// NewBuilder wraps a fresh CompileGraph.
func NewBuilder() *Builder {
	return &Builder{g: NewCompileGraph()}
}

// Graph returns the underlying CompileGraph.
func (b *Builder) Graph() *CompileGraph { return b.g }

// AddLever adds a Lever node (IsInput) with the given powered state.
func (b *Builder) AddLever(powered bool) NodeID {
	id := b.g.AddNode(NewLever())
	n, _ := b.g.Node(id)
	n.IsInput = true
	n.State.Powered = powered
	if powered {
		n.State.OutputStrength = 15
	}
	return id
}

// AddButton adds a Button node (IsInput).
func (b *Builder) AddButton() NodeID {
	id := b.g.AddNode(NewButton())
	n, _ := b.g.Node(id)
	n.IsInput = true
	return id
}

// AddPressurePlate adds a PressurePlate node (IsInput).
func (b *Builder) AddPressurePlate() NodeID {
	id := b.g.AddNode(NewPressurePlate())
	n, _ := b.g.Node(id)
	n.IsInput = true
	return id
}

// AddTorch adds a Torch node with the given initial lit state.
func (b *Builder) AddTorch(lit bool) NodeID {
	id := b.g.AddNode(NewTorch())
	n, _ := b.g.Node(id)
	n.State.Powered = lit
	if lit {
		n.State.OutputStrength = 15
	}
	return id
}

// AddRepeater adds a Repeater node with the given delay (1..=4).
func (b *Builder) AddRepeater(delay int, locking, powered bool) NodeID {
	id := b.g.AddNode(NewRepeater(delay, locking, false))
	n, _ := b.g.Node(id)
	n.State.Powered = powered
	n.State.RepeaterLocked = false // the simulator tracks lock state on its own Node once a locking signal arrives
	if powered {
		n.State.OutputStrength = 15
	}
	return id
}

// AddComparator adds a Comparator node.
func (b *Builder) AddComparator(mode ComparatorMode, farInput *int) NodeID {
	return b.g.AddNode(NewComparator(mode, farInput, false))
}

// AddLamp adds a Lamp node (IsOutput).
func (b *Builder) AddLamp() NodeID {
	id := b.g.AddNode(NewLamp())
	n, _ := b.g.Node(id)
	n.IsOutput = true
	return id
}

// AddNoteBlock adds a NoteBlock node (IsOutput).
func (b *Builder) AddNoteBlock(instrument, note int) NodeID {
	id := b.g.AddNode(NewNoteBlock(instrument, note))
	n, _ := b.g.Node(id)
	n.IsOutput = true
	return id
}

// AddWire adds a Wire node.
func (b *Builder) AddWire() NodeID { return b.g.AddNode(NewWire()) }

// AddConstant adds a Constant node with the given output strength.
func (b *Builder) AddConstant(strength int) NodeID {
	id := b.g.AddNode(NewConstant())
	n, _ := b.g.Node(id)
	n.State.OutputStrength = strength
	return id
}

// Connect adds a Default-type edge from -> to with the given ss distance.
func (b *Builder) Connect(from, to NodeID, ss int) EdgeID {
	eid, err := b.g.AddEdge(from, to, CompileLink{Type: Default, SS: ss})
	if err != nil {
		panic(err) // test/example-only helper; callers pass valid ss
	}
	return eid
}

// ConnectSide adds a Side-type edge (locking input / comparator subtractor).
func (b *Builder) ConnectSide(from, to NodeID, ss int) EdgeID {
	eid, err := b.g.AddEdge(from, to, CompileLink{Type: Side, SS: ss})
	if err != nil {
		panic(err)
	}
	return eid
}
