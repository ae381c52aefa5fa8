package compilegraph

import (
	"errors"
	"sync"

	"github.com/rscomp/redaig/host"
)

// Sentinel errors for compile-graph operations.
var (
	ErrNodeNotFound     = errors.New("compilegraph: node not found")
	ErrEdgeNotFound     = errors.New("compilegraph: edge not found")
	ErrBadRepeaterDelay = errors.New("compilegraph: repeater delay must be in 1..=4")
	ErrBadSignalStrength = errors.New("compilegraph: signal strength must be in 0..=15")
	ErrBlockedEdge      = errors.New("compilegraph: edge ss >= 15 is blocked and must not exist")
	ErrMissingBlock     = errors.New("compilegraph: node requires a block back-link")
)

// NodeKind discriminates the NodeType union.
type NodeKind uint8

const (
	KindRepeater NodeKind = iota
	KindTorch
	KindComparator
	KindLamp
	KindLever
	KindButton
	KindPressurePlate
	KindTrapdoor
	KindWire
	KindConstant
	KindNoteBlock
)

func (k NodeKind) String() string {
	switch k {
	case KindRepeater:
		return "Repeater"
	case KindTorch:
		return "Torch"
	case KindComparator:
		return "Comparator"
	case KindLamp:
		return "Lamp"
	case KindLever:
		return "Lever"
	case KindButton:
		return "Button"
	case KindPressurePlate:
		return "PressurePlate"
	case KindTrapdoor:
		return "Trapdoor"
	case KindWire:
		return "Wire"
	case KindConstant:
		return "Constant"
	case KindNoteBlock:
		return "NoteBlock"
	default:
		return "Unknown"
	}
}

// ComparatorMode is Compare or Subtract, per spec §3.
type ComparatorMode uint8

const (
	Compare ComparatorMode = iota
	Subtract
)

// NodeType is the tagged-union payload carried by every CompileNode. Only
// the fields relevant to Kind are meaningful; constructors below populate
// the right subset (mirrors the Rust enum in spec §3).
type NodeType struct {
	Kind NodeKind

	// Repeater
	RepeaterDelay int // 1..=4
	Locking       bool
	FacingDiode   bool

	// Comparator
	Mode      ComparatorMode
	FarInput  *int // Option<0..=15>

	// NoteBlock
	Instrument int
	Note       int
}

// NewRepeater builds a Repeater NodeType. delay must be in 1..=4.
func NewRepeater(delay int, locking, facingDiode bool) NodeType {
	return NodeType{Kind: KindRepeater, RepeaterDelay: delay, Locking: locking, FacingDiode: facingDiode}
}

// NewTorch builds a Torch NodeType.
func NewTorch() NodeType { return NodeType{Kind: KindTorch} }

// NewComparator builds a Comparator NodeType. farInput, if non-nil, must
// point to a value in 0..=15.
func NewComparator(mode ComparatorMode, farInput *int, facingDiode bool) NodeType {
	return NodeType{Kind: KindComparator, Mode: mode, FarInput: farInput, FacingDiode: facingDiode}
}

// NewLamp builds a Lamp NodeType.
func NewLamp() NodeType { return NodeType{Kind: KindLamp} }

// NewLever builds a Lever NodeType.
func NewLever() NodeType { return NodeType{Kind: KindLever} }

// NewButton builds a Button NodeType.
func NewButton() NodeType { return NodeType{Kind: KindButton} }

// NewPressurePlate builds a PressurePlate NodeType.
func NewPressurePlate() NodeType { return NodeType{Kind: KindPressurePlate} }

// NewTrapdoor builds a Trapdoor NodeType.
func NewTrapdoor() NodeType { return NodeType{Kind: KindTrapdoor} }

// NewWire builds a Wire NodeType.
func NewWire() NodeType { return NodeType{Kind: KindWire} }

// NewConstant builds a Constant NodeType.
func NewConstant() NodeType { return NodeType{Kind: KindConstant} }

// NewNoteBlock builds a NoteBlock NodeType.
func NewNoteBlock(instrument, note int) NodeType {
	return NodeType{Kind: KindNoteBlock, Instrument: instrument, Note: note}
}

// NodeState is the mutable per-node state tracked during compile-time
// analysis (not to be confused with sim.Node, the simulator's own copy).
type NodeState struct {
	Powered         bool
	RepeaterLocked  bool
	OutputStrength  int // 0..=15
}

// BlockRef back-links a CompileNode to the external block it was built
// from. Synthetic nodes introduced by passes (e.g. ConstantFold2's shared
// Constant(15)) have a nil BlockRef.
type BlockRef struct {
	Pos     host.Pos
	BlockID string
}

// NodeID identifies a CompileNode. Ids are never reused within a single
// compile, even across RemoveNode/AddNode, so passes can safely hold ids
// across a pipeline run.
type NodeID uint32

// EdgeID identifies a CompileLink instance.
type EdgeID uint32

// LinkType distinguishes a sink's primary input from its auxiliary input.
type LinkType uint8

const (
	Default LinkType = iota
	Side
)

// CompileLink is a directed, weighted edge. SS is the signal-strength
// distance the edge imposes; delivered strength is
// source.State.OutputStrength saturating-subtracted by SS. An edge with
// SS >= 15 is meaningless and must not exist (ErrBlockedEdge).
type CompileLink struct {
	Type LinkType
	SS   int // 0..=14
}

// CompileNode is one vertex of the compile graph.
type CompileNode struct {
	ID       NodeID
	Type     NodeType
	State    NodeState
	Block    *BlockRef
	IsInput  bool
	IsOutput bool

	// PossibleOutputs is the inferred lattice value from package passes'
	// NarrowOutputs fixed-point iteration. Initialised to FULL.
	PossibleOutputs PossibleSS
}

// edgeRecord is the internal storage for one CompileLink plus its endpoints.
type edgeRecord struct {
	id   EdgeID
	from NodeID
	to   NodeID
	link CompileLink
}

// Direction selects which end of an edge to pivot a traversal on.
type Direction uint8

const (
	Outgoing Direction = iota
	Incoming
)

// CompileGraph is the directed multigraph described in spec §4.1. Builders
// (AddNode/AddEdge/RemoveNode/RemoveEdge) and passes share the same mutex
// discipline as the teacher's core.Graph: muNodes guards the node catalog,
// muEdges guards the edge catalog and adjacency indices.
type CompileGraph struct {
	muNodes sync.RWMutex
	muEdges sync.RWMutex

	nextNodeID uint32
	nextEdgeID uint32

	nodes map[NodeID]*CompileNode
	edges map[EdgeID]*edgeRecord

	// outAdj[n] = set of edge ids whose From == n.
	outAdj map[NodeID]map[EdgeID]struct{}
	// inAdj[n] = set of edge ids whose To == n.
	inAdj map[NodeID]map[EdgeID]struct{}
}

// NewCompileGraph returns an empty CompileGraph.
func NewCompileGraph() *CompileGraph {
	return &CompileGraph{
		nodes:  make(map[NodeID]*CompileNode),
		edges:  make(map[EdgeID]*edgeRecord),
		outAdj: make(map[NodeID]map[EdgeID]struct{}),
		inAdj:  make(map[NodeID]map[EdgeID]struct{}),
	}
}
