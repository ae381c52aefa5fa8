package sim

import "github.com/rscomp/redaig/compilegraph"

// EventKind discriminates the Event union. NoteBlockPlay is the only
// variant the spec names (note-block audio playback itself is out of
// scope, per spec §1).
type EventKind uint8

const (
	NoteBlockPlay EventKind = iota
)

// Event is one entry in a group's append-only per-tick event list.
type Event struct {
	Kind       EventKind
	Node       compilegraph.NodeID
	Instrument int
	Note       int
}
