// Package sim implements the parallel tick-driven simulator of spec §4.6:
// grouping compile-graph nodes into independent scheduler islands, a
// per-group 16-slot priority tick wheel, and the cross-group "input group
// ticks first" ordering rule that keeps parallel dispatch serialisable.
//
// Unlike package lower (which targets the persisted AIG), the simulator
// operates directly over one Node per live compile-graph node, mirroring
// the teacher's preference for a purpose-built runtime structure rather
// than re-interpreting a generic graph at tick time.
package sim
