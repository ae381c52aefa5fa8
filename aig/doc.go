// Package aig implements the And-Inverter Graph data model and the binary
// AIGER codec described in spec §4.4.
//
// Builder is the mutable construction-time graph used by package lower: it
// assigns internal node ids in creation order and defers the AIGER
// contiguous index invariant ([PI block][latch block][And block], each And
// referencing only lower-indexed literals) to Finalize, which performs a
// topological renumbering (spec §4.5 stage C) before
// producing an immutable AIG ready for Encode/Decode.
//
// Modeled on the teacher's matrix package: an in-memory packed
// representation (AdjacencyMatrix there, the AIG node array here) plus a
// round-trip codec (matrix's ToGraph/NewAdjacencyMatrix there, Encode/Decode
// here).
package aig
