// Package redaig compiles a high-level logic-circuit graph of
// Minecraft-style redstone components into an And-Inverter Graph, and
// provides a parallel tick-driven simulator over the result.
//
// 🚀 What is redaig?
//
//	A modern, thread-safe library that brings together:
//
//	  • Compile graph: the typed node/edge model optimisation passes run over
//	  • Optimisation passes: signal-strength inference, constant folding,
//	    duplicate-logic coalescing, dead-edge pruning
//	  • AIG lowering + AIGER codec: the same binary format hardware tools use
//	  • A parallel tick simulator: grouped scheduler islands dispatched
//	    concurrently with a correctness-preserving cross-group ordering rule
//
// Everything is organized under focused subpackages:
//
//	compilegraph/ — CompileNode/CompileLink, the PossibleSS lattice, the graph itself
//	passes/       — the optimisation pipeline (NarrowOutputs, ConstantFold2, Coalesce2, ...)
//	aig/          — the AIG builder, GC, and AIGER binary codec
//	lower/        — stage A/B compile-graph → AIG translation
//	sim/          — the threaded tick simulator
//	host/         — the external world boundary (Block/World interfaces)
//
// Dive into SPEC_FULL.md and DESIGN.md for the full design and the
// grounding behind each package's choices.
package redaig
