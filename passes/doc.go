// Package passes implements the redaig optimisation pipeline: a fixed,
// linear sequence of rewrites over a compilegraph.CompileGraph, each gated
// by ShouldRun(CompilerOptions) and applied by Run until the whole pipeline
// reaches a fixed point (spec §4.3).
//
// Order: NarrowOutputs, UnreachableOutput2, ConstantFold2, Coalesce2,
// CancellingComparatorEdges, and (io_only && optimize) IoOnly.
//
// Modeled on the teacher's graph traversal style (graph.BFS/DFS: context-
// aware, callback-driven) generalized from "visit a node" to "rewrite a
// node or edge"; CompilerOptions is a plain struct of flags rather than
// the teacher's functional-options idiom.
package passes
