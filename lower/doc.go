// Package lower translates a compilegraph.CompileGraph into an aig.AIG, in
// the two strictly serial stages of spec §4.5: stageA constructs each
// node's internal gates against placeholder local-inputs, stageB wires
// those placeholders from the compile graph's incoming edges, and
// Builder.Finalize (package aig) performs the garbage collection and
// final index assignment of stage C.
package lower
