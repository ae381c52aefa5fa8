package passes

import "github.com/rscomp/redaig/compilegraph"

// NarrowOutputs drives the PossibleSS abstract interpretation (spec §4.2)
// to a fixed point. It always "runs" (every later pass depends on a
// narrowed lattice), and ShouldRun never gates it off.
type NarrowOutputs struct{}

func (NarrowOutputs) Name() string                            { return "NarrowOutputs" }
func (NarrowOutputs) ShouldRun(_ CompilerOptions) bool         { return true }

// maxNarrowIterations is the cycle-breaker from spec §9's design note: "if
// cycles are observed in an implementation, widen to FULL on the second
// revisit". Rather than tracking a visited-set of bitset values per node
// (expensive and unbounded), redaig caps total sweeps and widens every
// node to FULL once the cap is hit.
const maxNarrowIterations = 256

func (NarrowOutputs) Run(g *compilegraph.CompileGraph, _ CompilerOptions) (bool, error) {
	ids := g.NodeIDs()
	everChanged := false

	for iter := 0; iter < maxNarrowIterations; iter++ {
		changedThisSweep := false
		for _, id := range ids {
			n, ok := g.Node(id)
			if !ok {
				continue
			}
			next := computeNewOutputs(g, n)
			if next != n.PossibleOutputs {
				n.PossibleOutputs = next
				changedThisSweep = true
				everChanged = true
			}
		}
		if !changedThisSweep {
			return everChanged, nil
		}
	}

	// Cycle guard: force every node to FULL so downstream passes see a
	// sound (if maximally conservative) value instead of looping forever.
	for _, id := range ids {
		n, _ := g.Node(id)
		n.PossibleOutputs = compilegraph.Full()
	}

	return true, nil
}

// combineIncoming computes the PossibleSS a node sees on its Default or
// Side plane: DustOr over every incoming edge of that LinkType, with each
// source shifted by the edge's SS distance. If there is no such edge,
// spec §4.2 says "insert 0" (default off).
func combineIncoming(g *compilegraph.CompileGraph, id compilegraph.NodeID, lt compilegraph.LinkType) compilegraph.PossibleSS {
	acc := compilegraph.Empty()
	any := false
	for _, e := range g.EdgesDirected(id, compilegraph.Incoming) {
		if e.Link.Type != lt {
			continue
		}
		src, ok := g.Node(e.From)
		if !ok {
			continue
		}
		contribution := src.PossibleOutputs.SubtractSS(e.Link.SS)
		if !any {
			acc = contribution
			any = true
		} else {
			acc = compilegraph.DustOr(acc, contribution)
		}
	}
	if !any {
		return compilegraph.Single(0)
	}

	return acc.Normalize()
}

func computeNewOutputs(g *compilegraph.CompileGraph, n *compilegraph.CompileNode) compilegraph.PossibleSS {
	baseline := compilegraph.Single(n.State.OutputStrength)

	switch n.Type.Kind {
	case compilegraph.KindLever, compilegraph.KindButton, compilegraph.KindPressurePlate,
		compilegraph.KindLamp, compilegraph.KindTrapdoor, compilegraph.KindNoteBlock:
		// Externally driven or observed, no logic inputs: keep the current
		// possible_outputs unchanged (spec §4.2).
		return n.PossibleOutputs.Union(baseline)

	case compilegraph.KindConstant:
		return compilegraph.Single(n.State.OutputStrength)

	case compilegraph.KindWire:
		defIn := combineIncoming(g, n.ID, compilegraph.Default)
		return defIn.Union(baseline)

	case compilegraph.KindRepeater:
		defIn := combineIncoming(g, n.ID, compilegraph.Default)
		out := compilegraph.Empty()
		if defIn.Contains(0) {
			out = out.With(0)
		}
		if hasPositive(defIn) {
			out = out.With(15)
		}
		return out.Union(baseline)

	case compilegraph.KindTorch:
		defIn := combineIncoming(g, n.ID, compilegraph.Default)
		out := compilegraph.Empty()
		if defIn.Contains(0) {
			out = out.With(15)
		}
		if hasPositive(defIn) {
			out = out.With(0)
		}
		return out.Union(baseline)

	case compilegraph.KindComparator:
		defIn := combineIncoming(g, n.ID, compilegraph.Default)
		sideIn := combineIncoming(g, n.ID, compilegraph.Side)
		defIn = applyFarInput(defIn, n.Type.FarInput)
		out := compilegraph.Empty()
		for d := 0; d <= 15; d++ {
			if !defIn.Contains(d) {
				continue
			}
			for s := 0; s <= 15; s++ {
				if !sideIn.Contains(s) {
					continue
				}
				if n.Type.Mode == compilegraph.Compare {
					if d > s {
						out = out.With(d)
					} else {
						out = out.With(0)
					}
				} else { // Subtract
					v := d - s
					if v < 0 {
						v = 0
					}
					out = out.With(v)
				}
			}
		}
		return out.Union(baseline)

	default:
		return n.PossibleOutputs.Union(baseline)
	}
}

func hasPositive(p compilegraph.PossibleSS) bool {
	for v := 1; v <= 15; v++ {
		if p.Contains(v) {
			return true
		}
	}
	return false
}

// applyFarInput encodes the comparator "far input" override from spec
// §4.2: if def_in == {15} leave as-is; else if def_in contains 15, widen
// to {15, k}; else collapse to {k}.
func applyFarInput(defIn compilegraph.PossibleSS, farInput *int) compilegraph.PossibleSS {
	if farInput == nil {
		return defIn
	}
	k := *farInput
	if defIn == compilegraph.Single(15) {
		return defIn
	}
	if defIn.Contains(15) {
		return compilegraph.Single(15).With(k)
	}
	return compilegraph.Single(k)
}
