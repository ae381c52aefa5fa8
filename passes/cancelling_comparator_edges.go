package passes

import "github.com/rscomp/redaig/compilegraph"

// CancellingComparatorEdges removes a comparator's Default or Side edge
// when the very same source also feeds its other plane, and the
// comparator's own logic makes one of the two edges provably dead (spec
// §4.3, pass 5). Pure dead-edge removal; no semantic change.
type CancellingComparatorEdges struct{}

func (CancellingComparatorEdges) Name() string { return "CancellingComparatorEdges" }
func (CancellingComparatorEdges) ShouldRun(opts CompilerOptions) bool { return opts.Optimize }

func (CancellingComparatorEdges) Run(g *compilegraph.CompileGraph, _ CompilerOptions) (bool, error) {
	changed := false

	for _, id := range g.NodeIDs() {
		n, ok := g.Node(id)
		if !ok || n.Type.Kind != compilegraph.KindComparator {
			continue
		}

		defEdges := g.EdgesDirected(id, compilegraph.Incoming)
		for _, de := range defEdges {
			if de.Link.Type != compilegraph.Default {
				continue
			}
			for _, se := range defEdges {
				if se.Link.Type != compilegraph.Side || se.From != de.From {
					continue
				}
				dropDefault, dropSide := cancellingVerdict(n.Type.Mode, de.Link.SS, se.Link.SS)
				if dropDefault {
					if !g.ContainsEdge(de.ID) {
						continue
					}
					if err := g.RemoveEdge(de.ID); err != nil {
						return changed, err
					}
					changed = true
				} else if dropSide {
					if !g.ContainsEdge(se.ID) {
						continue
					}
					if err := g.RemoveEdge(se.ID); err != nil {
						return changed, err
					}
					changed = true
				}
			}
		}
	}

	return changed, nil
}

// cancellingVerdict implements spec §4.3 pass 5's two rules.
func cancellingVerdict(mode compilegraph.ComparatorMode, defSS, sideSS int) (dropDefault, dropSide bool) {
	if mode == compilegraph.Compare {
		if defSS > sideSS {
			return true, false
		}
		return false, true
	}
	// Subtract
	if defSS >= sideSS {
		return true, false
	}
	return false, true
}
