package passes

import "github.com/rscomp/redaig/compilegraph"

// UnreachableOutput2 deletes outgoing edges that can never carry a
// non-zero signal: if max(possible_outputs) <= edge.SS, the edge's
// delivered strength (source.OutputStrength.saturating_sub(ss)) is always
// zero for every reachable source state (spec §4.3, pass 2).
type UnreachableOutput2 struct{}

func (UnreachableOutput2) Name() string                    { return "UnreachableOutput2" }
func (UnreachableOutput2) ShouldRun(opts CompilerOptions) bool { return opts.Optimize }

func (UnreachableOutput2) Run(g *compilegraph.CompileGraph, _ CompilerOptions) (bool, error) {
	changed := false
	for _, id := range g.NodeIDs() {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		maxOut := n.PossibleOutputs.Max()
		for _, e := range g.EdgesDirected(id, compilegraph.Outgoing) {
			if e.Link.SS >= maxOut {
				if err := g.RemoveEdge(e.ID); err != nil {
					return changed, err
				}
				changed = true
			}
		}
	}

	return changed, nil
}
