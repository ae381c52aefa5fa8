package passes

import (
	"math/bits"

	"github.com/rscomp/redaig/compilegraph"
)

// ConstantFold2 replaces any removable node whose possible_outputs has
// narrowed to a single strength k with edges into one shared synthetic
// Constant(15) node, compensating each redirected edge's distance by
// 15-k so the delivered strength is unchanged (spec §4.3, pass 3).
// "Removable" excludes is_input and is_output nodes.
type ConstantFold2 struct{}

func (ConstantFold2) Name() string                    { return "ConstantFold2" }
func (ConstantFold2) ShouldRun(opts CompilerOptions) bool { return opts.Optimize }

func (p *ConstantFold2) Run(g *compilegraph.CompileGraph, _ CompilerOptions) (bool, error) {
	changed := false
	var constID compilegraph.NodeID
	haveConst := false

	for _, id := range g.NodeIDs() {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		if n.IsInput || n.IsOutput {
			continue
		}
		if bits.OnesCount16(uint16(n.PossibleOutputs)) != 1 {
			continue
		}
		// A node that is already the shared constant is its own fixed point.
		if haveConst && id == constID {
			continue
		}
		k := n.PossibleOutputs.Min()
		if n.Type.Kind == compilegraph.KindConstant && k == 15 {
			// Already exactly the canonical shared constant shape; reuse
			// it as the target instead of folding it into a duplicate.
			if !haveConst {
				constID = id
				haveConst = true
			}
			continue
		}

		if !haveConst {
			constID = findOrCreateConstant15(g)
			haveConst = true
		}

		for _, e := range g.EdgesDirected(id, compilegraph.Outgoing) {
			newSS := e.Link.SS + (15 - k)
			if newSS >= 15 {
				// The compensated edge would be blocked (delivers zero in
				// every reachable state); drop it outright per spec §3.
				if err := g.RemoveEdge(e.ID); err != nil {
					return changed, err
				}
				continue
			}
			if err := g.Retarget(e.ID, compilegraph.Outgoing, constID); err != nil {
				return changed, err
			}
			if err := g.SetEdgeSS(e.ID, newSS); err != nil {
				return changed, err
			}
		}

		if err := g.RemoveNode(id); err != nil {
			return changed, err
		}
		changed = true
	}

	return changed, nil
}

// findOrCreateConstant15 returns the id of an existing Constant node whose
// OutputStrength is 15, or creates one. Pass.Run is called repeatedly by
// the pipeline's fixed-point loop, so later sweeps reuse the same shared
// node rather than accumulating duplicates.
func findOrCreateConstant15(g *compilegraph.CompileGraph) compilegraph.NodeID {
	for _, id := range g.NodeIDs() {
		n, ok := g.Node(id)
		if ok && n.Type.Kind == compilegraph.KindConstant && n.State.OutputStrength == 15 {
			return id
		}
	}
	id := g.AddNode(compilegraph.NewConstant())
	n, _ := g.Node(id)
	n.State.OutputStrength = 15
	n.PossibleOutputs = compilegraph.Single(15)

	return id
}
