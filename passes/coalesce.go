package passes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rscomp/redaig/compilegraph"
)

// Coalesce2 merges structurally-duplicate logic: nodes whose type, mutable
// state, and incoming (source, signature) pairs (per input plane) are
// identical are collapsed into one, since they can only ever compute the
// same output (spec §4.3, pass 4). Input and output nodes are never merged. It repeats internally until a sweep produces no
// merges, independent of the outer pipeline's own fixed-point loop.
type Coalesce2 struct{}

func (Coalesce2) Name() string                    { return "Coalesce2" }
func (Coalesce2) ShouldRun(opts CompilerOptions) bool { return opts.Optimize }

func (Coalesce2) Run(g *compilegraph.CompileGraph, _ CompilerOptions) (bool, error) {
	everChanged := false

	for {
		mergedThisSweep, err := coalesceSweep(g)
		if err != nil {
			return everChanged, err
		}
		if !mergedThisSweep {
			return everChanged, nil
		}
		everChanged = true
	}
}

// coalesceSweep performs one pass: build every live node's canonical key,
// and for the first collision under each key, delete the later node and
// re-home its outgoing edges onto the earlier (surviving) node.
func coalesceSweep(g *compilegraph.CompileGraph) (bool, error) {
	seen := make(map[string]compilegraph.NodeID)
	changed := false

	for _, id := range g.NodeIDs() {
		n, ok := g.Node(id)
		if !ok || n.IsInput || n.IsOutput {
			continue
		}
		key := canonicalKey(g, n)
		survivor, collided := seen[key]
		if !collided {
			seen[key] = id
			continue
		}

		for _, e := range g.EdgesDirected(id, compilegraph.Outgoing) {
			if err := g.Retarget(e.ID, compilegraph.Outgoing, survivor); err != nil {
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

// canonicalKey builds the (ty, state, sorted-signature) key from spec
// §4.3, pass 4, as a comparable string.
func canonicalKey(g *compilegraph.CompileGraph, n *compilegraph.CompileNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%d|%v|%d|%d|%d|", n.Type.Kind, n.Type.RepeaterDelay, n.Type.FacingDiode, n.Type.Mode, farInputInt(n.Type.FarInput), n.Type.Instrument)
	fmt.Fprintf(&b, "%d|%v|%v|%d|", n.Type.Note, n.State.Powered, n.State.RepeaterLocked, n.State.OutputStrength)

	defSigs, sideSigs := inputSignatures(g, n.ID)
	sort.Slice(defSigs, func(i, j int) bool { return defSigs[i] < defSigs[j] })
	sort.Slice(sideSigs, func(i, j int) bool { return sideSigs[i] < sideSigs[j] })

	b.WriteString("D")
	for _, s := range defSigs {
		fmt.Fprintf(&b, ":%d", s)
	}
	b.WriteString("|S")
	for _, s := range sideSigs {
		fmt.Fprintf(&b, ":%d", s)
	}

	return b.String()
}

func farInputInt(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

// inputSignatures computes the boolean or hex signature (spec §4.3) for
// every incoming edge, paired with the edge's source id (source in the
// high bits, signature in the low 16), partitioned by LinkType.
func inputSignatures(g *compilegraph.CompileGraph, id compilegraph.NodeID) (def, side []uint64) {
	for _, e := range g.EdgesDirected(id, compilegraph.Incoming) {
		src, ok := g.Node(e.From)
		if !ok {
			continue
		}
		sig := uint64(e.From)<<16 | uint64(edgeSignature(src, e.Link.SS))
		if e.Link.Type == compilegraph.Default {
			def = append(def, sig)
		} else {
			side = append(side, sig)
		}
	}
	return def, side
}

// isHexTyped reports whether a node's output is lowered as a 15-wide hex
// bus (Comparator, Wire) rather than a single Binary literal (spec §4.5).
func isHexTyped(kind compilegraph.NodeKind) bool {
	return kind == compilegraph.KindComparator || kind == compilegraph.KindWire
}

func edgeSignature(src *compilegraph.CompileNode, ss int) uint16 {
	out := src.PossibleOutputs
	if isHexTyped(src.Type.Kind) {
		return uint16((out & 1) | ((out & compilegraph.Positive) >> uint(ss)))
	}
	return uint16(out & (compilegraph.Positive << uint(ss)))
}
