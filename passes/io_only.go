package passes

import "github.com/rscomp/redaig/compilegraph"

// IoOnly keeps only the nodes that can reach an is_output node, discarding
// everything else. Optional; gated by io_only && optimize (spec §4.3,
// pass 6).
type IoOnly struct{}

func (IoOnly) Name() string { return "IoOnly" }
func (IoOnly) ShouldRun(opts CompilerOptions) bool { return opts.IoOnly && opts.Optimize }

func (IoOnly) Run(g *compilegraph.CompileGraph, _ CompilerOptions) (bool, error) {
	reached := make(map[compilegraph.NodeID]bool)
	var queue []compilegraph.NodeID

	for _, id := range g.NodeIDs() {
		n, ok := g.Node(id)
		if ok && n.IsOutput {
			reached[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.EdgesDirected(cur, compilegraph.Incoming) {
			if !reached[e.From] {
				reached[e.From] = true
				queue = append(queue, e.From)
			}
		}
	}

	changed := false
	for _, id := range g.NodeIDs() {
		if reached[id] {
			continue
		}
		if err := g.RemoveNode(id); err != nil {
			return changed, err
		}
		changed = true
	}

	return changed, nil
}
