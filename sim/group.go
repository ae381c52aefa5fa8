package sim

import "github.com/rscomp/redaig/compilegraph"

// Group is one independent scheduler island: a set of node ids sharing an
// output-target equivalence class, its own TickScheduler, and the two
// "has pending work" parity flags used by the cross-group ordering rule.
type Group struct {
	ID      int
	Nodes   []compilegraph.NodeID
	Wheel   TickScheduler
	HasWork [2]bool
}

// discoverGroups partitions g's live node ids into scheduler islands by
// the equivalence closure "two nodes share an output-target" (spec §4.6).
// Seeding a BFS from an unvisited node and alternately walking Outgoing
// (to a shared target) and Incoming (back to every other source of that
// target) transitively floods an entire weakly-connected component, so
// this implements that closure directly as undirected-adjacency BFS —
// see DESIGN.md for why that is the sound reading of the spec's
// two-phase description.
func discoverGroups(g *compilegraph.CompileGraph) []*Group {
	visited := make(map[compilegraph.NodeID]bool)
	var groups []*Group

	for _, seed := range g.NodeIDs() {
		if visited[seed] {
			continue
		}
		group := &Group{ID: len(groups)}
		queue := []compilegraph.NodeID{seed}
		visited[seed] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			group.Nodes = append(group.Nodes, cur)
			for _, e := range g.EdgesDirected(cur, compilegraph.Outgoing) {
				if !visited[e.To] {
					visited[e.To] = true
					queue = append(queue, e.To)
				}
			}
			for _, e := range g.EdgesDirected(cur, compilegraph.Incoming) {
				if !visited[e.From] {
					visited[e.From] = true
					queue = append(queue, e.From)
				}
			}
		}
		groups = append(groups, group)
	}

	return groups
}
