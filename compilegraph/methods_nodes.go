package compilegraph

import "sort"

// AddNode inserts a new CompileNode of the given type and returns its id.
// PossibleOutputs starts at FULL (the lattice's "don't know yet" value);
// package passes narrows it during NarrowOutputs.
//
// Complexity: O(1). Concurrency: write-locks muNodes.
func (g *CompileGraph) AddNode(ty NodeType) NodeID {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	g.nextNodeID++
	id := NodeID(g.nextNodeID)
	g.nodes[id] = &CompileNode{
		ID:              id,
		Type:            ty,
		PossibleOutputs: Full(),
	}
	g.outAdj[id] = make(map[EdgeID]struct{})
	g.inAdj[id] = make(map[EdgeID]struct{})

	return id
}

// AddNodeWithState is AddNode plus an initial NodeState and BlockRef; used
// by the (out of scope) block-world builder and by tests that need to seed
// powered state directly.
func (g *CompileGraph) AddNodeWithState(ty NodeType, st NodeState, block *BlockRef) NodeID {
	id := g.AddNode(ty)
	g.muNodes.Lock()
	n := g.nodes[id]
	n.State = st
	n.Block = block
	g.muNodes.Unlock()

	return id
}

// ContainsNode reports whether id currently names a live node.
func (g *CompileGraph) ContainsNode(id NodeID) bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Node returns the node for id, or (nil, false) if it does not exist (or
// was removed). The returned pointer aliases internal state; callers in
// package passes and package lower only read or mutate it while holding no
// other CompileGraph lock, consistent with the teacher's single-writer
// pipeline model (the optimisation pipeline itself is single-threaded).
func (g *CompileGraph) Node(id NodeID) (*CompileNode, bool) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns a snapshot of all live node ids, in ascending order.
func (g *CompileGraph) NodeIDs() []NodeID {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// NodeCount returns the number of live nodes.
func (g *CompileGraph) NodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	return len(g.nodes)
}

// RemoveNode deletes a node and every edge incident to it. Returns
// ErrNodeNotFound if id is not live. The id itself is never reused.
//
// Complexity: O(deg(id)).
func (g *CompileGraph) RemoveNode(id NodeID) error {
	if !g.ContainsNode(id) {
		return ErrNodeNotFound
	}

	// Collect incident edges first (both directions), then remove them
	// through RemoveEdge so adjacency bookkeeping stays centralized.
	var incident []EdgeID
	g.muEdges.RLock()
	for eid := range g.outAdj[id] {
		incident = append(incident, eid)
	}
	for eid := range g.inAdj[id] {
		incident = append(incident, eid)
	}
	g.muEdges.RUnlock()

	for _, eid := range incident {
		_ = g.RemoveEdge(eid)
	}

	g.muNodes.Lock()
	delete(g.nodes, id)
	g.muNodes.Unlock()

	g.muEdges.Lock()
	delete(g.outAdj, id)
	delete(g.inAdj, id)
	g.muEdges.Unlock()

	return nil
}
