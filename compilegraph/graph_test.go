package compilegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rscomp/redaig/compilegraph"
)

func TestCompileGraph_AddRemoveNode(t *testing.T) {
	g := compilegraph.NewCompileGraph()
	id := g.AddNode(compilegraph.NewWire())
	assert.True(t, g.ContainsNode(id))
	assert.Equal(t, 1, g.NodeCount())

	require.NoError(t, g.RemoveNode(id))
	assert.False(t, g.ContainsNode(id))
	assert.Equal(t, 0, g.NodeCount())

	// Ids are never reused (spec §4.1).
	id2 := g.AddNode(compilegraph.NewWire())
	assert.NotEqual(t, id, id2)
}

func TestCompileGraph_RemoveNodeDropsIncidentEdges(t *testing.T) {
	g := compilegraph.NewCompileGraph()
	a := g.AddNode(compilegraph.NewWire())
	b := g.AddNode(compilegraph.NewWire())
	eid, err := g.AddEdge(a, b, compilegraph.CompileLink{Type: compilegraph.Default, SS: 0})
	require.NoError(t, err)

	require.NoError(t, g.RemoveNode(a))
	assert.False(t, g.ContainsEdge(eid))
	assert.Empty(t, g.EdgesDirected(b, compilegraph.Incoming))
}

func TestCompileGraph_AddEdgeRejectsBlockedDistance(t *testing.T) {
	g := compilegraph.NewCompileGraph()
	a := g.AddNode(compilegraph.NewWire())
	b := g.AddNode(compilegraph.NewWire())

	_, err := g.AddEdge(a, b, compilegraph.CompileLink{Type: compilegraph.Default, SS: 15})
	assert.ErrorIs(t, err, compilegraph.ErrBlockedEdge)

	_, err = g.AddEdge(a, b, compilegraph.CompileLink{Type: compilegraph.Default, SS: 14})
	assert.NoError(t, err)
}

func TestCompileGraph_EdgesDirectedIsDeterministicallyOrdered(t *testing.T) {
	g := compilegraph.NewCompileGraph()
	a := g.AddNode(compilegraph.NewWire())
	b := g.AddNode(compilegraph.NewWire())
	c := g.AddNode(compilegraph.NewWire())

	e2, _ := g.AddEdge(b, c, compilegraph.CompileLink{Type: compilegraph.Default, SS: 0})
	e1, _ := g.AddEdge(a, c, compilegraph.CompileLink{Type: compilegraph.Default, SS: 0})

	edges := g.EdgesDirected(c, compilegraph.Incoming)
	require.Len(t, edges, 2)
	// e2 was added first and so holds the lower id; EdgesDirected sorts by id.
	assert.Equal(t, e2, edges[0].ID)
	assert.Equal(t, e1, edges[1].ID)
}

func TestCompileGraph_RetargetAndSetEdgeSS(t *testing.T) {
	g := compilegraph.NewCompileGraph()
	a := g.AddNode(compilegraph.NewConstant())
	b := g.AddNode(compilegraph.NewConstant())
	sink := g.AddNode(compilegraph.NewWire())

	eid, err := g.AddEdge(a, sink, compilegraph.CompileLink{Type: compilegraph.Default, SS: 2})
	require.NoError(t, err)

	require.NoError(t, g.Retarget(eid, compilegraph.Outgoing, b))
	view, ok := g.Edge(eid)
	require.True(t, ok)
	assert.Equal(t, b, view.From)

	require.NoError(t, g.SetEdgeSS(eid, 7))
	view, _ = g.Edge(eid)
	assert.Equal(t, 7, view.Link.SS)

	assert.ErrorIs(t, g.SetEdgeSS(eid, 15), compilegraph.ErrBlockedEdge)
}

func TestCompileGraph_StatsCountsInputsOutputsAndEdgeTypes(t *testing.T) {
	b := compilegraph.NewBuilder()
	lever := b.AddLever(false)
	lamp := b.AddLamp()
	rep := b.AddRepeater(1, true, false)
	b.Connect(lever, rep, 0)
	b.ConnectSide(lamp, rep, 0) // nonsensical wiring, but exercises Side counting

	s := b.Graph().Stats()
	assert.Equal(t, 3, s.NodeCount)
	assert.Equal(t, 2, s.EdgeCount)
	assert.Equal(t, 1, s.InputCount)
	assert.Equal(t, 1, s.OutputCount)
	assert.Equal(t, 1, s.DefaultEdgeCount)
	assert.Equal(t, 1, s.SideEdgeCount)
}
