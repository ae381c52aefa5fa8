package passes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rscomp/redaig/compilegraph"
	"github.com/rscomp/redaig/passes"
)

func runCoalesce(t *testing.T, g *compilegraph.CompileGraph) bool {
	t.Helper()
	c := passes.Coalesce2{}
	changed, err := c.Run(g, passes.CompilerOptions{Optimize: true})
	require.NoError(t, err)
	return changed
}

func TestCoalesce2_MergesStructurallyIdenticalTorches(t *testing.T) {
	b := compilegraph.NewBuilder()
	t1 := b.AddTorch(true)
	t2 := b.AddTorch(true)
	lamp1 := b.AddLamp()
	lamp2 := b.AddLamp()
	b.Connect(t1, lamp1, 0)
	b.Connect(t2, lamp2, 0)

	g := b.Graph()
	changed := runCoalesce(t, g)
	require.True(t, changed)

	// Exactly one of the two torches survives; the other's outgoing edge
	// was re-homed onto it.
	survived := g.ContainsNode(t1) != g.ContainsNode(t2)
	assert.True(t, survived, "exactly one duplicate torch should remain")

	var survivor compilegraph.NodeID
	if g.ContainsNode(t1) {
		survivor = t1
	} else {
		survivor = t2
	}

	for _, lamp := range []compilegraph.NodeID{lamp1, lamp2} {
		edges := g.EdgesDirected(lamp, compilegraph.Incoming)
		require.Len(t, edges, 1)
		assert.Equal(t, survivor, edges[0].From, "both lamps must now source from the surviving torch")
	}
}

func TestCoalesce2_DoesNotMergeDistinctState(t *testing.T) {
	b := compilegraph.NewBuilder()
	lit := b.AddTorch(true)
	unlit := b.AddTorch(false)

	g := b.Graph()
	changed := runCoalesce(t, g)

	assert.False(t, changed)
	assert.True(t, g.ContainsNode(lit))
	assert.True(t, g.ContainsNode(unlit))
}

func TestCoalesce2_DoesNotMergeDifferingIncomingSignatures(t *testing.T) {
	b := compilegraph.NewBuilder()
	lever1 := b.AddLever(false)
	lever2 := b.AddLever(true)
	rep1 := b.AddRepeater(1, false, false)
	rep2 := b.AddRepeater(1, false, false)
	b.Connect(lever1, rep1, 0)
	b.Connect(lever2, rep2, 0)

	g := b.Graph()
	// Narrow first, as a real optimize run would. Levers are externally
	// driven, so NarrowOutputs leaves both at Full() and their edge masks
	// are equal; the keys still differ because each repeater is fed by a
	// different source node.
	narrow := passes.NarrowOutputs{}
	_, err := narrow.Run(g, passes.CompilerOptions{})
	require.NoError(t, err)

	changed := runCoalesce(t, g)

	// Same type/state, but the feeding levers differ, so their input
	// keys diverge and the repeaters must not merge.
	assert.False(t, changed)
	assert.True(t, g.ContainsNode(rep1))
	assert.True(t, g.ContainsNode(rep2))
}
