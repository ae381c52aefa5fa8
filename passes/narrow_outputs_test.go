package passes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rscomp/redaig/compilegraph"
	"github.com/rscomp/redaig/passes"
)

func runNarrow(t *testing.T, g *compilegraph.CompileGraph) {
	t.Helper()
	n := passes.NarrowOutputs{}
	_, err := n.Run(g, passes.CompilerOptions{})
	require.NoError(t, err)
}

func TestNarrowOutputs_TorchDualOfLeverInput(t *testing.T) {
	b := compilegraph.NewBuilder()
	lever := b.AddLever(false)
	torch := b.AddTorch(true)
	b.Connect(lever, torch, 0)

	runNarrow(t, b.Graph())

	n, _ := b.Graph().Node(torch)
	// Lever may be {0} or {15}; torch output is the dual: {15} on zero
	// input, {0} on positive input.
	assert.True(t, n.PossibleOutputs.Contains(0))
	assert.True(t, n.PossibleOutputs.Contains(15))
}

func TestNarrowOutputs_TautologicalTorchIsSingletonFifteen(t *testing.T) {
	b := compilegraph.NewBuilder()
	torch := b.AddTorch(true) // no inputs: def_in defaults to {0}

	runNarrow(t, b.Graph())

	n, _ := b.Graph().Node(torch)
	assert.Equal(t, compilegraph.Single(15), n.PossibleOutputs)
}

func TestNarrowOutputs_ComparatorSubtractNarrowsToRange(t *testing.T) {
	b := compilegraph.NewBuilder()
	d := b.AddConstant(15)
	s := b.AddConstant(4)
	cmp := b.AddComparator(compilegraph.Subtract, nil)
	b.Connect(d, cmp, 0)
	b.ConnectSide(s, cmp, 0)

	runNarrow(t, b.Graph())

	n, _ := b.Graph().Node(cmp)
	// The node's own baseline state (0, never driven) is always unioned
	// in alongside the computed value (spec §4.2).
	assert.True(t, n.PossibleOutputs.Contains(11))
	assert.True(t, n.PossibleOutputs.Contains(0))
}

func TestNarrowOutputs_FarInputOverridesNonMaximalDefault(t *testing.T) {
	b := compilegraph.NewBuilder()
	s := b.AddConstant(4)
	k := 7
	cmp := b.AddComparator(compilegraph.Subtract, &k)
	b.ConnectSide(s, cmp, 0)

	runNarrow(t, b.Graph())

	n, _ := b.Graph().Node(cmp)
	// def_in defaults to {0} (no incoming Default edge); far_input
	// overrides it to {k}=7, so 7-4=3.
	assert.True(t, n.PossibleOutputs.Contains(3))
}
