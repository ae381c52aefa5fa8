package aig_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rscomp/redaig/aig"
)

func TestLit_PackUnpack(t *testing.T) {
	l := aig.MkLit(5, true)
	assert.Equal(t, uint32(5), l.Index())
	assert.True(t, l.Sign())
	assert.False(t, l.Not().Sign())
	assert.Equal(t, uint32(5), l.Not().Index())
}

func TestBuilder_AndAndFinalizeAssignsContiguousIndices(t *testing.T) {
	b := aig.NewBuilder()
	i1 := b.Input()
	i2 := b.Input()
	g := b.And(i1, i2)
	b.Output(g)

	out, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumInputs)
	require.Len(t, out.Gates, 1)
	require.Len(t, out.Outputs, 1)
	// The And gate's operands must reference strictly smaller indices
	// than its own (spec §4.4): inputs occupy 1,2; the gate itself is 3.
	assert.Less(t, out.Gates[0].Left.Index(), uint32(3))
	assert.Less(t, out.Gates[0].Right.Index(), uint32(3))
}

func TestBuilder_GCDropsDeadAnds(t *testing.T) {
	b := aig.NewBuilder()
	i1 := b.Input()
	i2 := b.Input()
	_ = b.And(i1, i2) // unreferenced by any output or latch drain: dead
	b.Output(i1)

	out, err := b.Finalize()
	require.NoError(t, err)
	assert.Empty(t, out.Gates, "the unreferenced And gate must be garbage collected")
}

func TestBuilder_Latch2EncodesInitialValueViaXOR(t *testing.T) {
	b := aig.NewBuilder()
	in := b.Input()
	out := b.Latch2(in, true)
	b.Output(out)

	finalized, err := b.Finalize()
	require.NoError(t, err)
	require.Len(t, finalized.LatchDrain, 1)
	// A latch with logical initial value true must present its output with
	// inverted sign relative to the underlying (always-0-initialized)
	// physical latch state (spec §4.5).
	assert.True(t, finalized.Outputs[0].Sign())
}

func TestBuilder_ReplacePlaceholderRewritesAllConsumers(t *testing.T) {
	b := aig.NewBuilder()
	i1 := b.Input()
	ph := b.Placeholder("slot0")
	g := b.And(i1, ph)
	b.Output(g)

	assert.Len(t, b.UnfilledPlaceholders(), 1)

	require.NoError(t, b.ReplacePlaceholder(ph, i1.Not()))
	assert.Empty(t, b.UnfilledPlaceholders())

	// The consumer now reads And(i1, NOT i1), which GC folds to constant
	// false, so the sign-XOR'd rewrite is visible on the output itself.
	out, err := b.Finalize()
	require.NoError(t, err)
	require.Len(t, out.Outputs, 1)
	assert.Empty(t, out.Gates)
	assert.Equal(t, aig.False, out.Outputs[0])
}

func TestBuilder_FinalizeFailsOnUnfilledPlaceholder(t *testing.T) {
	b := aig.NewBuilder()
	i1 := b.Input()
	ph := b.Placeholder("slot0")
	b.Output(b.And(i1, ph))

	_, err := b.Finalize()
	assert.Error(t, err)
}

func TestBuilder_OrAllEmptyIsFalse(t *testing.T) {
	b := aig.NewBuilder()
	assert.Equal(t, aig.False, b.OrAll(nil))
}

func TestAIGEREncodeDecodeRoundTrip(t *testing.T) {
	b := aig.NewBuilder()
	i1 := b.Input()
	i2 := b.Input()
	sink, latchOut := b.Latch()
	require.NoError(t, b.ConnectDrain(sink, i1))
	g := b.And(i2, latchOut)
	b.Output(g)

	a, err := b.Finalize()
	require.NoError(t, err)

	encoded := aig.Encode(a)
	decoded, err := aig.Decode(bytes.NewReader(encoded))
	require.NoError(t, err)

	reencoded := aig.Encode(decoded)
	assert.Equal(t, encoded, reencoded)
	assert.Equal(t, a.NumInputs, decoded.NumInputs)
	assert.Equal(t, len(a.Gates), len(decoded.Gates))
}

func TestAIGERDecodeRejectsBadMagic(t *testing.T) {
	_, err := aig.Decode(bytes.NewReader([]byte("xyz 0 0 0 0 0\n")))
	require.Error(t, err)
	var perr *aig.ParseError
	require.ErrorAs(t, err, &perr)
	assert.NotZero(t, perr.Offset)
}

func TestAIGERDecodeRejectsInconsistentHeader(t *testing.T) {
	// M (first field) must equal I+L+A; here 5 != 1+0+0.
	_, err := aig.Decode(bytes.NewReader([]byte("aig 5 1 0 0 0\n2\n")))
	require.Error(t, err)
	var perr *aig.ParseError
	require.ErrorAs(t, err, &perr)
}
