package compilegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rscomp/redaig/compilegraph"
)

func TestPossibleSS_NormalizeEmptyToZero(t *testing.T) {
	assert.True(t, compilegraph.Empty().Normalize().Contains(0), "empty must normalize to {0}, not stay absorbing")
	assert.False(t, compilegraph.Empty().Normalize().Contains(1))
}

func TestPossibleSS_SubtractSS(t *testing.T) {
	// zero stays zero regardless of distance
	z := compilegraph.Single(0)
	assert.Equal(t, z, z.SubtractSS(5))

	// positive members shift down by d
	p := compilegraph.Single(3)
	got := p.SubtractSS(1)
	assert.True(t, got.Contains(2))
	assert.False(t, got.Contains(3))

	p2 := compilegraph.Single(2)
	got2 := p2.SubtractSS(5) // would go to -3, clamps to nothing but Normalize adds {0}
	assert.True(t, got2.Contains(0))
}

func TestPossibleSS_DustOr(t *testing.T) {
	// both may be zero -> result may be zero
	a := compilegraph.Single(0).Union(compilegraph.Single(5))
	b := compilegraph.Single(0).Union(compilegraph.Single(7))
	or := compilegraph.DustOr(a, b)
	assert.True(t, or.Contains(0))
	assert.True(t, or.Contains(5))
	assert.True(t, or.Contains(7))

	// only one side may be zero -> result cannot be zero
	c := compilegraph.Single(5)
	or2 := compilegraph.DustOr(a, c)
	assert.False(t, or2.Contains(0))
	assert.True(t, or2.Contains(5))
}

func TestPossibleSS_MinMax(t *testing.T) {
	p := compilegraph.Single(2).Union(compilegraph.Single(9))
	assert.Equal(t, 2, p.Min())
	assert.Equal(t, 9, p.Max())
}

func TestPossibleSS_UnionIntersect(t *testing.T) {
	a := compilegraph.Single(1).Union(compilegraph.Single(2))
	b := compilegraph.Single(2).Union(compilegraph.Single(3))
	assert.True(t, a.Union(b).Contains(1))
	assert.True(t, a.Union(b).Contains(3))
	inter := a.Intersect(b)
	assert.True(t, inter.Contains(2))
	assert.False(t, inter.Contains(1))
}
