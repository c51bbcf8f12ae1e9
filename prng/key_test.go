package prng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitDeterministic(t *testing.T) {
	c1 := New(123).Split(4)
	c2 := New(123).Split(4)

	require.Len(t, c1, 4)
	for i := range c1 {
		require.Equal(t, c1[i].state.lo, c2[i].state.lo)
		require.Equal(t, c1[i].state.hi, c2[i].state.hi)
	}
}

func TestSplitChildrenDistinct(t *testing.T) {
	children := New(1).Split(8)
	seen := make(map[uint64]bool)
	for _, c := range children {
		require.False(t, seen[c.state.lo], "duplicate child state")
		seen[c.state.lo] = true
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1).Split(1)[0]
	b := New(2).Split(1)[0]

	require.NotEqual(t, a.Uniform(), b.Uniform())
}

func TestSplitPanicsOnReuse(t *testing.T) {
	k := New(1)
	k.Split(1)

	require.Panics(t, func() { k.Split(1) })
}

func TestUniformPanicsOnReuse(t *testing.T) {
	k := New(1)
	k.Uniform()

	require.Panics(t, func() { k.Uniform() })
}

func TestNormalPanicsOnReuse(t *testing.T) {
	k := New(1)
	k.Normal(3)

	require.Panics(t, func() { k.Split(2) })
}

func TestUniformInUnitInterval(t *testing.T) {
	keys := New(99).Split(100)
	for _, k := range keys {
		u := k.Uniform()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}

func TestNormalLengthMatchesRequest(t *testing.T) {
	k := New(5).Split(1)[0]
	samples := k.Normal(10)
	require.Len(t, samples, 10)
}
