package diagnostics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func normalChain(n int, seed int64, mean, stddev float64) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + stddev*r.NormFloat64()
	}
	return out
}

func TestSplitRhatCloseToOneForIdenticalDistributions(t *testing.T) {
	chains := [][]float64{
		normalChain(2000, 1, 0, 1),
		normalChain(2000, 2, 0, 1),
		normalChain(2000, 3, 0, 1),
		normalChain(2000, 4, 0, 1),
	}

	rhat := SplitRhat(chains)
	require.InDelta(t, 1.0, rhat, 0.05)
}

func TestSplitRhatLargeForDivergentChains(t *testing.T) {
	chains := [][]float64{
		normalChain(500, 1, -10, 1),
		normalChain(500, 2, 10, 1),
	}

	rhat := SplitRhat(chains)
	require.Greater(t, rhat, 1.5)
}

func TestSplitRhatMonotoneInDivergence(t *testing.T) {
	near := [][]float64{
		normalChain(1000, 1, 0, 1),
		normalChain(1000, 2, 0.1, 1),
	}
	far := [][]float64{
		normalChain(1000, 1, 0, 1),
		normalChain(1000, 2, 5, 1),
	}

	require.Less(t, SplitRhat(near), SplitRhat(far))
}

func TestEffectiveSampleSizeBoundedByTotalDraws(t *testing.T) {
	chains := [][]float64{
		normalChain(1000, 1, 0, 1),
		normalChain(1000, 2, 0, 1),
	}

	ess := EffectiveSampleSize(chains)
	require.GreaterOrEqual(t, ess, 1.0)
	require.LessOrEqual(t, ess, 2000.0)
}

func TestEffectiveSampleSizeLowerForAutocorrelatedChain(t *testing.T) {
	// An AR(1)-like strongly autocorrelated sequence should have much
	// lower ESS than i.i.d. noise of the same length.
	n := 2000
	r := rand.New(rand.NewSource(1))
	iid := make([]float64, n)
	for i := range iid {
		iid[i] = r.NormFloat64()
	}
	ar := make([]float64, n)
	ar[0] = r.NormFloat64()
	for i := 1; i < n; i++ {
		ar[i] = 0.95*ar[i-1] + 0.05*r.NormFloat64()
	}

	essIID := EffectiveSampleSize([][]float64{iid})
	essAR := EffectiveSampleSize([][]float64{ar})

	require.Greater(t, essIID, essAR)
}

func TestSummarizeQuantilesOrdered(t *testing.T) {
	chains := [][]float64{normalChain(1000, 1, 0, 1), normalChain(1000, 2, 0, 1)}

	s := Summarize(chains)

	require.Less(t, s.Quantiles[0.05], s.Quantiles[0.25])
	require.Less(t, s.Quantiles[0.25], s.Quantiles[0.5])
	require.Less(t, s.Quantiles[0.5], s.Quantiles[0.75])
	require.Less(t, s.Quantiles[0.75], s.Quantiles[0.95])
}

func TestSummarizeIdempotent(t *testing.T) {
	chains := [][]float64{normalChain(500, 1, 0, 1)}

	a := Summarize(chains)
	b := Summarize(chains)

	require.Equal(t, a.Mean, b.Mean)
	require.Equal(t, a.StdDev, b.StdDev)
	require.Equal(t, a.Rhat, b.Rhat)
	require.Equal(t, a.ESS, b.ESS)
}

func TestFloatClamp(t *testing.T) {
	require.Equal(t, 1.0, floatClamp(0.5, 1, 10))
	require.Equal(t, 10.0, floatClamp(20, 1, 10))
	require.Equal(t, 5.0, floatClamp(5, 1, 10))
}

func TestSplitRhatDegenerateNoChains(t *testing.T) {
	require.True(t, math.IsNaN(SplitRhat(nil)))
}

func TestSplitRhatSingleChainIsWellDefined(t *testing.T) {
	chains := [][]float64{normalChain(200, 1, 0, 1)}
	rhat := SplitRhat(chains)
	require.False(t, math.IsNaN(rhat))
	require.InDelta(t, 1.0, rhat, 0.2)
}
