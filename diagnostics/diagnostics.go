// Package diagnostics implements split-Rhat, effective sample size
// (Geyer's initial monotone sequence), and per-element summary
// statistics over stacked multi-chain draws, built on
// gonum.org/v1/gonum/stat for the underlying mean/variance/quantile
// primitives (the same package the teacher's utils/matutils.RowMean
// calls directly for per-row means) and gonum.org/v1/gonum/floats for the
// autocovariance reductions.
package diagnostics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// quantileLevels are the five quantiles reported in every Summary, per
// spec.md §4.J.
var quantileLevels = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

// ElementSummary reports the full set of diagnostics for one scalar
// parameter's draws (shape [C, N] before this point).
type ElementSummary struct {
	Mean      float64
	StdDev    float64
	Quantiles map[float64]float64
	Rhat      float64
	ESS       float64
}

// Summarize computes mean, standard deviation (n-1 denominator),
// quantiles, split-Rhat, and ESS for one scalar parameter's per-chain
// draws. chains[c] is chain c's length-N series.
func Summarize(chains [][]float64) ElementSummary {
	pooled := poolChains(chains)

	quantiles := make(map[float64]float64, len(quantileLevels))
	sorted := append([]float64(nil), pooled...)
	sort.Float64s(sorted)
	for _, q := range quantileLevels {
		quantiles[q] = stat.Quantile(q, stat.Empirical, sorted, nil)
	}

	return ElementSummary{
		Mean:      stat.Mean(pooled, nil),
		StdDev:    stat.StdDev(pooled, nil),
		Quantiles: quantiles,
		Rhat:      SplitRhat(chains),
		ESS:       EffectiveSampleSize(chains),
	}
}

func poolChains(chains [][]float64) []float64 {
	n := 0
	for _, c := range chains {
		n += len(c)
	}
	pooled := make([]float64, 0, n)
	for _, c := range chains {
		pooled = append(pooled, c...)
	}
	return pooled
}

// SplitRhat computes the split-Rhat convergence diagnostic (spec.md
// §4.J): each of the C input chains is halved into two, giving 2C chains
// of length floor(N/2); Rhat is the ratio of a pooled variance estimate
// to the average within-chain variance.
func SplitRhat(chains [][]float64) float64 {
	split := splitChains(chains)
	m := len(split)
	if m < 2 {
		return math.NaN()
	}
	nPrime := len(split[0])

	// W: average within-chain sample variance.
	var w float64
	chainMeans := make([]float64, m)
	for i, c := range split {
		chainMeans[i] = stat.Mean(c, nil)
		w += stat.Variance(c, nil)
	}
	w /= float64(m)

	// B: n' times the sample variance of the chain means.
	b := float64(nPrime) * stat.Variance(chainMeans, nil)

	varPlus := (float64(nPrime-1)/float64(nPrime))*w + b/float64(nPrime)

	if w == 0 {
		if varPlus == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return math.Sqrt(varPlus / w)
}

// splitChains halves every chain into two equal-length halves (dropping
// one trailing sample if N is odd), yielding 2C chains of length
// floor(N/2).
func splitChains(chains [][]float64) [][]float64 {
	var out [][]float64
	for _, c := range chains {
		nPrime := len(c) / 2
		out = append(out, c[:nPrime], c[nPrime:2*nPrime])
	}
	return out
}

// EffectiveSampleSize computes the ESS of a scalar parameter's draws via
// Geyer's initial monotone sequence estimator (spec.md §4.J), clamped to
// [1, C*N].
func EffectiveSampleSize(chains [][]float64) float64 {
	c := len(chains)
	if c == 0 {
		return 0
	}
	n := len(chains[0])
	if n == 0 {
		return 0
	}
	maxLag := n / 2

	means := make([]float64, c)
	variances := make([]float64, c)
	for i, chain := range chains {
		means[i] = stat.Mean(chain, nil)
		variances[i] = autocovariance(chain, means[i], 0)
	}
	meanVariance := stat.Mean(variances, nil)

	rhoHat := make([]float64, maxLag+1)
	for t := 0; t <= maxLag; t++ {
		var acAvg float64
		for i, chain := range chains {
			acAvg += autocovariance(chain, means[i], t)
		}
		acAvg /= float64(c)
		if meanVariance != 0 {
			rhoHat[t] = acAvg / meanVariance
		}
	}

	var sumPairs float64
	for k := 1; 2*k < len(rhoHat); k++ {
		pair := rhoHat[2*k-1] + rhoHat[2*k]
		if pair <= 0 {
			break
		}
		sumPairs += pair
	}

	tau := 1 + 2*sumPairs
	total := float64(c * n)
	if tau <= 0 {
		return total
	}
	ess := total / tau
	return floatClamp(ess, 1, total)
}

// autocovariance returns the lag-t autocovariance of chain about mean,
// normalized by the chain length N (not N-t), which is the convention
// Geyer's estimator and this repo's ESS both assume so that the lag-0
// autocovariance is exactly the chain's (N-denominator) variance and
// rho_hat(0) is 1.
func autocovariance(chain []float64, mean float64, lag int) float64 {
	n := len(chain)
	if lag >= n {
		return 0
	}
	a := make([]float64, n-lag)
	b := make([]float64, n-lag)
	for i := 0; i < n-lag; i++ {
		a[i] = chain[i] - mean
		b[i] = chain[i+lag] - mean
	}
	return floats.Dot(a, b) / float64(n)
}

func floatClamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
