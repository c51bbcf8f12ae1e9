package diagnostics

import "github.com/samuelfneumann/gohmc/paramtree"

// Report bundles per-leaf, per-element summaries for a full set of
// stacked multi-chain draws.
type Report struct {
	Leaves map[string][]ElementSummary
}

// SummarizeTree computes a Report for every element of every leaf of a
// stacked draws tree (leading axis [numChains, numSamples, ...]).
func SummarizeTree(draws paramtree.Tree, numChains, numSamples int) Report {
	report := Report{Leaves: make(map[string][]ElementSummary, draws.Len())}
	for _, name := range draws.Names() {
		series := draws.StackedLeafSeries(name, numChains, numSamples)
		summaries := make([]ElementSummary, len(series))
		for e, perChain := range series {
			chains := make([][]float64, numChains)
			for c, samples := range perChain {
				chain := make([]float64, numSamples)
				for n, v := range samples {
					chain[n] = float64(v)
				}
				chains[c] = chain
			}
			summaries[e] = Summarize(chains)
		}
		report.Leaves[name] = summaries
	}
	return report
}
