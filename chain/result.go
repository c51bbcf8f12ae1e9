// Package chain orchestrates a single chain: warmup followed by a fixed
// number of sampling transitions, recording a draw after each one.
// Structurally this mirrors the teacher's experiment.Online (a driver
// holding the moving pieces of one run and stepping them in a loop,
// tracking outcomes as it goes) generalized from an RL episode loop to
// an HMC transition loop, with chain.Result standing in for the
// teacher's tracker.Tracker accumulate/finalize split.
package chain

import "github.com/samuelfneumann/gohmc/paramtree"

// Result is everything a chain produces: recorded for later stacking by
// the multi-chain coordinator, or for direct inspection of a single
// chain.
type Result struct {
	Draws          []paramtree.Tree // length NumSamples, one post-warmup position per transition
	AcceptRate     float64          // mean acceptance probability over post-warmup transitions
	FinalStepSize  float64
	FinalInvMass   paramtree.Tree
	DivergentCount int // number of post-warmup transitions whose ΔH was non-finite
}
