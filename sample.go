// Package gohmc is a Hamiltonian Monte Carlo sampling engine for
// differentiable log-density functions over structured parameters. Given
// a log-density and its gradient, Sample draws approximately independent
// samples while automatically tuning the leapfrog step size (Nesterov
// dual averaging) and a diagonal mass matrix (Welford online variance)
// during warmup.
//
// Sample is the multi-chain coordinator (spec.md §4.I): it splits the
// root PRNG key into one key per chain, runs each chain.Run
// independently (sequentially or concurrently; either way, each chain's
// output depends only on its own split key, so results are bit-identical
// regardless of execution order or goroutine scheduling), and stacks the
// per-chain draws into one leading-[numChains, numSamples, ...] tree.
package gohmc

import (
	"fmt"
	"sync"

	"github.com/samuelfneumann/gohmc/chain"
	"github.com/samuelfneumann/gohmc/gohmcerr"
	"github.com/samuelfneumann/gohmc/integrator"
	"github.com/samuelfneumann/gohmc/paramtree"
	"github.com/samuelfneumann/gohmc/prng"
)

// LogProb is the target (possibly unnormalized) log-density.
type LogProb func(q paramtree.Tree) float32

// GradLogProb returns ∇logProb(q), a tree of the same structure as q.
// The caller may supply this directly or derive it from an external
// autodiff facility; this package makes no assumption about which.
type GradLogProb func(q paramtree.Tree) paramtree.Tree

// Stats reports per-chain and aggregate sampler statistics.
type Stats struct {
	AcceptRate     []float64 // per chain
	AcceptRateMean float64
	StepSize       []float64 // per chain, the frozen post-warmup step size
	StepSizeMean   float64
	MassMatrix     []paramtree.Tree // per chain, the frozen post-warmup diagonal inverse mass
	DivergentCount []int            // per chain, count of post-warmup divergent transitions
}

// Result is the output of Sample.
type Result struct {
	// Draws has leaves with a leading [numChains, numSamples, ...] axis
	// structure mirroring initialParams.
	Draws paramtree.Tree
	Stats Stats
}

// Sample runs the sampler. initialParams defines both the parameter
// tree's structure and the starting position for every chain. numSamples
// is the number of post-warmup draws to record per chain.
func Sample(logProb LogProb, gradLogProb GradLogProb, initialParams paramtree.Tree, key prng.Key, numSamples int, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if numSamples <= 0 {
		return Result{}, gohmcerr.ErrInvalidSamples
	}

	gradAtInit := gradLogProb(initialParams)
	if !paramtree.SameStructure(initialParams, gradAtInit) {
		return Result{}, gohmcerr.Wrap(gohmcerr.ErrStructureMismatch,
			fmt.Sprintf("initialParams has leaves %v, gradLogProb(initialParams) has leaves %v",
				initialParams.Names(), gradAtInit.Names()))
	}

	chainKeys := key.Split(opts.NumChains)

	results := make([]chain.Result, opts.NumChains)
	var wg sync.WaitGroup
	wg.Add(opts.NumChains)
	for i := 0; i < opts.NumChains; i++ {
		i := i
		go func() {
			defer wg.Done()
			cfg := chain.Config{
				Index:            i,
				NumWarmup:        opts.NumWarmup,
				NumSamples:       numSamples,
				NumLeapfrogSteps: opts.NumLeapfrogSteps,
				InitialStepSize:  opts.InitialStepSize,
				TargetAccept:     opts.TargetAcceptRate,
				AdaptMassMatrix:  opts.AdaptMassMatrix,
				Quiet:            opts.Quiet,
			}
			results[i] = chain.Run(cfg, initialParams, chainKeys[i],
				integrator.LogProb(logProb), integrator.GradLogProb(gradLogProb))
		}()
	}
	wg.Wait()

	return stack(results, opts), nil
}

func stack(results []chain.Result, opts Options) Result {
	numChains := len(results)
	perChain := make([]paramtree.Tree, numChains)
	stats := Stats{
		AcceptRate:     make([]float64, numChains),
		StepSize:       make([]float64, numChains),
		MassMatrix:     make([]paramtree.Tree, numChains),
		DivergentCount: make([]int, numChains),
	}

	var acceptSum, stepSum float64
	for i, r := range results {
		perChain[i] = paramtree.Stack(r.Draws)
		stats.AcceptRate[i] = r.AcceptRate
		stats.StepSize[i] = r.FinalStepSize
		stats.MassMatrix[i] = r.FinalInvMass
		stats.DivergentCount[i] = r.DivergentCount
		acceptSum += r.AcceptRate
		stepSum += r.FinalStepSize
	}
	if numChains > 0 {
		stats.AcceptRateMean = acceptSum / float64(numChains)
		stats.StepSizeMean = stepSum / float64(numChains)
	}

	draws := paramtree.Stack(perChain)

	return Result{Draws: draws, Stats: stats}
}
