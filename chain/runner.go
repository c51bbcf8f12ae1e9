package chain

import (
	"github.com/samuelfneumann/gohmc/diagnostics/progress"
	"github.com/samuelfneumann/gohmc/hmclog"
	"github.com/samuelfneumann/gohmc/integrator"
	"github.com/samuelfneumann/gohmc/kernel"
	"github.com/samuelfneumann/gohmc/paramtree"
	"github.com/samuelfneumann/gohmc/prng"
	"github.com/samuelfneumann/gohmc/warmup"
)

// Config controls a single chain's full run (warmup + sampling).
type Config struct {
	Index            int // chain index, used only for logging/progress labels
	NumWarmup        int
	NumSamples       int
	NumLeapfrogSteps int
	InitialStepSize  float64
	TargetAccept     float64
	AdaptMassMatrix  bool
	Quiet            bool
}

// Run executes warmup followed by NumSamples sampling transitions on one
// chain, starting from initialQ and consuming key. It never communicates
// with any other chain: all of its randomness derives from key, and its
// mass-matrix adapter only ever observes this chain's own samples (spec
// §5).
func Run(cfg Config, initialQ paramtree.Tree, key prng.Key, logProb integrator.LogProb, grad integrator.GradLogProb) Result {
	initial := kernel.State{
		Q:       initialQ,
		Eps:     float32(cfg.InitialStepSize),
		InvMass: paramtree.OnesLike(initialQ),
	}

	warmed, key := warmup.Run(warmup.Config{
		NumWarmup:        cfg.NumWarmup,
		NumLeapfrogSteps: cfg.NumLeapfrogSteps,
		AdaptMassMatrix:  cfg.AdaptMassMatrix,
		TargetAccept:     cfg.TargetAccept,
		ChainIndex:       cfg.Index,
		Quiet:            cfg.Quiet,
	}, initial, key, logProb, grad)

	s := warmed
	draws := make([]paramtree.Tree, 0, cfg.NumSamples)
	var acceptSum float64
	var divergentCount int

	bar := progress.New(cfg.Index, cfg.NumSamples, cfg.Quiet)
	defer bar.Close()

	for i := 0; i < cfg.NumSamples; i++ {
		var info kernel.Info
		s, info, key = kernel.Transition(s, key, cfg.NumLeapfrogSteps, logProb, grad)
		if info.Divergent {
			divergentCount++
			hmclog.Divergence(cfg.Index, i, "non-finite energy change during sampling")
		}
		acceptSum += info.AcceptProb
		draws = append(draws, s.Q)
		bar.Increment()
	}

	acceptRate := 0.0
	if cfg.NumSamples > 0 {
		acceptRate = acceptSum / float64(cfg.NumSamples)
	}

	return Result{
		Draws:          draws,
		AcceptRate:     acceptRate,
		FinalStepSize:  float64(s.Eps),
		FinalInvMass:   s.InvMass,
		DivergentCount: divergentCount,
	}
}
