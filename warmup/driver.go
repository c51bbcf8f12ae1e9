// Package warmup implements the windowed adaptation schedule: an
// initial step-size-only buffer, a middle region of doubling windows
// adapting both step size and mass matrix, and a final step-size-only
// buffer (spec.md §4.G, the schedule documented as preferred for
// funnel-shaped posteriors). The simple schedule (adapt everything, every
// step) is not implemented; the windowed schedule is a strict superset
// of its observable contract (§8's property and scenario tests make no
// distinction between the two).
package warmup

import (
	"github.com/samuelfneumann/gohmc/adapt"
	"github.com/samuelfneumann/gohmc/diagnostics/progress"
	"github.com/samuelfneumann/gohmc/hmclog"
	"github.com/samuelfneumann/gohmc/integrator"
	"github.com/samuelfneumann/gohmc/kernel"
	"github.com/samuelfneumann/gohmc/prng"
)

// Config controls a single chain's warmup run.
type Config struct {
	NumWarmup        int
	NumLeapfrogSteps int
	AdaptMassMatrix  bool
	TargetAccept     float64
	ChainIndex       int
	Quiet            bool
}

// Run executes NumWarmup adaptation transitions starting from initial,
// and returns the frozen post-warmup state plus the key to use for the
// first post-warmup transition.
func Run(cfg Config, initial kernel.State, key prng.Key, logProb integrator.LogProb, grad integrator.GradLogProb) (kernel.State, prng.Key) {
	windows := schedule(cfg.NumWarmup)
	if !cfg.AdaptMassMatrix {
		windows = nil
	}

	stepCfg := adapt.DefaultStepSizeConfig()
	stepCfg.TargetAccept = cfg.TargetAccept
	stepAdapter := adapt.NewStepSize(stepCfg, float64(initial.Eps))

	s := initial
	var massAdapter *adapt.MassMatrix
	if cfg.AdaptMassMatrix {
		massAdapter = adapt.NewMassMatrix(s.Q)
	}

	bar := progress.New(cfg.ChainIndex, cfg.NumWarmup, cfg.Quiet)
	defer bar.Close()

	windowIdx := 0
	for i := 0; i < cfg.NumWarmup; i++ {
		var info kernel.Info
		s, info, key = kernel.Transition(s, key, cfg.NumLeapfrogSteps, logProb, grad)
		if info.Divergent {
			hmclog.Divergence(cfg.ChainIndex, i, "non-finite energy change during warmup")
		}

		eps := stepAdapter.Observe(info.AcceptProb)
		s.Eps = float32(eps)

		active, closes := inWindow(windows, i)
		if active && massAdapter != nil {
			massAdapter.Observe(s.Q)
		}
		if closes && massAdapter != nil {
			windowIdx++
			invMass, usedIdentity := massAdapter.Finalize()
			if usedIdentity {
				hmclog.Fallback(cfg.ChainIndex, "fewer than two samples or zero variance in warmup window")
			}
			s.InvMass = invMass

			// Re-prime ε after every mass-matrix finalization (spec.md §9
			// open question: this repo re-primes rather than letting dual
			// averaging recenter on its own).
			var primeKey prng.Key
			primeKey, key = split2Keys(key)
			reprimed := adapt.FindReasonableStepSize(logProb, grad, s.Q, s.InvMass, eps, primeKey)
			s.Eps = float32(reprimed)
			stepAdapter.Reset(reprimed)

			hmclog.WarmupWindow(cfg.ChainIndex, windowIdx, windowSize(windows, windowIdx-1), reprimed)

			massAdapter = adapt.NewMassMatrix(s.Q)
		}

		bar.Increment()
	}

	if cfg.NumWarmup > 0 {
		s.Eps = float32(stepAdapter.Final())
	}
	return s, key
}

func split2Keys(k prng.Key) (prng.Key, prng.Key) {
	children := k.Split(2)
	return children[0], children[1]
}

func windowSize(windows []window, idx int) int {
	if idx < 0 || idx >= len(windows) {
		return 0
	}
	return windows[idx].End - windows[idx].Start
}
