// Package adapt implements the two warmup-time adapters: Nesterov dual
// averaging for the leapfrog step size, and a Welford online diagonal
// variance estimator for the mass matrix.
package adapt

import (
	"math"

	"github.com/samuelfneumann/gohmc/utils/floatutils"
)

// StepSizeConfig holds the dual-averaging hyperparameters. The zero
// value is not usable; start from DefaultStepSizeConfig for the
// documented defaults.
type StepSizeConfig struct {
	Gamma           float64 // shrinkage toward mu
	T0              float64 // stabilizes the early iterations
	Kappa           float64 // averaging decay exponent
	TargetAccept    float64 // delta, the target acceptance probability
	StepSizeMin     float64
	StepSizeMax     float64
}

// DefaultStepSizeConfig returns the hyperparameters from the dual
// averaging scheme, with the ε clamp this repo settled on (spec open
// question, see SPEC_FULL.md §4.E): [1e-4, 1000].
func DefaultStepSizeConfig() StepSizeConfig {
	return StepSizeConfig{
		Gamma:        0.05,
		T0:           10,
		Kappa:        0.75,
		TargetAccept: 0.8,
		StepSizeMin:  1e-4,
		StepSizeMax:  1000,
	}
}

// StepSize is a dual-averaging step-size adapter.
type StepSize struct {
	cfg StepSizeConfig

	mu         float64
	logStep    float64
	logStepAvg float64
	hBar       float64
	t          float64
}

// NewStepSize creates a step-size adapter centered on initialStepSize
// (mu = log(10·ε0), per spec.md §4.E).
func NewStepSize(cfg StepSizeConfig, initialStepSize float64) *StepSize {
	mu := math.Log(10 * initialStepSize)
	return &StepSize{
		cfg:        cfg,
		mu:         mu,
		logStep:    math.Log(initialStepSize),
		logStepAvg: 0,
		hBar:       0,
		t:          0,
	}
}

// Recenter resets mu to log(10·eps) without touching t or hBar, so that
// dual averaging continues accumulating statistics rather than
// restarting from scratch. The warmup driver does not call it; after a
// mass-matrix re-prime it uses Reset instead.
func (s *StepSize) Recenter(eps float64) {
	s.mu = math.Log(10 * eps)
}

// Reset reinitializes the adapter around a new step size, discarding all
// accumulated statistics. Used by the warmup driver after the
// reasonable-ε initializer re-primes ε mid-warmup.
func (s *StepSize) Reset(initialStepSize float64) {
	*s = *NewStepSize(s.cfg, initialStepSize)
}

// Observe folds in the acceptance probability of warmup transition t and
// returns the step size to use for the next transition, clamped to
// [StepSizeMin, StepSizeMax]. A non-finite acceptProb is treated as 0,
// per spec.md §4.E / §5.
func (s *StepSize) Observe(acceptProb float64) float64 {
	if math.IsNaN(acceptProb) || math.IsInf(acceptProb, 0) {
		acceptProb = 0
	}
	s.t++
	t := s.t

	eta := 1 / (t + s.cfg.T0)
	s.hBar = (1-eta)*s.hBar + eta*(s.cfg.TargetAccept-acceptProb)
	s.logStep = s.mu - (math.Sqrt(t)/s.cfg.Gamma)*s.hBar

	w := math.Pow(t, -s.cfg.Kappa)
	s.logStepAvg = w*s.logStep + (1-w)*s.logStepAvg

	return s.clamp(math.Exp(s.logStep))
}

// Current returns the step size for the next transition without
// observing a new acceptance probability (used before the first warmup
// transition).
func (s *StepSize) Current() float64 {
	return s.clamp(math.Exp(s.logStep))
}

// Final returns the averaged step size frozen at the end of warmup:
// clamp(exp(logStepAvg)).
func (s *StepSize) Final() float64 {
	return s.clamp(math.Exp(s.logStepAvg))
}

func (s *StepSize) clamp(eps float64) float64 {
	return floatutils.Clip(eps, s.cfg.StepSizeMin, s.cfg.StepSizeMax)
}
