// Package gohmcerr defines the sampler's user-input error taxonomy
// (spec category 1: invalid configuration, reported synchronously at
// sampler entry and fatal to the call). Numerical divergence and
// degenerate-mass-matrix conditions (categories 2-3) are not errors; they
// are absorbed internally and surfaced only through hmclog and the
// sampler's returned statistics.
package gohmcerr

import (
	"errors"
	"fmt"
)

// Sentinel errors, matching the wrapped-sentinel idiom the teacher uses
// throughout its Config.Validate() methods (e.g.
// agent/linear/discrete/qlearning/QLearning.go).
var (
	ErrInvalidSamples    = errors.New("gohmc: numSamples must be positive")
	ErrInvalidStepSize   = errors.New("gohmc: initialStepSize must be positive")
	ErrInvalidLeapfrog   = errors.New("gohmc: numLeapfrogSteps must be positive")
	ErrInvalidChains     = errors.New("gohmc: numChains must be positive")
	ErrInvalidWarmup     = errors.New("gohmc: numWarmup must be non-negative")
	ErrInvalidAcceptRate = errors.New("gohmc: targetAcceptRate must be in (0,1)")
	ErrStructureMismatch = errors.New("gohmc: gradLogProb output does not match initialParams structure")
)

// Wrap annotates a sentinel error with the offending value, matching the
// teacher's fmt.Errorf("qlearning: invalid ...: %v", err) idiom.
func Wrap(sentinel error, detail string) error {
	return fmt.Errorf("%w: %s", sentinel, detail)
}
