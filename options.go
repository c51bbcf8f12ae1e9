package gohmc

import "github.com/samuelfneumann/gohmc/gohmcerr"

// Options configures a call to Sample. The zero value is not valid;
// start from DefaultOptions() and override only the fields that need to
// change, mirroring the teacher's agent.Config / experiment.Config
// pattern of a plain struct with a Validate() method.
type Options struct {
	NumWarmup        int
	NumLeapfrogSteps int
	NumChains        int
	InitialStepSize  float64
	TargetAcceptRate float64
	AdaptMassMatrix  bool

	// Quiet suppresses the per-chain progress bar.
	Quiet bool
}

// DefaultOptions returns the option defaults from spec.md §6.
func DefaultOptions() Options {
	return Options{
		NumWarmup:        1000,
		NumLeapfrogSteps: 25,
		NumChains:        1,
		InitialStepSize:  0.1,
		TargetAcceptRate: 0.8,
		AdaptMassMatrix:  true,
		Quiet:            false,
	}
}

// Validate reports a user-input error (spec.md §7 category 1) if any
// option is out of range. It is checked synchronously at Sample entry.
func (o Options) Validate() error {
	if o.NumWarmup < 0 {
		return gohmcerr.ErrInvalidWarmup
	}
	if o.NumLeapfrogSteps <= 0 {
		return gohmcerr.ErrInvalidLeapfrog
	}
	if o.NumChains <= 0 {
		return gohmcerr.ErrInvalidChains
	}
	if o.InitialStepSize <= 0 {
		return gohmcerr.ErrInvalidStepSize
	}
	if o.TargetAcceptRate <= 0 || o.TargetAcceptRate >= 1 {
		return gohmcerr.ErrInvalidAcceptRate
	}
	return nil
}
