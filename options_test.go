package gohmc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gohmc/gohmcerr"
)

func TestDefaultOptionsValid(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())
}

func TestValidateRejectsNonPositiveLeapfrogSteps(t *testing.T) {
	opts := DefaultOptions()
	opts.NumLeapfrogSteps = 0
	require.ErrorIs(t, opts.Validate(), gohmcerr.ErrInvalidLeapfrog)
}

func TestValidateRejectsNonPositiveChains(t *testing.T) {
	opts := DefaultOptions()
	opts.NumChains = 0
	require.ErrorIs(t, opts.Validate(), gohmcerr.ErrInvalidChains)
}

func TestValidateRejectsNegativeWarmup(t *testing.T) {
	opts := DefaultOptions()
	opts.NumWarmup = -1
	require.ErrorIs(t, opts.Validate(), gohmcerr.ErrInvalidWarmup)
}

func TestValidateAllowsZeroWarmup(t *testing.T) {
	opts := DefaultOptions()
	opts.NumWarmup = 0
	require.NoError(t, opts.Validate())
}

func TestValidateRejectsNonPositiveStepSize(t *testing.T) {
	opts := DefaultOptions()
	opts.InitialStepSize = 0
	require.ErrorIs(t, opts.Validate(), gohmcerr.ErrInvalidStepSize)
}

func TestValidateRejectsOutOfRangeAcceptRate(t *testing.T) {
	opts := DefaultOptions()
	opts.TargetAcceptRate = 1.0
	require.ErrorIs(t, opts.Validate(), gohmcerr.ErrInvalidAcceptRate)

	opts.TargetAcceptRate = 0.0
	require.ErrorIs(t, opts.Validate(), gohmcerr.ErrInvalidAcceptRate)
}
