package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gohmc/integrator"
	"github.com/samuelfneumann/gohmc/paramtree"
	"github.com/samuelfneumann/gohmc/prng"
)

func gaussianLogProb(q paramtree.Tree) float32 {
	x := q.Data("x")[0]
	return -0.5 * x * x
}

func gaussianGrad(q paramtree.Tree) paramtree.Tree {
	return paramtree.Scale(q, -1)
}

func TestRunRecordsExactlyNumSamplesDraws(t *testing.T) {
	cfg := Config{
		Index:            0,
		NumWarmup:        100,
		NumSamples:       50,
		NumLeapfrogSteps: 10,
		InitialStepSize:  0.1,
		TargetAccept:     0.8,
		AdaptMassMatrix:  true,
		Quiet:            true,
	}
	initial := paramtree.Scalar("x", 0.0)
	key := prng.New(1).Split(1)[0]

	result := Run(cfg, initial, key, integrator.LogProb(gaussianLogProb), integrator.GradLogProb(gaussianGrad))

	require.Len(t, result.Draws, 50)
}

func TestRunAcceptRateInUnitInterval(t *testing.T) {
	cfg := Config{
		Index:            0,
		NumWarmup:        100,
		NumSamples:       50,
		NumLeapfrogSteps: 10,
		InitialStepSize:  0.1,
		TargetAccept:     0.8,
		AdaptMassMatrix:  true,
		Quiet:            true,
	}
	initial := paramtree.Scalar("x", 0.0)
	key := prng.New(2).Split(1)[0]

	result := Run(cfg, initial, key, integrator.LogProb(gaussianLogProb), integrator.GradLogProb(gaussianGrad))

	require.GreaterOrEqual(t, result.AcceptRate, 0.0)
	require.LessOrEqual(t, result.AcceptRate, 1.0)
}

func TestRunIsReproducibleForSameKey(t *testing.T) {
	cfg := Config{
		Index:            0,
		NumWarmup:        50,
		NumSamples:       20,
		NumLeapfrogSteps: 5,
		InitialStepSize:  0.1,
		TargetAccept:     0.8,
		AdaptMassMatrix:  true,
		Quiet:            true,
	}
	initial := paramtree.Scalar("x", 0.0)

	r1 := Run(cfg, initial, prng.New(42).Split(1)[0], integrator.LogProb(gaussianLogProb), integrator.GradLogProb(gaussianGrad))
	r2 := Run(cfg, initial, prng.New(42).Split(1)[0], integrator.LogProb(gaussianLogProb), integrator.GradLogProb(gaussianGrad))

	require.Equal(t, len(r1.Draws), len(r2.Draws))
	for i := range r1.Draws {
		require.Equal(t, r1.Draws[i].Data("x"), r2.Draws[i].Data("x"))
	}
	require.Equal(t, r1.AcceptRate, r2.AcceptRate)
}

func TestRunZeroSamplesReturnsEmptyDraws(t *testing.T) {
	cfg := Config{
		Index:            0,
		NumWarmup:        10,
		NumSamples:       0,
		NumLeapfrogSteps: 5,
		InitialStepSize:  0.1,
		TargetAccept:     0.8,
		AdaptMassMatrix:  false,
		Quiet:            true,
	}
	initial := paramtree.Scalar("x", 0.0)
	key := prng.New(5).Split(1)[0]

	result := Run(cfg, initial, key, integrator.LogProb(gaussianLogProb), integrator.GradLogProb(gaussianGrad))

	require.Empty(t, result.Draws)
	require.Equal(t, 0.0, result.AcceptRate)
}
