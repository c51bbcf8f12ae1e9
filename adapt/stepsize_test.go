package adapt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepSizeObserveMovesTowardTarget(t *testing.T) {
	cfg := DefaultStepSizeConfig()
	s := NewStepSize(cfg, 0.1)

	// Consistently low acceptance should shrink the step size over time.
	var eps float64
	for i := 0; i < 200; i++ {
		eps = s.Observe(0.1)
	}
	require.Less(t, eps, 0.1)
}

func TestStepSizeObserveGrowsOnHighAcceptance(t *testing.T) {
	cfg := DefaultStepSizeConfig()
	s := NewStepSize(cfg, 0.01)

	var eps float64
	for i := 0; i < 200; i++ {
		eps = s.Observe(0.99)
	}
	require.Greater(t, eps, 0.01)
}

func TestStepSizeClampedToConfiguredRange(t *testing.T) {
	cfg := DefaultStepSizeConfig()
	cfg.StepSizeMin = 0.05
	cfg.StepSizeMax = 0.2
	s := NewStepSize(cfg, 0.1)

	var eps float64
	for i := 0; i < 500; i++ {
		eps = s.Observe(0.0) // push as low as possible
	}
	require.GreaterOrEqual(t, eps, cfg.StepSizeMin)
	require.LessOrEqual(t, eps, cfg.StepSizeMax)
}

func TestStepSizeNonFiniteAcceptTreatedAsZero(t *testing.T) {
	cfg := DefaultStepSizeConfig()
	s1 := NewStepSize(cfg, 0.1)
	s2 := NewStepSize(cfg, 0.1)

	e1 := s1.Observe(math.NaN())
	e2 := s2.Observe(0.0)

	require.Equal(t, e2, e1)
}

func TestStepSizeResetDiscardsStatistics(t *testing.T) {
	cfg := DefaultStepSizeConfig()
	s := NewStepSize(cfg, 0.1)
	for i := 0; i < 50; i++ {
		s.Observe(0.99)
	}
	s.Reset(0.01)

	require.InDelta(t, 0.01, s.Current(), 1e-9)
}

func TestStepSizeFinalReturnsAveraged(t *testing.T) {
	cfg := DefaultStepSizeConfig()
	s := NewStepSize(cfg, 0.1)
	for i := 0; i < 100; i++ {
		s.Observe(0.8)
	}
	final := s.Final()
	require.GreaterOrEqual(t, final, cfg.StepSizeMin)
	require.LessOrEqual(t, final, cfg.StepSizeMax)
}
