package adapt

import (
	"math"

	"github.com/samuelfneumann/gohmc/integrator"
	"github.com/samuelfneumann/gohmc/paramtree"
	"github.com/samuelfneumann/gohmc/prng"
)

// FindReasonableStepSize implements the optional reasonable-ε initializer
// from spec.md §4.E: starting from eps0, it runs single leapfrog steps,
// doubling ε while the acceptance probability exceeds 0.5 and halving it
// while the acceptance probability is below 0.5, stopping on the first
// sign flip of (2α - 1). The same momentum draw is reused across trial
// step sizes so that only ε varies between them.
func FindReasonableStepSize(
	logProb integrator.LogProb,
	grad integrator.GradLogProb,
	q, invMass paramtree.Tree,
	eps0 float64,
	k prng.Key,
) float64 {
	momKey, _ := split2(k)
	p := paramtree.SampleNormal(q, momKey)

	eps := eps0
	h0 := integrator.Hamiltonian(logProb, q, p, invMass)
	alpha := acceptProbAt(logProb, grad, q, p, invMass, h0, eps)

	direction := 1.0
	if alpha <= 0.5 {
		direction = -1.0
	}

	for i := 0; i < 100; i++ {
		if direction > 0 && alpha <= 0.5 {
			break
		}
		if direction < 0 && alpha >= 0.5 {
			break
		}
		if direction > 0 {
			eps *= 2
		} else {
			eps *= 0.5
		}
		alpha = acceptProbAt(logProb, grad, q, p, invMass, h0, eps)
	}

	return eps
}

func acceptProbAt(logProb integrator.LogProb, grad integrator.GradLogProb, q, p, invMass paramtree.Tree, h0 float32, eps float64) float64 {
	qProp, pProp := integrator.Leapfrog(q, p, float32(eps), 1, invMass, grad)
	h1 := integrator.Hamiltonian(logProb, qProp, pProp, invMass)
	deltaH := float64(h1 - h0)
	if math.IsNaN(deltaH) || math.IsInf(deltaH, 0) {
		return 0
	}
	if deltaH <= 0 {
		return 1
	}
	return math.Exp(-deltaH)
}

// split2 consumes k and returns a key to use plus a spare, so that
// FindReasonableStepSize consumes exactly one key from its caller while
// still following the "split before use" discipline elsewhere in this
// repo.
func split2(k prng.Key) (prng.Key, prng.Key) {
	children := k.Split(2)
	return children[0], children[1]
}
