// Package kernel implements the Metropolis-corrected HMC transition: one
// momentum resample, one leapfrog trajectory, one accept/reject draw.
// Detailed balance follows from the leapfrog integrator being symplectic
// (volume-preserving) and time-reversible under momentum negation, and
// from the momentum distribution being symmetric — properties owned by
// the integrator package, not re-derived here.
package kernel

import (
	"math"

	"github.com/samuelfneumann/gohmc/integrator"
	"github.com/samuelfneumann/gohmc/paramtree"
	"github.com/samuelfneumann/gohmc/prng"
)

// State is the sampler's persistent state between transitions: the
// current position, the current step size, and the current diagonal
// inverse mass.
type State struct {
	Q       paramtree.Tree
	Eps     float32
	InvMass paramtree.Tree
}

// Info reports the outcome of a single transition.
type Info struct {
	AcceptProb float64
	Accepted   bool
	Divergent  bool // true if ΔH was non-finite (proposal forcibly rejected)
}

// Transition performs one HMC step from s, using key k (consumed by this
// call), trajectory length steps, and the target's logProb/gradLogProb.
// It returns the new state (s.Q replaced on acceptance, unchanged on
// rejection; Eps and InvMass are carried through verbatim — adaptation,
// if any, is the caller's job) plus diagnostic Info, and the next key to
// use for the following transition.
func Transition(s State, k prng.Key, steps int, logProb integrator.LogProb, grad integrator.GradLogProb) (State, Info, prng.Key) {
	keys := k.Split(3)
	kMom, kAcc, kNext := keys[0], keys[1], keys[2]

	p0 := sampleMomentum(s.Q, s.InvMass, kMom)

	h0 := integrator.Hamiltonian(logProb, s.Q, p0, s.InvMass)

	qProp, pProp := integrator.Leapfrog(s.Q, p0, s.Eps, steps, s.InvMass, grad)

	h1 := integrator.Hamiltonian(logProb, qProp, pProp, s.InvMass)

	var alpha float64
	divergent := false
	if !isFinite(h0) {
		// α is not well-defined when H0 itself has diverged; reject.
		alpha = 0
		divergent = true
	} else {
		deltaH := float64(h1 - h0)
		switch {
		case !isFiniteF64(deltaH):
			alpha = 0
			divergent = true
		case deltaH <= 0:
			alpha = 1
		default:
			alpha = math.Exp(-deltaH)
		}
	}

	u := kAcc.Uniform()
	accepted := u < alpha

	next := s
	if accepted {
		next.Q = qProp
	}

	return next, Info{AcceptProb: alpha, Accepted: accepted, Divergent: divergent}, kNext
}

// sampleMomentum draws p with leaves distributed N(0, 1/invMass) per
// element: p = z ⊙ sqrt(1/invMass), z standard normal.
func sampleMomentum(like, invMass paramtree.Tree, k prng.Key) paramtree.Tree {
	z := paramtree.SampleNormal(like, k)
	variance := paramtree.Div(paramtree.OnesLike(invMass), invMass)
	std := paramtree.Sqrt(variance)
	return paramtree.Mul(z, std)
}

func isFinite(x float32) bool {
	return isFiniteF64(float64(x))
}

func isFiniteF64(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
