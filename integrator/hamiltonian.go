package integrator

import "github.com/samuelfneumann/gohmc/paramtree"

// LogProb computes logProb(q) (possibly unnormalized), a pure function of
// a position tree.
type LogProb func(q paramtree.Tree) float32

// Hamiltonian computes H(q,p; invMass) = -logProb(q) + 0.5·Σ(p⊙p⊙invMass),
// the total energy of the phase-space point (q,p) under the diagonal
// kinetic metric invMass. A non-finite logProb or kinetic term is
// propagated rather than rejected here: it is the Metropolis kernel's
// job to turn a non-finite ΔH into a zero acceptance probability.
func Hamiltonian(logProb LogProb, q, p, invMass paramtree.Tree) float32 {
	potential := -logProb(q)
	kinetic := float32(0.5) * paramtree.Sum(paramtree.Mul(paramtree.Mul(p, p), invMass))
	return potential + kinetic
}
