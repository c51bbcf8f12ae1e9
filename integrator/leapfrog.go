// Package integrator implements the symplectic leapfrog map for
// separable Hamiltonians and the Hamiltonian functional itself. Both are
// built entirely from paramtree's element-wise algebra, and both are
// oblivious to how the caller's logProb/gradLogProb are implemented (no
// device placement, caching, or autodiff concern leaks in here, per the
// design notes on keeping storage discipline out of the algorithm).
//
// Grounded on the half-kick/drift/half-kick structure of velocity-Verlet
// integration (see the reference physics engine's engines/verlet.go in
// the retrieval pack), adapted from flat position/velocity buffers to
// paramtree.Tree leaves and from a fixed force field to an arbitrary
// gradLogProb callback.
package integrator

import "github.com/samuelfneumann/gohmc/paramtree"

// State is a point in phase space: a position tree q and a momentum tree
// p of the same structure.
type State struct {
	Q paramtree.Tree
	P paramtree.Tree
}

// GradLogProb computes ∇logProb(q) for a position tree q, returning a
// tree of the same structure. It must never mutate q, and must not rely
// on any state from previous calls: Leapfrog calls it exactly L+1 times
// per trajectory, fresh each time.
type GradLogProb func(q paramtree.Tree) paramtree.Tree

// Leapfrog integrates Hamilton's equations for L steps of size eps,
// starting from (q0, p0), under the diagonal kinetic metric invMass.
//
// The step ordering below is exact; reordering it destroys both
// time-reversibility and the det(J)=1 volume-preservation property the
// Metropolis kernel's detailed balance depends on:
//
//  1. g = ∇logProb(q0); p = p0 + (eps/2)·g
//  2. for i := 1..L:
//       q += eps · (invMass ⊙ p)
//       g = ∇logProb(q)
//       if i < L: p += eps·g   else: p += (eps/2)·g
//  3. return (q, p)
//
// If gradLogProb ever returns a non-finite leaf, Leapfrog does not abort:
// the non-finite values propagate through to the returned state, and it
// is left to the caller (the Metropolis kernel) to treat the resulting
// proposal as rejected.
func Leapfrog(q0, p0 paramtree.Tree, eps float32, steps int, invMass paramtree.Tree, grad GradLogProb) (q, p paramtree.Tree) {
	if steps < 1 {
		panic("integrator: Leapfrog: steps must be >= 1")
	}

	g := grad(q0)
	p = paramtree.Add(p0, paramtree.Scale(g, eps/2))
	q = q0

	for i := 1; i <= steps; i++ {
		q = paramtree.Add(q, paramtree.Scale(paramtree.Mul(invMass, p), eps))
		g = grad(q)
		if i < steps {
			p = paramtree.Add(p, paramtree.Scale(g, eps))
		} else {
			p = paramtree.Add(p, paramtree.Scale(g, eps/2))
		}
	}
	return q, p
}
