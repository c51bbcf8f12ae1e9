package adapt

import (
	"math"

	"github.com/samuelfneumann/gohmc/paramtree"
	"github.com/samuelfneumann/gohmc/utils/floatutils"
)

// massMatrixJitter is added to the estimated diagonal variance before it
// is used as the inverse mass, so the kinetic metric is never singular
// even when a leaf's variance estimate collapses to zero.
const massMatrixJitter = 1e-5

// MassMatrix is a Welford online diagonal-variance estimator, run once
// per chain during warmup. It never shares state across chains (spec §5:
// "the mass-matrix adapter only observes samples from its own chain").
type MassMatrix struct {
	count int
	mean  paramtree.Tree
	m2    paramtree.Tree
}

// NewMassMatrix creates a Welford estimator with mean and m2 trees of the
// same structure as like, initialized to zero.
func NewMassMatrix(like paramtree.Tree) *MassMatrix {
	return &MassMatrix{
		count: 0,
		mean:  paramtree.ZerosLike(like),
		m2:    paramtree.ZerosLike(like),
	}
}

// Observe folds position sample x into the running estimate.
func (w *MassMatrix) Observe(x paramtree.Tree) {
	w.count++
	delta := paramtree.Sub(x, w.mean)
	w.mean = paramtree.Add(w.mean, paramtree.Scale(delta, 1/float32(w.count)))
	delta2 := paramtree.Sub(x, w.mean)
	w.m2 = paramtree.Add(w.m2, paramtree.Mul(delta, delta2))
}

// Count returns the number of samples observed so far.
func (w *MassMatrix) Count() int { return w.count }

// Finalize returns the diagonal inverse mass estimated from the samples
// observed so far: variance + jitter, where variance = m2/max(count-1,1).
// If fewer than two samples have been observed, or the variance estimate
// is zero in every element, Finalize falls back to the identity mass
// (spec §7 category 3: not an error).
func (w *MassMatrix) Finalize() (invMass paramtree.Tree, usedIdentity bool) {
	if w.count < 2 {
		return paramtree.OnesLike(w.mean), true
	}
	denom := float32(w.count - 1)
	variance := paramtree.Scale(w.m2, 1/denom)
	allZero := true
	for _, name := range variance.Names() {
		for _, v := range variance.Data(name) {
			if v != 0 {
				allZero = false
			}
		}
	}
	if allZero {
		return paramtree.OnesLike(w.mean), true
	}
	variance = addJitter(variance)
	return variance, false
}

func addJitter(t paramtree.Tree) paramtree.Tree {
	jittered := paramtree.ZerosLike(t)
	for _, name := range t.Names() {
		data := t.Data(name)
		out := jittered.Data(name)
		for i, v := range data {
			out[i] = floatutils.Clip32(v, 0, math.MaxFloat32) + massMatrixJitter
		}
	}
	return jittered
}
