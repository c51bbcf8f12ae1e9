// Package prng implements a splittable, single-use PRNG key on top of
// golang.org/x/exp/rand, the generator the teacher package already uses
// for policy sampling (see agent/linear/continuous/policy/Gaussian.go and
// utils/matutils/tilecoder in the source this repo was adapted from).
//
// A Key is an opaque handle. Splitting a key into k children yields k
// statistically independent keys and invalidates the parent: every Key
// carries a consumed flag that panics on reuse (in every build), so
// that accidental double-use of a key (spec category-4 "key misuse") is
// caught loudly instead of silently corrupting the chain's randomness.
package prng

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/exp/rand"
)

// Key is a splittable, single-use PRNG handle. The zero Key is not valid;
// construct one with New.
type Key struct {
	state    *state
	consumed *int32
}

type state struct {
	lo, hi uint64
}

// New creates a root Key from a 64-bit seed.
func New(seed uint64) Key {
	return Key{
		state:    &state{lo: seed, hi: seed ^ goldenGamma},
		consumed: new(int32),
	}
}

const goldenGamma = 0x9E3779B97F4A7C15

// splitMix64 is the standard SplitMix64 mixing function, used here to
// derive statistically independent child seeds from a parent key.
func splitMix64(x uint64) uint64 {
	x += goldenGamma
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

// markConsumed marks k as used, panicking if it was already used. Every
// Split or draw operation consumes its key exactly once, matching the
// spec's single-use PRNG key contract.
func (k Key) markConsumed() {
	if !atomic.CompareAndSwapInt32(k.consumed, 0, 1) {
		panic(fmt.Sprintf("prng: key reused (state %x/%x); a key may be split or drawn from exactly once", k.state.lo, k.state.hi))
	}
}

// Split consumes k and returns n statistically independent child keys.
// The result is deterministic: splitting the same key for the same n
// always yields the same children, in the same order, which is what
// gives the sampler its reproducibility guarantee (spec §5).
func (k Key) Split(n int) []Key {
	k.markConsumed()
	children := make([]Key, n)
	mixed := splitMix64(k.state.lo ^ k.state.hi)
	for i := 0; i < n; i++ {
		mixed = splitMix64(mixed)
		lo := mixed
		mixed = splitMix64(mixed)
		hi := mixed
		children[i] = Key{state: &state{lo: lo, hi: hi}, consumed: new(int32)}
	}
	return children
}

// rand returns a *rand.Rand seeded deterministically from k's state,
// without consuming k, for internal use by the draw methods below (each
// of which consumes k itself before reading from it).
func (k Key) rand() *rand.Rand {
	return rand.New(rand.NewSource(k.state.lo ^ (k.state.hi << 1) ^ (k.state.hi >> 1)))
}

// Normal draws a slice of n independent standard-normal variates,
// consuming k.
func (k Key) Normal(n int) []float32 {
	k.markConsumed()
	r := k.rand()
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(r.NormFloat64())
	}
	return out
}

// Uniform draws a single Uniform[0,1) variate, consuming k.
func (k Key) Uniform() float64 {
	k.markConsumed()
	return k.rand().Float64()
}
