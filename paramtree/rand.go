package paramtree

import (
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/gohmc/prng"
)

// SampleNormal draws a tree with the same structure as like, every
// element an independent standard-normal variate, consuming k exactly
// once (one draw for the whole tree, not one per leaf).
func SampleNormal(like Tree, k prng.Key) Tree {
	total := 0
	for _, name := range like.order {
		total += like.leaves[name].Size()
	}
	flat := k.Normal(total)

	out := make(map[string]*tensor.Dense, len(like.order))
	offset := 0
	for _, name := range like.order {
		leaf := like.leaves[name]
		n := leaf.Size()
		out[name] = tensor.New(
			tensor.WithShape(leaf.Shape().Clone()...),
			tensor.Of(tensor.Float32),
			tensor.WithBacking(append([]float32(nil), flat[offset:offset+n]...)),
		)
		offset += n
	}
	return New(out)
}
