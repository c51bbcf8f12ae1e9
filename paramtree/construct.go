package paramtree

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Scalar builds a single-leaf Tree holding one scalar float32 value under
// name. It is a convenience used throughout the examples and tests for
// 1-D target densities.
func Scalar(name string, value float32) Tree {
	return New(map[string]*tensor.Dense{
		name: tensor.New(tensor.WithShape(1), tensor.Of(tensor.Float32),
			tensor.WithBacking([]float32{value})),
	})
}

// Vector builds a single-leaf Tree holding a 1-D float32 tensor under
// name.
func Vector(name string, values []float32) Tree {
	return New(map[string]*tensor.Dense{
		name: tensor.New(
			tensor.WithShape(len(values)),
			tensor.Of(tensor.Float32),
			tensor.WithBacking(append([]float32(nil), values...)),
		),
	})
}

// Data returns the raw float32 backing of the named leaf, in row-major
// order. The returned slice aliases the tree's storage: writing to it
// changes the tree in place.
func (t Tree) Data(name string) []float32 {
	leaf := t.leaves[name]
	if leaf == nil {
		panic(fmt.Sprintf("paramtree: no such leaf %q", name))
	}
	return leaf.Data().([]float32)
}

// Shape returns the shape of the named leaf.
func (t Tree) Shape(name string) tensor.Shape {
	return t.leaves[name].Shape().Clone()
}

// StackedLeafSeries reads a leaf of a tree produced by Stack(chainDraws)
// with leading axis [numChains, numSamples, ...], and returns, for the
// given leaf, one flat []float32 series per (chain, element) pair: the
// return value is series[elementIndex][chain] = []float32 of length
// numSamples. elementIndex ranges over the product of the leaf's shape
// excluding the two leading axes.
//
// This is the bridge used by the diagnostics package, whose split-Rhat
// and ESS formulas are defined per scalar parameter.
func (t Tree) StackedLeafSeries(name string, numChains, numSamples int) [][][]float32 {
	data := t.Data(name)
	total := len(data)
	if numChains*numSamples == 0 || total%(numChains*numSamples) != 0 {
		panic(fmt.Sprintf(
			"paramtree: StackedLeafSeries(%s): shape %v incompatible with chains=%d samples=%d",
			name, t.Shape(name), numChains, numSamples))
	}
	elemCount := total / (numChains * numSamples)

	series := make([][][]float32, elemCount)
	for e := 0; e < elemCount; e++ {
		series[e] = make([][]float32, numChains)
		for c := 0; c < numChains; c++ {
			series[e][c] = make([]float32, numSamples)
		}
	}
	// Row-major layout: index = ((c*numSamples + n)*elemCount + e).
	for c := 0; c < numChains; c++ {
		for n := 0; n < numSamples; n++ {
			base := (c*numSamples + n) * elemCount
			for e := 0; e < elemCount; e++ {
				series[e][c][n] = data[base+e]
			}
		}
	}
	return series
}
