// Package paramtree implements element-wise arithmetic over nested
// parameter containers: named collections of dense, 32-bit tensors that
// back the position and momentum of the sampler.
//
// A Tree is a flat, named container rather than an arbitrarily nested
// one (see the design notes on restricting to a fixed container for a
// statically typed target). All operations below require their operand
// trees to have the same structure: the same leaf names, each with the
// same shape. Every operation returns leaves that do not alias their
// inputs.
package paramtree

import (
	"fmt"
	"math"
	"sort"

	"gorgonia.org/tensor"
)

// Tree is a named collection of dense float32 tensors. The zero value is
// not valid; construct one with New.
type Tree struct {
	leaves map[string]*tensor.Dense
	order  []string // sorted leaf names, cached at construction time
}

// New builds a Tree from a set of named leaves. The leaf iteration order
// (Names, Leaves) is the sorted order of the names, fixed at construction
// so that every downstream traversal of this tree is deterministic.
func New(leaves map[string]*tensor.Dense) Tree {
	order := make([]string, 0, len(leaves))
	for name := range leaves {
		order = append(order, name)
	}
	sort.Strings(order)
	return Tree{leaves: leaves, order: order}
}

// FromLeaves rebuilds a Tree with the given names (in any order) and a
// parallel slice of leaves, matching names[i] to leaves[i]. It is the
// inverse of Names/Leaf, used by callers that flatten a tree, transform
// its leaves, and need to reassemble a tree of the same structure.
func FromLeaves(names []string, leaves []*tensor.Dense) Tree {
	if len(names) != len(leaves) {
		panic("paramtree: FromLeaves: names and leaves length mismatch")
	}
	m := make(map[string]*tensor.Dense, len(names))
	for i, name := range names {
		m[name] = leaves[i]
	}
	return New(m)
}

// Names returns the leaf names in deterministic (sorted) order.
func (t Tree) Names() []string { return t.order }

// Leaf returns the tensor stored under name, or nil if name is not a leaf
// of t.
func (t Tree) Leaf(name string) *tensor.Dense { return t.leaves[name] }

// Leaves returns the leaf tensors in the same deterministic order as
// Names.
func (t Tree) Leaves() []*tensor.Dense {
	out := make([]*tensor.Dense, len(t.order))
	for i, name := range t.order {
		out[i] = t.leaves[name]
	}
	return out
}

// Len returns the number of leaves in t.
func (t Tree) Len() int { return len(t.order) }

// SameStructure reports whether a and b have identical leaf names and
// identical per-leaf shapes.
func SameStructure(a, b Tree) bool {
	if len(a.order) != len(b.order) {
		return false
	}
	for i, name := range a.order {
		if b.order[i] != name {
			return false
		}
		if !a.leaves[name].Shape().Eq(b.leaves[name].Shape()) {
			return false
		}
	}
	return true
}

func requireSameStructure(op string, trees ...Tree) {
	for i := 1; i < len(trees); i++ {
		if !SameStructure(trees[0], trees[i]) {
			panic(fmt.Sprintf("paramtree: %s: mismatched tree structure", op))
		}
	}
}

// leafBinary applies fn leaf-by-leaf to same-structure trees a and b and
// assembles the results into a new Tree.
func leafBinary(op string, a, b Tree, fn func(a, b *tensor.Dense) (*tensor.Dense, error)) Tree {
	requireSameStructure(op, a, b)
	out := make(map[string]*tensor.Dense, len(a.order))
	for _, name := range a.order {
		res, err := fn(a.leaves[name], b.leaves[name])
		if err != nil {
			panic(fmt.Sprintf("paramtree: %s(%s): %v", op, name, err))
		}
		out[name] = res
	}
	return New(out)
}

// leafUnary applies fn leaf-by-leaf to a and assembles the results into a
// new Tree.
func leafUnary(op string, a Tree, fn func(a *tensor.Dense) (*tensor.Dense, error)) Tree {
	out := make(map[string]*tensor.Dense, len(a.order))
	for _, name := range a.order {
		res, err := fn(a.leaves[name])
		if err != nil {
			panic(fmt.Sprintf("paramtree: %s(%s): %v", op, name, err))
		}
		out[name] = res
	}
	return New(out)
}

func asDense(t tensor.Tensor, err error) (*tensor.Dense, error) {
	if err != nil {
		return nil, err
	}
	return t.(*tensor.Dense), nil
}

// Add returns the element-wise sum a + b.
func Add(a, b Tree) Tree {
	return leafBinary("add", a, b, func(a, b *tensor.Dense) (*tensor.Dense, error) {
		return asDense(tensor.Add(a, b))
	})
}

// Sub returns the element-wise difference a - b.
func Sub(a, b Tree) Tree {
	return leafBinary("sub", a, b, func(a, b *tensor.Dense) (*tensor.Dense, error) {
		return asDense(tensor.Sub(a, b))
	})
}

// Mul returns the element-wise (Hadamard) product a ⊙ b.
func Mul(a, b Tree) Tree {
	return leafBinary("mul", a, b, func(a, b *tensor.Dense) (*tensor.Dense, error) {
		return asDense(tensor.Mul(a, b))
	})
}

// Div returns the element-wise quotient a / b.
func Div(a, b Tree) Tree {
	return leafBinary("div", a, b, func(a, b *tensor.Dense) (*tensor.Dense, error) {
		return asDense(tensor.Div(a, b))
	})
}

// Scale returns a copy of a with every element multiplied by s.
func Scale(a Tree, s float32) Tree {
	return leafUnary("scale", a, func(a *tensor.Dense) (*tensor.Dense, error) {
		return asDense(a.Apply(func(x float32) float32 { return x * s }))
	})
}

// Sqrt returns the element-wise square root of a.
func Sqrt(a Tree) Tree {
	return leafUnary("sqrt", a, func(a *tensor.Dense) (*tensor.Dense, error) {
		return asDense(a.Apply(func(x float32) float32 { return float32(math.Sqrt(float64(x))) }))
	})
}

// ZerosLike returns a Tree with the same structure as a, all elements 0.
func ZerosLike(a Tree) Tree {
	return leafUnary("zerosLike", a, func(a *tensor.Dense) (*tensor.Dense, error) {
		z := a.Clone().(*tensor.Dense)
		if err := z.Memset(float32(0)); err != nil {
			return nil, err
		}
		return z, nil
	})
}

// OnesLike returns a Tree with the same structure as a, all elements 1.
func OnesLike(a Tree) Tree {
	return leafUnary("onesLike", a, func(a *tensor.Dense) (*tensor.Dense, error) {
		o := a.Clone().(*tensor.Dense)
		if err := o.Memset(float32(1)); err != nil {
			return nil, err
		}
		return o, nil
	})
}

// Sum reduces a to a scalar: the sum over every leaf and every element of
// every leaf.
func Sum(a Tree) float32 {
	var total float32
	for _, name := range a.order {
		leaf := a.leaves[name]
		s, err := leaf.Sum()
		if err != nil {
			panic(fmt.Sprintf("paramtree: sum(%s): %v", name, err))
		}
		total += scalarOf(s)
	}
	return total
}

// Dot returns the sum, over all leaves and all elements, of the
// element-wise product of a and b.
func Dot(a, b Tree) float32 {
	return Sum(Mul(a, b))
}

// Stack stacks k same-structure trees along a new leading axis, producing
// one Tree whose leaves each carry an extra leading dimension of size k.
func Stack(trees []Tree) Tree {
	if len(trees) == 0 {
		panic("paramtree: stack: no trees given")
	}
	requireSameStructure("stack", trees...)
	names := trees[0].order
	out := make(map[string]*tensor.Dense, len(names))
	for _, name := range names {
		parts := make([]tensor.Tensor, len(trees))
		for i, t := range trees {
			parts[i] = t.leaves[name]
		}
		stacked, err := tensor.Stack(0, parts...)
		if err != nil {
			panic(fmt.Sprintf("paramtree: stack(%s): %v", name, err))
		}
		out[name] = stacked.(*tensor.Dense)
	}
	return New(out)
}

// scalarOf extracts the single element of a 0-dimensional reduction
// result as a float32.
func scalarOf(t tensor.Tensor) float32 {
	d := t.(*tensor.Dense)
	if d.Size() == 1 {
		switch v := d.ScalarValue().(type) {
		case float32:
			return v
		case float64:
			return float32(v)
		}
	}
	data := d.Data().([]float32)
	var sum float32
	for _, v := range data {
		sum += v
	}
	return sum
}
