// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import "github.com/nlpodyssey/linalg/shape"

// Transpose permutes the axes of a row-major buffer.
//
// Axis i of the view is axis perm[i] of the source: the output shape is
// gathered from the source shape, and the output strides are gathered
// from the source strides. Memory is never relaid out, only the
// iteration order changes.
type Transpose struct {
	perm    []int
	shape   shape.Shape
	strides []int
}

// NewTranspose returns a Transpose of src by perm, or a *PermutationError
// if perm is not a permutation of src axes.
func NewTranspose(src shape.Shape, perm []int) (Transpose, error) {
	if err := src.Validate(); err != nil {
		return Transpose{}, err
	}
	if err := ValidatePermutation(perm, src.Rank()); err != nil {
		return Transpose{}, err
	}
	srcStrides := src.Strides()
	out := make(shape.Shape, len(perm))
	strides := make([]int, len(perm))
	for i, axis := range perm {
		out[i] = src[axis]
		strides[i] = srcStrides[axis]
	}
	return Transpose{
		perm:    cloneInts(perm),
		shape:   out,
		strides: strides,
	}, nil
}

// ValidatePermutation checks that perm contains every axis in [0, rank)
// exactly once.
func ValidatePermutation(perm []int, rank int) error {
	if len(perm) != rank {
		return &PermutationError{Kind: WrongLength, Permutation: cloneInts(perm), Expected: rank, Actual: len(perm), Rank: rank}
	}
	seen := make([]bool, rank)
	for _, v := range perm {
		if v < 0 || v >= rank {
			return &PermutationError{Kind: OutOfBounds, Permutation: cloneInts(perm), Value: v, Rank: rank}
		}
		if seen[v] {
			return &PermutationError{Kind: Duplicate, Permutation: cloneInts(perm), Value: v, Rank: rank}
		}
		seen[v] = true
	}
	return nil
}

// Inverse returns the permutation undoing perm.
// perm must be valid (see ValidatePermutation).
func Inverse(perm []int) []int {
	inv := make([]int, len(perm))
	for i, v := range perm {
		inv[v] = i
	}
	return inv
}

// Permutation returns the axis permutation.
func (t Transpose) Permutation() []int { return cloneInts(t.perm) }

// ToFlat maps a logical index of the permuted shape to its offset in
// the source buffer.
func (t Transpose) ToFlat(logical []int) (int, error) {
	return toFlat(logical, t.shape, t.strides)
}

// ToLogical decodes a source offset by decreasing stride, since the
// gathered strides are generally not the row-major strides of OutShape.
func (t Transpose) ToLogical(offset int) ([]int, error) {
	return shape.UnravelStrided(offset, t.shape, t.strides)
}

// OutShape returns the source shape permuted by perm.
func (t Transpose) OutShape() shape.Shape { return t.shape.Clone() }

// OutStrides returns the source strides permuted by perm.
func (t Transpose) OutStrides() []int { return cloneInts(t.strides) }
