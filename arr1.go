// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"

	"github.com/nlpodyssey/linalg/shape"
)

// Arr1 is a vector: a rank-1 Tensor with arithmetic operations.
type Arr1[T Number] struct {
	t *Tensor[T]
}

// NewArr1 creates a vector, taking ownership of data.
func NewArr1[T Number](data []T) *Arr1[T] {
	return &Arr1[T]{t: &Tensor[T]{
		data:    data,
		shape:   shape.Shape{len(data)},
		strides: []int{1},
	}}
}

// AsArr1 wraps a rank-1 tensor, without copying it.
func AsArr1[T Number](t *Tensor[T]) (*Arr1[T], error) {
	if s := t.Shape(); s.Rank() != 1 {
		return nil, &DimensionMismatchError{Op: "as arr1", Left: s, Rank: 1}
	}
	return &Arr1[T]{t: t}, nil
}

// Tensor returns the wrapped tensor.
func (a *Arr1[T]) Tensor() *Tensor[T] { return a.t }

// Len is the number of elements.
func (a *Arr1[T]) Len() int { return a.t.Hypervolume() }

// Shape returns the active shape of the wrapped tensor.
func (a *Arr1[T]) Shape() shape.Shape { return a.t.Shape() }

// Strides returns the active strides of the wrapped tensor.
func (a *Arr1[T]) Strides() []int { return a.t.Strides() }

// At returns the element at the given logical index. See Tensor.At.
func (a *Arr1[T]) At(logical ...int) (T, error) { return a.t.At(logical...) }

// Set replaces the element at the given logical index. See Tensor.Set.
func (a *Arr1[T]) Set(value T, logical ...int) error { return a.t.Set(value, logical...) }

// Dot returns the inner product Σ aᵢ·bᵢ.
func (a *Arr1[T]) Dot(b *Arr1[T]) (T, error) {
	x, y, err := a.pair("dot", b)
	if err != nil {
		return 0, err
	}
	var sum T
	for i := range x {
		sum += x[i] * y[i]
	}
	return sum, nil
}

// Manhattan returns the distance Σ|aᵢ−bᵢ|.
func (a *Arr1[T]) Manhattan(b *Arr1[T]) (T, error) {
	x, y, err := a.pair("manhattan distance", b)
	if err != nil {
		return 0, err
	}
	var sum T
	for i := range x {
		sum += absDiff(x[i], y[i])
	}
	return sum, nil
}

// Distance returns the Euclidean distance sqrt(Σ(aᵢ−bᵢ)²).
func (a *Arr1[T]) Distance(b *Arr1[T]) (float64, error) {
	x, y, err := a.pair("euclidean distance", b)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := range x {
		d := float64(absDiff(x[i], y[i]))
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// pair returns the values of both vectors, failing if either is no longer
// seen as a vector or if their lengths differ.
func (a *Arr1[T]) pair(op string, b *Arr1[T]) (x, y []T, err error) {
	as, bs := a.t.Shape(), b.t.Shape()
	for _, s := range [...]shape.Shape{as, bs} {
		if s.Rank() != 1 {
			return nil, nil, &DimensionMismatchError{Op: op, Left: s, Rank: 1}
		}
	}
	if as[0] != bs[0] {
		return nil, nil, &DimensionMismatchError{Op: op, Left: as, Right: bs}
	}
	if x, err = a.t.Values(); err != nil {
		return nil, nil, err
	}
	if y, err = b.t.Values(); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
