// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/nlpodyssey/linalg/shape"
	"github.com/nlpodyssey/linalg/transform"
)

// Tensor is an n-dimensional array of T values stored in a flat buffer
// with row-major layout.
//
// At most one transform.Transform can be attached to a Tensor at any
// time. When present, it defines the shape of the tensor and how logical
// indices are resolved (see SetTransform). The buffer is left untouched
// until Commit is called.
//
// A Tensor is not safe for concurrent use if any goroutine modifies it.
type Tensor[T any] struct {
	data    []T
	shape   shape.Shape
	strides []int
	view    transform.Transform
}

// New creates a Tensor with the given shape, taking ownership of data.
//
// The length of data must equal the hypervolume of s, otherwise a
// *BufferSizeMismatchError is returned. An empty shape describes a scalar
// and requires exactly one element.
//
// Since "data" can possibly take a large amount of memory, its value is NOT
// copied. The caller must not modify it afterwards, other than through the
// Tensor.
func New[T any](data []T, s shape.Shape) (*Tensor[T], error) {
	n, err := s.CheckedHypervolume()
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, &BufferSizeMismatchError{Shape: s.Clone(), Expected: n, Actual: len(data)}
	}
	s = s.Clone()
	return &Tensor[T]{
		data:    data,
		shape:   s,
		strides: s.Strides(),
	}, nil
}

// Shape returns the active shape: the OutShape of the attached transform,
// if any, otherwise the shape of the buffer.
func (t *Tensor[T]) Shape() shape.Shape {
	if t.view != nil {
		return t.view.OutShape()
	}
	return t.shape.Clone()
}

// Strides returns the active strides, following the same rules as Shape.
func (t *Tensor[T]) Strides() []int {
	if t.view != nil {
		return t.view.OutStrides()
	}
	return cloneInts(t.strides)
}

// BaseShape returns the shape of the buffer, ignoring any transform.
func (t *Tensor[T]) BaseShape() shape.Shape {
	return t.shape.Clone()
}

// Rank is the number of axes of the active shape.
func (t *Tensor[T]) Rank() int {
	if t.view != nil {
		return t.view.OutShape().Rank()
	}
	return t.shape.Rank()
}

// Hypervolume is the number of elements of the tensor. Transforms never
// change it.
func (t *Tensor[T]) Hypervolume() int {
	return len(t.data)
}

// Data returns the underlying buffer, in physical order.
//
// The value returned is NOT a copy: any change to its content will
// affect the Tensor too.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// At returns the element at the given logical index.
func (t *Tensor[T]) At(logical ...int) (T, error) {
	i, err := t.offset(logical)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.data[i], nil
}

// Set replaces the element at the given logical index.
func (t *Tensor[T]) Set(value T, logical ...int) error {
	i, err := t.offset(logical)
	if err != nil {
		return err
	}
	t.data[i] = value
	return nil
}

func (t *Tensor[T]) offset(logical []int) (int, error) {
	if t.view == nil {
		if err := shape.CheckIndex(logical, t.shape); err != nil {
			return 0, err
		}
		return shape.FlatIndex(logical, t.strides), nil
	}
	i, err := t.view.ToFlat(logical)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(t.data) {
		return 0, &shape.IndexError{Offset: i, Flat: true, Shape: t.shape.Clone(), Axis: -1}
	}
	return i, nil
}

// Values returns a new slice with all the elements of the tensor, in the
// row-major order of the active shape. The tensor is not modified.
func (t *Tensor[T]) Values() ([]T, error) {
	if t.view == nil {
		return append([]T(nil), t.data...), nil
	}
	return t.gather()
}

// gather copies the elements seen through the view, in row-major order.
func (t *Tensor[T]) gather() ([]T, error) {
	out := make([]T, 0, len(t.data))
	err := eachIndex(t.view.OutShape(), func(index []int) error {
		i, err := t.offset(index)
		if err != nil {
			return err
		}
		out = append(out, t.data[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Clone returns a deep copy of the tensor. The attached transform, being
// immutable, is shared.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return &Tensor[T]{
		data:    append([]T(nil), t.data...),
		shape:   t.shape.Clone(),
		strides: cloneInts(t.strides),
		view:    t.view,
	}
}

// eachIndex calls fn for every logical index of s, in row-major order,
// stopping at the first error. The index passed to fn is reused.
func eachIndex(s shape.Shape, fn func(index []int) error) error {
	if s.Hypervolume() == 0 {
		return nil
	}
	index := make([]int, s.Rank())
	for ok := true; ok; ok = shape.Next(index, s) {
		if err := fn(index); err != nil {
			return err
		}
	}
	return nil
}

func cloneInts(v []int) []int {
	if len(v) == 0 {
		return nil
	}
	return append([]int(nil), v...)
}
