// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "github.com/nlpodyssey/linalg/shape"

// Arr2 is a matrix: a rank-2 Tensor with arithmetic operations.
//
// All operations read the matrix through its active view, so a lazily
// transposed matrix behaves as if it had been committed.
type Arr2[T Number] struct {
	t *Tensor[T]
}

// NewArr2 creates a rows×cols matrix from row-major data, taking
// ownership of it.
func NewArr2[T Number](data []T, rows, cols int) (*Arr2[T], error) {
	t, err := New(data, shape.Shape{rows, cols})
	if err != nil {
		return nil, err
	}
	return &Arr2[T]{t: t}, nil
}

// AsArr2 wraps a rank-2 tensor, without copying it.
func AsArr2[T Number](t *Tensor[T]) (*Arr2[T], error) {
	if s := t.Shape(); s.Rank() != 2 {
		return nil, &DimensionMismatchError{Op: "as arr2", Left: s, Rank: 2}
	}
	return &Arr2[T]{t: t}, nil
}

// Tensor returns the wrapped tensor.
func (m *Arr2[T]) Tensor() *Tensor[T] { return m.t }

// Rows is the number of rows of the active view. It is 0 if the wrapped
// tensor has been given a view of another rank.
func (m *Arr2[T]) Rows() int {
	if s := m.t.Shape(); s.Rank() == 2 {
		return s[0]
	}
	return 0
}

// Cols is the number of columns of the active view. It is 0 if the
// wrapped tensor has been given a view of another rank.
func (m *Arr2[T]) Cols() int {
	if s := m.t.Shape(); s.Rank() == 2 {
		return s[1]
	}
	return 0
}

// Shape returns the active shape of the wrapped tensor.
func (m *Arr2[T]) Shape() shape.Shape { return m.t.Shape() }

// Strides returns the active strides of the wrapped tensor.
func (m *Arr2[T]) Strides() []int { return m.t.Strides() }

// At returns the element at the given logical index. See Tensor.At.
func (m *Arr2[T]) At(logical ...int) (T, error) { return m.t.At(logical...) }

// Set replaces the element at the given logical index. See Tensor.Set.
func (m *Arr2[T]) Set(value T, logical ...int) error { return m.t.Set(value, logical...) }

// Transpose swaps rows and columns lazily. See Tensor.Transpose.
func (m *Arr2[T]) Transpose() error {
	return m.t.Transpose(1, 0)
}

// Commit materializes a pending view. See Tensor.Commit.
func (m *Arr2[T]) Commit() (bool, error) {
	return m.t.Commit()
}

// MatMul returns the matrix product m·b. The number of columns of m must
// equal the number of rows of b.
func (m *Arr2[T]) MatMul(b *Arr2[T]) (*Arr2[T], error) {
	ms, bs, err := m.shapes("matmul", b)
	if err != nil {
		return nil, err
	}
	rows, inner, cols := ms[0], ms[1], bs[1]
	if bs[0] != inner {
		return nil, &DimensionMismatchError{Op: "matmul", Left: ms, Right: bs}
	}
	x, err := m.t.Values()
	if err != nil {
		return nil, err
	}
	y, err := b.t.Values()
	if err != nil {
		return nil, err
	}

	out := make([]T, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum T
			for k := 0; k < inner; k++ {
				sum += x[i*inner+k] * y[k*cols+j]
			}
			out[i*cols+j] = sum
		}
	}
	return NewArr2(out, rows, cols)
}

// Add returns the element-wise sum of two matrices with the same shape.
func (m *Arr2[T]) Add(b *Arr2[T]) (*Arr2[T], error) {
	ms, bs, err := m.shapes("add", b)
	if err != nil {
		return nil, err
	}
	if !ms.Equal(bs) {
		return nil, &DimensionMismatchError{Op: "add", Left: ms, Right: bs}
	}
	x, err := m.t.Values()
	if err != nil {
		return nil, err
	}
	y, err := b.t.Values()
	if err != nil {
		return nil, err
	}
	for i := range x {
		x[i] += y[i]
	}
	return NewArr2(x, ms[0], ms[1])
}

// shapes returns the active shapes of both operands, failing if either
// is no longer seen as a matrix.
func (m *Arr2[T]) shapes(op string, b *Arr2[T]) (ms, bs shape.Shape, err error) {
	ms, bs = m.t.Shape(), b.t.Shape()
	for _, s := range [...]shape.Shape{ms, bs} {
		if s.Rank() != 2 {
			return nil, nil, &DimensionMismatchError{Op: op, Left: s, Rank: 2}
		}
	}
	return ms, bs, nil
}
