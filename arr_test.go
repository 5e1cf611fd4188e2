// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"testing"

	"github.com/nlpodyssey/linalg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArr1(t *testing.T) {
	a := NewArr1([]float64{3, 4})
	b := NewArr1([]float64{0, 0})

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, shape.Shape{2}, a.Shape())
	assert.Equal(t, []int{1}, a.Strides())

	d, err := a.Distance(b)
	require.NoError(t, err)
	assert.Equal(t, 5.0, d)

	m, err := a.Manhattan(b)
	require.NoError(t, err)
	assert.Equal(t, 7.0, m)

	dot, err := NewArr1([]int{1, 2, 3}).Dot(NewArr1([]int{4, 5, 6}))
	require.NoError(t, err)
	assert.Equal(t, 32, dot)

	require.NoError(t, a.Set(6, 0))
	v, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestArr1_Unsigned(t *testing.T) {
	a := NewArr1([]uint8{1, 10})
	b := NewArr1([]uint8{5, 2})

	m, err := a.Manhattan(b)
	require.NoError(t, err)
	assert.Equal(t, uint8(12), m)

	d, err := a.Distance(b)
	require.NoError(t, err)
	assert.InDelta(t, 8.94427191, d, 1e-8)
}

func TestArr1_DimensionMismatch(t *testing.T) {
	a := NewArr1([]int{1, 2, 3})
	b := NewArr1([]int{1, 2})

	_, err := a.Dot(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.EqualError(t, err, "dimension mismatch: dot between shapes [3] and [2]")

	_, err = a.Manhattan(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = a.Distance(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestArr1_ViewRankChanged(t *testing.T) {
	a := NewArr1(seq(6))
	b := NewArr1(seq(6))
	require.NoError(t, a.Tensor().Reshape(shape.Shape{2, 3}))

	_, err := a.Dot(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.EqualError(t, err, "dimension mismatch: dot requires rank 1, shape [2 3] has rank 2")

	_, err = b.Manhattan(a)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	require.NoError(t, a.Tensor().SetTransform(nil))
	dot, err := a.Dot(b)
	require.NoError(t, err)
	assert.Equal(t, 55, dot)
}

func TestAsArr1(t *testing.T) {
	tt, err := New(seq(6), shape.Shape{2, 3})
	require.NoError(t, err)
	_, err = AsArr1(tt)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.EqualError(t, err, "dimension mismatch: as arr1 requires rank 1, shape [2 3] has rank 2")

	require.NoError(t, tt.Reshape(shape.Shape{6}))
	a, err := AsArr1(tt)
	require.NoError(t, err)
	assert.Same(t, tt, a.Tensor())
	assert.Equal(t, 6, a.Len())
}

func TestArr2_MatMul(t *testing.T) {
	a, err := NewArr2([]int{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := NewArr2([]int{5, 6, 7, 8}, 2, 2)
	require.NoError(t, err)

	c, err := a.MatMul(b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Rows())
	assert.Equal(t, 2, c.Cols())
	assert.Equal(t, []int{19, 22, 43, 50}, c.Tensor().Data())

	t.Run("dimension mismatch", func(t *testing.T) {
		x, err := NewArr2(seq(6), 2, 3)
		require.NoError(t, err)
		_, err = x.MatMul(a)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		assert.EqualError(t, err, "dimension mismatch: matmul between shapes [2 3] and [2 2]")
	})

	t.Run("non square", func(t *testing.T) {
		x, err := NewArr2([]int{1, 2, 3, 4, 5, 6}, 2, 3)
		require.NoError(t, err)
		y, err := NewArr2([]int{1, 2, 3, 4, 5, 6}, 3, 2)
		require.NoError(t, err)
		z, err := x.MatMul(y)
		require.NoError(t, err)
		assert.Equal(t, shape.Shape{2, 2}, z.Shape())
		assert.Equal(t, []int{22, 28, 49, 64}, z.Tensor().Data())
	})
}

func TestArr2_Transpose(t *testing.T) {
	// [[1 2 3] [4 5 6]]
	a, err := NewArr2([]int{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	id, err := NewArr2([]int{1, 0, 0, 1}, 2, 2)
	require.NoError(t, err)

	require.NoError(t, a.Transpose())
	assert.Equal(t, 3, a.Rows())
	assert.Equal(t, 2, a.Cols())
	v, err := a.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	lazy, err := a.MatMul(id)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 2, 5, 3, 6}, lazy.Tensor().Data())

	ok, err := a.Commit()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 4, 2, 5, 3, 6}, a.Tensor().Data())

	committed, err := a.MatMul(id)
	require.NoError(t, err)
	assert.Equal(t, lazy.Tensor().Data(), committed.Tensor().Data())
}

func TestArr2_Add(t *testing.T) {
	a, err := NewArr2([]int{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := NewArr2([]int{10, 20, 30, 40}, 2, 2)
	require.NoError(t, err)

	c, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 22, 33, 44}, c.Tensor().Data())
	assert.Equal(t, []int{1, 2, 3, 4}, a.Tensor().Data())

	x, err := NewArr2(seq(4), 1, 4)
	require.NoError(t, err)
	_, err = a.Add(x)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.EqualError(t, err, "dimension mismatch: add between shapes [2 2] and [1 4]")
}

func TestNewArr2_BufferSizeMismatch(t *testing.T) {
	_, err := NewArr2([]float32{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, ErrBufferSizeMismatch)
}

func TestAsArr2(t *testing.T) {
	tt, err := New(seq(6), shape.Shape{6})
	require.NoError(t, err)
	_, err = AsArr2(tt)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.EqualError(t, err, "dimension mismatch: as arr2 requires rank 2, shape [6] has rank 1")

	require.NoError(t, tt.Reshape(shape.Shape{3, 2}))
	m, err := AsArr2(tt)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 2, m.Cols())
}

func TestArr2_ViewRankChanged(t *testing.T) {
	m, err := NewArr2(seq(6), 2, 3)
	require.NoError(t, err)
	sq, err := NewArr2(seq(4), 2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Tensor().Reshape(shape.Shape{6}))

	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 0, m.Cols())

	_, err = m.MatMul(m)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.EqualError(t, err, "dimension mismatch: matmul requires rank 2, shape [6] has rank 1")

	_, err = sq.MatMul(m)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = m.Add(m)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.EqualError(t, err, "dimension mismatch: add requires rank 2, shape [6] has rank 1")

	assert.Error(t, m.Transpose())

	require.NoError(t, m.Tensor().Reshape(shape.Shape{3, 2}))
	assert.Equal(t, 3, m.Rows())
	p, err := m.MatMul(sq)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 6, 11, 10, 19}, p.Tensor().Data())
}
