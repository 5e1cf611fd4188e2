// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"errors"
	"testing"

	"github.com/nlpodyssey/linalg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eachIndex calls fn for every logical index of s in row-major order.
func eachIndex(s shape.Shape, fn func(index []int)) {
	if s.Hypervolume() == 0 {
		return
	}
	index := make([]int, s.Rank())
	for ok := true; ok; ok = shape.Next(index, s) {
		fn(index)
	}
}

// assertRoundTrip checks that ToLogical inverts ToFlat over the whole view.
func assertRoundTrip(t *testing.T, tr Transform) {
	t.Helper()
	eachIndex(tr.OutShape(), func(index []int) {
		offset, err := tr.ToFlat(index)
		require.NoError(t, err)
		logical, err := tr.ToLogical(offset)
		require.NoError(t, err)
		assert.Equal(t, index, logical, "offset %d", offset)
	})
}

func TestIdentity(t *testing.T) {
	t.Run("canonical", func(t *testing.T) {
		id, err := IdentityOf(shape.Shape{2, 3})
		require.NoError(t, err)
		assert.Equal(t, shape.Shape{2, 3}, id.OutShape())
		assert.Equal(t, []int{3, 1}, id.OutStrides())

		offset, err := id.ToFlat([]int{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 5, offset)
		assertRoundTrip(t, id)
	})

	t.Run("verbatim strides", func(t *testing.T) {
		id, err := NewIdentity(shape.Shape{3, 2}, []int{1, 3})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, id.OutStrides())

		offset, err := id.ToFlat([]int{2, 1})
		require.NoError(t, err)
		assert.Equal(t, 5, offset)
		assertRoundTrip(t, id)
	})

	t.Run("scalar", func(t *testing.T) {
		id, err := IdentityOf(nil)
		require.NoError(t, err)
		offset, err := id.ToFlat(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assertRoundTrip(t, id)
	})

	t.Run("rank mismatch", func(t *testing.T) {
		_, err := NewIdentity(shape.Shape{3, 2}, []int{1})
		assert.EqualError(t, err, "identity transform: shape [3 2] and strides [1] have different ranks")
	})

	t.Run("index out of range", func(t *testing.T) {
		id, err := IdentityOf(shape.Shape{2, 3})
		require.NoError(t, err)
		_, err = id.ToFlat([]int{2, 0})
		assert.ErrorIs(t, err, shape.ErrIndexOutOfRange)
		_, err = id.ToFlat([]int{0})
		assert.ErrorIs(t, err, shape.ErrIndexOutOfRange)
		_, err = id.ToLogical(6)
		assert.ErrorIs(t, err, shape.ErrIndexOutOfRange)
	})

	t.Run("immutable", func(t *testing.T) {
		s := shape.Shape{2, 3}
		id, err := IdentityOf(s)
		require.NoError(t, err)
		s[0] = 9
		id.OutShape()[1] = 9
		id.OutStrides()[0] = 9
		assert.Equal(t, shape.Shape{2, 3}, id.OutShape())
		assert.Equal(t, []int{3, 1}, id.OutStrides())
	})
}

func TestReshape(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, err := NewReshape(shape.Shape{2, 3}, shape.Shape{3, 2})
		require.NoError(t, err)
		assert.Equal(t, shape.Shape{3, 2}, r.OutShape())
		assert.Equal(t, []int{2, 1}, r.OutStrides())
		assert.Equal(t, shape.Shape{2, 3}, r.SrcShape())
		assertRoundTrip(t, r)

		offset, err := r.ToFlat([]int{2, 1})
		require.NoError(t, err)
		assert.Equal(t, 5, offset)
	})

	t.Run("to higher rank", func(t *testing.T) {
		r, err := NewReshape(shape.Shape{2, 3}, shape.Shape{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, []int{6, 3, 1}, r.OutStrides())
		assertRoundTrip(t, r)
	})

	t.Run("to scalar", func(t *testing.T) {
		r, err := NewReshape(shape.Shape{1, 1}, nil)
		require.NoError(t, err)
		assert.Nil(t, r.OutShape())
		assertRoundTrip(t, r)
	})

	t.Run("hypervolume mismatch", func(t *testing.T) {
		_, err := NewReshape(shape.Shape{2, 3}, shape.Shape{4, 2})
		require.ErrorIs(t, err, ErrHypervolumeMismatch)
		assert.EqualError(t, err, "hypervolume mismatch: shape [2 3] (6 elements) vs shape [4 2] (8 elements)")

		var se *ShapeError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, shape.Shape{2, 3}, se.Src)
		assert.Equal(t, shape.Shape{4, 2}, se.Dst)
	})

	t.Run("negative extent", func(t *testing.T) {
		_, err := NewReshape(shape.Shape{2, 3}, shape.Shape{-2, -3})
		assert.ErrorIs(t, err, shape.ErrNegativeExtent)
	})
}

func TestTranspose(t *testing.T) {
	t.Run("identity permutation", func(t *testing.T) {
		src := shape.Shape{2, 3, 4}
		tr, err := NewTranspose(src, []int{0, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, src, tr.OutShape())
		assert.Equal(t, src.Strides(), tr.OutStrides())
		assertRoundTrip(t, tr)
	})

	t.Run("matrix", func(t *testing.T) {
		src := shape.Shape{2, 3}
		tr, err := NewTranspose(src, []int{1, 0})
		require.NoError(t, err)
		assert.Equal(t, shape.Shape{3, 2}, tr.OutShape())
		// gathered, not recomputed: canonical strides of [3 2] would be [2 1]
		assert.Equal(t, []int{1, 3}, tr.OutStrides())
		assert.Equal(t, []int{1, 0}, tr.Permutation())

		srcStrides := src.Strides()
		eachIndex(src, func(index []int) {
			i, j := index[0], index[1]
			offset, err := tr.ToFlat([]int{j, i})
			require.NoError(t, err)
			assert.Equal(t, shape.FlatIndex([]int{i, j}, srcStrides), offset)
		})
		assertRoundTrip(t, tr)
	})

	t.Run("rank 3", func(t *testing.T) {
		tr, err := NewTranspose(shape.Shape{2, 3, 4}, []int{2, 0, 1})
		require.NoError(t, err)
		assert.Equal(t, shape.Shape{4, 2, 3}, tr.OutShape())
		assert.Equal(t, []int{1, 12, 4}, tr.OutStrides())
		assertRoundTrip(t, tr)
	})

	t.Run("unit axes", func(t *testing.T) {
		tr, err := NewTranspose(shape.Shape{2, 1, 3}, []int{1, 2, 0})
		require.NoError(t, err)
		assertRoundTrip(t, tr)
	})

	t.Run("inverse composes to identity", func(t *testing.T) {
		perm := []int{2, 0, 3, 1}
		inv := Inverse(perm)
		assert.Equal(t, []int{1, 3, 0, 2}, inv)
		for i := range perm {
			assert.Equal(t, i, perm[inv[i]])
		}
	})
}

func TestTranspose_InvalidPermutation(t *testing.T) {
	rank2 := shape.Shape{2, 3}
	testCases := []struct {
		name     string
		perm     []int
		sentinel error
		kind     PermutationErrorKind
		msg      string
	}{
		{"duplicate", []int{0, 0}, ErrDuplicate, Duplicate, "permutation value repeated: permutation [0 0]: value 0"},
		{"out of bounds", []int{0, 2}, ErrOutOfBounds, OutOfBounds, "permutation value out of bounds: permutation [0 2]: value 2, rank 2"},
		{"negative", []int{-1, 0}, ErrOutOfBounds, OutOfBounds, "permutation value out of bounds: permutation [-1 0]: value -1, rank 2"},
		{"too short", []int{0}, ErrWrongLength, WrongLength, "permutation has wrong length: permutation [0]: expected 2 values, actual 1"},
		{"too long", []int{0, 1, 2}, ErrWrongLength, WrongLength, "permutation has wrong length: permutation [0 1 2]: expected 2 values, actual 3"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTranspose(rank2, tc.perm)
			require.ErrorIs(t, err, tc.sentinel)
			assert.EqualError(t, err, tc.msg)

			var pe *PermutationError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.kind, pe.Kind)
		})
	}

	t.Run("details", func(t *testing.T) {
		_, err := NewTranspose(rank2, []int{0, 1, 2})
		var pe *PermutationError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 2, pe.Expected)
		assert.Equal(t, 3, pe.Actual)

		_, err = NewTranspose(rank2, []int{0, 2})
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 2, pe.Value)
		assert.Equal(t, 2, pe.Rank)
	})
}
