// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIndexOutOfRange is the sentinel error wrapped by every IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports a logical index that does not fit a shape, or a flat
// offset that cannot be decoded into a logical index of a shape.
type IndexError struct {
	// Index is the offending logical index. It is nil when Flat is true.
	Index []int
	// Offset is the offending flat offset. It is only meaningful when
	// Flat is true.
	Offset int
	// Flat reports whether the error refers to a flat offset.
	Flat bool
	// Shape is the shape the index was checked against.
	Shape Shape
	// Axis is the first axis where the index exceeds the shape, or -1
	// when the index and the shape have different ranks (or when Flat
	// is true).
	Axis int
}

// Error satisfies the error interface.
func (e *IndexError) Error() string {
	switch {
	case e.Flat:
		return fmt.Sprintf("%s: offset %d is not addressable within shape %v", ErrIndexOutOfRange, e.Offset, e.Shape)
	case e.Axis < 0:
		return fmt.Sprintf("%s: index %v has rank %d, shape %v has rank %d", ErrIndexOutOfRange, e.Index, len(e.Index), e.Shape, len(e.Shape))
	default:
		return fmt.Sprintf("%s: index %v exceeds shape %v at axis %d", ErrIndexOutOfRange, e.Index, e.Shape, e.Axis)
	}
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// CheckIndex verifies that logical has the same rank as s and that every
// component lies within [0, s[i]).
func CheckIndex(logical []int, s Shape) error {
	if len(logical) != len(s) {
		return &IndexError{Index: slices.Clone(logical), Shape: s.Clone(), Axis: -1}
	}
	for i, v := range logical {
		if v < 0 || v >= s[i] {
			return &IndexError{Index: slices.Clone(logical), Shape: s.Clone(), Axis: i}
		}
	}
	return nil
}

// FlatIndex returns the dot product of logical and strides.
// No bounds checking is performed; see CheckIndex.
func FlatIndex(logical, strides []int) int {
	offset := 0
	for i, v := range logical {
		offset += v * strides[i]
	}
	return offset
}

// Unravel decodes a flat offset into the logical index of a canonical
// (row-major) layout of s, computing (offset / stride[i]) % s[i] for
// each axis.
func Unravel(offset int, s Shape) ([]int, error) {
	if offset < 0 || offset >= s.Hypervolume() {
		return nil, &IndexError{Offset: offset, Flat: true, Shape: s.Clone(), Axis: -1}
	}
	strides := s.Strides()
	logical := make([]int, len(s))
	for i, stride := range strides {
		logical[i] = (offset / stride) % s[i]
	}
	return logical, nil
}

// UnravelStrided decodes a flat offset into a logical index of s, where
// strides may be any axis permutation of a canonical layout (for example
// the strides of a transposed view).
//
// Axes are decoded by decreasing stride. Axes of extent 1 are always 0.
// The result is verified by raveling it back: if the offset is not
// reachable through the given strides, an IndexError is returned.
func UnravelStrided(offset int, s Shape, strides []int) ([]int, error) {
	if len(strides) != len(s) {
		return nil, fmt.Errorf("shape %v and strides %v have different ranks", s, strides)
	}
	if IsCanonical(s, strides) {
		return Unravel(offset, s)
	}
	notAddressable := &IndexError{Offset: offset, Flat: true, Shape: s.Clone(), Axis: -1}
	if offset < 0 || s.Hypervolume() == 0 {
		return nil, notAddressable
	}

	axes := make([]int, 0, len(s))
	for i, v := range s {
		if v > 1 && strides[i] > 0 {
			axes = append(axes, i)
		}
	}
	slices.SortStableFunc(axes, func(a, b int) int {
		return strides[b] - strides[a]
	})

	logical := make([]int, len(s))
	rem := offset
	for _, axis := range axes {
		v := rem / strides[axis]
		if v >= s[axis] {
			return nil, notAddressable
		}
		logical[axis] = v
		rem -= v * strides[axis]
	}
	if rem != 0 || FlatIndex(logical, strides) != offset {
		return nil, notAddressable
	}
	return logical, nil
}

// Next advances index to the following logical index of s in row-major
// order, in place. It returns false, leaving index all zeros, once every
// index has been visited.
func Next(index []int, s Shape) bool {
	for i := len(s) - 1; i >= 0; i-- {
		index[i]++
		if index[i] < s[i] {
			return true
		}
		index[i] = 0
	}
	return false
}
