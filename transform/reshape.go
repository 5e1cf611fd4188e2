// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import "github.com/nlpodyssey/linalg/shape"

// Reshape reinterprets a row-major buffer of a source shape as a row-major
// buffer of a destination shape with the same hypervolume.
//
// The source buffer must be contiguous with respect to the source shape.
// Reshaping a non-contiguous view (such as a Transpose) yields wrong
// results unless the view is committed first, or both are composed
// with Chained.
type Reshape struct {
	src     shape.Shape
	dst     shape.Shape
	strides []int
}

// NewReshape returns a Reshape from src to dst, or a *ShapeError if their
// hypervolumes differ.
func NewReshape(src, dst shape.Shape) (Reshape, error) {
	if err := src.Validate(); err != nil {
		return Reshape{}, err
	}
	if err := dst.Validate(); err != nil {
		return Reshape{}, err
	}
	if src.Hypervolume() != dst.Hypervolume() {
		return Reshape{}, &ShapeError{Src: src.Clone(), Dst: dst.Clone()}
	}
	return Reshape{
		src:     src.Clone(),
		dst:     dst.Clone(),
		strides: dst.Strides(),
	}, nil
}

// SrcShape returns the shape the Reshape was built from.
func (t Reshape) SrcShape() shape.Shape { return t.src.Clone() }

// ToFlat returns the row-major offset of a logical index of the
// destination shape.
func (t Reshape) ToFlat(logical []int) (int, error) {
	return toFlat(logical, t.dst, t.strides)
}

// ToLogical decodes offset as a row-major index of the destination shape.
func (t Reshape) ToLogical(offset int) ([]int, error) {
	return shape.Unravel(offset, t.dst)
}

// OutShape returns the destination shape.
func (t Reshape) OutShape() shape.Shape { return t.dst.Clone() }

// OutStrides returns the row-major strides of the destination shape.
func (t Reshape) OutStrides() []int { return cloneInts(t.strides) }
