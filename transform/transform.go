// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform provides lazy views over a contiguous buffer.
//
// A Transform never owns nor copies data: it only remaps logical indices
// to flat offsets. The available variants are Identity, Reshape,
// Transpose and Chained. All of them are immutable values, safe to be
// copied and shared between tensors.
package transform

import "github.com/nlpodyssey/linalg/shape"

// Transform maps the logical indices of a view onto flat offsets of the
// underlying buffer, and back.
type Transform interface {
	// ToFlat maps a logical index of OutShape to a flat buffer offset.
	// The index must have the same rank as OutShape and every component
	// must be within bounds, otherwise a *shape.IndexError is returned.
	ToFlat(logical []int) (int, error)

	// ToLogical maps a flat buffer offset back to a logical index of
	// OutShape. A *shape.IndexError is returned if the offset is not
	// reachable through the view.
	ToLogical(offset int) ([]int, error)

	// OutShape is the shape seen through the view.
	OutShape() shape.Shape

	// OutStrides are the strides used to compute flat offsets from
	// logical indices of OutShape.
	OutStrides() []int
}

// Compile-time checks.
var (
	_ Transform = Identity{}
	_ Transform = Reshape{}
	_ Transform = Transpose{}
	_ Transform = Chained{}
)

// toFlat checks the index against s, then applies the strides.
func toFlat(logical []int, s shape.Shape, strides []int) (int, error) {
	if err := shape.CheckIndex(logical, s); err != nil {
		return 0, err
	}
	return shape.FlatIndex(logical, strides), nil
}

func cloneInts(v []int) []int {
	if len(v) == 0 {
		return nil
	}
	c := make([]int, len(v))
	copy(c, v)
	return c
}
