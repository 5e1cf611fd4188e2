// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"

	"github.com/nlpodyssey/linalg/shape"
)

// Identity is the no-op view: it returns a fixed shape and strides pair
// verbatim.
type Identity struct {
	shape   shape.Shape
	strides []int
}

// NewIdentity returns an Identity over the given shape and strides.
// Both are copied.
func NewIdentity(s shape.Shape, strides []int) (Identity, error) {
	if err := s.Validate(); err != nil {
		return Identity{}, err
	}
	if len(strides) != len(s) {
		return Identity{}, fmt.Errorf("identity transform: shape %v and strides %v have different ranks", s, strides)
	}
	return Identity{
		shape:   s.Clone(),
		strides: cloneInts(strides),
	}, nil
}

// IdentityOf returns an Identity over s with canonical strides.
func IdentityOf(s shape.Shape) (Identity, error) {
	return NewIdentity(s, s.Strides())
}

// ToFlat returns the dot product of logical and the strides, after a
// bounds check against the shape.
func (t Identity) ToFlat(logical []int) (int, error) {
	return toFlat(logical, t.shape, t.strides)
}

// ToLogical decodes offset with the canonical algorithm when strides are
// row-major, otherwise by decreasing stride.
func (t Identity) ToLogical(offset int) ([]int, error) {
	return shape.UnravelStrided(offset, t.shape, t.strides)
}

// OutShape returns the shape the Identity was built with.
func (t Identity) OutShape() shape.Shape { return t.shape.Clone() }

// OutStrides returns the strides the Identity was built with.
func (t Identity) OutStrides() []int { return cloneInts(t.strides) }
