// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape describes the extents of N-dimensional tensors and
// implements the index arithmetic shared by tensors and their views.
package shape

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// ErrNegativeExtent is returned when a shape contains a negative extent.
var ErrNegativeExtent = errors.New("shape contains a negative extent")

// Shape is an ordered sequence of per-axis extents.
//
// A Shape must be treated as immutable once it has been handed to a tensor
// or a transform: functions that retain a Shape store a copy of it.
// An empty (or nil) Shape describes a scalar.
type Shape []int

// New validates the given extents and returns them as a new Shape.
// The input slice is copied.
func New(extents ...int) (Shape, error) {
	s := Shape(extents)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// Validate returns an error if any extent is negative.
// Zero extents are allowed and describe an empty tensor.
func (s Shape) Validate() error {
	for i, v := range s {
		if v < 0 {
			return fmt.Errorf("%w: axis %d has extent %d", ErrNegativeExtent, i, v)
		}
	}
	return nil
}

// Rank is the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// Hypervolume returns the product of all extents.
// The empty shape has hypervolume 1.
func (s Shape) Hypervolume() int {
	n := 1
	for _, v := range s {
		n *= v
	}
	return n
}

// CheckedHypervolume is like Shape.Hypervolume, but it fails on negative
// extents and when the result does not fit within the int type.
func (s Shape) CheckedHypervolume() (int, error) {
	size := uint(1)
	for _, v := range s {
		if v < 0 {
			return 0, fmt.Errorf("%w: %d", ErrNegativeExtent, v)
		}
		var hi uint
		if hi, size = bits.Mul(size, uint(v)); hi != 0 {
			return 0, errors.New("int overflow computing hypervolume from shape")
		}
	}
	if size > math.MaxInt {
		return 0, fmt.Errorf("hypervolume computed from shape is too large for int type: %d", size)
	}
	return int(size), nil
}

// Equal reports whether two shapes have the same extents.
// A nil shape equals an empty one.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
// The copy of an empty shape is nil.
func (s Shape) Clone() Shape {
	if len(s) == 0 {
		return nil
	}
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// String formats the shape as "[d0 d1 ...]".
func (s Shape) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON prevents a nil Shape to be serialized as "null",
// preferring an empty array "[]" instead. This allows the JSON
// value to be compliant with safetensors format.
func (s Shape) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(s))
}
