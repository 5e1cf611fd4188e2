// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"

	"github.com/nlpodyssey/linalg/shape"
)

// Chained composes transforms. Stages are listed in application order:
// the first stage is applied directly to the buffer, and each following
// stage views the output of the previous one as a row-major buffer.
//
// For example, Chained of a Transpose followed by a Reshape flattens the
// transposed view correctly without committing it first.
type Chained struct {
	stages []Transform
	// shapes[k] and strides[k] cache OutShape of stage k and its
	// canonical strides.
	shapes  []shape.Shape
	strides [][]int
}

// NewChained composes the given stages. It fails with ErrEmptyChain if no
// stage is given, and with a *ShapeError if two adjacent stages do not
// have the same hypervolume.
func NewChained(stages ...Transform) (Chained, error) {
	if len(stages) == 0 {
		return Chained{}, ErrEmptyChain
	}
	c := Chained{
		stages:  make([]Transform, len(stages)),
		shapes:  make([]shape.Shape, len(stages)),
		strides: make([][]int, len(stages)),
	}
	for k, stage := range stages {
		if stage == nil {
			return Chained{}, fmt.Errorf("chained transforms: stage %d is nil", k)
		}
		s := stage.OutShape()
		if k > 0 && s.Hypervolume() != c.shapes[k-1].Hypervolume() {
			return Chained{}, fmt.Errorf("chained transforms: stage %d: %w", k, &ShapeError{Src: c.shapes[k-1], Dst: s})
		}
		c.stages[k] = stage
		c.shapes[k] = s
		c.strides[k] = s.Strides()
	}
	return c, nil
}

// Stages returns the composed transforms in application order.
func (c Chained) Stages() []Transform {
	out := make([]Transform, len(c.stages))
	copy(out, c.stages)
	return out
}

// ToFlat resolves the index through the last stage, then converts each
// intermediate offset into a logical index of the previous stage.
func (c Chained) ToFlat(logical []int) (int, error) {
	last := len(c.stages) - 1
	if last < 0 {
		return 0, ErrEmptyChain
	}
	offset, err := c.stages[last].ToFlat(logical)
	if err != nil {
		return 0, err
	}
	for k := last - 1; k >= 0; k-- {
		idx, err := shape.Unravel(offset, c.shapes[k])
		if err != nil {
			return 0, fmt.Errorf("chained transforms: stage %d: %w", k+1, err)
		}
		if offset, err = c.stages[k].ToFlat(idx); err != nil {
			return 0, err
		}
	}
	return offset, nil
}

// ToLogical applies the stage inverses in order.
func (c Chained) ToLogical(offset int) ([]int, error) {
	if len(c.stages) == 0 {
		return nil, ErrEmptyChain
	}
	logical, err := c.stages[0].ToLogical(offset)
	if err != nil {
		return nil, err
	}
	for k := 1; k < len(c.stages); k++ {
		offset = shape.FlatIndex(logical, c.strides[k-1])
		if logical, err = c.stages[k].ToLogical(offset); err != nil {
			return nil, err
		}
	}
	return logical, nil
}

// OutShape is the OutShape of the last stage.
func (c Chained) OutShape() shape.Shape {
	if len(c.shapes) == 0 {
		return nil
	}
	return c.shapes[len(c.shapes)-1].Clone()
}

// OutStrides are the OutStrides of the last stage. They are relative to
// the output of the previous stage, not to the buffer, unless the chain
// has a single stage.
func (c Chained) OutStrides() []int {
	if len(c.stages) == 0 {
		return nil
	}
	return c.stages[len(c.stages)-1].OutStrides()
}
