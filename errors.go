// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"errors"
	"fmt"

	"github.com/nlpodyssey/linalg/dtype"
	"github.com/nlpodyssey/linalg/shape"
)

var (
	// ErrBufferSizeMismatch is wrapped by BufferSizeMismatchError.
	ErrBufferSizeMismatch = errors.New("buffer size mismatch")
	// ErrDimensionMismatch is wrapped by DimensionMismatchError.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrDTypeMismatch is wrapped by DTypeMismatchError.
	ErrDTypeMismatch = errors.New("dtype mismatch")
	// ErrTensorNotFound is returned when an archive has no tensor with
	// the requested name.
	ErrTensorNotFound = errors.New("tensor not found")
)

// BufferSizeMismatchError is returned when a buffer length does not equal
// the hypervolume of the shape it is paired with.
type BufferSizeMismatchError struct {
	Shape    shape.Shape
	Expected int
	Actual   int
}

func (e *BufferSizeMismatchError) Error() string {
	return fmt.Sprintf("%s: shape %v requires %d elements, buffer has %d",
		ErrBufferSizeMismatch, e.Shape, e.Expected, e.Actual)
}

func (e *BufferSizeMismatchError) Unwrap() error { return ErrBufferSizeMismatch }

// DimensionMismatchError is returned by operations whose operands have
// incompatible shapes.
type DimensionMismatchError struct {
	// Op is the name of the failed operation, such as "matmul".
	Op    string
	Left  shape.Shape
	Right shape.Shape
	// Rank, if positive, is the rank required by Op, which Left does not
	// have. Right is unused then.
	Rank int
}

func (e *DimensionMismatchError) Error() string {
	if e.Rank > 0 {
		return fmt.Sprintf("%s: %s requires rank %d, shape %v has rank %d",
			ErrDimensionMismatch, e.Op, e.Rank, e.Left, e.Left.Rank())
	}
	return fmt.Sprintf("%s: %s between shapes %v and %v", ErrDimensionMismatch, e.Op, e.Left, e.Right)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// DTypeMismatchError is returned when an archived tensor is stored with
// a data type other than the one requested.
type DTypeMismatchError struct {
	Name     string
	Expected dtype.DType
	Actual   dtype.DType
}

func (e *DTypeMismatchError) Error() string {
	return fmt.Sprintf("%s: tensor %q is stored as %s, expected %s", ErrDTypeMismatch, e.Name, e.Actual, e.Expected)
}

func (e *DTypeMismatchError) Unwrap() error { return ErrDTypeMismatch }
