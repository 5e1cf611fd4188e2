// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// Validate checks the Header content, returning an error on the first
// problem encountered, otherwise nil.
//
// The Header is checked against the following rules:
//
//   - ByteBufferOffset must not be negative
//   - each key in Tensors TensorMap must match the mapped Tensor.Name
//   - the tensors' DataOffsets, once sorted, must cover a contiguous area
//     of the byte-buffer starting from offset 0, without overlaps
//   - for each Tensor, DataOffsets.Begin must be <= DataOffsets.End
//   - for each Tensor, DataOffsets.Len must coincide with the byte size
//     computed from Shape and DType (see Tensor.ByteSize)
func (h Header) Validate() error {
	if h.ByteBufferOffset < 0 {
		return fmt.Errorf("invalid byte-buffer offset negative value %d", h.ByteBufferOffset)
	}
	for k, t := range h.Tensors {
		if k != t.Name {
			return fmt.Errorf("tensor names mismatch: TensorMap key %q, Tensor.Name %q", k, t.Name)
		}
	}

	expectedBegin := 0
	for _, t := range h.Tensors.Sorted() {
		if err := t.validate(expectedBegin); err != nil {
			return fmt.Errorf("invalid tensor %q: %w", t.Name, err)
		}
		expectedBegin = t.DataOffsets.End
	}
	return nil
}

func (t Tensor) validate(expectedBegin int) error {
	off := t.DataOffsets
	if off.Begin != expectedBegin {
		return fmt.Errorf("expected data-offsets begin %d, actual %d", expectedBegin, off.Begin)
	}
	if off.End < off.Begin {
		return fmt.Errorf("expected data-offsets end >= %d (begin), actual %d", off.Begin, off.End)
	}
	byteSize, err := t.ByteSize()
	if err != nil {
		return err
	}
	if byteSize != off.Len() {
		return fmt.Errorf("byte size computed from shape (%d) differs from data-offsets size (%d)", byteSize, off.Len())
	}
	return nil
}

// ByteSize returns the number of bytes taken by the tensor data, computed
// from Shape and DType. An empty shape counts as one scalar value.
// It fails if the DType is invalid, if Shape has a negative extent, or if
// the result does not fit within the int type.
func (t Tensor) ByteSize() (int, error) {
	if err := t.DType.Validate(); err != nil {
		return 0, err
	}
	n, err := t.Shape.CheckedHypervolume()
	if err != nil {
		return 0, err
	}
	hi, size := bits.Mul(uint(n), uint(t.DType.Size()))
	if hi != 0 {
		return 0, errors.New("int overflow computing tensor byte size from shape")
	}
	if size > math.MaxInt {
		return 0, fmt.Errorf("tensor byte size computed from shape is too large for int type: %d", size)
	}
	return int(size), nil
}
