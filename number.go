// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "github.com/nlpodyssey/linalg/shape"

// Number is the set of element types supported by Arr1 and Arr2.
//
// It is wider than dtype.Element: int and uint have no archive DType, so
// tensors of those types must be converted (for example to int64) before
// they can be passed to Serialize.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Indexer is implemented by Tensor, Arr1 and Arr2.
type Indexer[T any] interface {
	Shape() shape.Shape
	Strides() []int
	At(logical ...int) (T, error)
	Set(value T, logical ...int) error
}

var (
	_ Indexer[float32] = &Tensor[float32]{}
	_ Indexer[float32] = &Arr1[float32]{}
	_ Indexer[float32] = &Arr2[float32]{}
)
