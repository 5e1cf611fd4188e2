// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linalg provides n-dimensional tensors backed by a flat
// row-major buffer.
//
// A Tensor can be looked at through a lazy view (see package transform):
// reshaping or transposing it only changes how logical indices map onto
// the buffer, and no data is moved until Tensor.Commit is called.
//
// Arr1 and Arr2 are thin vector and matrix wrappers providing the usual
// arithmetic on top of tensors.
//
// Tensors can be persisted to, and loaded from, archives in the
// safetensors layout: see Serialize, ReadAll and OpenLazy.
package linalg
