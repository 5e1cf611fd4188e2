// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"fmt"
	"io"

	"github.com/nlpodyssey/linalg/dtype"
	"github.com/nlpodyssey/linalg/header"
	"k8s.io/klog/v2"
)

// Archive is the result of reading the full content of an archive data
// stream (or file), with all tensors loaded in memory.
type Archive[T any] struct {
	// Tensors are sorted by their position within the archive.
	Tensors  []Named[T]
	Metadata map[string]string
}

// Tensor returns the tensor with the given name, and whether it has been
// found.
func (a Archive[T]) Tensor(name string) (*Tensor[T], bool) {
	for _, nt := range a.Tensors {
		if nt.Name == name {
			return nt.Tensor, true
		}
	}
	return nil, false
}

// ReadAll reads and interprets the whole content of an archive data
// stream (or file), as written by Serialize. After reading and validating
// the header, the data of each tensor is read and loaded in memory.
//
// All tensors must be stored with the DType of T, otherwise a
// *DTypeMismatchError is returned before any tensor data is read.
//
// If headerSizeLimit is set to a positive number, its value is used to
// limit the size of the JSON header. This can be useful to guard against
// attacks or tampered/garbage data, avoiding giant memory allocations to
// hold header information. A value of zero, or a negative number, have
// no limiting effects.
func ReadAll[T dtype.Element](r io.Reader, headerSizeLimit int) (Archive[T], error) {
	head, err := readValidHeader(r, headerSizeLimit)
	if err != nil {
		return Archive[T]{}, err
	}

	sorted := head.Tensors.Sorted()
	if err = checkDTypes[T](sorted); err != nil {
		return Archive[T]{}, err
	}

	tensors := make([]Named[T], len(sorted))
	for i, ht := range sorted {
		t, err := readTensor[T](r, ht)
		if err != nil {
			return Archive[T]{}, fmt.Errorf("failed to read data of tensor %q: %w", ht.Name, err)
		}
		tensors[i] = Named[T]{Name: ht.Name, Tensor: t}
	}

	klog.V(2).InfoS("Read tensors", "count", len(tensors), "dtype", dtype.Of[T](), "headerBytes", head.ByteBufferOffset)
	return Archive[T]{
		Tensors:  tensors,
		Metadata: head.Metadata,
	}, nil
}

func readValidHeader(r io.Reader, sizeLimit int) (header.Header, error) {
	head, err := header.Read(r, sizeLimit)
	if err != nil {
		return header.Header{}, fmt.Errorf("failed to read safetensors header: %w", err)
	}
	if err = head.Validate(); err != nil {
		return header.Header{}, fmt.Errorf("safetensors header is invalid: %w", err)
	}
	return head, nil
}

func checkDTypes[T dtype.Element](tensors header.TensorSlice) error {
	want := dtype.Of[T]()
	for _, ht := range tensors {
		if ht.DType != want {
			return &DTypeMismatchError{Name: ht.Name, Expected: want, Actual: ht.DType}
		}
	}
	return nil
}

// readTensor reads the data of ht from r, which must be positioned at
// the beginning of it.
func readTensor[T dtype.Element](r io.Reader, ht header.Tensor) (*Tensor[T], error) {
	b := make([]byte, ht.DataOffsets.Len())
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	values, err := decode[T](b)
	if err != nil {
		return nil, err
	}
	return New(values, ht.Shape)
}
