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

// LazyArchive allows to read an archive lazy-loading the data of
// individual tensors.
//
// It only retains in-memory information from the archive header, and
// the offset of the byte-buffer within the underlying io.ReadSeeker.
type LazyArchive struct {
	rs     io.ReadSeeker
	head   header.Header
	sorted header.TensorSlice
	// dataOffset is the byte-buffer offset relative to the start of rs
	dataOffset int64
}

// OpenLazy reads from "rs" the archive header and validates it, then
// returns a new LazyArchive in case of success, otherwise nil and an
// error. See ReadAll for the meaning of headerSizeLimit.
//
// The current "seek" position of "rs" is used as a base for all further
// seek-based operations to read tensor data.
//
// The given io.ReadSeeker must remain available for operations as long as
// the LazyArchive is used. For example, if "rs" is a file, it should not
// be closed until you got all the tensors you need. Loaded tensors are
// completely independent of it.
func OpenLazy(rs io.ReadSeeker, headerSizeLimit int) (*LazyArchive, error) {
	initialOffset, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get initial offset: %w", err)
	}
	head, err := readValidHeader(rs, headerSizeLimit)
	if err != nil {
		return nil, err
	}
	dataOffset, err := checkedAddNonNegInt64(initialOffset, int64(head.ByteBufferOffset))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate total byte-buffer offset: %w", err)
	}

	klog.V(2).InfoS("Opened lazy archive", "tensors", len(head.Tensors), "dataOffset", dataOffset)
	return &LazyArchive{
		rs:         rs,
		head:       head,
		sorted:     head.Tensors.Sorted(),
		dataOffset: dataOffset,
	}, nil
}

// Metadata returns the free-form key/value string pairs as read from the
// archive header. It can be nil.
//
// It returns the same value retained internally, without copy.
func (a *LazyArchive) Metadata() map[string]string {
	return a.head.Metadata
}

// Names returns the names of all tensors, sorted by their position within
// the archive. It returns nil if there are no tensors.
func (a *LazyArchive) Names() []string {
	if len(a.sorted) == 0 {
		return nil
	}
	names := make([]string, len(a.sorted))
	for i, t := range a.sorted {
		names[i] = t.Name
	}
	return names
}

// Info returns the header description of a tensor, and whether it has
// been found.
func (a *LazyArchive) Info(name string) (header.Tensor, bool) {
	t, ok := a.head.Tensors[name]
	if ok {
		t.Shape = t.Shape.Clone()
	}
	return t, ok
}

// Load reads the data of the named tensor and returns it as a new Tensor.
//
// The tensor must be stored with the DType of T, otherwise a
// *DTypeMismatchError is returned. An unknown name results in an error
// wrapping ErrTensorNotFound.
func Load[T dtype.Element](a *LazyArchive, name string) (*Tensor[T], error) {
	ht, ok := a.head.Tensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	if want := dtype.Of[T](); ht.DType != want {
		return nil, &DTypeMismatchError{Name: name, Expected: want, Actual: ht.DType}
	}
	if err := a.seek(ht); err != nil {
		return nil, err
	}
	t, err := readTensor[T](a.rs, ht)
	if err != nil {
		return nil, fmt.Errorf("failed to read data of tensor %q: %w", name, err)
	}
	return t, nil
}

// CopyData copies the raw little-endian data of the named tensor to w,
// without loading it entirely in memory.
func (a *LazyArchive) CopyData(w io.Writer, name string) (int64, error) {
	ht, ok := a.head.Tensors[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	if ht.DataOffsets.Len() == 0 {
		return 0, nil
	}
	if err := a.seek(ht); err != nil {
		return 0, err
	}
	return io.CopyN(w, a.rs, int64(ht.DataOffsets.Len()))
}

func (a *LazyArchive) seek(ht header.Tensor) error {
	offset, err := checkedAddNonNegInt64(a.dataOffset, int64(ht.DataOffsets.Begin))
	if err != nil {
		return fmt.Errorf("failed to calculate tensor data offset: %w", err)
	}
	if _, err = a.rs.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to tensor data offset: %w", err)
	}
	return nil
}
