// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/nlpodyssey/linalg/dtype"
	"github.com/nlpodyssey/linalg/header"
	"k8s.io/klog/v2"
)

// Named pairs a tensor with the name it is stored under in an archive.
type Named[T any] struct {
	Name   string
	Tensor *Tensor[T]
}

// Serialize writes the given tensors and additional metadata to "w", in
// safetensors layout: the little-endian uint64 size of a JSON header,
// the header itself (space-padded to a multiple of 8 bytes), then the data
// of each tensor, little-endian, one after the other.
//
// Each tensor is written as seen through its active view, in row-major
// order, with the view's shape. Pending transforms are not committed: the
// tensors are left unchanged.
//
// Tensor names must be unique, and must not be "__metadata__".
//
// T is restricted to dtype.Element, which lacks the platform-sized int and
// uint: the archive layout only knows fixed-size element types.
func Serialize[T dtype.Element](w io.Writer, tensors []Named[T], metadata map[string]string) error {
	tensorSlice, err := makeHeaderTensorSlice(tensors)
	if err != nil {
		return err
	}
	head, err := makeValidHeader(tensorSlice, metadata)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if err = writeHeader(bw, head); err != nil {
		return err
	}
	if err = writeTensors(bw, tensors, tensorSlice); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush serialized data: %w", err)
	}

	if klog.V(2).Enabled() {
		size := 0
		if n := len(tensorSlice); n > 0 {
			size = tensorSlice[n-1].DataOffsets.End
		}
		klog.V(2).InfoS("Serialized tensors", "count", len(tensors), "dtype", dtype.Of[T](), "dataBytes", size)
	}
	return nil
}

func makeHeaderTensorSlice[T dtype.Element](tensors []Named[T]) (header.TensorSlice, error) {
	dt := dtype.Of[T]()
	out := make(header.TensorSlice, len(tensors))
	offset := 0
	for i, nt := range tensors {
		if nt.Tensor == nil {
			return nil, fmt.Errorf("tensor %q is nil", nt.Name)
		}
		ht := header.Tensor{
			Name:  nt.Name,
			DType: dt,
			Shape: nt.Tensor.Shape(),
		}
		size, err := ht.ByteSize()
		if err != nil {
			return nil, fmt.Errorf("invalid tensor %q: %w", nt.Name, err)
		}
		ht.DataOffsets = header.DataOffsets{Begin: offset, End: offset + size}
		offset = ht.DataOffsets.End
		out[i] = ht
	}
	return out, nil
}

func makeValidHeader(tensors header.TensorSlice, metadata map[string]string) (header.Header, error) {
	tm, err := tensors.TensorMap()
	if err != nil {
		return header.Header{}, err
	}
	head := header.Header{
		Tensors:  tm,
		Metadata: metadata,
	}
	if err = head.Validate(); err != nil {
		return header.Header{}, fmt.Errorf("failed to generate a valid header: %w", err)
	}
	return head, nil
}

var headerPadding = [8]byte{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}

func writeHeader(w io.Writer, head header.Header) error {
	jsonHeader, err := head.MarshalJSON()
	if err != nil {
		return err
	}

	jsonLen := len(jsonHeader)
	// forcing 8-byte alignment
	toAlign := (8 - jsonLen%8) % 8

	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(jsonLen+toAlign))
	if _, err = w.Write(size[:]); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err = w.Write(jsonHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if toAlign > 0 {
		if _, err = w.Write(headerPadding[:toAlign]); err != nil {
			return fmt.Errorf("failed to write header padding: %w", err)
		}
	}
	return nil
}

func writeTensors[T dtype.Element](w io.Writer, tensors []Named[T], tensorSlice header.TensorSlice) error {
	var buf []byte
	for i, nt := range tensors {
		ht := tensorSlice[i]
		values, err := nt.Tensor.Values()
		if err != nil {
			return fmt.Errorf("failed to read values of tensor %q: %w", ht.Name, err)
		}
		buf = encode(buf[:0], values)
		if len(buf) != ht.DataOffsets.Len() {
			return fmt.Errorf("failed to write data of tensor %q: expected %d bytes, actual %d",
				ht.Name, ht.DataOffsets.Len(), len(buf))
		}
		if _, err = w.Write(buf); err != nil {
			return fmt.Errorf("failed to write data of tensor %q: %w", ht.Name, err)
		}
	}
	return nil
}
