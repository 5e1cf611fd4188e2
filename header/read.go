// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nlpodyssey/linalg/dtype"
	"github.com/nlpodyssey/linalg/shape"
)

type rawHeader map[string]map[string]any

// Read reads and parses from "r" the initial part of an archive: the
// little-endian uint64 header size, followed by the JSON header itself.
//
// If sizeLimit is positive, a declared header size above it is rejected
// before any further reading. A value of zero, or a negative number, have
// no limiting effects (apart from the hard math.MaxInt limit).
//
// Note that after successfully reading and parsing, NO validation is
// performed on the obtained Header (see Header.Validate).
func Read(r io.Reader, sizeLimit int) (Header, error) {
	size, err := readSize(r)
	switch {
	case err != nil:
		return Header{}, err
	case size < 2: // a bare minimum header is "{}"
		return Header{}, fmt.Errorf("header size too small: %d", size)
	case size > math.MaxInt-8: // 8 bytes are the uint64 "size", already read
		return Header{}, fmt.Errorf("header size too large: %d", size)
	case sizeLimit > 0 && size > uint64(sizeLimit):
		return Header{}, fmt.Errorf("header size %d exceeds limit %d", size, sizeLimit)
	}

	raw, err := decodeJSON(r, int64(size))
	if err != nil {
		return Header{}, fmt.Errorf("failed to JSON-decode header: %w", err)
	}
	h, err := convertRawHeader(raw)
	if err != nil {
		return Header{}, err
	}
	h.ByteBufferOffset = 8 + int(size)
	return h, nil
}

func readSize(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("failed to read header size: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// decodeJSON decodes exactly "size" bytes from r as a single JSON object,
// tolerating whitespace padding around it.
func decodeJSON(r io.Reader, size int64) (rawHeader, error) {
	dec := json.NewDecoder(&io.LimitedReader{R: r, N: size})
	dec.UseNumber()

	var raw rawHeader
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if off := dec.InputOffset(); off != size {
		if _, err := dec.Token(); err == nil {
			return nil, fmt.Errorf("unexpected data at byte offset %d", off)
		} else if err != io.EOF {
			return nil, err
		}
	}
	return raw, nil
}

func convertRawHeader(raw rawHeader) (h Header, err error) {
	if rawMeta, ok := raw[metadataKey]; ok {
		delete(raw, metadataKey)
		if h.Metadata, err = convertRawMetadata(rawMeta); err != nil {
			return Header{}, err
		}
	}
	if len(raw) == 0 {
		return h, nil
	}
	h.Tensors = make(TensorMap, len(raw))
	for name, rawTensor := range raw {
		t, err := convertRawTensor(name, rawTensor)
		if err != nil {
			return Header{}, fmt.Errorf("failed to interpret header tensor %q: %w", name, err)
		}
		h.Tensors[name] = t
	}
	return h, nil
}

func convertRawMetadata(raw map[string]any) (Metadata, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	m := make(Metadata, len(raw))
	for key, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("failed to interpret header metadata: found non-string value for key %q", key)
		}
		m[key] = s
	}
	return m, nil
}

func convertRawTensor(name string, raw map[string]any) (Tensor, error) {
	strDType, err := field[string](raw, "dtype", "string")
	if err != nil {
		return Tensor{}, err
	}
	dt, err := dtype.Parse(strDType)
	if err != nil {
		return Tensor{}, fmt.Errorf(`invalid "dtype" value: %q`, strDType)
	}

	rawShape, err := field[[]any](raw, "shape", "array")
	if err != nil {
		return Tensor{}, err
	}
	extents, err := convertInts("shape", rawShape)
	if err != nil {
		return Tensor{}, err
	}
	s, err := shape.New(extents...)
	if err != nil {
		return Tensor{}, fmt.Errorf(`invalid "shape" value: %w`, err)
	}

	rawOffsets, err := field[[]any](raw, "data_offsets", "array")
	if err != nil {
		return Tensor{}, err
	}
	if l := len(rawOffsets); l != 2 {
		return Tensor{}, fmt.Errorf(`bad "data_offsets" length: expected 2, actual %d`, l)
	}
	offsets, err := convertNonNegInts("data_offsets", rawOffsets)
	if err != nil {
		return Tensor{}, err
	}

	if len(raw) != 3 {
		return Tensor{}, errors.New("JSON object contains unknown keys")
	}
	return Tensor{
		Name:        name,
		DType:       dt,
		Shape:       s,
		DataOffsets: DataOffsets{Begin: offsets[0], End: offsets[1]},
	}, nil
}

// field looks up raw[key] and asserts its dynamic type; kind names the
// expected JSON type in error messages.
func field[T any](raw map[string]any, key, kind string) (T, error) {
	var zero T
	v, ok := raw[key]
	if !ok {
		return zero, fmt.Errorf("%q is missing", key)
	}
	tv, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("found non-%s %q value", kind, key)
	}
	return tv, nil
}

// convertInts converts JSON numbers to ints. Sign checks are left to the
// caller.
func convertInts(key string, items []any) ([]int, error) {
	out := make([]int, len(items))
	for i, item := range items {
		var err error
		if out[i], err = convertInt(item); err != nil {
			return nil, fmt.Errorf("failed to interpret %q value at index %d: %w", key, i, err)
		}
	}
	return out, nil
}

func convertNonNegInts(key string, items []any) ([]int, error) {
	out, err := convertInts(key, items)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		if v < 0 {
			return nil, fmt.Errorf("failed to interpret %q value at index %d: value is negative: %d", key, i, v)
		}
	}
	return out, nil
}

func convertInt(value any) (int, error) {
	jNum, ok := value.(json.Number)
	if !ok {
		return 0, errors.New("value is not a number")
	}
	num, err := strconv.ParseInt(jNum.String(), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("failed to convert value %q to int: %w", jNum.String(), err)
	}
	return int(num), nil
}
