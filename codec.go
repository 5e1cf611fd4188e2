// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nlpodyssey/linalg/dtype"
	"github.com/nlpodyssey/linalg/float16"
)

var le = binary.LittleEndian

// encode appends to buf the little-endian byte representation of values.
// Booleans take one byte each, 0 or 1.
func encode[T dtype.Element](buf []byte, values []T) []byte {
	switch v := any(values).(type) {
	case []bool:
		for _, x := range v {
			if x {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		}
	case []uint8:
		buf = append(buf, v...)
	case []int8:
		for _, x := range v {
			buf = append(buf, byte(x))
		}
	case []uint16:
		for _, x := range v {
			buf = le.AppendUint16(buf, x)
		}
	case []int16:
		for _, x := range v {
			buf = le.AppendUint16(buf, uint16(x))
		}
	case []float16.F16:
		for _, x := range v {
			buf = le.AppendUint16(buf, uint16(x))
		}
	case []float16.BF16:
		for _, x := range v {
			buf = le.AppendUint16(buf, uint16(x))
		}
	case []uint32:
		for _, x := range v {
			buf = le.AppendUint32(buf, x)
		}
	case []int32:
		for _, x := range v {
			buf = le.AppendUint32(buf, uint32(x))
		}
	case []float32:
		for _, x := range v {
			buf = le.AppendUint32(buf, math.Float32bits(x))
		}
	case []uint64:
		for _, x := range v {
			buf = le.AppendUint64(buf, x)
		}
	case []int64:
		for _, x := range v {
			buf = le.AppendUint64(buf, uint64(x))
		}
	case []float64:
		for _, x := range v {
			buf = le.AppendUint64(buf, math.Float64bits(x))
		}
	}
	return buf
}

// decode interprets b as a sequence of little-endian T values.
// Any non-zero byte is a true boolean.
func decode[T dtype.Element](b []byte) ([]T, error) {
	size := dtype.Of[T]().Size()
	if len(b)%size != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of %s size %d", len(b), dtype.Of[T](), size)
	}
	out := make([]T, len(b)/size)

	switch v := any(out).(type) {
	case []bool:
		for i := range v {
			v[i] = b[i] != 0
		}
	case []uint8:
		copy(v, b)
	case []int8:
		for i := range v {
			v[i] = int8(b[i])
		}
	case []uint16:
		for i := range v {
			v[i] = le.Uint16(b[i*2:])
		}
	case []int16:
		for i := range v {
			v[i] = int16(le.Uint16(b[i*2:]))
		}
	case []float16.F16:
		for i := range v {
			v[i] = float16.F16(le.Uint16(b[i*2:]))
		}
	case []float16.BF16:
		for i := range v {
			v[i] = float16.BF16(le.Uint16(b[i*2:]))
		}
	case []uint32:
		for i := range v {
			v[i] = le.Uint32(b[i*4:])
		}
	case []int32:
		for i := range v {
			v[i] = int32(le.Uint32(b[i*4:]))
		}
	case []float32:
		for i := range v {
			v[i] = math.Float32frombits(le.Uint32(b[i*4:]))
		}
	case []uint64:
		for i := range v {
			v[i] = le.Uint64(b[i*8:])
		}
	case []int64:
		for i := range v {
			v[i] = int64(le.Uint64(b[i*8:]))
		}
	case []float64:
		for i := range v {
			v[i] = math.Float64frombits(le.Uint64(b[i*8:]))
		}
	}
	return out, nil
}
