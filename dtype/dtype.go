// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dtype enumerates the element data types a tensor can be
// persisted with, and maps Go element types onto them.
package dtype

import (
	"fmt"

	"github.com/nlpodyssey/linalg/float16"
)

// DType represents the data type of tensor elements.
type DType uint8

const (
	// Bool represents an 8-bit boolean data type.
	Bool DType = iota + 1
	// U8 represents an 8-bit unsigned integer data type.
	U8
	// I8 represents an 8-bit signed integer data type.
	I8
	// U16 represents a 16-bit unsigned integer data type.
	U16
	// I16 represents a 16-bit signed integer data type.
	I16
	// F16 represents a 16-bit half-precision floating point data type.
	F16
	// BF16 represents a 16-bit brain floating point data type.
	BF16
	// U32 represents a 32-bit unsigned integer data type.
	U32
	// I32 represents a 32-bit signed integer data type.
	I32
	// F32 represents a 32-bit floating point data type.
	F32
	// U64 represents a 64-bit unsigned integer data type.
	U64
	// I64 represents a 64-bit signed integer data type.
	I64
	// F64 represents a 64-bit floating point data type.
	F64
)

// Element is the set of Go types that map to a DType.
type Element interface {
	bool | uint8 | int8 | uint16 | int16 | float16.F16 | float16.BF16 |
		uint32 | int32 | float32 | uint64 | int64 | float64
}

var (
	dTypeToString = [...]string{
		Bool: "BOOL",
		U8:   "U8",
		I8:   "I8",
		U16:  "U16",
		I16:  "I16",
		F16:  "F16",
		BF16: "BF16",
		U32:  "U32",
		I32:  "I32",
		F32:  "F32",
		U64:  "U64",
		I64:  "I64",
		F64:  "F64",
	}
	dTypeToSize = [...]int{
		Bool: 1,
		U8:   1,
		I8:   1,
		U16:  2,
		I16:  2,
		F16:  2,
		BF16: 2,
		U32:  4,
		I32:  4,
		F32:  4,
		U64:  8,
		I64:  8,
		F64:  8,
	}
	stringToDType = func() map[string]DType {
		m := make(map[string]DType, len(dTypeToString))
		for dt, s := range dTypeToString {
			if s != "" {
				m[s] = DType(dt)
			}
		}
		return m
	}()
)

// Of returns the DType of the Go element type T.
func Of[T Element]() DType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case uint8:
		return U8
	case int8:
		return I8
	case uint16:
		return U16
	case int16:
		return I16
	case float16.F16:
		return F16
	case float16.BF16:
		return BF16
	case uint32:
		return U32
	case int32:
		return I32
	case float32:
		return F32
	case uint64:
		return U64
	case int64:
		return I64
	case float64:
		return F64
	}
	panic(fmt.Sprintf("dtype: unreachable element type %T", zero))
}

// Parse returns the DType named s (such as "F32").
func Parse(s string) (DType, error) {
	dt, ok := stringToDType[s]
	if !ok {
		return 0, fmt.Errorf("invalid DType string value %q", s)
	}
	return dt, nil
}

// Validate returns an error if the DType is not valid, otherwise nil.
func (dt DType) Validate() error {
	if dt == 0 || dt > F64 {
		return fmt.Errorf("invalid DType(%d)", dt)
	}
	return nil
}

// String returns a string representation of a DType.
func (dt DType) String() string {
	if err := dt.Validate(); err != nil {
		return err.Error()
	}
	return dTypeToString[dt]
}

// Size returns the size in bytes of one element of this data type,
// or -1 if the DType value is invalid.
func (dt DType) Size() int {
	if err := dt.Validate(); err != nil {
		return -1
	}
	return dTypeToSize[dt]
}

// MarshalJSON satisfies json.Marshaler interface.
func (dt DType) MarshalJSON() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + dTypeToString[dt] + `"`), nil
}

// UnmarshalJSON satisfies json.Unmarshaler interface.
func (dt *DType) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("failed to JSON-unmarshal DType from value %q", string(b))
	}
	v, err := Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return fmt.Errorf("failed to JSON-unmarshal DType from value %q", string(b))
	}
	*dt = v
	return nil
}

// MarshalText satisfies encoding.TextMarshaler interface.
func (dt DType) MarshalText() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(dTypeToString[dt]), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler interface.
func (dt *DType) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return fmt.Errorf("failed to text-unmarshal DType from value %q", string(text))
	}
	*dt = v
	return nil
}
