// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/nlpodyssey/linalg/dtype"
	"github.com/nlpodyssey/linalg/shape"
)

// Tensor provides properties of a tensor, as described within an
// archive header.
type Tensor struct {
	Name        string
	DType       dtype.DType
	Shape       shape.Shape
	DataOffsets DataOffsets
}

type jsonTensor struct {
	DType       dtype.DType `json:"dtype"`
	Shape       shape.Shape `json:"shape"`
	DataOffsets DataOffsets `json:"data_offsets"`
}

// MarshalJSON encodes the Tensor properties, except the name, which is
// the key of the tensor within the enclosing header object.
func (t Tensor) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonTensor{
		DType:       t.DType,
		Shape:       t.Shape,
		DataOffsets: t.DataOffsets,
	})
}

// TensorMap is a set of Tensor objects mapped by their name.
type TensorMap map[string]Tensor

// TensorSlice is a slice of Tensor objects.
type TensorSlice []Tensor

// Sorted returns all the tensors of the map, ordered by ascending
// DataOffsets (ties broken by name). It returns nil for an empty map.
func (tm TensorMap) Sorted() TensorSlice {
	if len(tm) == 0 {
		return nil
	}
	ts := make(TensorSlice, 0, len(tm))
	for _, t := range tm {
		ts = append(ts, t)
	}
	ts.SortByDataOffsets()
	return ts
}

// SortByDataOffsets sorts the slice in place by ascending DataOffsets.
func (ts TensorSlice) SortByDataOffsets() {
	slices.SortFunc(ts, func(a, b Tensor) int {
		if c := a.DataOffsets.Compare(b.DataOffsets); c != 0 {
			return c
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
}

// TensorMap indexes the slice by tensor name. It fails on the first
// repeated name.
func (ts TensorSlice) TensorMap() (TensorMap, error) {
	tm := make(TensorMap, len(ts))
	for _, t := range ts {
		if _, ok := tm[t.Name]; ok {
			return nil, &DuplicateNameError{Name: t.Name}
		}
		tm[t.Name] = t
	}
	return tm, nil
}

// DuplicateNameError reports a tensor name occurring more than once.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "duplicate tensor name " + strconv.Quote(e.Name)
}
