// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package header models the leading part of a tensor archive: a JSON
// object describing name, element type, shape and byte range of each
// stored tensor, plus free-form metadata.
package header

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// metadataKey is the reserved JSON key holding the archive Metadata.
const metadataKey = "__metadata__"

// Header provides tensors information and metadata of an archive.
type Header struct {
	Tensors  TensorMap
	Metadata Metadata
	// ByteBufferOffset indicates the byte index position where the byte-buffer
	// is expected to start, relative to the beginning of the whole
	// archive data stream (or file).
	ByteBufferOffset int
}

// Metadata is a set of free-form key/value string pairs.
type Metadata map[string]string

// MarshalJSON encodes the Header as a JSON object with one member for each
// tensor, plus the "__metadata__" member if Metadata is not empty.
// Members are sorted by key, so equal headers always encode the same way.
//
// ByteBufferOffset is not part of the encoding.
func (h Header) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(h.Tensors)+1)
	for name, t := range h.Tensors {
		if name == metadataKey {
			return nil, fmt.Errorf("tensor name %q is reserved", name)
		}
		obj[name] = t
	}
	if len(h.Metadata) > 0 {
		obj[metadataKey] = h.Metadata
	}
	return json.Marshal(obj)
}

// UnmarshalJSON decodes a Header from the JSON object found in an archive,
// applying the same rules as Read. ByteBufferOffset is left to zero.
func (h *Header) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSON(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return err
	}
	v, err := convertRawHeader(raw)
	if err != nil {
		return err
	}
	*h = v
	return nil
}
