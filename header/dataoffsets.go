// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"encoding/json"
	"fmt"
)

// DataOffsets describes "[Begin, End)" byte range of the tensor's data
// within the archive byte-buffer.
//
// Both positions are relative to the beginning of the byte-buffer.
type DataOffsets struct {
	// Begin is the lower bound byte index (included).
	Begin int
	// End is the upper bound byte index (excluded).
	End int
}

// Len returns the number of bytes in the range.
func (a DataOffsets) Len() int {
	return a.End - a.Begin
}

// Compare returns -1, 0 or +1 depending on whether "a" is ordered before,
// together with, or after "b". Begin is compared first, then End.
func (a DataOffsets) Compare(b DataOffsets) int {
	switch {
	case a.Begin < b.Begin:
		return -1
	case a.Begin > b.Begin:
		return 1
	case a.End < b.End:
		return -1
	case a.End > b.End:
		return 1
	}
	return 0
}

// UnmarshalJSON deserializes a DataOffsets object from an array of two
// numbers.
func (a *DataOffsets) UnmarshalJSON(b []byte) error {
	var decoded []int
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	if len(decoded) != 2 {
		return fmt.Errorf("invalid data-offsets value: %q", string(b))
	}
	*a = DataOffsets{Begin: decoded[0], End: decoded[1]}
	return nil
}

// MarshalJSON serializes a DataOffsets object to an array of two numbers.
func (a DataOffsets) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{a.Begin, a.End})
}
