// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

// Strides returns the canonical row-major ("C") strides of the shape:
// the last axis has stride 1 and stride[i] = stride[i+1] * s[i+1].
//
// Strides are recomputed on every call.
func (s Shape) Strides() []int {
	if len(s) == 0 {
		return nil
	}
	strides := make([]int, len(s))
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// IsCanonical reports whether strides are the row-major strides of s.
func IsCanonical(s Shape, strides []int) bool {
	if len(strides) != len(s) {
		return false
	}
	expected := 1
	for i := len(s) - 1; i >= 0; i-- {
		if strides[i] != expected {
			return false
		}
		expected *= s[i]
	}
	return true
}
