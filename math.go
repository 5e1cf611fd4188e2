// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"errors"
	"math"
	"math/bits"
)

// absDiff returns |a - b|, without wrapping around for unsigned types.
func absDiff[T Number](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}

var errInt64SumOverflow = errors.New("int64 sum overflow")

func checkedAddNonNegInt64(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, errors.New("unexpected negative number")
	}
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > math.MaxInt64 {
		return 0, errInt64SumOverflow
	}
	return int64(sum), nil
}
