// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package float16 provides 16-bit floating point element types, stored as
// raw bits, with conversions from and to float32.
package float16

import "math"

// F16 is a 16-bit IEEE 754 half-precision floating-point value,
// represented as raw bits (uint16).
type F16 uint16

// BF16 is a 16-bit brain floating-point value, represented as raw
// bits (uint16). It shares sign and exponent layout with float32.
type BF16 uint16

// F16FromFloat32 narrows f to half precision, rounding to nearest even.
// Values too large to be represented become infinities.
func F16FromFloat32(f float32) F16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int32(b>>23) & 0xff
	mant := b & 0x7fffff

	if exp == 0xff {
		if mant != 0 {
			return F16(sign | 0x7e00)
		}
		return F16(sign | 0x7c00)
	}

	e := exp - 127 + 15
	switch {
	case e >= 0x1f:
		return F16(sign | 0x7c00)
	case e <= 0:
		if e < -10 {
			return F16(sign)
		}
		mant |= 0x800000
		shift := uint32(14 - e)
		half := mant >> shift
		rem := mant & (1<<shift - 1)
		mid := uint32(1) << (shift - 1)
		if rem > mid || (rem == mid && half&1 == 1) {
			half++
		}
		return F16(sign | uint16(half))
	}

	// a carry out of the mantissa correctly bumps the exponent
	half := uint32(e)<<10 | mant>>13
	rem := mant & 0x1fff
	if rem > 0x1000 || (rem == 0x1000 && half&1 == 1) {
		half++
	}
	return F16(sign | uint16(half))
}

// Float32 widens the value to float32. The conversion is exact.
func (h F16) Float32() float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h & 0x3ff)

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3ff
		return math.Float32frombits(sign | e<<23 | mant<<13)
	case 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mant<<13)
	}
	return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
}

// BF16FromFloat32 narrows f to brain floating point, rounding to
// nearest even.
func BF16FromFloat32(f float32) BF16 {
	b := math.Float32bits(f)
	if b&0x7fffffff > 0x7f800000 {
		return BF16(b>>16 | 0x0040)
	}
	b += 0x7fff + (b>>16)&1
	return BF16(b >> 16)
}

// Float32 widens the value to float32. The conversion is exact.
func (b BF16) Float32() float32 {
	return math.Float32frombits(uint32(b) << 16)
}
