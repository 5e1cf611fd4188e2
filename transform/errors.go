// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"errors"
	"fmt"

	"github.com/nlpodyssey/linalg/shape"
)

// Common errors.
var (
	ErrHypervolumeMismatch = errors.New("hypervolume mismatch")
	ErrWrongLength         = errors.New("permutation has wrong length")
	ErrOutOfBounds         = errors.New("permutation value out of bounds")
	ErrDuplicate           = errors.New("permutation value repeated")
	ErrEmptyChain          = errors.New("chained transforms require at least one stage")
)

// ShapeError reports two shapes that cannot describe the same buffer
// because their hypervolumes differ.
type ShapeError struct {
	Src shape.Shape
	Dst shape.Shape
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape %v (%d elements) vs shape %v (%d elements)",
		ErrHypervolumeMismatch, e.Src, e.Src.Hypervolume(), e.Dst, e.Dst.Hypervolume())
}

// Unwrap returns ErrHypervolumeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrHypervolumeMismatch
}

// PermutationErrorKind classifies a PermutationError.
type PermutationErrorKind uint8

const (
	// WrongLength means the permutation length differs from the rank.
	WrongLength PermutationErrorKind = iota + 1
	// OutOfBounds means a permutation entry is not a valid axis.
	OutOfBounds
	// Duplicate means an axis appears more than once.
	Duplicate
)

// PermutationError reports an invalid axis permutation.
type PermutationError struct {
	Kind        PermutationErrorKind
	Permutation []int
	// Expected and Actual are the rank and the permutation length
	// (WrongLength only).
	Expected, Actual int
	// Value is the offending entry (OutOfBounds and Duplicate).
	Value int
	// Rank is the number of axes being permuted.
	Rank int
}

// Error implements the error interface.
func (e *PermutationError) Error() string {
	switch e.Kind {
	case WrongLength:
		return fmt.Sprintf("%s: permutation %v: expected %d values, actual %d", ErrWrongLength, e.Permutation, e.Expected, e.Actual)
	case OutOfBounds:
		return fmt.Sprintf("%s: permutation %v: value %d, rank %d", ErrOutOfBounds, e.Permutation, e.Value, e.Rank)
	case Duplicate:
		return fmt.Sprintf("%s: permutation %v: value %d", ErrDuplicate, e.Permutation, e.Value)
	}
	return fmt.Sprintf("invalid permutation %v", e.Permutation)
}

// Unwrap returns the sentinel error matching the Kind.
func (e *PermutationError) Unwrap() error {
	switch e.Kind {
	case WrongLength:
		return ErrWrongLength
	case OutOfBounds:
		return ErrOutOfBounds
	case Duplicate:
		return ErrDuplicate
	}
	return nil
}
