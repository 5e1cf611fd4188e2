// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/nlpodyssey/linalg/shape"
	"github.com/nlpodyssey/linalg/transform"
	"k8s.io/klog/v2"
)

// SetTransform attaches tr to the tensor, replacing any transform
// previously attached: transforms are never chained implicitly.
// A nil tr detaches the current transform.
//
// The hypervolume of tr.OutShape must equal the number of elements of the
// tensor, otherwise a *transform.ShapeError is returned and the tensor is
// left unchanged.
func (t *Tensor[T]) SetTransform(tr transform.Transform) error {
	if tr == nil {
		t.view = nil
		return nil
	}
	if out := tr.OutShape(); out.Hypervolume() != len(t.data) {
		return &transform.ShapeError{Src: t.shape.Clone(), Dst: out}
	}
	t.view = tr
	return nil
}

// Transform returns the attached transform, or nil.
func (t *Tensor[T]) Transform() transform.Transform {
	return t.view
}

// ClearTransform detaches the current transform, if any, without moving
// any data.
func (t *Tensor[T]) ClearTransform() {
	t.view = nil
}

// Reshape attaches a view of the tensor with shape dst. If a transform is
// already attached, the reshape is applied on top of it.
func (t *Tensor[T]) Reshape(dst shape.Shape) error {
	r, err := transform.NewReshape(t.Shape(), dst)
	if err != nil {
		return err
	}
	return t.stack(r)
}

// Transpose attaches a view of the tensor with its axes permuted: axis i
// of the view is axis perm[i] of the current shape. If a transform is
// already attached, the transposition is applied on top of it.
func (t *Tensor[T]) Transpose(perm ...int) error {
	tr, err := transform.NewTranspose(t.Shape(), perm)
	if err != nil {
		return err
	}
	return t.stack(tr)
}

// stack attaches tr, chaining it after the current transform if any.
func (t *Tensor[T]) stack(tr transform.Transform) error {
	if t.view == nil {
		return t.SetTransform(tr)
	}
	var stages []transform.Transform
	if c, ok := t.view.(transform.Chained); ok {
		stages = c.Stages()
	} else {
		stages = []transform.Transform{t.view}
	}
	c, err := transform.NewChained(append(stages, tr)...)
	if err != nil {
		return err
	}
	return t.SetTransform(c)
}

// Commit materializes the attached transform.
//
// If no transform is attached, Commit does nothing and returns false.
// Otherwise, the elements seen through the view are copied into a new
// row-major buffer, which replaces the old one; shape and strides become
// OutShape of the transform and its canonical strides, and the transform is
// detached. Plain indexing then reads what the view used to compute
// lazily, and true is returned.
//
// If the transform addresses an element outside the buffer, an error is
// returned and the tensor is left unchanged.
func (t *Tensor[T]) Commit() (bool, error) {
	if t.view == nil {
		return false, nil
	}
	data, err := t.gather()
	if err != nil {
		return false, err
	}
	out := t.view.OutShape()
	klog.V(4).InfoS("Committing tensor view", "from", t.shape, "to", out, "elements", len(data))

	t.data = data
	t.shape = out
	t.strides = out.Strides()
	t.view = nil
	return true, nil
}
