// Copyright 2026 Latch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/latch-ml/latch/internal/tensor"

// RawTensor is the low-level dtype-tagged tensor buffer.
// Most code works with Tensor[T, B]; RawTensor is for backend
// implementations and gradient maps.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed raw tensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// BroadcastShapes computes the NumPy-style broadcast shape of a and b.
// The bool reports whether any actual broadcasting is needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
