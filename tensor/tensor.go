// Copyright 2026 Latch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/latch-ml/latch/internal/tensor"
)

// DType is a constraint for tensor data types.
// Supported types: float32, int32.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Int32   DataType = tensor.Int32
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} represents a matrix with 2 rows and 3 columns.
type Shape = tensor.Shape

// Tensor is a generic type-safe tensor.
//
// T is the data type (float32, int32).
// B is the backend implementation.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// New creates a tensor from a raw tensor and a backend.
// Panics if the raw tensor's dtype does not match T.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	return tensor.New[T](raw, backend)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Ones[T](shape, backend)
}

// Full creates a tensor filled with the given value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	return tensor.Full(shape, value, backend)
}

// Randn creates a float32 tensor with standard normal entries drawn
// from the given rng.
func Randn[B Backend](shape Shape, rng *rand.Rand, backend B) *Tensor[float32, B] {
	return tensor.Randn(shape, rng, backend)
}

// Rand creates a float32 tensor with uniform [0, 1) entries drawn
// from the given rng.
func Rand[B Backend](shape Shape, rng *rand.Rand, backend B) *Tensor[float32, B] {
	return tensor.Rand(shape, rng, backend)
}

// FromSlice creates a tensor from a flat slice and a shape.
// Returns an error if len(data) does not match the shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, backend)
}
