// Copyright 2026 Latch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in Latch.
//
// The package defines the core types for type-safe tensor computation:
//   - Tensor[T, B]: High-level generic tensor with compile-time dtype safety
//   - RawTensor: Low-level dtype-tagged buffer
//   - Backend: Interface for compute implementations
//   - Shape, DataType: Core type definitions
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package tensor
