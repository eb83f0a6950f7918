// Copyright 2026 Latch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU compute backend.
package cpu

import (
	internalcpu "github.com/latch-ml/latch/internal/backend/cpu"
	"github.com/latch-ml/latch/tensor"
)

// Backend is the CPU backend implementation.
//
// Element-wise operations are plain Go loops; matrix multiplication
// goes through gonum's float32 BLAS.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}
