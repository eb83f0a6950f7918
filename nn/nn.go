// Copyright 2026 Latch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks: layers,
// activations, dropout and loss functions.
package nn

import (
	"math/rand"

	"github.com/latch-ml/latch/internal/nn"
	"github.com/latch-ml/latch/internal/tensor"
)

// Module is the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// Kind classifies a parameter as a weight matrix or a bias vector.
type Kind = nn.Kind

// Parameter kinds.
const (
	Weight Kind = nn.Weight
	Bias   Kind = nn.Bias
)

// NewParameter creates a parameter with the given name, kind and tensor.
func NewParameter[B tensor.Backend](name string, kind Kind, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, kind, t)
}

// Init selects a weight initialization scheme.
type Init = nn.Init

// Initialization schemes.
const (
	InitXavier Init = nn.InitXavier
	InitZeros  Init = nn.InitZeros
)

// Layers

// Linear is a fully connected (dense) layer computing y = x @ W.T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a linear layer with Xavier-initialized weights and
// zero biases. The name prefixes the layer's parameter names.
func NewLinear[B tensor.Backend](name string, inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinear(name, inFeatures, outFeatures, rng, backend)
}

// NewLinearInit creates a linear layer with the given weight
// initialization scheme.
func NewLinearInit[B tensor.Backend](name string, inFeatures, outFeatures int, init Init, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinearInit(name, inFeatures, outFeatures, init, rng, backend)
}

// ReLU is the rectified linear activation module.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Dropout zeroes each input element with probability p during training
// and rescales survivors by 1/(1-p). In evaluation mode it is the
// identity.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a dropout module with drop probability p in [0, 1).
func NewDropout[B tensor.Backend](p float32, rng *rand.Rand) *Dropout[B] {
	return nn.NewDropout[B](p, rng)
}

// Losses

// MSELoss computes mean squared error over all elements.
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates an MSE loss function.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return nn.NewMSELoss[B]()
}
