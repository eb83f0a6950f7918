// Copyright 2026 Latch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ae provides the autoencoder model: a symmetric
// encoder/decoder pair compressing input vectors through a low
// dimensional latent space.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model, err := ae.New(ae.Config{
//	    InputDim:  784,
//	    HiddenDim: 128,
//	    LatentDim: 2,
//	    Seed:      42,
//	}, backend)
package ae

import (
	"github.com/latch-ml/latch/internal/ae"
	"github.com/latch-ml/latch/internal/tensor"
)

// Config holds the architecture hyperparameters of an autoencoder.
type Config = ae.Config

// Encoder maps input vectors to latent codes.
type Encoder[B tensor.Backend] = ae.Encoder[B]

// Decoder maps latent codes back to reconstructions.
type Decoder[B tensor.Backend] = ae.Decoder[B]

// Autoencoder is the combined encoder/decoder model.
type Autoencoder[B tensor.Backend] = ae.Autoencoder[B]

// New constructs an autoencoder from a configuration.
// Returns an error if the configuration is invalid.
func New[B tensor.Backend](cfg Config, backend B) (*Autoencoder[B], error) {
	return ae.New(cfg, backend)
}
