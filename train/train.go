// Copyright 2026 Latch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the autoencoder training loop.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model, _ := ae.New(ae.Config{InputDim: 784, HiddenDim: 128, LatentDim: 2}, backend)
//	sampler, _ := data.NewSampler(ds, 256, true, 42, backend)
//	trainer, _ := train.NewTrainer(model, sampler, train.Config{Epochs: 10, BatchSize: 256}, backend)
//	history, err := trainer.Run(ctx)
package train

import (
	"github.com/latch-ml/latch/ae"
	"github.com/latch-ml/latch/autodiff"
	"github.com/latch-ml/latch/data"
	"github.com/latch-ml/latch/internal/train"
	"github.com/latch-ml/latch/tensor"
)

// Config holds the hyperparameters of one training run.
type Config = train.Config

// Trainer runs the training loop on an autodiff-decorated backend.
type Trainer[B tensor.Backend] = train.Trainer[B]

// NewTrainer wires a model, a batch sampler and a config into a
// runnable trainer.
func NewTrainer[B tensor.Backend](
	model *ae.Autoencoder[*autodiff.Backend[B]],
	sampler *data.Sampler[*autodiff.Backend[B]],
	cfg Config,
	backend *autodiff.Backend[B],
) (*Trainer[B], error) {
	return train.NewTrainer(model, sampler, cfg, backend)
}
