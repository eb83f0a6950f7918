// Copyright 2026 Latch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides datasets, batch sampling, denoising corruption
// and MNIST IDX file loading.
package data

import (
	"github.com/latch-ml/latch/internal/data"
	"github.com/latch-ml/latch/internal/tensor"
)

// Dataset is an in-memory collection of feature vectors with labels.
type Dataset = data.Dataset

// NewDataset creates a dataset from features and labels.
func NewDataset(features [][]float32, labels []int32) (*Dataset, error) {
	return data.NewDataset(features, labels)
}

// Synthetic generates a low-rank synthetic dataset, useful when no
// MNIST files are available.
func Synthetic(n, dim, rank int, seed int64) *Dataset {
	return data.Synthetic(n, dim, rank, seed)
}

// LoadMNIST loads MNIST from IDX files in dataDir, normalizing pixels
// to [0, 1].
func LoadMNIST(dataDir string, train bool) (*Dataset, error) {
	return data.LoadMNIST(dataDir, train)
}

// Batch is one fixed-size group of samples materialized as a tensor.
type Batch[B tensor.Backend] = data.Batch[B]

// Sampler produces per-epoch batches from a dataset.
type Sampler[B tensor.Backend] = data.Sampler[B]

// NewSampler creates a sampler positioned at the start of its first epoch.
func NewSampler[B tensor.Backend](ds *Dataset, batchSize int, shuffle bool, seed int64, backend B) (*Sampler[B], error) {
	return data.NewSampler(ds, batchSize, shuffle, seed, backend)
}

// Corruptor zeroes input features for denoising training.
type Corruptor[B tensor.Backend] = data.Corruptor[B]

// NewCorruptor creates a corruptor with the given zeroing probability.
func NewCorruptor[B tensor.Backend](rate float32, seed int64) (*Corruptor[B], error) {
	return data.NewCorruptor[B](rate, seed)
}
