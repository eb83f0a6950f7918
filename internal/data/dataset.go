// Package data provides the dataset, batch sampling and input-corruption
// machinery for autoencoder training.
package data

import (
	"fmt"
	"math/rand"
)

// Dataset holds N samples: fixed-length float32 feature vectors already
// normalized to [0, 1], plus integer class labels. Labels are not used
// by the reconstruction loss; they ride along for visualization.
type Dataset struct {
	Features [][]float32
	Labels   []int32
}

// NewDataset validates and wraps feature vectors and labels.
// All vectors must share one dimensionality and match the label count.
func NewDataset(features [][]float32, labels []int32) (*Dataset, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("dataset: no samples")
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("dataset: %d feature vectors but %d labels", len(features), len(labels))
	}
	dim := len(features[0])
	if dim == 0 {
		return nil, fmt.Errorf("dataset: empty feature vector at index 0")
	}
	for i, f := range features {
		if len(f) != dim {
			return nil, fmt.Errorf("dataset: feature vector %d has dim %d, want %d", i, len(f), dim)
		}
	}
	return &Dataset{Features: features, Labels: labels}, nil
}

// NumSamples returns the number of samples.
func (d *Dataset) NumSamples() int {
	return len(d.Features)
}

// Dim returns the feature dimensionality.
func (d *Dataset) Dim() int {
	return len(d.Features[0])
}

// Split partitions the dataset into a training subset and a held-out
// evaluation subset of exactly evalSize samples. Assignment is
// randomized by rng; the evaluation subset size is fixed.
func (d *Dataset) Split(evalSize int, rng *rand.Rand) (train, eval *Dataset, err error) {
	n := d.NumSamples()
	if evalSize <= 0 || evalSize >= n {
		return nil, nil, fmt.Errorf("dataset: eval size %d outside (0, %d)", evalSize, n)
	}

	perm := rng.Perm(n)

	pick := func(idx []int) *Dataset {
		features := make([][]float32, len(idx))
		labels := make([]int32, len(idx))
		for i, j := range idx {
			features[i] = d.Features[j]
			labels[i] = d.Labels[j]
		}
		return &Dataset{Features: features, Labels: labels}
	}

	return pick(perm[evalSize:]), pick(perm[:evalSize]), nil
}

// Synthetic generates a reproducible low-rank dataset for tests and
// demos: each sample is a random nonnegative mixture of rank basis
// patterns, clamped to [0, 1]. Labels record the dominant pattern.
func Synthetic(n, dim, rank int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	basis := make([][]float32, rank)
	for k := range basis {
		basis[k] = make([]float32, dim)
		for j := range basis[k] {
			basis[k][j] = rng.Float32()
		}
	}

	features := make([][]float32, n)
	labels := make([]int32, n)
	for i := range features {
		features[i] = make([]float32, dim)
		var maxWeight float32
		for k := 0; k < rank; k++ {
			w := rng.Float32()
			if w > maxWeight {
				maxWeight = w
				labels[i] = int32(k)
			}
			for j := range features[i] {
				features[i][j] += w * basis[k][j] / float32(rank)
			}
		}
		for j, v := range features[i] {
			if v > 1 {
				features[i][j] = 1
			}
		}
	}

	return &Dataset{Features: features, Labels: labels}
}
