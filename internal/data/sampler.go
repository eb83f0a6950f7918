package data

import (
	"fmt"
	"math/rand"

	"github.com/latch-ml/latch/internal/tensor"
)

// Batch is one fixed-size group of samples materialized as a tensor.
// The last batch of an epoch may be short when the dataset size is not
// divisible by the batch size.
type Batch[B tensor.Backend] struct {
	// Input holds the feature vectors, shape [size, dim].
	Input *tensor.Tensor[float32, B]

	// Labels holds the class labels in batch order.
	Labels []int32

	// Size is the number of samples in this batch.
	Size int
}

// Sampler produces a lazy, finite, per-epoch-restartable sequence of
// batches from a dataset.
//
// In shuffle mode, Reset draws a fresh random permutation, so every
// epoch visits the dataset exactly once in a new order. Without shuffle
// (evaluation mode) the dataset order is preserved and never reshuffled.
type Sampler[B tensor.Backend] struct {
	ds        *Dataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
	backend   B

	order []int
	pos   int
}

// NewSampler creates a sampler positioned at the start of its first epoch.
func NewSampler[B tensor.Backend](ds *Dataset, batchSize int, shuffle bool, seed int64, backend B) (*Sampler[B], error) {
	if ds == nil || ds.NumSamples() == 0 {
		return nil, fmt.Errorf("sampler: empty dataset")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("sampler: batch size must be > 0, got %d", batchSize)
	}

	s := &Sampler[B]{
		ds:        ds,
		batchSize: batchSize,
		shuffle:   shuffle,
		rng:       rand.New(rand.NewSource(seed)),
		backend:   backend,
		order:     make([]int, ds.NumSamples()),
	}
	s.Reset()
	return s, nil
}

// Reset starts a new epoch. In shuffle mode a new permutation is drawn;
// otherwise the order is the dataset order.
func (s *Sampler[B]) Reset() {
	for i := range s.order {
		s.order[i] = i
	}
	if s.shuffle {
		s.rng.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}
	s.pos = 0
}

// NumBatches returns the number of batches per epoch.
func (s *Sampler[B]) NumBatches() int {
	return (s.ds.NumSamples() + s.batchSize - 1) / s.batchSize
}

// Next materializes the next batch of the current epoch.
// Returns false once the epoch is exhausted; Reset starts the next one.
func (s *Sampler[B]) Next() (*Batch[B], bool) {
	n := s.ds.NumSamples()
	if s.pos >= n {
		return nil, false
	}

	end := s.pos + s.batchSize
	if end > n {
		end = n
	}
	size := end - s.pos
	dim := s.ds.Dim()

	raw, err := tensor.NewRaw(tensor.Shape{size, dim}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("sampler: %v", err))
	}

	input := raw.AsFloat32()
	labels := make([]int32, size)
	for i := 0; i < size; i++ {
		idx := s.order[s.pos+i]
		copy(input[i*dim:(i+1)*dim], s.ds.Features[idx])
		labels[i] = s.ds.Labels[idx]
	}
	s.pos = end

	return &Batch[B]{
		Input:  tensor.New[float32, B](raw, s.backend),
		Labels: labels,
		Size:   size,
	}, true
}
