package data

import (
	"fmt"
	"math/rand"

	"github.com/latch-ml/latch/internal/tensor"
)

// Corruptor is the denoising-autoencoder noise injector: it zeroes each
// input feature independently with probability rate, before encoding.
// The uncorrupted batch remains the reconstruction target.
//
// An element is kept iff u >= rate for u drawn from [0, 1), so rate 0 is
// an exact identity and rate 1 zeroes every element. A fresh mask is
// sampled on every call; the only state is the rng stream.
type Corruptor[B tensor.Backend] struct {
	rate float32
	rng  *rand.Rand
}

// NewCorruptor creates a corruptor with the given zeroing probability.
// The rate must be in [0, 1]; rate 1 zeroes everything.
func NewCorruptor[B tensor.Backend](rate float32, seed int64) (*Corruptor[B], error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("corruptor: rate %v outside [0, 1]", rate)
	}
	return &Corruptor[B]{
		rate: rate,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Rate returns the zeroing probability.
func (c *Corruptor[B]) Rate() float32 {
	return c.rate
}

// Corrupt returns a new tensor with each element of x independently
// zeroed with probability rate. The input tensor is not modified.
func (c *Corruptor[B]) Corrupt(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := x.Clone()
	if c.rate == 0 {
		return out
	}

	data := out.Data()
	for i := range data {
		if c.rng.Float32() < c.rate {
			data[i] = 0
		}
	}
	return out
}
