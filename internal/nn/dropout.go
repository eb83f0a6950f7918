package nn

import (
	"fmt"
	"math/rand"

	"github.com/latch-ml/latch/internal/tensor"
)

// Dropout stochastically zeroes elements of its input during training.
//
// In training mode each element is independently zeroed with probability
// p, and surviving elements are scaled by 1/(1-p) (inverted dropout), so
// evaluation mode is a plain identity with no rescaling. A fresh mask is
// sampled on every forward pass.
//
// The mask enters the computation as an element-wise multiply, so the
// backward pass needs no dedicated operation: gradients flow through the
// recorded Mul and are masked the same way the activations were.
type Dropout[B tensor.Backend] struct {
	p        float32
	training bool
	rng      *rand.Rand
}

// NewDropout creates a Dropout module in training mode.
// Panics if p is outside [0, 1).
func NewDropout[B tensor.Backend](p float32, rng *rand.Rand) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("Dropout: probability %v outside [0, 1)", p))
	}
	return &Dropout[B]{
		p:        p,
		training: true,
		rng:      rng,
	}
}

// SetTraining switches between training mode (mask applied) and
// evaluation mode (identity).
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Training reports whether the module is in training mode.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// P returns the drop probability.
func (d *Dropout[B]) P() float32 {
	return d.p
}

// Forward applies the dropout mask in training mode, identity otherwise.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return input
	}

	mask := tensor.Zeros[float32, B](input.Shape(), input.Backend())
	scale := 1 / (1 - d.p)
	data := mask.Data()
	for i := range data {
		// Element kept iff u >= p, for u in [0, 1).
		if d.rng.Float32() >= d.p {
			data[i] = scale
		}
	}

	return input.Mul(mask)
}

// Parameters returns an empty slice (Dropout has no trainable parameters).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}
