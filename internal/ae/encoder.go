package ae

import (
	"fmt"

	"github.com/latch-ml/latch/internal/nn"
	"github.com/latch-ml/latch/internal/tensor"
)

// Encoder maps a batch of input vectors to latent codes:
//
//	affine(input → hidden) → ReLU → affine(hidden → latent)
//
// The final affine has no activation; latent coordinates are raw reals.
type Encoder[B tensor.Backend] struct {
	fc1  *nn.Linear[B]
	relu *nn.ReLU[B]
	fc2  *nn.Linear[B]
}

// Forward computes the latent code for a batch.
//
// Input shape: [batch_size, input_dim]
// Output shape: [batch_size, latent_dim]
func (e *Encoder[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != e.fc1.InFeatures() {
		panic(fmt.Sprintf("Encoder.Forward: expected input shape [batch, %d], got %v",
			e.fc1.InFeatures(), shape))
	}

	x := e.fc1.Forward(input)
	x = e.relu.Forward(x)
	return e.fc2.Forward(x)
}

// Parameters returns the encoder's trainable parameters.
func (e *Encoder[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], 0, 4)
	params = append(params, e.fc1.Parameters()...)
	params = append(params, e.fc2.Parameters()...)
	return params
}

// LatentDim returns the dimensionality of the latent code.
func (e *Encoder[B]) LatentDim() int {
	return e.fc2.OutFeatures()
}
