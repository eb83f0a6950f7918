package ae

import (
	"fmt"

	"github.com/latch-ml/latch/internal/nn"
	"github.com/latch-ml/latch/internal/tensor"
)

// Decoder maps a batch of latent codes back to reconstructions:
//
//	dropout(p) → affine(latent → hidden) → ReLU → affine(hidden → input)
//
// The dropout is a regularizer on the latent code, applied only in
// training mode. It is distinct from the denoising corruption, which
// zeroes raw input features before encoding.
type Decoder[B tensor.Backend] struct {
	drop *nn.Dropout[B]
	fc1  *nn.Linear[B]
	relu *nn.ReLU[B]
	fc2  *nn.Linear[B]
}

// Forward computes the reconstruction for a batch of latent codes.
//
// Input shape: [batch_size, latent_dim]
// Output shape: [batch_size, input_dim]
func (d *Decoder[B]) Forward(latent *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := latent.Shape()
	if len(shape) != 2 || shape[1] != d.fc1.InFeatures() {
		panic(fmt.Sprintf("Decoder.Forward: expected latent shape [batch, %d], got %v",
			d.fc1.InFeatures(), shape))
	}

	x := d.drop.Forward(latent)
	x = d.fc1.Forward(x)
	x = d.relu.Forward(x)
	return d.fc2.Forward(x)
}

// Parameters returns the decoder's trainable parameters.
func (d *Decoder[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], 0, 4)
	params = append(params, d.fc1.Parameters()...)
	params = append(params, d.fc2.Parameters()...)
	return params
}

// SetTraining switches the latent dropout between training mode and
// evaluation-mode identity.
func (d *Decoder[B]) SetTraining(training bool) {
	d.drop.SetTraining(training)
}

// OutputDim returns the reconstruction dimensionality.
func (d *Decoder[B]) OutputDim() int {
	return d.fc2.OutFeatures()
}
