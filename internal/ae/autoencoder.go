package ae

import (
	"fmt"
	"math/rand"

	"github.com/latch-ml/latch/internal/nn"
	"github.com/latch-ml/latch/internal/tensor"
)

// Autoencoder owns one Encoder and one Decoder. Encode, Decode and the
// combined Forward all go through the same two network instances, so the
// four affine parameter sets exist exactly once: a path that trains
// through Forward is immediately visible to a caller using Encode for
// latent projections.
type Autoencoder[B tensor.Backend] struct {
	cfg     Config
	encoder *Encoder[B]
	decoder *Decoder[B]
}

// New constructs an Autoencoder from a validated configuration.
func New[B tensor.Backend](cfg Config, backend B) (*Autoencoder[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	encoder := &Encoder[B]{
		fc1:  nn.NewLinearInit[B]("encoder.fc1", cfg.InputDim, cfg.HiddenDim, cfg.Init, rng, backend),
		relu: nn.NewReLU[B](),
		fc2:  nn.NewLinearInit[B]("encoder.fc2", cfg.HiddenDim, cfg.LatentDim, cfg.Init, rng, backend),
	}

	decoder := &Decoder[B]{
		drop: nn.NewDropout[B](cfg.DropoutP, rng),
		fc1:  nn.NewLinearInit[B]("decoder.fc1", cfg.LatentDim, cfg.HiddenDim, cfg.Init, rng, backend),
		relu: nn.NewReLU[B](),
		fc2:  nn.NewLinearInit[B]("decoder.fc2", cfg.HiddenDim, cfg.InputDim, cfg.Init, rng, backend),
	}

	return &Autoencoder[B]{
		cfg:     cfg,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Config returns the configuration the autoencoder was built with.
func (a *Autoencoder[B]) Config() Config {
	return a.cfg
}

// Encoder returns the shared encoder instance.
func (a *Autoencoder[B]) Encoder() *Encoder[B] {
	return a.encoder
}

// Decoder returns the shared decoder instance.
func (a *Autoencoder[B]) Decoder() *Decoder[B] {
	return a.decoder
}

// Encode maps a batch of inputs to latent codes.
func (a *Autoencoder[B]) Encode(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return a.encoder.Forward(input)
}

// Decode maps a batch of latent codes to reconstructions.
func (a *Autoencoder[B]) Decode(latent *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return a.decoder.Forward(latent)
}

// Forward computes the full reconstruction Decode(Encode(input)).
func (a *Autoencoder[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return a.Decode(a.Encode(input))
}

// Parameters returns all trainable parameters of both networks.
func (a *Autoencoder[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], 0, 8)
	params = append(params, a.encoder.Parameters()...)
	params = append(params, a.decoder.Parameters()...)
	return params
}

// WeightPenalty builds the weight-magnitude penalty Σ mean(W²) over all
// weight matrices, excluding biases. The sum is assembled from taped
// operations, so gradients of the penalty reach every weight.
//
// Enumeration goes through Parameters and the Kind tag; adding or
// removing a layer changes the penalty without touching any call site.
func (a *Autoencoder[B]) WeightPenalty() *tensor.Tensor[float32, B] {
	var penalty *tensor.Tensor[float32, B]
	for _, p := range a.Parameters() {
		if p.Kind() != nn.Weight {
			continue
		}
		w := p.Tensor()
		term := w.Mul(w).Mean()
		if penalty == nil {
			penalty = term
		} else {
			penalty = penalty.Add(term)
		}
	}
	return penalty
}

// SetTraining switches the stochastic parts of the model (the decoder's
// latent dropout) between training and evaluation behavior.
func (a *Autoencoder[B]) SetTraining(training bool) {
	a.decoder.SetTraining(training)
}

// StateDict returns copies of all weights and biases, keyed by
// qualified parameter name ("encoder.fc1.weight" etc.).
func (a *Autoencoder[B]) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor, 8)
	for _, p := range a.Parameters() {
		state[p.Name()] = p.Tensor().Raw().Clone()
	}
	return state
}

// LoadStateDict restores all weights and biases from a state dict
// produced by StateDict. Every parameter must be present with its
// current shape.
func (a *Autoencoder[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	for _, p := range a.Parameters() {
		raw, ok := state[p.Name()]
		if !ok {
			return fmt.Errorf("ae: missing %q in state dict", p.Name())
		}
		if !raw.Shape().Equal(p.Tensor().Shape()) {
			return fmt.Errorf("ae: %q shape mismatch: expected %v, got %v",
				p.Name(), p.Tensor().Shape(), raw.Shape())
		}
		copy(p.Tensor().Data(), raw.AsFloat32())
	}
	return nil
}
