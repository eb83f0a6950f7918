package nn

import "github.com/latch-ml/latch/internal/tensor"

// MSELoss computes mean squared error: mean((predictions - targets)²).
//
// The reduction is built from taped backend operations (Sub, Mul, Mean),
// so when the backend is the autodiff decorator the loss is fully
// differentiable back to the model parameters.
type MSELoss[B tensor.Backend] struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return &MSELoss[B]{}
}

// Forward computes the loss as a one-element tensor.
// Predictions and targets must have identical shapes.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("MSELoss: predictions and targets must have the same shape")
	}

	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}

// Parameters returns an empty slice (loss functions have no trainable parameters).
func (m *MSELoss[B]) Parameters() []*Parameter[B] {
	return nil
}
