// Package nn implements neural network building blocks for Latch:
//   - Module interface: base interface for all network components
//   - Parameter: trainable tensor with gradient tracking and a Kind tag
//   - Linear: fully connected layer
//   - ReLU: rectified linear activation
//   - Dropout: stochastic zeroing regularizer with train/eval modes
//   - MSELoss: mean squared error, differentiable through the tape
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import "github.com/latch-ml/latch/internal/tensor"

// Module is the base interface for all neural network components.
//
// Modules can be composed to build networks; each one computes its
// output from an input tensor and exposes its trainable parameters.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	// Modules without parameters (activations) return an empty slice.
	Parameters() []*Parameter[B]
}
