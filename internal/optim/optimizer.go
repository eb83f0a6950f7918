// Package optim implements optimization algorithms for training.
//
// Provided:
//   - Optimizer interface
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation
//
// The training loop drives an optimizer like this:
//
//	backend.Tape().Clear()
//	backend.Tape().StartRecording()
//	loss := lossFn.Forward(model.Forward(input), target)
//	grads := autodiff.Backward(loss, backend)
//	optimizer.Step(grads)
//	optimizer.ZeroGrad()
package optim

import (
	"github.com/latch-ml/latch/internal/nn"
	"github.com/latch-ml/latch/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	// Takes the gradient map produced by autodiff.Backward and updates
	// parameters in place.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// getGradient retrieves the gradient for a parameter, or nil if the
// parameter did not take part in the recorded computation.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
