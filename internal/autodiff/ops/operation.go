// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation stores the raw tensors of its forward pass and knows how
// to turn the gradient of its output into gradients for its inputs:
//   - AddOp/SubOp: gradient flows through, reduced over broadcast dims
//   - MulOp: d(a*b)/da = b, d(a*b)/db = a
//   - MatMulOp: d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
//   - TransposeOp/ReshapeOp: gradient is un-permuted / un-reshaped
//   - ReLUOp: gradient masked where the input was <= 0
//   - MeanOp: gradient spread evenly over the input
//   - ScaleOp: gradient multiplied by the same scalar
package ops

import "github.com/latch-ml/latch/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
