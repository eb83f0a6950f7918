package ops

import "github.com/latch-ml/latch/internal/tensor"

// ReshapeOp represents a shape change: output = reshape(x, newShape).
//
// Recording reshape keeps gradients flowing to reshaped parameters,
// e.g. a bias viewed as [1, out] for broadcasting still needs its
// gradient delivered to the original [out] tensor.
//
// Backward pass: the output gradient is reshaped back to the input shape.
type ReshapeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{
		input:  input,
		output: output,
	}
}

// Backward reshapes the output gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := backend.Reshape(outputGrad, op.input.Shape())
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ReshapeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the reshaped tensor.
func (op *ReshapeOp) Output() *tensor.RawTensor {
	return op.output
}
