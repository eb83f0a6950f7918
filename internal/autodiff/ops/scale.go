package ops

import "github.com/latch-ml/latch/internal/tensor"

// ScaleOp represents multiplication by a constant scalar: output = c * x.
//
// The weight-decay coefficient enters the loss through this op.
//
// Backward pass: d(c*x)/dx = c.
type ScaleOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar float32
}

// NewScaleOp creates a new ScaleOp.
func NewScaleOp(input, output *tensor.RawTensor, scalar float32) *ScaleOp {
	return &ScaleOp{
		input:  input,
		output: output,
		scalar: scalar,
	}
}

// Backward multiplies the output gradient by the same scalar.
func (op *ScaleOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := backend.MulScalar(outputGrad, op.scalar)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ScaleOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor c * x.
func (op *ScaleOp) Output() *tensor.RawTensor {
	return op.output
}
