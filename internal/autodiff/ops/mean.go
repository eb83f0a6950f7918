package ops

import (
	"fmt"

	"github.com/latch-ml/latch/internal/tensor"
)

// MeanOp represents a full reduction to the mean: output = mean(x).
//
// This is the op that turns a reconstruction error tensor into the
// scalar loss the backward pass is seeded from.
//
// Backward pass: d(mean(x))/dx_i = 1/N, so every input element receives
// outputGrad / N.
type MeanOp struct {
	input  *tensor.RawTensor // x
	output *tensor.RawTensor // scalar mean, shape [1]
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{
		input:  input,
		output: output,
	}
}

// Backward spreads the scalar output gradient evenly over the input.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	n := op.input.NumElements()
	g := outputGrad.AsFloat32()[0] / float32(n)

	gradInput, err := tensor.NewRaw(op.input.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("mean: failed to create input gradient: %v", err))
	}
	data := gradInput.AsFloat32()
	for i := range data {
		data[i] = g
	}

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *MeanOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the scalar mean tensor.
func (op *MeanOp) Output() *tensor.RawTensor {
	return op.output
}
