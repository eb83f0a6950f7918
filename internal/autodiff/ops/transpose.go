package ops

import "github.com/latch-ml/latch/internal/tensor"

// TransposeOp represents a dimension permutation: output = transpose(x, axes).
//
// Transpose must be recorded even though it only permutes data: the layer
// that transposes a weight for a matmul produces a new tensor, and
// without this op the weight's gradient would be computed for the
// transposed copy and never reach the parameter the optimizer updates.
//
// Backward pass: the output gradient is permuted by the inverse axes.
type TransposeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	axes   []int
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{
		input:  input,
		output: output,
		axes:   axes,
	}
}

// Backward computes the input gradient by applying the inverse permutation.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	gradInput := backend.Transpose(outputGrad, inverse...)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *TransposeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the transposed tensor.
func (op *TransposeOp) Output() *tensor.RawTensor {
	return op.output
}
