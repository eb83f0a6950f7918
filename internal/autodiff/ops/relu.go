package ops

import (
	"fmt"

	"github.com/latch-ml/latch/internal/tensor"
)

// ReLUOp represents a rectified linear unit activation: output = max(0, x).
//
// Backward pass: d(ReLU(x))/dx = 1 where x > 0, else 0.
type ReLUOp struct {
	input  *tensor.RawTensor // x
	output *tensor.RawTensor // max(0, x)
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{
		input:  input,
		output: output,
	}
}

// Backward masks the output gradient where the input was non-positive.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	mask, err := tensor.NewRaw(op.input.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("relu: failed to create mask: %v", err))
	}

	inputData := op.input.AsFloat32()
	maskData := mask.AsFloat32()
	for i, val := range inputData {
		if val > 0 {
			maskData[i] = 1
		}
	}

	gradInput := backend.Mul(outputGrad, mask)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ReLUOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor max(0, x).
func (op *ReLUOp) Output() *tensor.RawTensor {
	return op.output
}
