package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/latch-ml/latch/internal/tensor"
)

// MatMul performs matrix multiplication for 2D tensors:
// (M, K) @ (K, N) -> (M, N), delegated to gonum's float32 GEMM.
func (cpu *Backend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("matmul: unsupported dtypes %s, %s", a.DType(), b.DType()))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result, err := tensor.NewRaw(tensor.Shape{m, n}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("matmul: failed to create result tensor: %v", err))
	}

	aGen := blas32.General{Rows: m, Cols: k, Stride: k, Data: a.AsFloat32()}
	bGen := blas32.General{Rows: k, Cols: n, Stride: n, Data: b.AsFloat32()}
	cGen := blas32.General{Rows: m, Cols: n, Stride: n, Data: result.AsFloat32()}

	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, aGen, bGen, 0, cGen)

	return result
}
