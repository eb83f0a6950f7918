package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - cpu.Backend: dense CPU kernels backed by gonum BLAS
//   - autodiff.Backend: decorator that records operations for backprop
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Matrix operations: (M, K) @ (K, N) -> (M, N)
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Scalar operations
	MulScalar(x *RawTensor, scalar float32) *RawTensor

	// Reduction operations
	Mean(x *RawTensor) *RawTensor // mean over all elements (scalar result)

	// Activation functions
	ReLU(x *RawTensor) *RawTensor

	// Metadata
	Name() string
}
