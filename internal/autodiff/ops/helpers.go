package ops

import (
	"fmt"

	"github.com/latch-ml/latch/internal/tensor"
)

// reduceBroadcast folds a gradient computed for a broadcasted result back
// to the shape of the original input by summing over broadcast dimensions.
// If the shapes already match, the gradient is returned unchanged.
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape, _ tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(target) {
		return grad
	}

	result, err := tensor.NewRaw(target, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("reduceBroadcast: %v", err))
	}

	src := grad.AsFloat32()
	dst := result.AsFloat32()
	gradStrides := gradShape.ComputeStrides()
	targetStrides := tensor.BroadcastStrides(target, gradShape)

	n := gradShape.NumElements()
	for i := 0; i < n; i++ {
		dstIdx := 0
		rem := i
		for d := 0; d < len(gradShape); d++ {
			coord := rem / gradStrides[d]
			rem %= gradStrides[d]
			dstIdx += coord * targetStrides[d]
		}
		dst[dstIdx] += src[i]
	}

	return result
}
