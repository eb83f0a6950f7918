package cpu

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/latch-ml/latch/internal/tensor"
)

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *Backend) MulScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("mulscalar: failed to create result tensor: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = v * scalar
	}
	return result
}

// Mean computes the mean over all elements, returning a one-element tensor.
func (cpu *Backend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("mean: failed to create result tensor: %v", err))
	}

	src := x.AsFloat32()
	var sum float32
	for _, v := range src {
		sum += v
	}
	result.AsFloat32()[0] = sum / float32(len(src))
	return result
}

// ReLU applies max(0, x) element-wise.
func (cpu *Backend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("relu: failed to create result tensor: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = math32.Max(0, v)
	}
	return result
}
