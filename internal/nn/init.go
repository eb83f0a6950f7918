package nn

import (
	"math"
	"math/rand"

	"github.com/latch-ml/latch/internal/tensor"
)

// Init selects a weight initialization scheme.
type Init int

// Supported initialization schemes.
const (
	// InitXavier draws weights from the Xavier/Glorot uniform
	// distribution U(-sqrt(6/(fanIn+fanOut)), +sqrt(6/(fanIn+fanOut))).
	InitXavier Init = iota

	// InitZeros sets all weights to zero. Useless for learning anything
	// interesting, but it makes the first forward pass exactly
	// predictable, which the illustrative experiment relies on.
	InitZeros
)

// String returns a human-readable scheme name.
func (in Init) String() string {
	switch in {
	case InitXavier:
		return "xavier"
	case InitZeros:
		return "zeros"
	default:
		return "unknown"
	}
}

// Xavier returns a tensor initialized with the Xavier/Glorot uniform
// distribution. This initialization keeps activation variance roughly
// constant across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float32, B](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// Zeros returns a zero-filled tensor. Used for bias initialization and
// for the all-zeros weight scheme.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32, B](shape, backend)
}
