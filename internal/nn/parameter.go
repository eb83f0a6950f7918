package nn

import "github.com/latch-ml/latch/internal/tensor"

// Kind classifies a parameter as a weight matrix or a bias vector.
// Regularizers that penalize weight magnitudes use it to enumerate
// weight matrices generically instead of keeping a layer list by hand.
type Kind int

// Parameter kinds.
const (
	Weight Kind = iota
	Bias
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Weight:
		return "weight"
	case Bias:
		return "bias"
	default:
		return "unknown"
	}
}

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors that receive gradients during training. A
// parameter is owned by exactly one layer; every computation path that
// uses the layer shares the same Parameter value, never a copy.
type Parameter[B tensor.Backend] struct {
	name   string
	kind   Kind
	tensor *tensor.Tensor[float32, B]
	grad   *tensor.Tensor[float32, B]
}

// NewParameter creates a new trainable parameter.
// The tensor should be initialized before creating the Parameter;
// the gradient is allocated by the first backward pass.
func NewParameter[B tensor.Backend](name string, kind Kind, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		kind:   kind,
		tensor: t,
	}
}

// Name returns the parameter name (e.g. "encoder.fc1.weight").
func (p *Parameter[B]) Name() string {
	return p.name
}

// Kind returns whether this parameter is a weight matrix or a bias.
func (p *Parameter[B]) Kind() Kind {
	return p.kind
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before the first backward pass.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float32, B]) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
// Called before each training iteration so gradients from previous
// iterations do not accumulate.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}
