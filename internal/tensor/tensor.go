package tensor

import "fmt"

// Tensor is a generic type-safe tensor.
//
// T is the data type (float32 or int32).
// B is the backend implementation.
//
// A Tensor pairs a RawTensor with the backend that produced it, so
// chained operations keep flowing through the same backend (and, when
// that backend is the autodiff decorator, onto the same tape).
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions
// like Zeros, Ones, or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	var dummy T
	if raw.DType() != inferDataType(dummy) {
		panic(fmt.Sprintf("tensor.New: dtype mismatch: raw tensor is %s", raw.DType()))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// NumElements returns the total number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying raw tensor.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the backend this tensor is bound to.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Data returns the tensor's elements as a typed slice.
// The slice aliases the tensor's buffer; writes are visible to the tensor.
func (t *Tensor[T, B]) Data() []T {
	switch t.raw.DType() {
	case Float32:
		return any(t.raw.AsFloat32()).([]T)
	case Int32:
		return any(t.raw.AsInt32()).([]T)
	default:
		panic(fmt.Sprintf("Data: unsupported dtype %s", t.raw.DType()))
	}
}

// Item returns the single element of a scalar (one-element) tensor.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item: tensor has %d elements, want 1", t.NumElements()))
	}
	return t.Data()[0]
}

// At returns the element at the given indices.
func (t *Tensor[T, B]) At(indices ...int) T {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("At: got %d indices for %dD tensor", len(indices), len(shape)))
	}
	strides := t.raw.Strides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("At: index %d out of range for dimension %d (size %d)", idx, i, shape[i]))
		}
		flat += idx * strides[i]
	}
	return t.Data()[flat]
}

// Clone returns a deep copy of the tensor.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return New[T, B](t.raw.Clone(), t.backend)
}

// String returns a short description of the tensor.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v", t.DType(), t.Shape())
}
