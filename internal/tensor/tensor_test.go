package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/latch-ml/latch/internal/backend/cpu"
	"github.com/latch-ml/latch/internal/tensor"
)

// TestShape_NumElements tests element counting.
func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape    tensor.Shape
		expected int
	}{
		{tensor.Shape{2, 3}, 6},
		{tensor.Shape{1}, 1},
		{tensor.Shape{4, 1, 5}, 20},
		{tensor.Shape{}, 1},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.expected)
		}
	}
}

// TestShape_ComputeStrides tests row-major stride computation.
func TestShape_ComputeStrides(t *testing.T) {
	s := tensor.Shape{2, 3, 4}
	strides := s.ComputeStrides()

	expected := []int{12, 4, 1}
	for i, e := range expected {
		if strides[i] != e {
			t.Errorf("strides[%d] = %d, want %d", i, strides[i], e)
		}
	}
}

// TestBroadcastShapes tests NumPy-style shape broadcasting.
func TestBroadcastShapes(t *testing.T) {
	result, needs, err := tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{1, 3})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if !result.Equal(tensor.Shape{2, 3}) {
		t.Errorf("broadcast shape = %v, want [2 3]", result)
	}
	if !needs {
		t.Error("broadcasting [2 3] with [1 3] should need broadcast")
	}

	// Same shapes need no broadcast
	_, needs, err = tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if needs {
		t.Error("identical shapes should not need broadcast")
	}

	// Incompatible shapes
	_, _, err = tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{4, 3})
	if err == nil {
		t.Error("expected error for incompatible shapes [2 3] and [4 3]")
	}
}

// TestNewRaw tests raw tensor allocation.
func TestNewRaw(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize() = %d, want 24", raw.ByteSize())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", raw.DType())
	}

	// Freshly allocated tensors are zeroed
	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("element %d = %f, want 0", i, v)
		}
	}
}

// TestRawTensor_Clone tests that clones do not share storage.
func TestRawTensor_Clone(t *testing.T) {
	raw, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float32)
	raw.AsFloat32()[0] = 1.5

	clone := raw.Clone()
	clone.AsFloat32()[0] = 9.0

	if raw.AsFloat32()[0] != 1.5 {
		t.Errorf("clone mutation leaked into original: got %f, want 1.5", raw.AsFloat32()[0])
	}
}

// TestFromSlice tests tensor creation from a flat slice.
func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if x.At(0, 0) != 1 || x.At(1, 2) != 6 {
		t.Errorf("At() mismatch: got (%f, %f), want (1, 6)", x.At(0, 0), x.At(1, 2))
	}

	// Length mismatch
	_, err = tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 3}, backend)
	if err == nil {
		t.Error("expected error for 3 elements into shape [2 3]")
	}
}

// TestZerosOnesFull tests filled tensor creation.
func TestZerosOnesFull(t *testing.T) {
	backend := cpu.New()

	zeros := tensor.Zeros[float32](tensor.Shape{2, 2}, backend)
	ones := tensor.Ones[float32](tensor.Shape{2, 2}, backend)
	full := tensor.Full(tensor.Shape{2, 2}, float32(3.5), backend)

	for i := 0; i < 4; i++ {
		if zeros.Data()[i] != 0 {
			t.Errorf("Zeros element %d = %f", i, zeros.Data()[i])
		}
		if ones.Data()[i] != 1 {
			t.Errorf("Ones element %d = %f", i, ones.Data()[i])
		}
		if full.Data()[i] != 3.5 {
			t.Errorf("Full element %d = %f", i, full.Data()[i])
		}
	}
}

// TestRandn_Determinism tests that the same seed produces the same tensor.
func TestRandn_Determinism(t *testing.T) {
	backend := cpu.New()

	a := tensor.Randn(tensor.Shape{10}, rand.New(rand.NewSource(7)), backend)
	b := tensor.Randn(tensor.Shape{10}, rand.New(rand.NewSource(7)), backend)

	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatalf("element %d differs with identical seeds: %f vs %f", i, a.Data()[i], b.Data()[i])
		}
	}
}

// TestTensor_Item tests scalar extraction.
func TestTensor_Item(t *testing.T) {
	backend := cpu.New()

	x, _ := tensor.FromSlice([]float32{42}, tensor.Shape{1}, backend)
	if x.Item() != 42 {
		t.Errorf("Item() = %f, want 42", x.Item())
	}

	defer func() {
		if recover() == nil {
			t.Error("Item() on multi-element tensor should panic")
		}
	}()
	y, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	y.Item()
}

// TestTensor_Ops tests method dispatch through the backend.
func TestTensor_Ops(t *testing.T) {
	backend := cpu.New()

	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b, _ := tensor.FromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)

	sum := a.Add(b)
	expected := []float32{6, 8, 10, 12}
	for i, e := range expected {
		if sum.Data()[i] != e {
			t.Errorf("Add element %d = %f, want %f", i, sum.Data()[i], e)
		}
	}

	// T() is transpose for 2D
	at := a.T()
	if !at.Shape().Equal(tensor.Shape{2, 2}) {
		t.Errorf("T() shape = %v, want [2 2]", at.Shape())
	}
	if at.At(0, 1) != a.At(1, 0) {
		t.Errorf("T() element mismatch: %f vs %f", at.At(0, 1), a.At(1, 0))
	}
}
