package autodiff_test

import (
	"math"
	"testing"

	"github.com/latch-ml/latch/internal/autodiff"
	"github.com/latch-ml/latch/internal/backend/cpu"
	"github.com/latch-ml/latch/internal/tensor"
)

// TestBackend_Name tests the decorator name.
func TestBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	expected := "Autodiff(CPU)"
	if backend.Name() != expected {
		t.Errorf("Name() = %s, want %s", backend.Name(), expected)
	}
}

// TestTape_Recording tests tape recording on/off.
func TestTape_Recording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	if tape.IsRecording() {
		t.Error("tape should not be recording initially")
	}

	tape.StartRecording()
	if !tape.IsRecording() {
		t.Error("tape should be recording after StartRecording()")
	}

	tape.StopRecording()
	if tape.IsRecording() {
		t.Error("tape should not be recording after StopRecording()")
	}
}

// TestTape_Clear tests that Clear empties the tape but preserves
// recording state, so a training loop can clear between batches.
func TestTape_Clear(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	tape.StartRecording()

	a, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	b, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	backend.Add(a.Raw(), b.Raw())

	if tape.NumOps() == 0 {
		t.Fatal("tape should have recorded operations")
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("tape should be empty after Clear(), got %d ops", tape.NumOps())
	}
	if !tape.IsRecording() {
		t.Error("Clear() must preserve the recording state")
	}
}

// TestTape_NotRecording tests that operations outside a recording
// window leave no trace.
func TestTape_NotRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())

	a, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	b, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	backend.Add(a.Raw(), b.Raw())

	if backend.Tape().NumOps() != 0 {
		t.Errorf("expected no recorded ops, got %d", backend.Tape().NumOps())
	}
}

// TestBackward_Square tests d(mean(x*x))/dx = 2x/N.
func TestBackward_Square(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	tape.Clear()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, backend)
	loss := x.Mul(x).Mean()

	tape.StopRecording()
	grads := autodiff.Backward(loss, backend)

	grad, ok := grads[x.Raw()]
	if !ok {
		t.Fatal("no gradient for x")
	}

	// d(mean(x²))/dx_i = 2*x_i/4
	data := grad.AsFloat32()
	for i, xv := range []float32{1, 2, 3, 4} {
		expected := 2 * xv / 4
		if math.Abs(float64(data[i]-expected)) > 1e-5 {
			t.Errorf("grad[%d] = %f, want %f", i, data[i], expected)
		}
	}
}

// TestBackward_MatMul tests gradients through matrix multiplication.
func TestBackward_MatMul(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	tape.Clear()
	tape.StartRecording()

	// c = a @ b, loss = mean(c)
	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b, _ := tensor.FromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)
	loss := a.MatMul(b).Mean()

	tape.StopRecording()
	grads := autodiff.Backward(loss, backend)

	// dL/da = (dL/dc) @ b^T with dL/dc = 1/4 everywhere:
	// each row of dL/da is [ (5+6)/4, (7+8)/4 ] = [2.75, 3.75]
	gradA := grads[a.Raw()].AsFloat32()
	expectedA := []float32{2.75, 3.75, 2.75, 3.75}
	for i, e := range expectedA {
		if math.Abs(float64(gradA[i]-e)) > 1e-5 {
			t.Errorf("gradA[%d] = %f, want %f", i, gradA[i], e)
		}
	}

	// dL/db = a^T @ (dL/dc):
	// each column of dL/db is [ (1+3)/4, (2+4)/4 ] = [1.0, 1.5]
	gradB := grads[b.Raw()].AsFloat32()
	expectedB := []float32{1.0, 1.0, 1.5, 1.5}
	for i, e := range expectedB {
		if math.Abs(float64(gradB[i]-e)) > 1e-5 {
			t.Errorf("gradB[%d] = %f, want %f", i, gradB[i], e)
		}
	}
}

// TestBackward_ReLU tests that gradients are masked on negative inputs.
func TestBackward_ReLU(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	tape.Clear()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float32{-1, 2, -3, 4}, tensor.Shape{4}, backend)
	loss := x.ReLU().Mean()

	tape.StopRecording()
	grads := autodiff.Backward(loss, backend)

	data := grads[x.Raw()].AsFloat32()
	expected := []float32{0, 0.25, 0, 0.25}
	for i, e := range expected {
		if math.Abs(float64(data[i]-e)) > 1e-5 {
			t.Errorf("grad[%d] = %f, want %f", i, data[i], e)
		}
	}
}

// TestBackward_BroadcastBias tests that gradients of a broadcast bias
// reduce back to the bias shape, the pattern used by Linear.
func TestBackward_BroadcastBias(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	tape.Clear()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	bias, _ := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{1, 3}, backend)
	loss := x.Add(bias).Mean()

	tape.StopRecording()
	grads := autodiff.Backward(loss, backend)

	grad := grads[bias.Raw()]
	if !grad.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("bias grad shape = %v, want [1 3]", grad.Shape())
	}

	// Each bias element appears in 2 of the 6 summands: grad = 2/6.
	data := grad.AsFloat32()
	for i := range data {
		if math.Abs(float64(data[i]-2.0/6.0)) > 1e-5 {
			t.Errorf("bias grad[%d] = %f, want %f", i, data[i], 2.0/6.0)
		}
	}
}

// TestBackward_GradReuse tests accumulation when a tensor feeds two
// operations.
func TestBackward_GradReuse(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	tape.Clear()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float32{3}, tensor.Shape{1}, backend)
	// loss = x + x, dL/dx = 2
	loss := x.Add(x)

	tape.StopRecording()
	grads := autodiff.Backward(loss, backend)

	got := grads[x.Raw()].AsFloat32()[0]
	if math.Abs(float64(got-2)) > 1e-5 {
		t.Errorf("grad = %f, want 2", got)
	}
}
