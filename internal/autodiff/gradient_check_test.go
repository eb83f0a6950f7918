package autodiff_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/latch-ml/latch/internal/autodiff"
	"github.com/latch-ml/latch/internal/backend/cpu"
	"github.com/latch-ml/latch/internal/tensor"
)

type adBackend = *autodiff.Backend[*cpu.Backend]

// mlpLoss computes mse(relu(x @ w1^T + b1) @ w2^T + b2, target).
// When the tape is recording this builds the graph for the backward
// pass; with recording off it is a plain re-evaluation for finite
// differences.
func mlpLoss(x, w1, b1, w2, b2, target *tensor.Tensor[float32, adBackend]) *tensor.Tensor[float32, adBackend] {
	h := x.MatMul(w1.T()).Add(b1).ReLU()
	out := h.MatMul(w2.T()).Add(b2)
	diff := out.Sub(target)
	return diff.Mul(diff).Mean()
}

// TestGradientCheck_MLP verifies every analytic gradient of a small
// two-layer network against central finite differences.
func TestGradientCheck_MLP(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	rng := rand.New(rand.NewSource(17))

	const (
		batch  = 4
		inDim  = 3
		hidDim = 5
	)

	x := tensor.Randn(tensor.Shape{batch, inDim}, rng, backend)
	w1 := tensor.Randn(tensor.Shape{hidDim, inDim}, rng, backend)
	b1 := tensor.Randn(tensor.Shape{1, hidDim}, rng, backend)
	w2 := tensor.Randn(tensor.Shape{inDim, hidDim}, rng, backend)
	b2 := tensor.Randn(tensor.Shape{1, inDim}, rng, backend)
	target := tensor.Randn(tensor.Shape{batch, inDim}, rng, backend)

	// Analytic gradients from one taped forward pass.
	tape.Clear()
	tape.StartRecording()
	loss := mlpLoss(x, w1, b1, w2, b2, target)
	tape.StopRecording()
	grads := autodiff.Backward(loss, backend)

	params := map[string]*tensor.Tensor[float32, adBackend]{
		"w1": w1,
		"b1": b1,
		"w2": w2,
		"b2": b2,
	}

	const eps = 1e-3
	for name, p := range params {
		grad, ok := grads[p.Raw()]
		if !ok {
			t.Fatalf("%s: no analytic gradient", name)
		}
		gradData := grad.AsFloat32()
		data := p.Data()

		for i := range data {
			orig := data[i]

			data[i] = orig + eps
			lossPlus := mlpLoss(x, w1, b1, w2, b2, target).Item()

			data[i] = orig - eps
			lossMinus := mlpLoss(x, w1, b1, w2, b2, target).Item()

			data[i] = orig

			numeric := (lossPlus - lossMinus) / (2 * eps)
			if math.Abs(float64(gradData[i]-numeric)) > 1e-2 {
				t.Errorf("%s[%d]: analytic %f vs numeric %f", name, i, gradData[i], numeric)
			}
		}
	}
}

// TestGradientCheck_WeightPenaltyTerm verifies the gradient of the
// mean-square weight penalty added to a data loss.
func TestGradientCheck_WeightPenaltyTerm(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	rng := rand.New(rand.NewSource(23))

	w := tensor.Randn(tensor.Shape{3, 4}, rng, backend)
	const gamma = 0.7

	penalty := func() *tensor.Tensor[float32, adBackend] {
		return w.Mul(w).Mean().MulScalar(gamma)
	}

	tape.Clear()
	tape.StartRecording()
	loss := penalty()
	tape.StopRecording()
	grads := autodiff.Backward(loss, backend)

	// d(gamma * mean(w²))/dw_i = 2 * gamma * w_i / N
	gradData := grads[w.Raw()].AsFloat32()
	n := float32(w.NumElements())
	for i, wv := range w.Data() {
		expected := 2 * gamma * wv / n
		if math.Abs(float64(gradData[i]-expected)) > 1e-5 {
			t.Errorf("grad[%d] = %f, want %f", i, gradData[i], expected)
		}
	}
}
