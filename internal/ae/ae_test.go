package ae_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-ml/latch/internal/ae"
	"github.com/latch-ml/latch/internal/autodiff"
	"github.com/latch-ml/latch/internal/backend/cpu"
	"github.com/latch-ml/latch/internal/nn"
	"github.com/latch-ml/latch/internal/tensor"
)

type Backend = *autodiff.Backend[*cpu.Backend]

func testConfig() ae.Config {
	return ae.Config{
		InputDim:  12,
		HiddenDim: 8,
		LatentDim: 3,
		Seed:      42,
	}
}

func newModel(t *testing.T, cfg ae.Config, backend Backend) *ae.Autoencoder[Backend] {
	t.Helper()
	model, err := ae.New(cfg, backend)
	require.NoError(t, err)
	return model
}

func randomBatch(t *testing.T, backend Backend, batch, dim int, seed int64) *tensor.Tensor[float32, Backend] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	return tensor.Rand(tensor.Shape{batch, dim}, rng, backend)
}

// TestConfig_Validate tests hyperparameter validation.
func TestConfig_Validate(t *testing.T) {
	valid := testConfig()
	require.NoError(t, valid.Validate())

	bad := valid
	bad.InputDim = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.LatentDim = -1
	assert.Error(t, bad.Validate())

	bad = valid
	bad.DropoutP = 1.0
	assert.Error(t, bad.Validate())
}

// TestAutoencoder_Shapes tests the shape contracts of Encode, Decode
// and Forward.
func TestAutoencoder_Shapes(t *testing.T) {
	backend := autodiff.New(cpu.New())
	cfg := testConfig()
	model := newModel(t, cfg, backend)

	x := randomBatch(t, backend, 5, cfg.InputDim, 1)

	latent := model.Encode(x)
	assert.True(t, latent.Shape().Equal(tensor.Shape{5, cfg.LatentDim}),
		"latent shape = %v", latent.Shape())

	recon := model.Decode(latent)
	assert.True(t, recon.Shape().Equal(tensor.Shape{5, cfg.InputDim}),
		"reconstruction shape = %v", recon.Shape())

	full := model.Forward(x)
	assert.True(t, full.Shape().Equal(tensor.Shape{5, cfg.InputDim}))
}

// TestAutoencoder_Parameters tests that both networks expose exactly
// four parameter pairs.
func TestAutoencoder_Parameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newModel(t, testConfig(), backend)

	params := model.Parameters()
	require.Len(t, params, 8)

	weights, biases := 0, 0
	for _, p := range params {
		switch p.Kind() {
		case nn.Weight:
			weights++
		case nn.Bias:
			biases++
		}
	}
	assert.Equal(t, 4, weights)
	assert.Equal(t, 4, biases)
}

// TestAutoencoder_SharedWeights tests that Encode and Forward go
// through the same encoder instance: a parameter update through one
// path is visible on the other.
func TestAutoencoder_SharedWeights(t *testing.T) {
	backend := autodiff.New(cpu.New())
	cfg := testConfig()
	model := newModel(t, cfg, backend)
	model.SetTraining(false)

	x := randomBatch(t, backend, 3, cfg.InputDim, 2)
	before := model.Encode(x).Data()

	// Mutate an encoder weight directly.
	w := model.Parameters()[0]
	require.Equal(t, "encoder.fc1.weight", w.Name())
	w.Tensor().Data()[0] += 10

	after := model.Encode(x).Data()
	assert.NotEqual(t, before, after, "encoder weight change must affect Encode")
}

// TestAutoencoder_WeightPenalty tests that the penalty covers weights
// only, not biases.
func TestAutoencoder_WeightPenalty(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newModel(t, testConfig(), backend)

	before := model.WeightPenalty().Item()
	assert.Greater(t, before, float32(0))

	// Changing a bias must not change the penalty.
	for _, p := range model.Parameters() {
		if p.Kind() == nn.Bias {
			p.Tensor().Data()[0] = 100
		}
	}
	assert.InDelta(t, before, model.WeightPenalty().Item(), 1e-6)

	// Changing a weight must.
	model.Parameters()[0].Tensor().Data()[0] += 1
	assert.NotEqual(t, before, model.WeightPenalty().Item())
}

// TestAutoencoder_ZeroInit tests the exactly-predictable all-zeros
// scenario: the encoder collapses every input to the zero latent, the
// reconstruction is zero, and the MSE against x equals mean(x²).
func TestAutoencoder_ZeroInit(t *testing.T) {
	backend := autodiff.New(cpu.New())
	cfg := testConfig()
	cfg.Init = nn.InitZeros
	model := newModel(t, cfg, backend)
	model.SetTraining(false)

	x := randomBatch(t, backend, 4, cfg.InputDim, 3)

	latent := model.Encode(x)
	for _, v := range latent.Data() {
		assert.Zero(t, v)
	}

	recon := model.Forward(x)
	for _, v := range recon.Data() {
		assert.Zero(t, v)
	}

	loss := nn.NewMSELoss[Backend]().Forward(recon, x)
	expected := x.Mul(x).Mean().Item()
	assert.InDelta(t, expected, loss.Item(), 1e-6)
}

// TestAutoencoder_EvalDeterminism tests that evaluation mode with
// dropout configured is deterministic.
func TestAutoencoder_EvalDeterminism(t *testing.T) {
	backend := autodiff.New(cpu.New())
	cfg := testConfig()
	cfg.DropoutP = 0.5
	model := newModel(t, cfg, backend)
	model.SetTraining(false)

	x := randomBatch(t, backend, 3, cfg.InputDim, 4)

	first := model.Forward(x).Data()
	second := model.Forward(x).Data()
	assert.Equal(t, first, second)
}

// TestAutoencoder_StateDict tests the save/load round trip across two
// model instances.
func TestAutoencoder_StateDict(t *testing.T) {
	backend := autodiff.New(cpu.New())
	cfg := testConfig()

	src := newModel(t, cfg, backend)

	cfg2 := cfg
	cfg2.Seed = 99
	dst := newModel(t, cfg2, backend)

	require.NoError(t, dst.LoadStateDict(src.StateDict()))

	src.SetTraining(false)
	dst.SetTraining(false)

	x := randomBatch(t, backend, 2, cfg.InputDim, 5)
	assert.Equal(t, src.Forward(x).Data(), dst.Forward(x).Data())
}

// TestAutoencoder_StateDictMissing tests load validation.
func TestAutoencoder_StateDictMissing(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newModel(t, testConfig(), backend)

	state := model.StateDict()
	delete(state, "decoder.fc2.bias")

	assert.Error(t, model.LoadStateDict(state))
}
