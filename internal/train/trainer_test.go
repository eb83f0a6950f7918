package train_test

import (
	"context"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-ml/latch/internal/ae"
	"github.com/latch-ml/latch/internal/autodiff"
	"github.com/latch-ml/latch/internal/backend/cpu"
	"github.com/latch-ml/latch/internal/data"
	"github.com/latch-ml/latch/internal/train"
)

type Backend = *autodiff.Backend[*cpu.Backend]

func setup(t *testing.T, cfg train.Config) (*train.Trainer[*cpu.Backend], *data.Dataset, Backend) {
	t.Helper()
	backend := autodiff.New(cpu.New())

	ds := data.Synthetic(200, 16, 4, 42)

	model, err := ae.New(ae.Config{
		InputDim:  16,
		HiddenDim: 16,
		LatentDim: 4,
		Seed:      42,
	}, backend)
	require.NoError(t, err)

	sampler, err := data.NewSampler(ds, cfg.BatchSize, true, cfg.Seed, backend)
	require.NoError(t, err)

	trainer, err := train.NewTrainer(model, sampler, cfg, backend)
	require.NoError(t, err)

	return trainer, ds, backend
}

// TestConfig_Validate tests hyperparameter validation.
func TestConfig_Validate(t *testing.T) {
	valid := train.Config{Epochs: 1, BatchSize: 32}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Epochs = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.BatchSize = -1
	assert.Error(t, bad.Validate())

	bad = valid
	bad.CorruptRate = 1.0
	assert.Error(t, bad.Validate(), "corrupt rate 1 would destroy every input")

	bad = valid
	bad.WeightDecay = -0.1
	assert.Error(t, bad.Validate())
}

// TestTrainer_Convergence tests that training reduces the
// reconstruction loss on low-rank synthetic data.
func TestTrainer_Convergence(t *testing.T) {
	trainer, _, _ := setup(t, train.Config{
		Epochs:       30,
		BatchSize:    32,
		LearningRate: 0.01,
		Seed:         42,
	})

	history, err := trainer.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 30)

	for i, loss := range history {
		require.False(t, math32.IsNaN(loss) || math32.IsInf(loss, 0),
			"epoch %d loss is not finite: %f", i, loss)
	}

	first, last := history[0], history[len(history)-1]
	assert.Less(t, last, first*0.5,
		"loss did not improve: first %f, last %f", first, last)
}

// TestTrainer_WeightPenalty tests that the penalized run still trains
// and keeps finite losses.
func TestTrainer_WeightPenalty(t *testing.T) {
	trainer, _, _ := setup(t, train.Config{
		Epochs:       5,
		BatchSize:    32,
		LearningRate: 0.01,
		WeightDecay:  0.1,
		Seed:         42,
	})

	history, err := trainer.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Less(t, history[len(history)-1], history[0])
}

// TestTrainer_Denoising tests the corruption path end to end.
func TestTrainer_Denoising(t *testing.T) {
	trainer, _, _ := setup(t, train.Config{
		Epochs:       5,
		BatchSize:    32,
		LearningRate: 0.01,
		CorruptRate:  0.3,
		Seed:         42,
	})

	history, err := trainer.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 5)
	for _, loss := range history {
		assert.False(t, math32.IsNaN(loss))
	}
}

// TestTrainer_Cancellation tests that a cancelled context stops the run
// between batches.
func TestTrainer_Cancellation(t *testing.T) {
	trainer, _, _ := setup(t, train.Config{
		Epochs:       1000,
		BatchSize:    32,
		LearningRate: 0.001,
		Seed:         42,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	history, err := trainer.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, history)
}

// TestTrainer_Evaluate tests evaluation over a held-out sampler.
func TestTrainer_Evaluate(t *testing.T) {
	trainer, ds, backend := setup(t, train.Config{
		Epochs:       3,
		BatchSize:    32,
		LearningRate: 0.01,
		Seed:         42,
	})

	_, err := trainer.Run(context.Background())
	require.NoError(t, err)

	evalSampler, err := data.NewSampler(ds, 32, false, 42, backend)
	require.NoError(t, err)

	first, err := trainer.Evaluate(evalSampler)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, first, float32(0))

	// Without corruption or dropout, evaluation is deterministic.
	second, err := trainer.Evaluate(evalSampler)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestNewTrainer_InvalidConfig tests config rejection at construction.
func TestNewTrainer_InvalidConfig(t *testing.T) {
	backend := autodiff.New(cpu.New())

	ds := data.Synthetic(50, 8, 2, 1)
	model, err := ae.New(ae.Config{InputDim: 8, HiddenDim: 8, LatentDim: 2, Seed: 1}, backend)
	require.NoError(t, err)
	sampler, err := data.NewSampler(ds, 16, true, 1, backend)
	require.NoError(t, err)

	_, err = train.NewTrainer(model, sampler, train.Config{Epochs: 0, BatchSize: 16}, backend)
	assert.Error(t, err)
}
