package train

import (
	"context"
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/floats"

	"github.com/latch-ml/latch/internal/ae"
	"github.com/latch-ml/latch/internal/autodiff"
	"github.com/latch-ml/latch/internal/data"
	"github.com/latch-ml/latch/internal/nn"
	"github.com/latch-ml/latch/internal/optim"
	"github.com/latch-ml/latch/internal/tensor"
)

// Trainer runs the autoencoder training loop on an autodiff-decorated
// backend. One Trainer owns the optimizer state and the corruption rng,
// so a run is reproducible from Config.Seed alone.
type Trainer[B tensor.Backend] struct {
	cfg       Config
	model     *ae.Autoencoder[*autodiff.Backend[B]]
	sampler   *data.Sampler[*autodiff.Backend[B]]
	corruptor *data.Corruptor[*autodiff.Backend[B]]
	mse       *nn.MSELoss[*autodiff.Backend[B]]
	opt       *optim.Adam[*autodiff.Backend[B]]
	backend   *autodiff.Backend[B]
}

// NewTrainer wires a model, a batch sampler and a config into a runnable
// trainer. The sampler should shuffle; evaluation uses a separate
// non-shuffling sampler via Evaluate.
func NewTrainer[B tensor.Backend](
	model *ae.Autoencoder[*autodiff.Backend[B]],
	sampler *data.Sampler[*autodiff.Backend[B]],
	cfg Config,
	backend *autodiff.Backend[B],
) (*Trainer[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var corruptor *data.Corruptor[*autodiff.Backend[B]]
	if cfg.CorruptRate > 0 {
		var err error
		corruptor, err = data.NewCorruptor[*autodiff.Backend[B]](cfg.CorruptRate, cfg.Seed)
		if err != nil {
			return nil, err
		}
	}

	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.LearningRate})

	return &Trainer[B]{
		cfg:       cfg,
		model:     model,
		sampler:   sampler,
		corruptor: corruptor,
		mse:       nn.NewMSELoss[*autodiff.Backend[B]](),
		opt:       opt,
		backend:   backend,
	}, nil
}

// Optimizer exposes the Adam instance (timestep, learning rate).
func (t *Trainer[B]) Optimizer() *optim.Adam[*autodiff.Backend[B]] {
	return t.opt
}

// Run trains for the configured number of epochs and returns the
// per-epoch mean training loss. Cancellation is checked between batches;
// a cancelled run returns the history accumulated so far alongside the
// context error.
//
// Each batch is one taped forward pass, one backward pass and one Adam
// step. A non-finite loss aborts the run, since every later step would
// be poisoned anyway.
func (t *Trainer[B]) Run(ctx context.Context) ([]float32, error) {
	t.model.SetTraining(true)
	defer t.model.SetTraining(false)

	history := make([]float32, 0, t.cfg.Epochs)

	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		t.sampler.Reset()

		batchLosses := make([]float64, 0, t.sampler.NumBatches())
		batchIdx := 0

		for {
			if err := ctx.Err(); err != nil {
				return history, err
			}

			batch, ok := t.sampler.Next()
			if !ok {
				break
			}
			batchIdx++

			loss, err := t.step(batch)
			if err != nil {
				return history, fmt.Errorf("epoch %d batch %d: %w", epoch, batchIdx, err)
			}
			batchLosses = append(batchLosses, float64(loss))

			if t.cfg.LogEvery > 0 && batchIdx%t.cfg.LogEvery == 0 {
				log.Printf("epoch=%d batch=%d/%d loss=%.6f",
					epoch, batchIdx, t.sampler.NumBatches(), loss)
			}
		}

		epochLoss := float32(floats.Sum(batchLosses) / float64(len(batchLosses)))
		history = append(history, epochLoss)
		log.Printf("epoch=%d loss=%.6f", epoch, epochLoss)
	}

	return history, nil
}

// step runs one gradient update and returns the batch loss.
func (t *Trainer[B]) step(batch *data.Batch[*autodiff.Backend[B]]) (float32, error) {
	tape := t.backend.Tape()
	tape.Clear()
	tape.StartRecording()
	defer tape.StopRecording()

	// The clean batch is always the target; corruption only touches the
	// encoder input.
	target := batch.Input
	input := target
	if t.corruptor != nil {
		input = t.corruptor.Corrupt(target)
	}

	recon := t.model.Forward(input)
	loss := t.mse.Forward(recon, target)
	if t.cfg.WeightDecay > 0 {
		loss = loss.Add(t.model.WeightPenalty().MulScalar(t.cfg.WeightDecay))
	}

	lossVal := loss.Item()
	if math32.IsNaN(lossVal) || math32.IsInf(lossVal, 0) {
		return lossVal, fmt.Errorf("train: non-finite loss %v", lossVal)
	}

	tape.StopRecording()
	grads := autodiff.Backward(loss, t.backend)
	t.opt.Step(grads)
	t.opt.ZeroGrad()

	return lossVal, nil
}

// Evaluate computes the mean reconstruction MSE over one full pass of
// the given sampler, with dropout in evaluation mode and no taping.
// When the trainer was configured for denoising, inputs are corrupted
// the same way as in training, against clean targets.
func (t *Trainer[B]) Evaluate(sampler *data.Sampler[*autodiff.Backend[B]]) (float32, error) {
	t.model.SetTraining(false)

	tape := t.backend.Tape()
	tape.StopRecording()
	tape.Clear()

	sampler.Reset()

	var sum float64
	var count int
	for {
		batch, ok := sampler.Next()
		if !ok {
			break
		}

		target := batch.Input
		input := target
		if t.corruptor != nil {
			input = t.corruptor.Corrupt(target)
		}

		recon := t.model.Forward(input)
		loss := t.mse.Forward(recon, target)
		sum += float64(loss.Item()) * float64(batch.Size)
		count += batch.Size
	}

	if count == 0 {
		return 0, fmt.Errorf("train: evaluation sampler produced no batches")
	}
	return float32(sum / float64(count)), nil
}
