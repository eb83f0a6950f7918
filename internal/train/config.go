// Package train drives the autoencoder training loop: per-epoch batch
// iteration, taped forward passes, backward gradient computation and
// Adam parameter updates.
package train

import "fmt"

// Config holds the hyperparameters of one training run.
type Config struct {
	// Epochs is the number of full passes over the training set.
	Epochs int

	// BatchSize is the number of samples per gradient step.
	BatchSize int

	// LearningRate is the Adam step size. Zero falls back to 0.001.
	LearningRate float32

	// WeightDecay scales the weight-magnitude penalty added to the
	// reconstruction loss. Zero disables the penalty.
	WeightDecay float32

	// CorruptRate is the probability of zeroing each input feature
	// before encoding (denoising training). Zero disables corruption.
	// The clean input remains the reconstruction target.
	CorruptRate float32

	// Seed drives batch shuffling and corruption masks.
	Seed int64

	// LogEvery is the batch interval for progress lines within an
	// epoch. Zero logs only per-epoch summaries.
	LogEvery int
}

// Validate reports the first invalid hyperparameter.
func (c Config) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("train: epochs must be > 0, got %d", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("train: batch size must be > 0, got %d", c.BatchSize)
	}
	if c.LearningRate < 0 {
		return fmt.Errorf("train: learning rate must be >= 0, got %v", c.LearningRate)
	}
	if c.WeightDecay < 0 {
		return fmt.Errorf("train: weight decay must be >= 0, got %v", c.WeightDecay)
	}
	if c.CorruptRate < 0 || c.CorruptRate >= 1 {
		return fmt.Errorf("train: corrupt rate %v outside [0, 1)", c.CorruptRate)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("train: log interval must be >= 0, got %d", c.LogEvery)
	}
	return nil
}
