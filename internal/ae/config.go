// Package ae implements the fully-connected autoencoder: an Encoder that
// compresses flattened images into a low-dimensional latent code, a
// Decoder that reconstructs them, and the Autoencoder that owns both and
// shares their parameters across the encode-only, decode-only and
// round-trip paths.
package ae

import (
	"fmt"

	"github.com/latch-ml/latch/internal/nn"
)

// Config describes an autoencoder architecture. It is an immutable value
// passed to New; nothing in this package keeps mutable package state.
type Config struct {
	// InputDim is the flattened input dimensionality (784 for MNIST).
	InputDim int

	// HiddenDim is the width of the intermediate layer in both networks.
	HiddenDim int

	// LatentDim is the dimensionality of the latent code.
	LatentDim int

	// DropoutP is the probability of zeroing a latent element before
	// decoding during training. Must be in [0, 1).
	DropoutP float32

	// Init selects the weight initialization scheme.
	Init nn.Init

	// Seed seeds weight initialization and the dropout mask stream.
	Seed int64
}

// Validate rejects configurations that could not produce a working
// network. It is called by New, so a constructed Autoencoder always has
// a valid configuration.
func (c Config) Validate() error {
	if c.InputDim <= 0 {
		return fmt.Errorf("ae: input dim must be > 0, got %d", c.InputDim)
	}
	if c.HiddenDim <= 0 {
		return fmt.Errorf("ae: hidden dim must be > 0, got %d", c.HiddenDim)
	}
	if c.LatentDim <= 0 {
		return fmt.Errorf("ae: latent dim must be > 0, got %d", c.LatentDim)
	}
	if c.DropoutP < 0 || c.DropoutP >= 1 {
		return fmt.Errorf("ae: dropout probability %v outside [0, 1)", c.DropoutP)
	}
	return nil
}
