// Package main provides the latch CLI: it trains an autoencoder on
// MNIST-style data and exports latent projections and reconstructions
// as CSV.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/latch-ml/latch/ae"
	"github.com/latch-ml/latch/autodiff"
	"github.com/latch-ml/latch/backend/cpu"
	"github.com/latch-ml/latch/data"
	"github.com/latch-ml/latch/tensor"
	"github.com/latch-ml/latch/train"
)

const version = "v0.1.0-dev"

type backendT = *autodiff.Backend[*cpu.Backend]

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("latch %s\n", version)
		return
	}

	dataDir := flag.String("data", "", "directory with MNIST IDX files (empty: synthetic data)")
	samples := flag.Int("samples", 0, "max samples to use (0 = all)")
	latentDim := flag.Int("latent", 2, "latent dimension")
	hiddenDim := flag.Int("hidden", 128, "hidden layer width")
	batchSize := flag.Int("batch", 256, "batch size")
	epochs := flag.Int("epochs", 10, "training epochs")
	lr := flag.Float64("lr", 0.001, "Adam learning rate")
	gamma := flag.Float64("gamma", 0, "weight penalty coefficient (0 disables)")
	dropout := flag.Float64("dropout", 0, "latent dropout probability (0 disables)")
	corrupt := flag.Float64("corrupt", 0, "input corruption rate for denoising (0 disables)")
	evalSize := flag.Int("eval-size", 0, "samples held out for evaluation (0 = no holdout)")
	seed := flag.Int64("seed", 42, "random seed")
	logEvery := flag.Int("log-every", 0, "log every N batches within an epoch (0 = epochs only)")
	latentsOut := flag.String("latents", "", "CSV path for evaluation-set latent coordinates")
	reconOut := flag.String("recon", "", "CSV path for evaluation-set reconstructions")
	flag.Parse()

	log.SetFlags(0)

	if err := run(*dataDir, *samples, *latentDim, *hiddenDim, *batchSize, *epochs,
		float32(*lr), float32(*gamma), float32(*dropout), float32(*corrupt),
		*evalSize, *seed, *logEvery, *latentsOut, *reconOut); err != nil {
		log.Fatalf("latch: %v", err)
	}
}

func run(
	dataDir string, samples, latentDim, hiddenDim, batchSize, epochs int,
	lr, gamma, dropout, corrupt float32,
	evalSize int, seed int64, logEvery int,
	latentsOut, reconOut string,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := loadData(dataDir, samples, seed)
	if err != nil {
		return err
	}
	log.Printf("dataset samples=%d dim=%d", ds.NumSamples(), ds.Dim())

	trainSet := ds
	var evalSet *data.Dataset
	if evalSize > 0 {
		rng := rand.New(rand.NewSource(seed))
		trainSet, evalSet, err = ds.Split(evalSize, rng)
		if err != nil {
			return err
		}
		log.Printf("split train=%d eval=%d", trainSet.NumSamples(), evalSet.NumSamples())
	}

	backend := autodiff.New(cpu.New())

	model, err := ae.New(ae.Config{
		InputDim:  ds.Dim(),
		HiddenDim: hiddenDim,
		LatentDim: latentDim,
		DropoutP:  dropout,
		Seed:      seed,
	}, backend)
	if err != nil {
		return err
	}

	sampler, err := data.NewSampler(trainSet, batchSize, true, seed, backend)
	if err != nil {
		return err
	}

	trainer, err := train.NewTrainer(model, sampler, train.Config{
		Epochs:       epochs,
		BatchSize:    batchSize,
		LearningRate: lr,
		WeightDecay:  gamma,
		CorruptRate:  corrupt,
		Seed:         seed,
		LogEvery:     logEvery,
	}, backend)
	if err != nil {
		return err
	}

	history, err := trainer.Run(ctx)
	if err != nil {
		return err
	}
	if len(history) > 0 {
		log.Printf("training done epochs=%d final_loss=%.6f", len(history), history[len(history)-1])
	}

	if evalSet == nil {
		return nil
	}

	evalSampler, err := data.NewSampler(evalSet, batchSize, false, seed, backend)
	if err != nil {
		return err
	}
	evalLoss, err := trainer.Evaluate(evalSampler)
	if err != nil {
		return err
	}
	log.Printf("eval loss=%.6f samples=%d", evalLoss, evalSet.NumSamples())

	if latentsOut != "" {
		if err := writeLatents(latentsOut, model, evalSampler); err != nil {
			return fmt.Errorf("writing latents: %w", err)
		}
		log.Printf("wrote latents path=%s", latentsOut)
	}
	if reconOut != "" {
		if err := writeReconstructions(reconOut, model, evalSampler); err != nil {
			return fmt.Errorf("writing reconstructions: %w", err)
		}
		log.Printf("wrote reconstructions path=%s", reconOut)
	}

	return nil
}

// loadData loads MNIST from dataDir, or generates a synthetic low-rank
// dataset when no directory is given.
func loadData(dataDir string, samples int, seed int64) (*data.Dataset, error) {
	if dataDir == "" {
		n := samples
		if n == 0 {
			n = 5000
		}
		log.Printf("using synthetic data samples=%d", n)
		return data.Synthetic(n, 784, 10, seed), nil
	}

	ds, err := data.LoadMNIST(dataDir, true)
	if err != nil {
		return nil, err
	}
	if samples > 0 && samples < ds.NumSamples() {
		return data.NewDataset(ds.Features[:samples], ds.Labels[:samples])
	}
	return ds, nil
}

// writeLatents exports one CSV row per evaluation sample:
// label, then the latent coordinates.
func writeLatents(path string, model *ae.Autoencoder[backendT], sampler *data.Sampler[backendT]) error {
	model.SetTraining(false)
	sampler.Reset()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"label"}
	for {
		batch, ok := sampler.Next()
		if !ok {
			break
		}

		latent := model.Encode(batch.Input)
		dim := latent.Shape()[1]

		if len(header) == 1 {
			for j := 0; j < dim; j++ {
				header = append(header, "z"+strconv.Itoa(j))
			}
			if err := w.Write(header); err != nil {
				return err
			}
		}

		if err := writeRows(w, batch.Labels, latent, dim); err != nil {
			return err
		}
	}

	return w.Error()
}

// writeReconstructions exports one CSV row per evaluation sample:
// label, then the reconstructed feature vector.
func writeReconstructions(path string, model *ae.Autoencoder[backendT], sampler *data.Sampler[backendT]) error {
	model.SetTraining(false)
	sampler.Reset()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	wroteHeader := false
	for {
		batch, ok := sampler.Next()
		if !ok {
			break
		}

		recon := model.Forward(batch.Input)
		dim := recon.Shape()[1]

		if !wroteHeader {
			header := []string{"label"}
			for j := 0; j < dim; j++ {
				header = append(header, "x"+strconv.Itoa(j))
			}
			if err := w.Write(header); err != nil {
				return err
			}
			wroteHeader = true
		}

		if err := writeRows(w, batch.Labels, recon, dim); err != nil {
			return err
		}
	}

	return w.Error()
}

func writeRows(w *csv.Writer, labels []int32, t *tensor.Tensor[float32, backendT], dim int) error {
	vals := t.Data()
	row := make([]string, dim+1)
	for i, label := range labels {
		row[0] = strconv.Itoa(int(label))
		for j := 0; j < dim; j++ {
			row[j+1] = strconv.FormatFloat(float64(vals[i*dim+j]), 'g', -1, 32)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
