package optim

import (
	"github.com/latch-ml/latch/internal/nn"
	"github.com/latch-ml/latch/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Without momentum: param = param - lr * grad
// With momentum:    buf = momentum * buf + grad; param = param - lr * buf
type SGD[B tensor.Backend] struct {
	params   []*nn.Parameter[B]
	lr       float32
	momentum float32
	buf      map[*nn.Parameter[B]][]float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum coefficient (0 disables momentum)
}

// NewSGD creates a new SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[B]{
		params:   params,
		lr:       config.LR,
		momentum: config.Momentum,
		buf:      make(map[*nn.Parameter[B]][]float32),
	}
}

// Step performs a single optimization step.
// Parameters without a gradient in the map are skipped.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		gradData := grad.AsFloat32()
		paramData := param.Tensor().Data()

		if s.momentum == 0 {
			for i := range paramData {
				paramData[i] -= s.lr * gradData[i]
			}
			continue
		}

		buf, ok := s.buf[param]
		if !ok {
			buf = make([]float32, len(paramData))
			s.buf[param] = buf
		}
		for i := range paramData {
			buf[i] = s.momentum*buf[i] + gradData[i]
			paramData[i] -= s.lr * buf[i]
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD[B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD[B]) GetLR() float32 {
	return s.lr
}
