/*
Copyright 2025 Intake Engine Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package neural

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/helpdeskai/intake-engine/pkg/observability"
)

// Sample is one training example: a feature vector and its one-hot target.
type Sample struct {
	Features []float64
	Target   []float64
}

// TrainOptions holds the hyperparameters of a training pass.
type TrainOptions struct {
	Epochs          int
	BatchSize       int
	LearningRate    float64
	Dropout         float64
	ValidationSplit float64
	Seed            int64
}

// DefaultTrainOptions mirrors the engine's fixed training regime: 50 epochs,
// minibatches of 32, Adam at 1e-3, dropout 0.25, 20% held-out validation
// (monitoring only, no early stopping).
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Epochs:          50,
		BatchSize:       32,
		LearningRate:    0.001,
		Dropout:         0.25,
		ValidationSplit: 0.2,
	}
}

// adamState holds first/second moment estimates for one parameter matrix.
type adamState struct {
	m *mat.Dense
	v *mat.Dense
}

func newAdamState(rows, cols int) *adamState {
	return &adamState{
		m: mat.NewDense(rows, cols, nil),
		v: mat.NewDense(rows, cols, nil),
	}
}

const (
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-8
)

// update applies one bias-corrected Adam step in place.
func (s *adamState) update(param, grad *mat.Dense, lr float64, step int) {
	rows, cols := param.Dims()
	t := float64(step)
	bc1 := 1 - math.Pow(adamBeta1, t)
	bc2 := 1 - math.Pow(adamBeta2, t)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g := grad.At(i, j)
			m := adamBeta1*s.m.At(i, j) + (1-adamBeta1)*g
			v := adamBeta2*s.v.At(i, j) + (1-adamBeta2)*g*g
			s.m.Set(i, j, m)
			s.v.Set(i, j, v)
			param.Set(i, j, param.At(i, j)-lr*(m/bc1)/(math.Sqrt(v/bc2)+adamEpsilon))
		}
	}
}

// Train fits the network on the samples with minibatch Adam and multi-class
// cross-entropy. The validation split is monitored (logged) but never alters
// the run: training always completes the fixed epoch count. A feature vector
// whose length does not match the input dimension is a hard error — dimension
// mismatches must surface at initialization, not degrade inference silently.
func (n *Network) Train(samples []Sample, opts TrainOptions) error {
	if len(samples) == 0 {
		return fmt.Errorf("no training samples")
	}
	for i, s := range samples {
		if len(s.Features) != n.InputDim() {
			return fmt.Errorf("sample %d feature length %d does not match input dimension %d",
				i, len(s.Features), n.InputDim())
		}
		if len(s.Target) != len(n.labels) {
			return fmt.Errorf("sample %d target length %d does not match label count %d",
				i, len(s.Target), len(n.labels))
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	n.initWeights(rng)

	// Hold out the validation slice after one shuffle
	shuffled := append([]Sample(nil), samples...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	valCount := int(opts.ValidationSplit * float64(len(shuffled)))
	validation := shuffled[:valCount]
	training := shuffled[valCount:]
	if len(training) == 0 {
		training = shuffled
		validation = nil
	}

	numLayers := len(n.weights)
	weightStates := make([]*adamState, numLayers)
	biasStates := make([]*adamState, numLayers)
	gradW := make([]*mat.Dense, numLayers)
	gradB := make([]*mat.Dense, numLayers)
	for l := 0; l < numLayers; l++ {
		rows, cols := n.weights[l].Dims()
		weightStates[l] = newAdamState(rows, cols)
		biasStates[l] = newAdamState(rows, 1)
		gradW[l] = mat.NewDense(rows, cols, nil)
		gradB[l] = mat.NewDense(rows, 1, nil)
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 32
	}
	step := 0

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		rng.Shuffle(len(training), func(i, j int) {
			training[i], training[j] = training[j], training[i]
		})

		for start := 0; start < len(training); start += batchSize {
			end := start + batchSize
			if end > len(training) {
				end = len(training)
			}
			batch := training[start:end]

			for l := 0; l < numLayers; l++ {
				gradW[l].Zero()
				gradB[l].Zero()
			}

			for _, sample := range batch {
				masks := n.dropoutMasks(rng, opts.Dropout)
				input := mat.NewDense(n.InputDim(), 1, sample.Features)
				activations, preActivations := n.forwardAll(input, masks)
				n.accumulateGradients(activations, preActivations, masks, sample.Target, gradW, gradB)
			}

			scale := 1.0 / float64(len(batch))
			step++
			for l := 0; l < numLayers; l++ {
				gradW[l].Scale(scale, gradW[l])
				gradB[l].Scale(scale, gradB[l])
				weightStates[l].update(n.weights[l], gradW[l], opts.LearningRate, step)
				biasStates[l].update(n.biases[l], gradB[l], opts.LearningRate, step)
			}
		}

		if (epoch+1)%10 == 0 || epoch == opts.Epochs-1 {
			trainLoss := n.meanLoss(training)
			if len(validation) > 0 {
				observability.Debugf("epoch %d/%d: train_loss=%.4f val_loss=%.4f",
					epoch+1, opts.Epochs, trainLoss, n.meanLoss(validation))
			} else {
				observability.Debugf("epoch %d/%d: train_loss=%.4f", epoch+1, opts.Epochs, trainLoss)
			}
		}
	}

	n.trained = true
	return nil
}

// dropoutMasks builds one inverted-dropout mask per hidden layer. Kept units
// are scaled by 1/(1-rate) so inference needs no rescaling.
func (n *Network) dropoutMasks(rng *rand.Rand, rate float64) []*mat.Dense {
	if rate <= 0 {
		return nil
	}
	masks := make([]*mat.Dense, len(n.weights)-1)
	keepScale := 1.0 / (1.0 - rate)
	for l := 0; l < len(masks); l++ {
		rows, _ := n.weights[l].Dims()
		mask := mat.NewDense(rows, 1, nil)
		for i := 0; i < rows; i++ {
			if rng.Float64() >= rate {
				mask.Set(i, 0, keepScale)
			}
		}
		masks[l] = mask
	}
	return masks
}

// accumulateGradients backpropagates one sample and adds its gradients into
// gradW/gradB. The output delta is (softmax - target), the standard
// cross-entropy-with-softmax gradient.
func (n *Network) accumulateGradients(
	activations, preActivations, masks []*mat.Dense,
	target []float64,
	gradW, gradB []*mat.Dense,
) {
	numLayers := len(n.weights)
	deltas := make([]*mat.Dense, numLayers)

	output := activations[numLayers]
	outRows, _ := output.Dims()
	outputDelta := mat.NewDense(outRows, 1, nil)
	for i := 0; i < outRows; i++ {
		outputDelta.Set(i, 0, output.At(i, 0)-target[i])
	}
	deltas[numLayers-1] = outputDelta

	// Hidden deltas: delta[l] = (W[l+1]^T * delta[l+1]) ⊙ ReLU'(preAct) ⊙ mask
	for l := numLayers - 2; l >= 0; l-- {
		rows, _ := n.weights[l].Dims()
		delta := mat.NewDense(rows, 1, nil)
		wT := mat.DenseCopyOf(n.weights[l+1].T())
		delta.Mul(wT, deltas[l+1])

		preAct := preActivations[l+1]
		for i := 0; i < rows; i++ {
			if preAct.At(i, 0) <= 0 {
				delta.Set(i, 0, 0)
			}
		}
		if masks != nil && masks[l] != nil {
			delta.MulElem(delta, masks[l])
		}
		deltas[l] = delta
	}

	for l := 0; l < numLayers; l++ {
		rows, cols := n.weights[l].Dims()
		prevActivation := activations[l]
		for i := 0; i < rows; i++ {
			d := deltas[l].At(i, 0)
			for j := 0; j < cols; j++ {
				gradW[l].Set(i, j, gradW[l].At(i, j)+d*prevActivation.At(j, 0))
			}
			gradB[l].Set(i, 0, gradB[l].At(i, 0)+d)
		}
	}
}

// meanLoss computes mean cross-entropy over the samples without dropout.
func (n *Network) meanLoss(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var total float64
	for _, sample := range samples {
		input := mat.NewDense(n.InputDim(), 1, sample.Features)
		output := n.forward(input, nil)
		for i, t := range sample.Target {
			if t > 0 {
				total += -t * math.Log(output.At(i, 0)+1e-12)
			}
		}
	}
	return total / float64(len(samples))
}
