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

// Package neural implements the per-task feed-forward classifiers.
//
// This package uses gonum for numerical operations to ensure
// production-quality performance and numerical stability.
package neural

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Network is a feed-forward classifier: input layer sized to a task's
// vocabulary, one or more ReLU hidden layers, softmax output sized to the
// task's label count. Once trained it is read-only and safe for concurrent
// inference.
type Network struct {
	layerSizes []int // input, hidden..., output
	weights    []*mat.Dense
	biases     []*mat.Dense
	labels     []string

	// vocabChecksum stamps the vocabulary the network was trained against;
	// persisted with the model and verified at load time.
	vocabChecksum string
	trained       bool
}

// New creates an untrained network with the given topology.
func New(inputDim int, hiddenLayers []int, labels []string, vocabChecksum string) (*Network, error) {
	if inputDim <= 0 {
		return nil, fmt.Errorf("input dimension must be positive, got %d", inputDim)
	}
	if len(labels) < 2 {
		return nil, fmt.Errorf("need at least 2 labels, got %d", len(labels))
	}
	if len(hiddenLayers) == 0 {
		hiddenLayers = []int{128, 64}
	}

	layerSizes := append([]int{inputDim}, hiddenLayers...)
	layerSizes = append(layerSizes, len(labels))

	return &Network{
		layerSizes:    layerSizes,
		labels:        append([]string(nil), labels...),
		vocabChecksum: vocabChecksum,
	}, nil
}

// InputDim returns the expected feature-vector length.
func (n *Network) InputDim() int { return n.layerSizes[0] }

// Labels returns the output label set in index order.
func (n *Network) Labels() []string { return n.labels }

// VocabChecksum returns the vocabulary stamp the network was trained against.
func (n *Network) VocabChecksum() string { return n.vocabChecksum }

// Trained reports whether the network has been trained or loaded.
func (n *Network) Trained() bool { return n.trained }

// initWeights applies He initialization (suited to ReLU activations), using
// Box-Muller to approximate a normal distribution, and small positive biases
// to avoid dead ReLU units.
func (n *Network) initWeights(rng *rand.Rand) {
	numLayers := len(n.layerSizes) - 1
	n.weights = make([]*mat.Dense, numLayers)
	n.biases = make([]*mat.Dense, numLayers)

	for l := 0; l < numLayers; l++ {
		inSize := n.layerSizes[l]
		outSize := n.layerSizes[l+1]

		scale := math.Sqrt(2.0 / float64(inSize))
		weights := make([]float64, outSize*inSize)
		for i := range weights {
			u1 := rng.Float64()
			u2 := rng.Float64()
			z := math.Sqrt(-2*math.Log(u1+1e-10)) * math.Cos(2*math.Pi*u2)
			weights[i] = scale * z
		}
		n.weights[l] = mat.NewDense(outSize, inSize, weights)

		biases := make([]float64, outSize)
		for i := range biases {
			biases[i] = 0.01
		}
		n.biases[l] = mat.NewDense(outSize, 1, biases)
	}
}

// Predict runs inference and returns the highest-probability label index, its
// probability, and the full distribution.
func (n *Network) Predict(features []float64) (int, float64, []float64, error) {
	if !n.trained {
		return 0, 0, nil, fmt.Errorf("network is not trained")
	}
	if len(features) != n.InputDim() {
		return 0, 0, nil, fmt.Errorf("feature vector length %d does not match input dimension %d",
			len(features), n.InputDim())
	}

	input := mat.NewDense(n.InputDim(), 1, features)
	output := n.forward(input, nil)

	probs := make([]float64, len(n.labels))
	for i := range probs {
		probs[i] = output.At(i, 0)
	}
	best := floats.MaxIdx(probs)
	return best, probs[best], probs, nil
}

// forward performs a full forward pass. dropoutMasks, when non-nil, holds one
// inverted-dropout mask per hidden layer (training only; nil for inference).
func (n *Network) forward(input *mat.Dense, dropoutMasks []*mat.Dense) *mat.Dense {
	activations, _ := n.forwardAll(input, dropoutMasks)
	return activations[len(activations)-1]
}

// forwardAll performs a forward pass keeping every activation and
// pre-activation for backpropagation.
func (n *Network) forwardAll(input *mat.Dense, dropoutMasks []*mat.Dense) ([]*mat.Dense, []*mat.Dense) {
	numLayers := len(n.weights)
	activations := make([]*mat.Dense, numLayers+1)
	preActivations := make([]*mat.Dense, numLayers+1)
	activations[0] = input
	preActivations[0] = input

	current := input
	for l := 0; l < numLayers; l++ {
		rows, _ := n.weights[l].Dims()

		preAct := mat.NewDense(rows, 1, nil)
		preAct.Mul(n.weights[l], current)
		preAct.Add(preAct, n.biases[l])
		preActivations[l+1] = preAct

		output := mat.NewDense(rows, 1, nil)
		if l < numLayers-1 {
			// ReLU for hidden layers
			for i := 0; i < rows; i++ {
				val := preAct.At(i, 0)
				if val > 0 {
					output.Set(i, 0, val)
				}
			}
			if dropoutMasks != nil && dropoutMasks[l] != nil {
				output.MulElem(output, dropoutMasks[l])
			}
		} else {
			// Softmax for the output layer
			vals := make([]float64, rows)
			for i := 0; i < rows; i++ {
				vals[i] = preAct.At(i, 0)
			}
			for i, v := range Softmax(vals) {
				output.Set(i, 0, v)
			}
		}

		activations[l+1] = output
		current = output
	}
	return activations, preActivations
}

// Softmax computes softmax with numerical stability.
func Softmax(x []float64) []float64 {
	if len(x) == 0 {
		return x
	}

	maxVal := floats.Max(x)
	result := make([]float64, len(x))
	var sum float64
	for i, v := range x {
		result[i] = math.Exp(v - maxVal)
		sum += result[i]
	}
	if sum > 0 {
		floats.Scale(1/sum, result)
	}
	return result
}
