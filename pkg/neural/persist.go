package neural

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// savedModelVersion identifies the persisted JSON layout.
const savedModelVersion = "1"

// SavedModel is the JSON structure of a persisted network: topology, weights,
// label set, and the vocabulary stamp it was trained against.
type SavedModel struct {
	Version       string        `json:"version"`
	LayerSizes    []int         `json:"layer_sizes"`
	Labels        []string      `json:"labels"`
	Weights       [][][]float64 `json:"weights"`
	Biases        [][]float64   `json:"biases"`
	VocabChecksum string        `json:"vocab_checksum"`
	Trained       bool          `json:"trained"`
}

// MarshalJSONModel serializes a trained network.
func (n *Network) MarshalJSONModel() ([]byte, error) {
	if !n.trained {
		return nil, fmt.Errorf("refusing to persist an untrained network")
	}

	saved := SavedModel{
		Version:       savedModelVersion,
		LayerSizes:    n.layerSizes,
		Labels:        n.labels,
		VocabChecksum: n.vocabChecksum,
		Trained:       true,
	}
	saved.Weights = make([][][]float64, len(n.weights))
	saved.Biases = make([][]float64, len(n.biases))
	for l, w := range n.weights {
		rows, cols := w.Dims()
		layer := make([][]float64, rows)
		for i := 0; i < rows; i++ {
			row := make([]float64, cols)
			for j := 0; j < cols; j++ {
				row[j] = w.At(i, j)
			}
			layer[i] = row
		}
		saved.Weights[l] = layer

		bRows, _ := n.biases[l].Dims()
		bias := make([]float64, bRows)
		for i := 0; i < bRows; i++ {
			bias[i] = n.biases[l].At(i, 0)
		}
		saved.Biases[l] = bias
	}
	return json.Marshal(saved)
}

// LoadFromJSON deserializes a persisted network, validating every tensor shape
// against the declared topology. Any inconsistency is an error; callers treat
// it as a corrupt artifact and retrain.
func LoadFromJSON(data []byte) (*Network, error) {
	var saved SavedModel
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}
	if !saved.Trained {
		return nil, fmt.Errorf("persisted model is marked untrained")
	}
	if len(saved.LayerSizes) < 2 {
		return nil, fmt.Errorf("persisted model has %d layers, need at least 2", len(saved.LayerSizes))
	}
	numLayers := len(saved.LayerSizes) - 1
	if len(saved.Weights) != numLayers || len(saved.Biases) != numLayers {
		return nil, fmt.Errorf("persisted model has %d weight and %d bias tensors, topology needs %d",
			len(saved.Weights), len(saved.Biases), numLayers)
	}
	outputDim := saved.LayerSizes[len(saved.LayerSizes)-1]
	if len(saved.Labels) != outputDim {
		return nil, fmt.Errorf("persisted model has %d labels for output dimension %d",
			len(saved.Labels), outputDim)
	}

	n := &Network{
		layerSizes:    saved.LayerSizes,
		labels:        saved.Labels,
		vocabChecksum: saved.VocabChecksum,
	}
	n.weights = make([]*mat.Dense, numLayers)
	n.biases = make([]*mat.Dense, numLayers)

	for l := 0; l < numLayers; l++ {
		inSize := saved.LayerSizes[l]
		outSize := saved.LayerSizes[l+1]

		if len(saved.Weights[l]) != outSize {
			return nil, fmt.Errorf("layer %d weight rows %d do not match declared size %d",
				l, len(saved.Weights[l]), outSize)
		}
		flat := make([]float64, outSize*inSize)
		for i, row := range saved.Weights[l] {
			if len(row) != inSize {
				return nil, fmt.Errorf("layer %d weight row %d has %d columns, expected %d",
					l, i, len(row), inSize)
			}
			copy(flat[i*inSize:], row)
		}
		n.weights[l] = mat.NewDense(outSize, inSize, flat)

		if len(saved.Biases[l]) != outSize {
			return nil, fmt.Errorf("layer %d bias length %d does not match declared size %d",
				l, len(saved.Biases[l]), outSize)
		}
		// Biases are column vectors so the forward-pass Add lines up
		n.biases[l] = mat.NewDense(outSize, 1, append([]float64(nil), saved.Biases[l]...))
	}

	n.trained = true
	return n, nil
}
