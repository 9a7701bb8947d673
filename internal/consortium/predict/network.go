package predict

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

// Forward runs the dense sigmoid network over the normalized inputs and
// returns the raw output in [0,1]. Weights are row-major: one row per
// neuron, one column per input of the layer.
func Forward(w types.NeuralWeights, inputs []float64) (float64, error) {
	h1, err := applyLayer(w.Hidden1, inputs)
	if err != nil {
		return 0, fmt.Errorf("hidden layer 1: %w", err)
	}
	h2, err := applyLayer(w.Hidden2, h1)
	if err != nil {
		return 0, fmt.Errorf("hidden layer 2: %w", err)
	}
	out, err := applyLayer(w.Output, h2)
	if err != nil {
		return 0, fmt.Errorf("output layer: %w", err)
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("output layer produced %d values, want 1", len(out))
	}
	return out[0], nil
}

func applyLayer(layer types.NeuralLayer, inputs []float64) ([]float64, error) {
	rows := len(layer.Weights)
	if rows == 0 || rows != len(layer.Bias) {
		return nil, fmt.Errorf("layer has %d weight rows and %d biases", rows, len(layer.Bias))
	}
	cols := len(layer.Weights[0])
	if cols != len(inputs) {
		return nil, fmt.Errorf("layer expects %d inputs, got %d", cols, len(inputs))
	}

	flat := make([]float64, 0, rows*cols)
	for _, row := range layer.Weights {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged weight matrix: row has %d columns, want %d", len(row), cols)
		}
		flat = append(flat, row...)
	}

	weights := mat.NewDense(rows, cols, flat)
	in := mat.NewVecDense(cols, inputs)

	var activation mat.VecDense
	activation.MulVec(weights, in)
	activation.AddVec(&activation, mat.NewVecDense(rows, layer.Bias))

	out := make([]float64, rows)
	for i := range out {
		out[i] = sigmoid(activation.AtVec(i))
	}
	return out, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// networkInputs encodes the group features the model was trained on:
// species, suggested bid fraction and term fraction, all in [0,1].
func networkInputs(g types.Group, suggestedBidPct float64) []float64 {
	species := 0.0
	switch g.Species {
	case types.SpeciesProperty:
		species = 1.0
	case types.SpeciesAuto:
		species = 0.5
	}
	return []float64{
		species,
		clamp01(suggestedBidPct / 100),
		clamp01(float64(g.MaxTermMonths) / maxTermNormalization),
	}
}
