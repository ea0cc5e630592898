// Package neural provides the feedforward brains that drive creature
// locomotion.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Weight initialization bounds. Fresh brains sample every weight uniformly
// from this interval.
const (
	WeightMin = -2.0
	WeightMax = 2.0
)

// ErrInputLength reports a sensor vector whose width does not match the
// network's input layer.
var ErrInputLength = errors.New("neural: input length mismatch")

// Genome is the serialized form of a network: the two weight matrices.
// The input matrix carries one extra row for the implicit bias unit.
type Genome struct {
	InputWeights  [][]float64 `json:"inputWeights"`  // (inputs+1) x hidden, last row is the bias row
	OutputWeights [][]float64 `json:"outputWeights"` // hidden x outputs
}

// Clone returns an independently owned deep copy of the genome.
func (g *Genome) Clone() *Genome {
	if g == nil {
		return nil
	}
	return &Genome{
		InputWeights:  copyMatrix(g.InputWeights),
		OutputWeights: copyMatrix(g.OutputWeights),
	}
}

// Network is a two-layer feedforward network: N inputs plus one implicit
// bias unit (constant 1) feed H hidden units, which feed M outputs, with
// tanh activation at both layers. Every activation therefore lies in
// (-1, 1) and needs no downstream clamping.
type Network struct {
	inputs  int
	hidden  int
	outputs int

	inputWeights  [][]float64 // (inputs+1) x hidden
	outputWeights [][]float64 // hidden x outputs
}

// New creates a network of the given topology with every weight sampled
// uniformly from [WeightMin, WeightMax].
func New(inputs, hidden, outputs int, rng *rand.Rand) *Network {
	n := &Network{
		inputs:        inputs,
		hidden:        hidden,
		outputs:       outputs,
		inputWeights:  make([][]float64, inputs+1),
		outputWeights: make([][]float64, hidden),
	}
	for i := range n.inputWeights {
		row := make([]float64, hidden)
		for j := range row {
			row[j] = WeightMin + rng.Float64()*(WeightMax-WeightMin)
		}
		n.inputWeights[i] = row
	}
	for i := range n.outputWeights {
		row := make([]float64, outputs)
		for j := range row {
			row[j] = WeightMin + rng.Float64()*(WeightMax-WeightMin)
		}
		n.outputWeights[i] = row
	}
	return n
}

// FromGenome reconstructs a network from serialized weights. The genome is
// deep-copied, so the caller may keep mutating its copy freely.
func FromGenome(g *Genome) (*Network, error) {
	if g == nil {
		return nil, errors.New("neural: nil genome")
	}
	if len(g.InputWeights) < 2 || len(g.InputWeights[0]) == 0 {
		return nil, errors.New("neural: genome input matrix is empty")
	}
	hidden := len(g.InputWeights[0])
	for i, row := range g.InputWeights {
		if len(row) != hidden {
			return nil, fmt.Errorf("neural: ragged input matrix at row %d: got %d, want %d", i, len(row), hidden)
		}
	}
	if len(g.OutputWeights) != hidden {
		return nil, fmt.Errorf("neural: output matrix has %d rows, want %d", len(g.OutputWeights), hidden)
	}
	outputs := len(g.OutputWeights[0])
	if outputs == 0 {
		return nil, errors.New("neural: genome output matrix is empty")
	}
	for i, row := range g.OutputWeights {
		if len(row) != outputs {
			return nil, fmt.Errorf("neural: ragged output matrix at row %d: got %d, want %d", i, len(row), outputs)
		}
	}
	return &Network{
		inputs:        len(g.InputWeights) - 1,
		hidden:        hidden,
		outputs:       outputs,
		inputWeights:  copyMatrix(g.InputWeights),
		outputWeights: copyMatrix(g.OutputWeights),
	}, nil
}

// Inputs returns the input layer width, excluding the bias unit.
func (n *Network) Inputs() int { return n.inputs }

// Hidden returns the hidden layer width.
func (n *Network) Hidden() int { return n.hidden }

// Outputs returns the output layer width.
func (n *Network) Outputs() int { return n.outputs }

// Compute runs one inference pass. On an input width mismatch it returns
// an all-zero output slice together with ErrInputLength; a malformed tick
// must never take down the caller's loop.
func (n *Network) Compute(inputs []float64) ([]float64, error) {
	out := make([]float64, n.outputs)
	if len(inputs) != n.inputs {
		return out, fmt.Errorf("%w: got %d, want %d", ErrInputLength, len(inputs), n.inputs)
	}

	hidden := make([]float64, n.hidden)
	for j := 0; j < n.hidden; j++ {
		sum := n.inputWeights[n.inputs][j] // bias unit, constant 1
		for i := 0; i < n.inputs; i++ {
			sum += inputs[i] * n.inputWeights[i][j]
		}
		hidden[j] = math.Tanh(sum)
	}

	for k := 0; k < n.outputs; k++ {
		sum := 0.0
		for j := 0; j < n.hidden; j++ {
			sum += hidden[j] * n.outputWeights[j][k]
		}
		out[k] = math.Tanh(sum)
	}
	return out, nil
}

// ExportGenome returns a deep, independently owned copy of both weight
// matrices. Two brains never share weight storage.
func (n *Network) ExportGenome() *Genome {
	return &Genome{
		InputWeights:  copyMatrix(n.inputWeights),
		OutputWeights: copyMatrix(n.outputWeights),
	}
}

// Clone creates a deep copy of the network.
func (n *Network) Clone() *Network {
	return &Network{
		inputs:        n.inputs,
		hidden:        n.hidden,
		outputs:       n.outputs,
		inputWeights:  copyMatrix(n.inputWeights),
		outputWeights: copyMatrix(n.outputWeights),
	}
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
