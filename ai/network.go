package ai

import (
	"fmt"
	"math"
	"math/rand"
	"rice-lab/errors"
	"time"

	"gonum.org/v1/gonum/mat"
)

// initScale bounds the uniform draw of initial weights to [0, initScale).
const initScale = 0.1

// Network is a single dense layer followed by a softmax.
// It is owned by one caller at a time, TrainStep is not safe for concurrent use.
type Network struct {
	weights      *mat.Dense    // inputSize × outputSize
	bias         *mat.VecDense // outputSize
	learningRate float64
}

// NewNetwork allocates small random weights and a zero bias.
// A nil rng falls back to a time seeded source, so runs are not reproducible.
func NewNetwork(inputSize, outputSize int, learningRate float64, rng *rand.Rand) *Network {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	data := make([]float64, inputSize*outputSize)
	for i := range data {
		data[i] = rng.Float64() * initScale
	}
	return &Network{
		weights:      mat.NewDense(inputSize, outputSize, data),
		bias:         mat.NewVecDense(outputSize, nil),
		learningRate: learningRate,
	}
}

// Dims returns the input and output sizes.
func (n *Network) Dims() (int, int) {
	return n.weights.Dims()
}

// Weights returns a copy of the weight matrix.
func (n *Network) Weights() *mat.Dense {
	return mat.DenseCopyOf(n.weights)
}

// Bias returns a copy of the bias vector.
func (n *Network) Bias() *mat.VecDense {
	return mat.VecDenseCopyOf(n.bias)
}

// Forward computes softmax(x·W + b).
func (n *Network) Forward(x mat.Vector) *mat.VecDense {
	_, out := n.weights.Dims()
	logits := mat.NewVecDense(out, nil)
	logits.MulVec(n.weights.T(), x)
	logits.AddVec(logits, n.bias)
	return Softmax(logits)
}

// TrainStep applies one gradient update for a single sample.
// The gradient uses the y(1-y) derivative on the softmax output, not the
// simplified softmax cross-entropy form, and must stay that way.
func (n *Network) TrainStep(x, target mat.Vector) {
	y := n.Forward(x)
	g := mat.NewVecDense(y.Len(), nil)
	for k := 0; k < y.Len(); k++ {
		yk := y.AtVec(k)
		g.SetVec(k, yk*(1-yk)*(yk-target.AtVec(k)))
	}

	in, out := n.weights.Dims()
	grad := mat.NewDense(in, out, nil)
	grad.Outer(n.learningRate, x, g)
	n.weights.Sub(n.weights, grad)
	n.bias.AddScaledVec(n.bias, -n.learningRate, g)
}

// Train runs epochs passes over the rows in their given order, one TrainStep per row.
func (n *Network) Train(features, targets *mat.Dense, epochs int) error {
	rows, cols := features.Dims()
	tRows, tCols := targets.Dims()
	in, out := n.weights.Dims()
	if rows != tRows {
		return fmt.Errorf("%w: %d feature rows but %d target rows", errors.ErrContract, rows, tRows)
	}
	if cols != in || tCols != out {
		return fmt.Errorf("%w: network is %d→%d, data is %d→%d", errors.ErrContract, in, out, cols, tCols)
	}
	for epoch := 0; epoch < epochs; epoch++ {
		for i := 0; i < rows; i++ {
			n.TrainStep(features.RowView(i), targets.RowView(i))
		}
	}
	return nil
}

// PredictClass returns the most probable class of x.
func (n *Network) PredictClass(x mat.Vector) int {
	return Argmax(n.Forward(x))
}

// Softmax maps logits to a probability vector.
// The maximum logit is subtracted first so exp never overflows on finite input.
func Softmax(logits mat.Vector) *mat.VecDense {
	size := logits.Len()
	out := mat.NewVecDense(size, nil)
	maxLogit := math.Inf(-1)
	for i := 0; i < size; i++ {
		maxLogit = math.Max(maxLogit, logits.AtVec(i))
	}
	sum := 0.0
	for i := 0; i < size; i++ {
		e := math.Exp(logits.AtVec(i) - maxLogit)
		out.SetVec(i, e)
		sum += e
	}
	for i := 0; i < size; i++ {
		out.SetVec(i, out.AtVec(i)/sum)
	}
	return out
}

// Argmax returns the index of the largest entry, the smallest index wins ties.
func Argmax(v mat.Vector) int {
	best := 0
	for i := 1; i < v.Len(); i++ {
		if v.AtVec(i) > v.AtVec(best) {
			best = i
		}
	}
	return best
}
