package oracle

import (
	"math"

	"github.com/rotisserie/eris"
)

// Logistic is a logistic regression trained by full-batch gradient
// descent. Weights start at zero and the schedule is fixed, so training
// is reproducible without any random state.
type Logistic struct {
	weights []float64
	bias    float64

	learningRate float64
	epochs       int
	threshold    float64
}

func NewLogistic() *Logistic {
	return &Logistic{learningRate: 0.1, epochs: 400, threshold: 0.5}
}

func (l *Logistic) Train(x [][]float64, y []bool) error {
	if len(x) == 0 {
		return eris.New("empty training set")
	}
	if len(x) != len(y) {
		return eris.Errorf("feature/label length mismatch: %d vs %d", len(x), len(y))
	}

	cols := len(x[0])
	l.weights = make([]float64, cols)
	l.bias = 0

	n := float64(len(x))
	gradW := make([]float64, cols)
	for epoch := 0; epoch < l.epochs; epoch++ {
		for j := range gradW {
			gradW[j] = 0
		}
		gradB := 0.0

		for i, row := range x {
			target := 0.0
			if y[i] {
				target = 1
			}
			err := sigmoid(l.logit(row)) - target
			for j, v := range row {
				gradW[j] += err * v
			}
			gradB += err
		}

		for j := range l.weights {
			l.weights[j] -= l.learningRate * gradW[j] / n
		}
		l.bias -= l.learningRate * gradB / n
	}
	return nil
}

func (l *Logistic) Predict(x [][]float64) ([]float64, []bool, error) {
	if l.weights == nil {
		return nil, nil, errNotTrained
	}

	probs := make([]float64, len(x))
	labels := make([]bool, len(x))
	for i, row := range x {
		if len(row) != len(l.weights) {
			return nil, nil, eris.Errorf("row %d has %d features, model expects %d", i, len(row), len(l.weights))
		}
		probs[i] = sigmoid(l.logit(row))
		labels[i] = probs[i] >= l.threshold
	}
	return probs, labels, nil
}

func (l *Logistic) logit(row []float64) float64 {
	z := l.bias
	for j, v := range row {
		z += l.weights[j] * v
	}
	return z
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
