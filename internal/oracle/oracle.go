// Package oracle holds the training oracle that predicts win probability
// from the feature matrix. The model is deliberately simple and fully
// deterministic: same data in, same weights out.
package oracle

import "github.com/rotisserie/eris"

// Oracle is a trainable win predictor.
type Oracle interface {
	Train(x [][]float64, y []bool) error
	// Predict returns per-row win probabilities and the thresholded
	// winner labels.
	Predict(x [][]float64) ([]float64, []bool, error)
}

var errNotTrained = eris.New("oracle not trained")
