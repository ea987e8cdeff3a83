package features

import "math"

// Scaler standardizes feature columns to zero mean and unit variance.
// Fit on the training matrix, then transform both training and scoring
// batches with the same parameters.
type Scaler struct {
	mean []float64
	std  []float64
}

func (s *Scaler) Fit(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])
	s.mean = make([]float64, cols)
	s.std = make([]float64, cols)

	for _, row := range rows {
		for j, v := range row {
			s.mean[j] += v
		}
	}
	for j := range s.mean {
		s.mean[j] /= float64(len(rows))
	}

	for _, row := range rows {
		for j, v := range row {
			d := v - s.mean[j]
			s.std[j] += d * d
		}
	}
	for j := range s.std {
		s.std[j] = math.Sqrt(s.std[j] / float64(len(rows)))
		// A constant column scales to zero rather than dividing by zero.
		if s.std[j] == 0 {
			s.std[j] = 1
		}
	}
}

func (s *Scaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.mean[j]) / s.std[j]
		}
		out[i] = scaled
	}
	return out
}

func (s *Scaler) FitTransform(rows [][]float64) [][]float64 {
	s.Fit(rows)
	return s.Transform(rows)
}
