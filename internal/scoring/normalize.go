// Package scoring normalizes bid attributes and produces the composite and
// comprehensive scores plus the stable ranking built on them.
package scoring

import (
	"math"
	"sort"
)

// Normalize min-max scales values onto 0..100. With higherBetter false the
// scale is inverted so the smallest raw value scores 100. A degenerate
// batch where every value is equal maps to 50 across the board, keeping
// the dimension neutral instead of undefined.
func Normalize(values []float64, higherBetter bool) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		for i := range out {
			out[i] = 50
		}
		return out
	}

	for i, v := range values {
		scaled := (v - lo) / (hi - lo) * 100
		if !higherBetter {
			scaled = 100 - scaled
		}
		out[i] = scaled
	}
	return out
}

// Quantile returns the q-th quantile (0..1) with linear interpolation
// between order statistics.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
