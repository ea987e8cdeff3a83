package scoring

import (
	"sort"

	"bidrank/internal"
)

// Prediction carries the oracle's verdict for one record. Rank accepts a
// nil slice when no oracle ran.
type Prediction struct {
	Probability float64
	Winner      bool
}

// Rank computes both scores for the batch, sorts descending by the chosen
// variant and assigns ranks 1..N by position, a dense permutation with no
// gaps or repeats. The sort is stable, so records with equal scores keep
// their input order; ranking an already ranked batch reproduces it.
func Rank(records []internal.DocumentRecord, variant internal.ScoringVariant, preds []Prediction) []internal.ScoredRecord {
	composite := CompositeScores(records)
	comprehensive := ComprehensiveScores(records)

	scored := make([]internal.ScoredRecord, len(records))
	for i, r := range records {
		scored[i] = internal.ScoredRecord{
			DocumentRecord:     r,
			CompositeScore:     composite[i],
			ComprehensiveScore: comprehensive[i],
		}
		if i < len(preds) {
			scored[i].WinProbability = preds[i].Probability
			scored[i].PredictedWinner = preds[i].Winner
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score(variant) > scored[j].Score(variant)
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}
