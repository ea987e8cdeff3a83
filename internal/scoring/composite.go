package scoring

import (
	"bidrank/internal"
	"bidrank/internal/fieldspec"
)

// scoredFields are the attributes entering the composite score, each
// normalized over the batch in its preferred direction and averaged with
// equal weight.
var scoredFields = []internal.Field{
	internal.FieldProjectDuration,
	internal.FieldWarrantyPeriod,
	internal.FieldClientRating,
	internal.FieldProjectSuccessRate,
	internal.FieldRejectionHistory,
	internal.FieldSafetyCertification,
	internal.FieldBidAmount,
}

func fieldValues(records []internal.DocumentRecord, field internal.Field) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		if field == internal.FieldSafetyCertification {
			if r.Text(field) == "Yes" {
				out[i] = 1
			}
			continue
		}
		out[i] = r.Number(field)
	}
	return out
}

// CompositeScores is the transparent batch-relative score: the mean of the
// seven normalized attribute dimensions, 0..100.
func CompositeScores(records []internal.DocumentRecord) []float64 {
	scores := make([]float64, len(records))
	if len(records) == 0 {
		return scores
	}

	for _, field := range scoredFields {
		spec, _ := fieldspec.Lookup(field)
		dim := Normalize(fieldValues(records, field), spec.Direction != fieldspec.LowerBetter)
		for i, v := range dim {
			scores[i] += v
		}
	}
	for i := range scores {
		scores[i] /= float64(len(scoredFields))
	}
	return scores
}

// ComprehensiveScores weighs reputation, delivery record and price:
// 30% client rating, 30% success rate, 40% relative bid advantage against
// the batch's highest bid.
func ComprehensiveScores(records []internal.DocumentRecord) []float64 {
	scores := make([]float64, len(records))
	if len(records) == 0 {
		return scores
	}

	maxBid := 0.0
	for _, r := range records {
		if bid := r.Number(internal.FieldBidAmount); bid > maxBid {
			maxBid = bid
		}
	}

	for i, r := range records {
		ratingScore := r.Number(internal.FieldClientRating) / 5 * 100
		successScore := r.Number(internal.FieldProjectSuccessRate)
		bidScore := 0.0
		if maxBid > 0 {
			bidScore = (maxBid - r.Number(internal.FieldBidAmount)) / maxBid * 100
		}
		scores[i] = ratingScore*0.3 + successScore*0.3 + bidScore*0.4
	}
	return scores
}

// TrainingScores is the synthetic quality score used only to derive
// winner labels for oracle training. Rejections count against it, a long
// warranty relative to the project length counts for it, and a cheaper
// bid wins ties.
func TrainingScores(records []internal.DocumentRecord) []float64 {
	scores := make([]float64, len(records))
	for i, r := range records {
		rating := r.Number(internal.FieldClientRating)
		success := r.Number(internal.FieldProjectSuccessRate)
		rejections := r.Number(internal.FieldRejectionHistory)

		warrantyTerm := 0.0
		if d := r.Number(internal.FieldProjectDuration); d > 0 {
			warrantyTerm = r.Number(internal.FieldWarrantyPeriod) / d
		}
		bidTerm := 0.0
		if bid := r.Number(internal.FieldBidAmount); bid > 0 {
			bidTerm = 1 / bid
		}

		scores[i] = rating*0.25 + success*0.25 + (5-rejections)*0.15 +
			warrantyTerm*0.15 + bidTerm*0.20
	}
	return scores
}

// WinnerLabels marks everything at or above the given score quantile as a
// winner for training purposes.
func WinnerLabels(scores []float64, percentile float64) []bool {
	labels := make([]bool, len(scores))
	if len(scores) == 0 {
		return labels
	}
	threshold := Quantile(scores, percentile)
	for i, s := range scores {
		labels[i] = s >= threshold
	}
	return labels
}
