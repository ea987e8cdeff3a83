package oracle

import (
	"fmt"
	"math/rand"

	"bidrank/internal"
)

// syntheticSeed keeps the generated training corpus identical across runs.
const syntheticSeed = 42

var syntheticLicenses = []string{"C1", "C2", "C3", "C4", "C5"}

// Synthetic generates n complete bid records spanning realistic attribute
// ranges, used to train the oracle when no labelled history exists.
func Synthetic(n int) []internal.DocumentRecord {
	rng := rand.New(rand.NewSource(syntheticSeed))
	p := internal.Provenance{Tier: internal.TierDefault}

	records := make([]internal.DocumentRecord, 0, n)
	for i := 0; i < n; i++ {
		r := internal.NewDocumentRecord(fmt.Sprintf("synthetic-%04d", i))

		license := syntheticLicenses[rng.Intn(len(syntheticLicenses))]
		duration := 6 + rng.Intn(55)     // 6..60 months
		warranty := 12 + rng.Intn(109)   // 12..120 months
		rating := 1 + rng.Float64()*4    // 1..5
		success := 60 + rng.Float64()*40 // 60..100 %
		rejections := rng.Intn(5)        // 0..4
		bid := 100_000 + rng.Float64()*4_900_000

		safety := "No"
		if rng.Intn(2) == 1 {
			safety = "Yes"
		}

		r.Set(internal.FieldContractName, internal.TextValue(fmt.Sprintf("Synthetic Contract %d", i)), p)
		r.Set(internal.FieldLicenseCategory, internal.TextValue(license), p)
		r.Set(internal.FieldProjectDuration, internal.IntValue(duration), p)
		r.Set(internal.FieldWarrantyPeriod, internal.IntValue(warranty), p)
		r.Set(internal.FieldClientRating, internal.FloatValue(rating), p)
		r.Set(internal.FieldProjectSuccessRate, internal.FloatValue(success), p)
		r.Set(internal.FieldRejectionHistory, internal.IntValue(rejections), p)
		r.Set(internal.FieldSafetyCertification, internal.TextValue(safety), p)
		r.Set(internal.FieldBidAmount, internal.FloatValue(bid), p)

		records = append(records, r)
	}
	return records
}
