package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/config"
	"bidrank/internal/util"
)

// Imputer fills the fields no tier could extract so that every record
// leaves the pipeline complete. The bid amount is filled first because the
// other defaults are derived from it, and a defaulted bid is flagged as a
// critical gap since every downstream score leans on it.
type Imputer struct {
	cfg config.Config
	log *zap.Logger
}

func NewImputer(cfg config.Config, log *zap.Logger) Imputer {
	return Imputer{cfg: cfg, log: log}
}

const (
	defaultBidAmount    = 1_000_000
	defaultLicense      = "C3"
	defaultClientRating = 4.0
)

func (i Imputer) Fill(record *internal.DocumentRecord) {
	if !record.Has(internal.FieldBidAmount) {
		i.set(record, internal.FieldBidAmount, internal.FloatValue(defaultBidAmount))
		record.CriticalGaps = append(record.CriticalGaps, internal.FieldBidAmount)
		i.log.Warn("bid amount not found, using default",
			zap.String("source", record.Source),
			zap.Float64("default", defaultBidAmount))
	}
	bid := record.Number(internal.FieldBidAmount)

	if !record.Has(internal.FieldLicenseCategory) {
		i.set(record, internal.FieldLicenseCategory, internal.TextValue(defaultLicense))
	}
	if !record.Has(internal.FieldContractName) {
		name := fmt.Sprintf("Contract_%s_%d",
			record.Text(internal.FieldLicenseCategory), int(bid/100_000))
		i.set(record, internal.FieldContractName, internal.TextValue(name))
	}

	if !record.Has(internal.FieldProjectDuration) {
		i.set(record, internal.FieldProjectDuration, internal.IntValue(i.durationForBid(bid)))
	}
	if !record.Has(internal.FieldWarrantyPeriod) {
		warranty := 2 * int(record.Number(internal.FieldProjectDuration))
		if warranty < 12 {
			warranty = 12
		}
		i.set(record, internal.FieldWarrantyPeriod, internal.IntValue(warranty))
	}

	if !record.Has(internal.FieldClientRating) {
		i.set(record, internal.FieldClientRating, internal.FloatValue(defaultClientRating))
	}
	if !record.Has(internal.FieldProjectSuccessRate) {
		rate := util.Clamp(record.Number(internal.FieldClientRating)*20, 60, 100)
		i.set(record, internal.FieldProjectSuccessRate, internal.FloatValue(rate))
	}
	if !record.Has(internal.FieldRejectionHistory) {
		i.set(record, internal.FieldRejectionHistory, internal.IntValue(0))
	}
	if !record.Has(internal.FieldSafetyCertification) {
		i.set(record, internal.FieldSafetyCertification, internal.TextValue("Yes"))
	}
}

// durationForBid estimates project length from contract size: bigger
// projects run longer.
func (i Imputer) durationForBid(bid float64) int {
	switch {
	case bid > i.cfg.LargeProjectBid:
		return 36
	case bid > i.cfg.MediumProjectBid:
		return 24
	default:
		return 12
	}
}

func (i Imputer) set(record *internal.DocumentRecord, f internal.Field, v internal.Value) {
	record.Set(f, v, internal.Provenance{Tier: internal.TierDefault})
}
