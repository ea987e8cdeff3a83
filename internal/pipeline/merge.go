package pipeline

import (
	"regexp"

	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/config"
	"bidrank/internal/util"
)

// codedLicense matches the coded shape of a license category, e.g.
// "C3 - Building Construction". A coded value is allowed to replace an
// earlier free-form one during merging.
var codedLicense = regexp.MustCompile(`^C\d+\s*[–\-]`)

// authorityBid matches the explicitly labelled bid amount on the authority
// page, whose value overrides anything found elsewhere.
var authorityBid = regexp.MustCompile(`(?i)Bid\s+Amount\s*[:\-]?\s*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`)

// Merger folds per-page partial records into a document record. The first
// page to produce a field wins; later pages only fill gaps.
type Merger struct {
	cfg    config.Config
	log    *zap.Logger
	record *internal.DocumentRecord
}

func NewMerger(cfg config.Config, log *zap.Logger, record *internal.DocumentRecord) *Merger {
	return &Merger{cfg: cfg, log: log, record: record}
}

// MergePage applies first-wins semantics in canonical field order. The one
// exception is the license category: a coded value (C-number prefix)
// replaces an earlier free-form value, never the other way around.
func (m *Merger) MergePage(partial internal.PartialRecord) {
	for _, field := range internal.RequiredFields() {
		cand, ok := partial[field]
		if !ok {
			continue
		}

		if !m.record.Has(field) {
			m.record.Set(field, cand.Value, cand.Provenance)
			continue
		}
		if field == internal.FieldLicenseCategory &&
			codedLicense.MatchString(cand.Value.Text) &&
			!codedLicense.MatchString(m.record.Values[field].Text) {
			m.log.Debug("license category upgraded to coded form",
				zap.String("was", m.record.Values[field].Text),
				zap.String("now", cand.Value.Text))
			m.record.Set(field, cand.Value, cand.Provenance)
		}
	}
}

// MergeBid records a heuristic bid amount when none has been found yet.
func (m *Merger) MergeBid(amount float64, page int) {
	if m.record.Has(internal.FieldBidAmount) {
		return
	}
	m.record.Set(internal.FieldBidAmount,
		internal.FloatValue(amount),
		internal.Provenance{Tier: internal.TierText, Page: page})
}

// ApplyAuthorityPage scans the designated page for an explicitly labelled
// bid amount and lets it override whatever was merged so far. Tender
// packets put the binding amount on a fixed form page, so an explicit label
// there beats earlier finds.
func (m *Merger) ApplyAuthorityPage(text string, page int) {
	match := authorityBid.FindStringSubmatch(text)
	if match == nil {
		return
	}
	amount, err := util.ParseAmount(match[1])
	if err != nil || amount <= m.cfg.BidFloor {
		return
	}

	if m.record.Has(internal.FieldBidAmount) && m.record.Number(internal.FieldBidAmount) != amount {
		m.log.Info("bid amount overridden by authority page",
			zap.Int("page", page),
			zap.Float64("was", m.record.Number(internal.FieldBidAmount)),
			zap.Float64("now", amount))
	}
	m.record.Set(internal.FieldBidAmount,
		internal.FloatValue(amount),
		internal.Provenance{Tier: internal.TierText, Page: page})
}
