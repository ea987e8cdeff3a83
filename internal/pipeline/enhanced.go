package pipeline

import (
	"strings"

	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/document"
	"bidrank/internal/fieldspec"
	"bidrank/internal/util"
)

// EnhanceMissing runs the looser enhanced cascades over every page, but
// only for fields the earlier tiers never produced. Pages are walked in
// order and the pass stops as soon as nothing is missing.
func (s *Scanner) EnhanceMissing(doc document.Document, record *internal.DocumentRecord) {
	missing := map[internal.Field]bool{}
	for _, f := range internal.RequiredFields() {
		if !record.Has(f) {
			missing[f] = true
		}
	}
	if len(missing) == 0 {
		return
	}

	for _, page := range doc.Pages {
		for field := range missing {
			cand, ok := s.enhanceField(field, page)
			if !ok {
				continue
			}
			record.Set(field, cand.Value, cand.Provenance)
			delete(missing, field)
			s.log.Debug("field recovered by enhanced pass",
				zap.String("field", string(field)),
				zap.Int("page", page.Number))
		}
		if len(missing) == 0 {
			return
		}
	}
}

func (s *Scanner) enhanceField(field internal.Field, page document.Page) (internal.Candidate, bool) {
	spec, ok := fieldspec.Lookup(field)
	if !ok || len(spec.Enhanced) == 0 {
		return internal.Candidate{}, false
	}

	if field == internal.FieldBidAmount {
		amount, rank, ok := s.enhanceBid(spec, page.Text)
		if !ok {
			return internal.Candidate{}, false
		}
		return internal.Candidate{
			Value:      internal.FloatValue(amount),
			Provenance: internal.Provenance{Tier: internal.TierEnhanced, Page: page.Number, PatternRank: rank},
		}, true
	}

	m, ok := fieldspec.MatchText(spec, fieldspec.CascadeEnhanced, page.Text)
	if !ok {
		return internal.Candidate{}, false
	}

	value := m.Value
	switch field {
	case internal.FieldContractName:
		if len(strings.TrimSpace(value.Text)) <= s.cfg.MinContractName {
			return internal.Candidate{}, false
		}
	case internal.FieldProjectDuration, internal.FieldWarrantyPeriod:
		// The enhanced period patterns capture the unit word as a second
		// group; convert everything to months.
		if len(m.Groups) > 2 {
			value = internal.IntValue(monthsFromUnit(value.Int, m.Groups[2]))
		}
	}

	return internal.Candidate{
		Value:      value,
		Provenance: internal.Provenance{Tier: internal.TierEnhanced, Page: page.Number, PatternRank: m.Rank},
	}, true
}

// enhanceBid collects every plausible amount across the whole enhanced
// cascade and takes the largest within the configured window, since loose
// money patterns also catch fees and line items.
func (s *Scanner) enhanceBid(spec fieldspec.Spec, text string) (float64, int, bool) {
	best := 0.0
	bestRank := 0
	for rank, re := range spec.Enhanced {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			amount, err := util.ParseAmount(m[1])
			if err != nil {
				continue
			}
			if amount <= s.cfg.BidFloor || amount > s.cfg.BidCeiling {
				continue
			}
			if amount > best {
				best, bestRank = amount, rank
			}
		}
	}
	return best, bestRank, best > 0
}

// monthsFromUnit converts a captured period to months based on the unit
// word that accompanied it.
func monthsFromUnit(n int, unit string) int {
	switch {
	case strings.Contains(strings.ToLower(unit), "year"):
		return n * 12
	case strings.Contains(strings.ToLower(unit), "day"):
		months := n / 30
		if months < 1 {
			months = 1
		}
		return months
	default:
		return n
	}
}
