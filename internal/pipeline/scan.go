// Package pipeline extracts bid parameters from converted documents through
// layered strategies: labelled text patterns and row-tables first, looser
// wording for whatever is still missing, OCR for pages with no usable text,
// and finally deterministic defaults so every record comes out complete.
package pipeline

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/config"
	"bidrank/internal/document"
	"bidrank/internal/fieldspec"
	"bidrank/internal/util"
)

// Scanner extracts field candidates from single pages.
type Scanner struct {
	cfg config.Config
	log *zap.Logger
}

func NewScanner(cfg config.Config, log *zap.Logger) *Scanner {
	return &Scanner{cfg: cfg, log: log}
}

// ScanPage collects candidates from one page. Row-table hits are gathered
// first and labelled text matches overwrite them, so within a page the text
// patterns are the more trusted source.
func (s *Scanner) ScanPage(page document.Page) internal.PartialRecord {
	partial := internal.PartialRecord{}

	for _, table := range page.Tables {
		s.scanTable(table, page.Number, partial)
	}
	for field, cand := range s.scanText(page.Text, page.Number, internal.TierText) {
		partial[field] = cand
	}

	return partial
}

// scanText runs every field's primary cascade over the page text.
func (s *Scanner) scanText(text string, pageNum int, tier internal.Tier) internal.PartialRecord {
	partial := internal.PartialRecord{}
	if strings.TrimSpace(text) == "" {
		return partial
	}

	for _, spec := range fieldspec.All() {
		m, ok := fieldspec.MatchText(spec, fieldspec.CascadePrimary, text)
		if !ok {
			continue
		}
		partial[spec.Field] = internal.Candidate{
			Value:      m.Value,
			Provenance: internal.Provenance{Tier: tier, Page: pageNum, PatternRank: m.Rank},
		}
	}
	return partial
}

// Header keywords that map a two-column table row to a field. Matching is
// on the lowercased first cell; each entry lists words that must all occur.
var tableHeaders = []struct {
	field internal.Field
	words []string
}{
	{internal.FieldContractName, []string{"contract", "name"}},
	{internal.FieldLicenseCategory, []string{"license"}},
	{internal.FieldProjectDuration, []string{"duration"}},
	{internal.FieldWarrantyPeriod, []string{"warranty"}},
	{internal.FieldClientRating, []string{"rating"}},
	{internal.FieldProjectSuccessRate, []string{"success"}},
	{internal.FieldRejectionHistory, []string{"rejection"}},
	{internal.FieldSafetyCertification, []string{"safety"}},
	{internal.FieldBidAmount, []string{"bid", "amount"}},
}

func (s *Scanner) scanTable(table [][]string, pageNum int, partial internal.PartialRecord) {
	for _, row := range table {
		if len(row) < 2 {
			continue
		}
		header := strings.ToLower(util.NormalizeSpaces(row[0]))
		raw := util.NormalizeSpaces(row[1])
		if header == "" || raw == "" {
			continue
		}

		for _, h := range tableHeaders {
			if !containsAll(header, h.words) {
				continue
			}
			value, err := fieldspec.Coerce(h.field, raw)
			if err != nil {
				s.log.Debug("table cell rejected",
					zap.String("field", string(h.field)),
					zap.String("raw", raw),
					zap.Error(err))
				break
			}
			partial[h.field] = internal.Candidate{
				Value:      value,
				Provenance: internal.Provenance{Tier: internal.TierTable, Page: pageNum},
			}
			break
		}
	}
}

func containsAll(s string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

// Bid-amount families for pages where no labelled pattern hit. Each family
// is tried in order; the first family producing any plausible amount wins
// and its largest amount is taken.
var bidFamilies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Bid\s+Amount[:\s]*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)Amount[:\s]*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)Total[:\s]*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)Price[:\s]*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)Cost[:\s]*[\$₹€]?\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`[\$₹€]\s*([\d,]{4,}(?:\.\d+)?)`),
}

// ScanBidAmount is the loose fallback for the bid amount: it looks for
// money-shaped numbers near generic labels and keeps the largest above the
// noise floor.
func (s *Scanner) ScanBidAmount(text string) (float64, bool) {
	for _, family := range bidFamilies {
		best := 0.0
		for _, m := range family.FindAllStringSubmatch(text, -1) {
			amount, err := util.ParseAmount(m[1])
			if err != nil {
				continue
			}
			if amount > best {
				best = amount
			}
		}
		if best > s.cfg.BidFloor {
			return best, true
		}
	}
	return 0, false
}
