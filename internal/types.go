package internal

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Field names the pipeline extracts from every bid document.
type Field string

const (
	FieldContractName        Field = "contract_name"
	FieldLicenseCategory     Field = "license_category"
	FieldProjectDuration     Field = "project_duration"
	FieldWarrantyPeriod      Field = "warranty_period"
	FieldClientRating        Field = "client_rating"
	FieldProjectSuccessRate  Field = "project_success_rate"
	FieldRejectionHistory    Field = "rejection_history"
	FieldSafetyCertification Field = "safety_certification"
	FieldBidAmount           Field = "bid_amount"
)

// RequiredFields returns the nine fields in their canonical order.
func RequiredFields() []Field {
	return []Field{
		FieldContractName,
		FieldLicenseCategory,
		FieldProjectDuration,
		FieldWarrantyPeriod,
		FieldClientRating,
		FieldProjectSuccessRate,
		FieldRejectionHistory,
		FieldSafetyCertification,
		FieldBidAmount,
	}
}

// Tier identifies which extraction strategy produced a value.
type Tier string

const (
	TierText     Tier = "text"
	TierTable    Tier = "table"
	TierEnhanced Tier = "enhanced"
	TierOCR      Tier = "ocr"
	TierDefault  Tier = "default"
)

type ValueKind int

const (
	KindText ValueKind = iota
	KindInt
	KindFloat
)

// Value is a coerced field value. Exactly one of Text/Int/Float is
// meaningful depending on Kind.
type Value struct {
	Kind  ValueKind
	Text  string
	Int   int
	Float float64
}

func TextValue(s string) Value   { return Value{Kind: KindText, Text: s} }
func IntValue(v int) Value       { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// Number flattens integer and float values to float64. Text values yield 0.
func (v Value) Number() float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.Int)
	case KindFloat:
		return v.Float
	default:
		return 0
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	default:
		return v.Text
	}
}

// Provenance records where a field value came from.
type Provenance struct {
	Tier Tier
	// Page the value was found on (1-based, 0 for tiers that are not
	// page-scoped such as defaults).
	Page int
	// PatternRank is the index of the matching pattern inside the field's
	// cascade; lower means a more specific wording matched.
	PatternRank int
}

// Candidate is a value proposed for a field on one page, before merging.
type Candidate struct {
	Value      Value
	Provenance Provenance
}

// PartialRecord is the per-page extraction outcome.
type PartialRecord map[Field]Candidate

// DocumentRecord is the finished, fully populated record for one document.
type DocumentRecord struct {
	Source       string
	Values       map[Field]Value
	Provenance   map[Field]Provenance
	CriticalGaps []Field
}

func NewDocumentRecord(source string) DocumentRecord {
	return DocumentRecord{
		Source:     source,
		Values:     make(map[Field]Value),
		Provenance: make(map[Field]Provenance),
	}
}

func (r DocumentRecord) Has(f Field) bool {
	_, ok := r.Values[f]
	return ok
}

func (r DocumentRecord) Text(f Field) string {
	return r.Values[f].String()
}

func (r DocumentRecord) Number(f Field) float64 {
	return r.Values[f].Number()
}

func (r *DocumentRecord) Set(f Field, v Value, p Provenance) {
	r.Values[f] = v
	r.Provenance[f] = p
}

// ScoringVariant selects which human-facing score drives a ranking.
type ScoringVariant string

const (
	VariantComposite     ScoringVariant = "composite"
	VariantComprehensive ScoringVariant = "comprehensive"
)

func ParseScoringVariant(s string) (ScoringVariant, error) {
	switch ScoringVariant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantComposite:
		return VariantComposite, nil
	case VariantComprehensive:
		return VariantComprehensive, nil
	default:
		return "", eris.Errorf("unknown scoring variant: %q", s)
	}
}

// ScoredRecord is a DocumentRecord with its scores and rank attached.
type ScoredRecord struct {
	DocumentRecord
	PredictedWinner    bool
	WinProbability     float64
	CompositeScore     float64
	ComprehensiveScore float64
	Rank               int
}

// Score returns the value driving the ranking for the given variant.
func (s ScoredRecord) Score(v ScoringVariant) float64 {
	if v == VariantComprehensive {
		return s.ComprehensiveScore
	}
	return s.CompositeScore
}

// RankingRow is the flat export shape for one ranked record.
type RankingRow struct {
	Rank               int
	Source             string
	ContractName       string
	LicenseCategory    string
	ProjectDuration    int
	WarrantyPeriod     int
	ClientRating       float64
	ProjectSuccessRate float64
	RejectionHistory   int
	SafetyCert         string
	BidAmount          float64
	CompositeScore     float64
	ComprehensiveScore float64
	WinProbability     float64
	PredictedWinner    bool
}

// FlattenScored converts scored records to export rows in rank order.
func FlattenScored(records []ScoredRecord) []RankingRow {
	out := make([]RankingRow, 0, len(records))
	for _, r := range records {
		out = append(out, RankingRow{
			Rank:               r.Rank,
			Source:             r.Source,
			ContractName:       r.Text(FieldContractName),
			LicenseCategory:    r.Text(FieldLicenseCategory),
			ProjectDuration:    int(r.Number(FieldProjectDuration)),
			WarrantyPeriod:     int(r.Number(FieldWarrantyPeriod)),
			ClientRating:       r.Number(FieldClientRating),
			ProjectSuccessRate: r.Number(FieldProjectSuccessRate),
			RejectionHistory:   int(r.Number(FieldRejectionHistory)),
			SafetyCert:         r.Text(FieldSafetyCertification),
			BidAmount:          r.Number(FieldBidAmount),
			CompositeScore:     r.CompositeScore,
			ComprehensiveScore: r.ComprehensiveScore,
			WinProbability:     r.WinProbability,
			PredictedWinner:    r.PredictedWinner,
		})
	}
	return out
}
