package pipeline

import (
	"fmt"
	"testing"

	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/config"
	"bidrank/internal/document"
)

func testConfig() config.Config {
	return config.Config{
		MinPageTextLen:   50,
		BidFloor:         1000,
		BidCeiling:       1_000_000_000,
		AuthorityPage:    38,
		MinContractName:  5,
		LargeProjectBid:  5_000_000,
		MediumProjectBid: 2_000_000,
		DetectThreshold:  0.45,
	}
}

func testScanner() *Scanner {
	return NewScanner(testConfig(), zap.NewNop())
}

func TestScanPageTextBeatsTable(t *testing.T) {
	page := document.Page{
		Number: 1,
		Text:   "Project Duration: 18 months",
		Tables: [][][]string{{
			{"Project Duration", "24 months"},
		}},
	}

	partial := testScanner().ScanPage(page)
	cand, ok := partial[internal.FieldProjectDuration]
	if !ok {
		t.Fatal("duration not extracted")
	}
	if cand.Value.Int != 18 {
		t.Errorf("duration = %d, want 18 (text over table)", cand.Value.Int)
	}
	if cand.Provenance.Tier != internal.TierText {
		t.Errorf("tier = %s, want text", cand.Provenance.Tier)
	}
}

func TestScanPageTableOnly(t *testing.T) {
	page := document.Page{
		Number: 2,
		Tables: [][][]string{{
			{"Contract Name", "City Drainage Works"},
			{"Client Rating", "4.2"},
			{"Safety Certification", "certified"},
			{"Bid Amount", "Rs. 3,200,000"},
		}},
	}

	partial := testScanner().ScanPage(page)
	if got := partial[internal.FieldContractName].Value.Text; got != "City Drainage Works" {
		t.Errorf("contract name = %q", got)
	}
	if got := partial[internal.FieldClientRating].Value.Float; got != 4.2 {
		t.Errorf("rating = %g", got)
	}
	if got := partial[internal.FieldSafetyCertification].Value.Text; got != "Yes" {
		t.Errorf("safety = %q, want Yes", got)
	}
	if got := partial[internal.FieldBidAmount].Value.Float; got != 3_200_000 {
		t.Errorf("bid = %g", got)
	}
	for f, cand := range partial {
		if cand.Provenance.Tier != internal.TierTable {
			t.Errorf("%s tier = %s, want table", f, cand.Provenance.Tier)
		}
	}
}

func TestScanBidAmountFamilies(t *testing.T) {
	s := testScanner()

	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{"Total: $4,500 plus Total: $12,000 in fees", 12_000, true},
		{"Price: 500", 0, false}, // below the noise floor
		{"no money mentioned here", 0, false},
		{"deposit of $2,000 required", 2_000, true},
	}
	for _, tt := range tests {
		got, ok := s.ScanBidAmount(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ScanBidAmount(%q) = %g, %v; want %g, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMergerFirstWins(t *testing.T) {
	record := internal.NewDocumentRecord("doc")
	m := NewMerger(testConfig(), zap.NewNop(), &record)

	m.MergePage(internal.PartialRecord{
		internal.FieldClientRating: {
			Value:      internal.FloatValue(4.5),
			Provenance: internal.Provenance{Tier: internal.TierText, Page: 1},
		},
	})
	m.MergePage(internal.PartialRecord{
		internal.FieldClientRating: {
			Value:      internal.FloatValue(2.0),
			Provenance: internal.Provenance{Tier: internal.TierText, Page: 3},
		},
	})

	if got := record.Number(internal.FieldClientRating); got != 4.5 {
		t.Errorf("rating = %g, want first-seen 4.5", got)
	}
	if got := record.Provenance[internal.FieldClientRating].Page; got != 1 {
		t.Errorf("provenance page = %d, want 1", got)
	}
}

func TestMergerLicenseCodedOverride(t *testing.T) {
	freeform := internal.Candidate{
		Value:      internal.TextValue("Building Construction"),
		Provenance: internal.Provenance{Tier: internal.TierText, Page: 1},
	}
	coded := internal.Candidate{
		Value:      internal.TextValue("C2 - Building Construction"),
		Provenance: internal.Provenance{Tier: internal.TierText, Page: 2},
	}

	t.Run("coded replaces freeform", func(t *testing.T) {
		record := internal.NewDocumentRecord("doc")
		m := NewMerger(testConfig(), zap.NewNop(), &record)
		m.MergePage(internal.PartialRecord{internal.FieldLicenseCategory: freeform})
		m.MergePage(internal.PartialRecord{internal.FieldLicenseCategory: coded})
		if got := record.Text(internal.FieldLicenseCategory); got != "C2 - Building Construction" {
			t.Errorf("license = %q, want coded form", got)
		}
	})
	t.Run("freeform never replaces coded", func(t *testing.T) {
		record := internal.NewDocumentRecord("doc")
		m := NewMerger(testConfig(), zap.NewNop(), &record)
		m.MergePage(internal.PartialRecord{internal.FieldLicenseCategory: coded})
		m.MergePage(internal.PartialRecord{internal.FieldLicenseCategory: freeform})
		if got := record.Text(internal.FieldLicenseCategory); got != "C2 - Building Construction" {
			t.Errorf("license = %q, want coded form kept", got)
		}
	})
}

func TestAuthorityPageOverridesBid(t *testing.T) {
	record := internal.NewDocumentRecord("doc")
	m := NewMerger(testConfig(), zap.NewNop(), &record)

	m.MergeBid(500_000, 3)
	m.ApplyAuthorityPage("Bid Amount: 750,000", 38)

	if got := record.Number(internal.FieldBidAmount); got != 750_000 {
		t.Errorf("bid = %g, want authority-page 750000", got)
	}

	// Amounts at or below the floor never override.
	m.ApplyAuthorityPage("Bid Amount: 900", 38)
	if got := record.Number(internal.FieldBidAmount); got != 750_000 {
		t.Errorf("bid = %g, floor amount must not override", got)
	}
}

func TestEnhanceMissingConvertsUnits(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Duration: 2 years", 24},
		{"Duration: 90 days", 3},
		{"Duration: 10 days", 1}, // floors at one month
		{"Duration: 18 months", 18},
	}
	for _, tt := range tests {
		record := internal.NewDocumentRecord("doc")
		doc := document.Document{Pages: []document.Page{{Number: 1, Text: tt.text}}}
		testScanner().EnhanceMissing(doc, &record)

		if !record.Has(internal.FieldProjectDuration) {
			t.Errorf("EnhanceMissing(%q): duration not recovered", tt.text)
			continue
		}
		if got := int(record.Number(internal.FieldProjectDuration)); got != tt.want {
			t.Errorf("EnhanceMissing(%q) = %d months, want %d", tt.text, got, tt.want)
		}
		if got := record.Provenance[internal.FieldProjectDuration].Tier; got != internal.TierEnhanced {
			t.Errorf("tier = %s, want enhanced", got)
		}
	}
}

func TestEnhanceMissingRejectsShortContractName(t *testing.T) {
	record := internal.NewDocumentRecord("doc")
	doc := document.Document{Pages: []document.Page{{Number: 1, Text: "Contract Name: abc"}}}
	testScanner().EnhanceMissing(doc, &record)

	if record.Has(internal.FieldContractName) {
		t.Errorf("short contract name accepted: %q", record.Text(internal.FieldContractName))
	}
}

func TestEnhanceMissingBidTakesLargestInWindow(t *testing.T) {
	record := internal.NewDocumentRecord("doc")
	doc := document.Document{Pages: []document.Page{{
		Number: 1,
		Text:   "Registration Cost: 2,500\nProject Cost: 1,850,000\nCost: 900",
	}}}
	testScanner().EnhanceMissing(doc, &record)

	if got := record.Number(internal.FieldBidAmount); got != 1_850_000 {
		t.Errorf("bid = %g, want largest plausible 1850000", got)
	}
}

func TestEnhanceMissingSkipsPresentFields(t *testing.T) {
	record := internal.NewDocumentRecord("doc")
	record.Set(internal.FieldProjectDuration, internal.IntValue(12),
		internal.Provenance{Tier: internal.TierText, Page: 1})

	doc := document.Document{Pages: []document.Page{{Number: 1, Text: "Duration: 5 years"}}}
	testScanner().EnhanceMissing(doc, &record)

	if got := int(record.Number(internal.FieldProjectDuration)); got != 12 {
		t.Errorf("duration = %d, enhanced pass must not touch present fields", got)
	}
}

func TestDetectBidDocument(t *testing.T) {
	bid := document.Document{Pages: []document.Page{{
		Number: 1,
		Text:   "Tender for road contract. Bid Amount: 1,500,000. Total: 1,500,000",
		Tables: [][][]string{{{"Bid Amount", "1,500,000"}}},
	}}}
	if res := DetectBidDocument(bid, 0.45); !res.IsBid {
		t.Errorf("bid document not detected, score %g", res.Score)
	}

	letter := document.Document{Pages: []document.Page{{
		Number: 1,
		Text:   "Dear team, the office picnic moves to Saturday. Bring snacks.",
	}}}
	if res := DetectBidDocument(letter, 0.45); res.IsBid {
		t.Errorf("plain letter detected as bid, score %g", res.Score)
	}
}

func TestScanBidAmountStopsAtFirstMatchingFamily(t *testing.T) {
	// "Amount" family matches first even though the bare-symbol family
	// would find a larger number later in the text.
	text := fmt.Sprintf("Amount: 5,000\nsome unrelated figure $%s", "9,999,999")
	got, ok := testScanner().ScanBidAmount(text)
	if !ok || got != 5_000 {
		t.Errorf("ScanBidAmount = %g, %v; want 5000 from the first matching family", got, ok)
	}
}
