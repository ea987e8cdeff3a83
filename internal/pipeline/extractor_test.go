package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/document"
)

func TestImputerFillsEveryField(t *testing.T) {
	record := internal.NewDocumentRecord("empty.pdf")
	NewImputer(testConfig(), zap.NewNop()).Fill(&record)

	for _, f := range internal.RequiredFields() {
		if !record.Has(f) {
			t.Errorf("field %s still missing after imputation", f)
		}
		if got := record.Provenance[f].Tier; got != internal.TierDefault {
			t.Errorf("%s tier = %s, want default", f, got)
		}
	}

	if got := record.Number(internal.FieldBidAmount); got != 1_000_000 {
		t.Errorf("bid = %g, want 1000000", got)
	}
	if got := record.Text(internal.FieldLicenseCategory); got != "C3" {
		t.Errorf("license = %q, want C3", got)
	}
	if got := record.Text(internal.FieldContractName); got != "Contract_C3_10" {
		t.Errorf("contract name = %q, want Contract_C3_10", got)
	}
	if got := int(record.Number(internal.FieldProjectDuration)); got != 12 {
		t.Errorf("duration = %d, want 12", got)
	}
	if got := int(record.Number(internal.FieldWarrantyPeriod)); got != 24 {
		t.Errorf("warranty = %d, want 2x duration", got)
	}
	if got := record.Number(internal.FieldClientRating); got != 4.0 {
		t.Errorf("rating = %g, want 4.0", got)
	}
	if got := record.Number(internal.FieldProjectSuccessRate); got != 80 {
		t.Errorf("success rate = %g, want rating*20", got)
	}
	if got := int(record.Number(internal.FieldRejectionHistory)); got != 0 {
		t.Errorf("rejections = %d, want 0", got)
	}
	if got := record.Text(internal.FieldSafetyCertification); got != "Yes" {
		t.Errorf("safety = %q, want Yes", got)
	}

	if len(record.CriticalGaps) != 1 || record.CriticalGaps[0] != internal.FieldBidAmount {
		t.Errorf("critical gaps = %v, want [bid_amount]", record.CriticalGaps)
	}
}

func TestImputerDurationBands(t *testing.T) {
	tests := []struct {
		bid  float64
		want int
	}{
		{6_000_000, 36},
		{5_000_000, 24}, // band edges are exclusive
		{3_000_000, 24},
		{2_000_000, 12},
		{100_000, 12},
	}
	for _, tt := range tests {
		record := internal.NewDocumentRecord("doc")
		record.Set(internal.FieldBidAmount, internal.FloatValue(tt.bid),
			internal.Provenance{Tier: internal.TierText, Page: 1})
		NewImputer(testConfig(), zap.NewNop()).Fill(&record)

		if got := int(record.Number(internal.FieldProjectDuration)); got != tt.want {
			t.Errorf("bid %g: duration = %d, want %d", tt.bid, got, tt.want)
		}
	}
}

func TestImputerWarrantyFloor(t *testing.T) {
	record := internal.NewDocumentRecord("doc")
	record.Set(internal.FieldProjectDuration, internal.IntValue(4),
		internal.Provenance{Tier: internal.TierText, Page: 1})
	NewImputer(testConfig(), zap.NewNop()).Fill(&record)

	if got := int(record.Number(internal.FieldWarrantyPeriod)); got != 12 {
		t.Errorf("warranty = %d, want floor of 12", got)
	}
}

func TestImputerKeepsExtractedValues(t *testing.T) {
	record := internal.NewDocumentRecord("doc")
	record.Set(internal.FieldClientRating, internal.FloatValue(2.5),
		internal.Provenance{Tier: internal.TierTable, Page: 2})
	NewImputer(testConfig(), zap.NewNop()).Fill(&record)

	if got := record.Number(internal.FieldClientRating); got != 2.5 {
		t.Errorf("rating = %g, imputer must not overwrite extracted values", got)
	}
	if got := record.Number(internal.FieldProjectSuccessRate); got != 60 {
		t.Errorf("success rate = %g, want clamp(2.5*20, 60, 100)", got)
	}
	if len(record.CriticalGaps) != 1 {
		t.Errorf("critical gaps = %v, only the bid default is critical", record.CriticalGaps)
	}
}

func newTestExtractor(rec fakeRecognizer, available bool) *Extractor {
	return NewExtractor(testConfig(), zap.NewNop(), rec, available)
}

type fakeRecognizer struct {
	text string
	err  error
}

func (f fakeRecognizer) Recognize(_ context.Context, _ []byte) (string, error) {
	return f.text, f.err
}

func TestExtractCompleteNotice(t *testing.T) {
	doc := document.Document{
		Source: "notice.html",
		Pages: []document.Page{{
			Number: 1,
			Text: strings.Join([]string{
				"Tender Notice",
				"Contract Name: Hillside Road Upgrade",
				"License Category: C2 - Civil Works",
				"Project Duration: 24 months",
				"Warranty Period: 36 months",
				"Client Rating: 4.6",
				"Success Rate: 92%",
				"Rejections: 1",
				"Safety Certification: Yes",
				"Bid Amount: Rs. 2,500,000",
			}, "\n"),
		}},
	}

	record, err := newTestExtractor(fakeRecognizer{}, false).Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got := record.Text(internal.FieldContractName); got != "Hillside Road Upgrade" {
		t.Errorf("contract name = %q", got)
	}
	if got := record.Number(internal.FieldBidAmount); got != 2_500_000 {
		t.Errorf("bid = %g", got)
	}
	if got := int(record.Number(internal.FieldProjectDuration)); got != 24 {
		t.Errorf("duration = %d", got)
	}
	if len(record.CriticalGaps) != 0 {
		t.Errorf("critical gaps = %v, want none", record.CriticalGaps)
	}
	for _, f := range internal.RequiredFields() {
		if record.Provenance[f].Tier == internal.TierDefault {
			t.Errorf("%s fell through to the default tier", f)
		}
	}
}

func TestExtractAlwaysComplete(t *testing.T) {
	doc := document.Document{
		Source: "memo.pdf",
		Pages: []document.Page{{
			Number: 1,
			Text:   "This memo has nothing to do with tenders and carries no labelled values at all.",
		}},
	}

	record, err := newTestExtractor(fakeRecognizer{}, false).Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, f := range internal.RequiredFields() {
		if !record.Has(f) {
			t.Errorf("field %s missing from extracted record", f)
		}
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	_, err := newTestExtractor(fakeRecognizer{}, false).Extract(context.Background(), document.Document{Source: "x.pdf"})
	if !errors.Is(err, internal.ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
}

func TestExtractAuthorityPageWins(t *testing.T) {
	pages := make([]document.Page, 38)
	for i := range pages {
		pages[i] = document.Page{Number: i + 1, Text: "boilerplate terms and conditions for this tender packet"}
	}
	pages[0].Text = "Bid Amount: 500,000"
	pages[37].Text = "Bid Amount: 750,000"

	record, err := newTestExtractor(fakeRecognizer{}, false).Extract(context.Background(),
		document.Document{Source: "packet.pdf", Pages: pages})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := record.Number(internal.FieldBidAmount); got != 750_000 {
		t.Errorf("bid = %g, want authority-page 750000", got)
	}
	if got := record.Provenance[internal.FieldBidAmount].Page; got != 38 {
		t.Errorf("provenance page = %d, want 38", got)
	}
}

func TestExtractOCRFallbackOnThinPage(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}
	doc := document.Document{
		Source: "scan.pdf",
		Pages: []document.Page{{
			Number: 1,
			Text:   "", // scanned page, extraction got nothing
			Image: func(context.Context) ([]byte, error) {
				return image, nil
			},
		}},
	}

	rec := fakeRecognizer{text: strings.Join([]string{
		"Contract Name: Scanned School Building",
		"Bid Amount: 2,400,000",
	}, "\n")}

	record, err := newTestExtractor(rec, true).Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := record.Text(internal.FieldContractName); got != "Scanned School Building" {
		t.Errorf("contract name = %q", got)
	}
	if got := record.Provenance[internal.FieldContractName].Tier; got != internal.TierOCR {
		t.Errorf("tier = %s, want ocr", got)
	}
	if got := record.Number(internal.FieldBidAmount); got != 2_400_000 {
		t.Errorf("bid = %g", got)
	}
}

func TestExtractOCRFailureIsSoft(t *testing.T) {
	doc := document.Document{
		Source: "scan.pdf",
		Pages: []document.Page{{
			Number: 1,
			Image: func(context.Context) ([]byte, error) {
				return nil, fmt.Errorf("render: page corrupt")
			},
		}},
	}

	record, err := newTestExtractor(fakeRecognizer{err: fmt.Errorf("engine crash")}, true).
		Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract must not fail on OCR errors: %v", err)
	}
	for _, f := range internal.RequiredFields() {
		if !record.Has(f) {
			t.Errorf("field %s missing, defaults must cover OCR failure", f)
		}
	}
}
