package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/config"
	"bidrank/internal/document"
	"bidrank/internal/ocr"
)

// Extractor runs the full tiered extraction over one converted document:
// per-page pattern and table scanning, first-wins merging, the enhanced
// pass for leftovers, OCR for thin pages, and default imputation last.
// The returned record always carries all nine fields.
type Extractor struct {
	cfg      config.Config
	log      *zap.Logger
	scanner  *Scanner
	fallback *OCRFallback
	imputer  Imputer
}

func NewExtractor(cfg config.Config, log *zap.Logger, rec ocr.Recognizer, ocrAvailable bool) *Extractor {
	scanner := NewScanner(cfg, log)
	return &Extractor{
		cfg:      cfg,
		log:      log,
		scanner:  scanner,
		fallback: NewOCRFallback(rec, ocrAvailable, cfg, log, scanner),
		imputer:  NewImputer(cfg, log),
	}
}

func (e *Extractor) Extract(ctx context.Context, doc document.Document) (internal.DocumentRecord, error) {
	if len(doc.Pages) == 0 {
		return internal.DocumentRecord{}, eris.Wrapf(internal.ErrDocumentUnreadable, "%s: no pages", doc.Source)
	}

	if det := DetectBidDocument(doc, e.cfg.DetectThreshold); !det.IsBid {
		e.log.Warn("document does not look like a bid",
			zap.String("source", doc.Source),
			zap.Float64("score", det.Score))
	}

	record := internal.NewDocumentRecord(doc.Source)
	merger := NewMerger(e.cfg, e.log, &record)

	thin := make([]document.Page, 0, 2)
	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return internal.DocumentRecord{}, eris.Wrap(err, "extract")
		}

		partial := e.scanner.ScanPage(page)
		merger.MergePage(partial)

		if !record.Has(internal.FieldBidAmount) {
			if amount, ok := e.scanner.ScanBidAmount(page.Text); ok {
				merger.MergeBid(amount, page.Number)
			}
		}
		if e.fallback.ShouldScan(page, len(partial) > 0) {
			thin = append(thin, page)
		}
	}

	if len(doc.Pages) >= e.cfg.AuthorityPage {
		page := doc.Pages[e.cfg.AuthorityPage-1]
		merger.ApplyAuthorityPage(page.Text, page.Number)
	}

	e.scanner.EnhanceMissing(doc, &record)

	if missingAny(record) && e.fallback.Available() {
		for _, page := range thin {
			merger.MergePage(e.fallback.ScanPage(ctx, page))
			if !missingAny(record) {
				break
			}
		}
	}

	e.imputer.Fill(&record)

	e.log.Info("document extracted",
		zap.String("source", doc.Source),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("defaulted", countTier(record, internal.TierDefault)),
		zap.Int("criticalGaps", len(record.CriticalGaps)))
	return record, nil
}

func missingAny(record internal.DocumentRecord) bool {
	for _, f := range internal.RequiredFields() {
		if !record.Has(f) {
			return true
		}
	}
	return false
}

func countTier(record internal.DocumentRecord, tier internal.Tier) int {
	n := 0
	for _, p := range record.Provenance {
		if p.Tier == tier {
			n++
		}
	}
	return n
}
