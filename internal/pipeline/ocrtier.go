package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"bidrank/internal"
	"bidrank/internal/config"
	"bidrank/internal/document"
	"bidrank/internal/fieldspec"
	"bidrank/internal/ocr"
	"bidrank/internal/util"
)

// minOCRText is the least recognized text worth pattern matching; below it
// the engine only saw noise.
const minOCRText = 20

// OCRFallback recovers fields from pages whose extracted text was too thin
// to match anything. Every failure here is soft: OCR is best effort and
// the default tier guarantees completeness regardless.
type OCRFallback struct {
	rec       ocr.Recognizer
	available bool
	cfg       config.Config
	log       *zap.Logger
	scanner   *Scanner
}

// NewOCRFallback wires a recognizer in. Availability is decided by the
// caller (binary probe, configuration) and passed in explicitly so the
// pipeline never discovers a missing engine mid-document.
func NewOCRFallback(rec ocr.Recognizer, available bool, cfg config.Config, log *zap.Logger, scanner *Scanner) *OCRFallback {
	return &OCRFallback{rec: rec, available: available, cfg: cfg, log: log, scanner: scanner}
}

func (o *OCRFallback) Available() bool { return o.available }

// ShouldScan reports whether a page qualifies for OCR: its text is thin
// and the earlier tiers got nothing out of it.
func (o *OCRFallback) ShouldScan(page document.Page, yielded bool) bool {
	return !yielded && len(strings.TrimSpace(page.Text)) < o.cfg.MinPageTextLen
}

// ScanPage renders the page, recognizes it and reruns the text patterns
// plus a line-oriented key/value scan over the recognized text.
func (o *OCRFallback) ScanPage(ctx context.Context, page document.Page) internal.PartialRecord {
	if !o.available || page.Image == nil {
		return nil
	}

	image, err := page.Image(ctx)
	if err != nil {
		o.log.Debug("page render failed", zap.Int("page", page.Number), zap.Error(err))
		return nil
	}
	text, err := o.rec.Recognize(ctx, image)
	if err != nil {
		o.log.Debug("ocr failed", zap.Int("page", page.Number), zap.Error(err))
		return nil
	}
	if len(strings.TrimSpace(text)) < minOCRText {
		return nil
	}

	partial := o.scanner.scanText(text, page.Number, internal.TierOCR)
	for field, cand := range scanLines(text, page.Number) {
		partial[field] = cand
	}
	o.log.Debug("ocr recovered fields",
		zap.Int("page", page.Number),
		zap.Int("fields", len(partial)))
	return partial
}

// scanLines matches the widened line-oriented patterns one line at a time,
// which tolerates the broken layout OCR tends to produce.
func scanLines(text string, pageNum int) internal.PartialRecord {
	partial := internal.PartialRecord{}
	for _, line := range util.SplitLines(text) {
		for _, spec := range fieldspec.All() {
			if _, ok := partial[spec.Field]; ok {
				continue
			}
			m, ok := fieldspec.MatchText(spec, fieldspec.CascadeLine, line)
			if !ok {
				continue
			}
			partial[spec.Field] = internal.Candidate{
				Value:      m.Value,
				Provenance: internal.Provenance{Tier: internal.TierOCR, Page: pageNum, PatternRank: m.Rank},
			}
		}
	}
	return partial
}
