package pipeline

import (
	"regexp"
	"strings"

	"bidrank/internal/document"
)

type DetectResult struct {
	IsBid  bool
	Score  float64
	Reason string
}

var detectKeywords = []string{"bid", "tender", "contract", "procurement", "proposal", "quotation", "contractor"}

var labelledAmount = regexp.MustCompile(`(?i)(?:bid|amount|total|price|cost)\s*[:\-]?\s*[\$₹€]?\s*[\d,]{4,}`)

// DetectBidDocument scores how likely a converted document is a bid or
// tender packet at all, so that invoices and unrelated mail get flagged
// before their extracted noise pollutes a ranking batch.
func DetectBidDocument(doc document.Document, threshold float64) DetectResult {
	var text strings.Builder
	tables := 0
	for _, page := range doc.Pages {
		text.WriteString(strings.ToLower(page.Text))
		text.WriteByte('\n')
		tables += len(page.Tables)
	}
	body := text.String()

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(body, kw) {
			score += 0.1
		}
	}

	amountHits := len(labelledAmount.FindAllString(body, 3))
	if amountHits >= 2 {
		score += 0.4
	} else if amountHits == 1 {
		score += 0.2
	}

	if tables > 0 {
		score += 0.25
	}
	if score > 1 {
		score = 1
	}

	isBid := score >= threshold
	reason := "rules_negative"
	if isBid {
		reason = "rules_positive"
	}

	return DetectResult{IsBid: isBid, Score: score, Reason: reason}
}
