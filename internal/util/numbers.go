package util

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	reSpaces     = regexp.MustCompile(`\s+`)
	reNonAmount  = regexp.MustCompile(`[^0-9.,]`)
	reNonDecimal = regexp.MustCompile(`[^0-9.]`)
	reNonDigit   = regexp.MustCompile(`[^0-9]`)
)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// SplitLines splits text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseAmount parses a currency-ish token. Everything except digits, dots
// and thousand-separator commas is stripped first, so "$1,250,000.50" and
// "Rs. 1,250,000.50" both parse to 1250000.5.
func ParseAmount(raw string) (float64, error) {
	cleaned := reNonAmount.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, eris.Errorf("no numeric content in %q", raw)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse amount %q", raw)
	}
	return v, nil
}

// ParseDecimal parses ratings and percentages, stripping units and signs
// ("92.5 %" -> 92.5, "4.5/5" is the caller's problem, first capture only).
func ParseDecimal(raw string) (float64, error) {
	cleaned := reNonDecimal.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, eris.Errorf("no numeric content in %q", raw)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse decimal %q", raw)
	}
	return v, nil
}

// ParseCount parses small integer counts. An empty numeric capture counts
// as zero rather than an error.
func ParseCount(raw string) (int, error) {
	cleaned := reNonDigit.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, eris.Wrapf(err, "parse count %q", raw)
	}
	return v, nil
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
