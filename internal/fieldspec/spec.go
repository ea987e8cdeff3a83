// Package fieldspec is the static catalogue of the nine bid fields: the
// pattern cascades that locate each field in document text, the coercion
// rule that turns a raw capture into a typed value, and the directionality
// used later by scoring.
package fieldspec

import (
	"regexp"
	"strings"

	"bidrank/internal"
	"bidrank/internal/util"
)

type ValueType int

const (
	TypeText ValueType = iota
	TypeInteger
	TypeDecimal
	TypeCurrency
	TypeBoolLabel
)

type Direction int

const (
	DirectionNone Direction = iota
	HigherBetter
	LowerBetter
)

// Spec describes one field. Pattern lists are ordered most specific first;
// cascade evaluation stops at the first pattern whose capture coerces.
type Spec struct {
	Field     internal.Field
	Type      ValueType
	Direction Direction

	// Primary patterns run against full page text on the first pass.
	Primary []*regexp.Regexp
	// Enhanced patterns are the wider net used by the second pass. Nil for
	// fields that have no looser wording worth trying.
	Enhanced []*regexp.Regexp
	// Line patterns run against individual lines of OCR output, which is
	// too noisy for page-wide matching.
	Line []*regexp.Regexp
}

var byField map[internal.Field]Spec

func init() {
	byField = make(map[internal.Field]Spec, len(specs))
	for _, s := range specs {
		byField[s.Field] = s
	}
}

// Lookup returns the spec for a field.
func Lookup(f internal.Field) (Spec, bool) {
	s, ok := byField[f]
	return s, ok
}

// All returns every spec in canonical field order.
func All() []Spec {
	out := make([]Spec, 0, len(specs))
	out = append(out, specs...)
	return out
}

// Coerce converts a raw capture into the field's declared type. A failure
// is a *internal.CoercionError; the caller discards the match and keeps
// walking the cascade.
func Coerce(f internal.Field, raw string) (internal.Value, error) {
	spec, ok := byField[f]
	if !ok {
		return internal.Value{}, &internal.CoercionError{Field: f, Raw: raw, Cause: errUnknownField}
	}

	raw = strings.TrimSpace(raw)
	switch spec.Type {
	case TypeCurrency:
		v, err := util.ParseAmount(raw)
		if err != nil {
			return internal.Value{}, &internal.CoercionError{Field: f, Raw: raw, Cause: err}
		}
		if v <= 0 {
			return internal.Value{}, &internal.CoercionError{Field: f, Raw: raw, Cause: errNonPositiveAmount}
		}
		return internal.FloatValue(v), nil
	case TypeDecimal:
		v, err := util.ParseDecimal(raw)
		if err != nil {
			return internal.Value{}, &internal.CoercionError{Field: f, Raw: raw, Cause: err}
		}
		return internal.FloatValue(v), nil
	case TypeInteger:
		v, err := util.ParseCount(raw)
		if err != nil {
			return internal.Value{}, &internal.CoercionError{Field: f, Raw: raw, Cause: err}
		}
		return internal.IntValue(v), nil
	case TypeBoolLabel:
		return internal.TextValue(NormalizeYesNo(raw)), nil
	default:
		if raw == "" {
			return internal.Value{}, &internal.CoercionError{Field: f, Raw: raw, Cause: errEmptyText}
		}
		return internal.TextValue(raw), nil
	}
}

// NormalizeYesNo maps free text to exactly "Yes" or "No" by keyword
// membership. Ambiguous text defaults to "Yes" (the corpus overwhelmingly
// states certification positively and omits it otherwise).
func NormalizeYesNo(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, word := range []string{"yes", "true", "1", "certified", "approved"} {
		if strings.Contains(v, word) {
			return "Yes"
		}
	}
	for _, word := range []string{"no", "false", "0", "not"} {
		if strings.Contains(v, word) {
			return "No"
		}
	}
	return "Yes"
}
