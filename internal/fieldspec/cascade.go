package fieldspec

import (
	"regexp"

	"bidrank/internal"
)

// Cascade selects which of a spec's pattern lists to walk.
type Cascade int

const (
	CascadePrimary Cascade = iota
	CascadeEnhanced
	CascadeLine
)

func (s Spec) Patterns(c Cascade) []*regexp.Regexp {
	switch c {
	case CascadeEnhanced:
		return s.Enhanced
	case CascadeLine:
		return s.Line
	default:
		return s.Primary
	}
}

// Match is one successful cascade hit.
type Match struct {
	Value internal.Value
	// Rank is the index of the pattern that hit; lower is more specific.
	Rank int
	// Groups holds the full submatch slice; Groups[1] is the value capture
	// and Groups[2], when present, a unit capture.
	Groups []string
}

// MatchText walks the selected cascade in order and returns the first
// capture that coerces to the field's type. Captures that fail coercion
// are discarded and the walk continues (CoercionError is recovery, not
// failure).
func MatchText(s Spec, c Cascade, text string) (Match, bool) {
	for rank, re := range s.Patterns(c) {
		groups := re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		v, err := Coerce(s.Field, groups[1])
		if err != nil {
			continue
		}
		return Match{Value: v, Rank: rank, Groups: groups}, true
	}
	return Match{}, false
}
