package clean

import (
	"strings"
	"time"
)

// DateParser parses heterogeneous date strings by trying a fixed,
// ordered list of layouts and returning the first successful parse.
//
// Numeric dates with two-digit day and month fields are ambiguous: a
// string like "01-02-2024" parses under both day-first and month-first
// layouts, and nothing in the data says which was meant. The layout
// order decides silently. DayFirst makes the preference explicit instead
// of guessing: when set, day-first layouts are tried before month-first
// ones.
type DateParser struct {
	DayFirst bool
}

func (p DateParser) layouts() []string {
	if p.DayFirst {
		return []string{"2006-01-02", "02/01/2006", "Jan 2, 2006", "02-01-2006"}
	}
	return []string{"2006-01-02", "01/02/2006", "Jan 2, 2006", "02-01-2006"}
}

// Parse attempts each layout in order. It reports ok=false for empty
// input or input matching no layout.
func (p DateParser) Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return time.Time{}, false
	}
	for _, layout := range p.layouts() {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Value is the frame-level normalizer: nil, empty and unparsable values
// map to nil; parsable strings map to a time.Time at midnight UTC.
// Values already carrying a time keep their own calendar date; rounding
// on the absolute timeline would shift non-UTC values across midnight.
func (p DateParser) Value(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case string:
		parsed, ok := p.Parse(t)
		if !ok {
			return nil
		}
		return parsed
	}
	return nil
}
