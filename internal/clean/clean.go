// Package clean normalizes the messy categorical and date values coming
// out of the operational store before they reach the warehouse. All
// normalizers are total: every input maps to a canonical value or nil
// (SQL NULL), never an error.
package clean

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// categoryAliases maps known free-text category spellings to their
// curated canonical labels.
var categoryAliases = map[string]string{
	"toy":           "Toys",
	"men's apparel": "Clothing",
	"clothes":       "Clothing",
	"make up":       "Makeup",
	"laptops":       "Gadgets",
	"bag":           "Bags",
}

// fold trims and lowercases a raw value for matching. The second return
// is false when the value is missing (nil, empty, or the literal "nan").
func fold(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "nan" {
		return "", false
	}
	return s, true
}

// Gender maps a free-text gender value to "M", "F" or nil. Values
// beginning with "m" map to "M", values beginning with "f" to "F";
// anything else, including ambiguous or malformed input, maps to nil.
func Gender(v any) any {
	s, ok := fold(v)
	if !ok {
		return nil
	}
	switch {
	case strings.HasPrefix(s, "m"):
		return "M"
	case strings.HasPrefix(s, "f"):
		return "F"
	}
	return nil
}

// Category maps a free-text product category to its canonical label.
// Known aliases resolve through the curated table; any other non-empty
// value passes through title-cased as its own category, so the
// vocabulary is open-ended beyond the aliases. Missing values map to nil.
func Category(v any) any {
	s, ok := fold(v)
	if !ok {
		return nil
	}
	if canonical, ok := categoryAliases[s]; ok {
		return canonical
	}
	return titleCaser.String(s)
}
