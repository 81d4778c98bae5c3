package clean

import (
	"testing"
	"time"
)

func TestGender(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{"Male", "M"},
		{"male", "M"},
		{"  M  ", "M"},
		{"F", "F"},
		{"female", "F"},
		{"FEMALE", "F"},
		{"", nil},
		{"other", nil},
		{"unknown", nil},
		{"nan", nil},
		{nil, nil},
		{42, nil},
	}
	for _, tt := range tests {
		if got := Gender(tt.in); got != tt.want {
			t.Errorf("Gender(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCategoryAliases(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{"toy", "Toys"},
		{"TOY", "Toys"},
		{"men's apparel", "Clothing"},
		{"clothes", "Clothing"},
		{"make up", "Makeup"},
		{"laptops", "Gadgets"},
		{"bag", "Bags"},
		{"BAG", "Bags"},
	}
	for _, tt := range tests {
		if got := Category(tt.in); got != tt.want {
			t.Errorf("Category(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCategoryPassthroughTitleCase(t *testing.T) {
	if got := Category("widgets"); got != "Widgets" {
		t.Errorf("Category(widgets) = %v, want Widgets", got)
	}
	if got := Category("home decor"); got != "Home Decor" {
		t.Errorf("Category(home decor) = %v, want Home Decor", got)
	}
}

func TestCategoryMissing(t *testing.T) {
	for _, in := range []any{nil, "", "  ", "nan", "NaN"} {
		if got := Category(in); got != nil {
			t.Errorf("Category(%v) = %v, want nil", in, got)
		}
	}
}

func TestParseDateFormats(t *testing.T) {
	p := DateParser{}
	tests := []struct {
		in   string
		want time.Time
	}{
		{"1990-03-15", time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"03/15/1990", time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Mar 15, 1990", time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"15-03-1990", time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := p.Parse(tt.in)
		if !ok {
			t.Errorf("Parse(%q) not ok", tt.in)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	p := DateParser{}
	for _, in := range []string{"", "  ", "nan", "not a date", "13/45/2020", "2020-15-40"} {
		if _, ok := p.Parse(in); ok {
			t.Errorf("Parse(%q) ok, want failure", in)
		}
	}
}

func TestParseDateDayFirst(t *testing.T) {
	// "01/02/2024" is ambiguous; the switch decides which side wins.
	monthFirst := DateParser{}
	got, ok := monthFirst.Parse("01/02/2024")
	if !ok || got.Month() != time.January || got.Day() != 2 {
		t.Errorf("month-first Parse(01/02/2024) = %v, ok=%v", got, ok)
	}

	dayFirst := DateParser{DayFirst: true}
	got, ok = dayFirst.Parse("01/02/2024")
	if !ok || got.Month() != time.February || got.Day() != 1 {
		t.Errorf("day-first Parse(01/02/2024) = %v, ok=%v", got, ok)
	}
}

func TestDateValue(t *testing.T) {
	p := DateParser{}
	if got := p.Value(nil); got != nil {
		t.Errorf("Value(nil) = %v", got)
	}
	if got := p.Value("garbage"); got != nil {
		t.Errorf("Value(garbage) = %v", got)
	}
	got := p.Value("1990-03-15")
	want := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	if tm, ok := got.(time.Time); !ok || !tm.Equal(want) {
		t.Errorf("Value(1990-03-15) = %v, want %v", got, want)
	}
}

func TestDateValueKeepsCalendarDate(t *testing.T) {
	// 01:00 on March 15 in UTC+2 is 23:00 on March 14 UTC; rounding on
	// the absolute timeline would land on the 14th. The value's own
	// calendar date must win.
	p := DateParser{}
	in := time.Date(2024, 3, 15, 1, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if tm, ok := p.Value(in).(time.Time); !ok || !tm.Equal(want) {
		t.Errorf("Value(%v) = %v, want %v", in, p.Value(in), want)
	}
}
