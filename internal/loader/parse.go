package loader

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the formats the source extracts mix freely.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// twoDigitLayouts need century fix-up after parsing.
var twoDigitLayouts = []string{
	"02/01/06",
	"2/1/06",
}

// ParseDate parses one date cell. Empty and literal-NaN cells yield
// nil without error; an unrecognized format is an error so the caller
// can skip and count the row.
func ParseDate(raw string) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	for _, layout := range twoDigitLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			fixed := fixCentury(t)
			return &fixed, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

// fixCentury maps two-digit years below 50 to 2000+ and the rest to
// 1900+, matching how the source extracts encode them.
func fixCentury(t time.Time) time.Time {
	year := t.Year() % 100
	if year < 50 {
		year += 2000
	} else {
		year += 1900
	}
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// cleanCell trims a CSV cell and maps literal NaN markers to empty.
func cleanCell(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}
