package util

import "time"

// DayLayout is the canonical day key layout used across the service.
const DayLayout = "2006-01-02"

var dayLayouts = []string{
	DayLayout,
	"01/02/2006",
	"1/2/2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDay tries the tabular source's known day formats. Returns (day, true)
// truncated to midnight UTC if any layout matched.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// DayKey formats a day as its ISO key.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// SameDay reports whether two times fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	return DayKey(a.UTC()) == DayKey(b.UTC())
}
