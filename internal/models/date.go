package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout dates are stored and submitted in.
const DateLayout = "2006-01-02"

var storedLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a stored date and returns midnight UTC of that day.
// Values stored with a time component are accepted.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range storedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// FormatDate formats t as a stored date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day returns midnight UTC of t's calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOnly trims a stored date to its first ten characters, dropping any
// time component.
func DateOnly(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}
