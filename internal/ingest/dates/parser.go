// Package dates parses the publication date formats commonly found on news pages.
package dates

import (
	"strings"
	"time"
)

// layouts are tried in order; the first one that parses wins.
// Day-first is attempted before month-first for slash separated dates.
var layouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2/1/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-1-2T15:04:05",
	"2006-1-2T15:04:05Z",
}

// Parse returns the calendar date in candidate as UTC midnight.
// The second return value is false when no known layout matches.
func Parse(candidate string) (time.Time, bool) {
	s := strings.TrimSpace(candidate)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// MustParse is Parse for tests and fixtures; it panics on an unknown layout.
func MustParse(candidate string) time.Time {
	t, ok := Parse(candidate)
	if !ok {
		panic("dates: cannot parse " + candidate)
	}
	return t
}
