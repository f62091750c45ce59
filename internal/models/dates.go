package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used throughout the application.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a calendar date.
// Empty or malformed input yields nil rather than an error; callers treat
// an absent date as non-contributing.
func ParseDate(value string) *time.Time {
	text := strings.TrimSpace(value)
	if text == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return nil
	}
	return &t
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from a to b.
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
