package models

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2026-02-26", "2026-02-26"},
		{" 2026-02-26 ", "2026-02-26"},
		{"", ""},
		{"   ", ""},
		{"02/26/2026", ""},
		{"2026-13-01", ""},
		{"not-a-date", ""},
	}

	for _, tt := range tests {
		got := ParseDate(tt.input)
		if tt.want == "" {
			if got != nil {
				t.Errorf("ParseDate(%q) = %v, want nil", tt.input, got)
			}
			continue
		}
		if got == nil || got.Format(DateLayout) != tt.want {
			t.Errorf("ParseDate(%q) = %v, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			"same day ignores clock time",
			time.Date(2026, time.February, 26, 23, 59, 0, 0, time.UTC),
			time.Date(2026, time.February, 26, 0, 1, 0, 0, time.UTC),
			0,
		},
		{
			"forward",
			time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			3,
		},
		{
			"backward",
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC),
			-3,
		},
		{
			"across a year boundary",
			time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Fatalf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatusDisplay(t *testing.T) {
	if got := StatusAutoClear.Display(); got != "AUTO CLEAR" {
		t.Errorf("StatusAutoClear.Display() = %q", got)
	}
	if got := StatusManualReview.Display(); got != "MANUAL REVIEW REQUIRED" {
		t.Errorf("StatusManualReview.Display() = %q", got)
	}
}
