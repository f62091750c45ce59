// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// FormatMoney formats a dollar amount with thousands separators, or "-" when
// the value is absent.
func FormatMoney(value *float64) string {
	if value == nil {
		return "-"
	}
	return "$" + groupThousands(fmt.Sprintf("%.2f", *value))
}

// FormatPercent formats a signed percentage, or "-" when absent.
func FormatPercent(value *float64) string {
	if value == nil {
		return "-"
	}
	sign := ""
	if *value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, *value)
}

// FormatRatio formats a valuation ratio to one decimal, or "-" when absent.
func FormatRatio(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *value)
}

// FormatMarketCap formats a market cap compactly (T/B/M), or "-" when absent.
func FormatMarketCap(value *int64) string {
	if value == nil {
		return "-"
	}
	v := *value
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000_000:
		return fmt.Sprintf("$%.2fT", float64(v)/1_000_000_000_000)
	case abs >= 1_000_000_000:
		return fmt.Sprintf("$%.2fB", float64(v)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.2fM", float64(v)/1_000_000)
	default:
		return "$" + groupThousands(fmt.Sprintf("%d", v))
	}
}

// FormatCount formats a share count with thousands separators, or "-" when
// the value is absent.
func FormatCount(value *int64) string {
	if value == nil {
		return "-"
	}
	return groupThousands(fmt.Sprintf("%d", *value))
}

// groupThousands inserts commas into the integer part of a formatted number.
func groupThousands(s string) string {
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	intPart := s
	decPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, decPart = s[:i], s[i:]
	}

	n := len(intPart)
	if n > 3 {
		var b strings.Builder
		first := n % 3
		if first > 0 {
			b.WriteString(intPart[:first])
		}
		for i := first; i < n; i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	result := intPart + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// SummarizeError flattens and truncates an external error message for
// display on a snapshot. Known noisy network failures collapse to a short
// label; anything over 140 characters is cut.
func SummarizeError(message string) string {
	text := strings.TrimSpace(strings.ReplaceAll(message, "\n", " "))
	if text == "" {
		return "Unknown fetch error"
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") {
		return "Network fetch failed"
	}
	if len(text) > 140 {
		return text[:137] + "..."
	}
	return text
}
