package engine

import (
	"strings"
	"time"

	"stock-checkin/internal/config"
)

// Task list categories.
const (
	CategoryDaily          = "daily"
	CategoryWeekly         = "weekly"
	CategoryBiMonthly      = "bi_monthly"
	CategoryMonthly        = "monthly"
	CategoryEarningsWindow = "earnings_window"
)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var dailyTasks = []string{
	"Review red flags checklist for all six names.",
	"Scan 8-K filings and material company announcements.",
	"Check sell-side estimate revisions and target changes.",
	"Check hyperscaler AI capex commentary deltas (MSFT, GOOG, META, AMZN).",
}

var weeklyTasks = []string{
	"Review Form 4 insider buy/sell activity.",
	"Review sector flow and relative performance signals (SMH, GRID/ICLN).",
	"Review valuation drift versus your baseline thesis assumptions.",
}

var biMonthlyTasks = []string{
	"Check short-interest updates and changes in crowding risk.",
	"Review options implied volatility into the next earnings windows.",
}

var monthlyTasks = []string{
	"Review macro layer: fed path, 10Y yield, and cost-of-capital pressure.",
	"Review policy/regulation changes: export controls, tariff updates, DOE/NRC updates.",
}

var earningsWindowTasks = []string{
	"Run earnings workflow: pre-read release, call notes, guidance delta, and post-call thesis check.",
}

// DueTasks returns the checklist tasks due on runDate, keyed by category.
// Daily tasks are always due; the other categories follow their configured
// calendar cadence. The earnings_window category activates when the guardrail
// evaluation reported any due earnings items.
func DueTasks(runDate time.Time, cfg config.CadenceConfig, earningsDue []string) map[string][]string {
	due := map[string][]string{
		CategoryDaily:          dailyTasks,
		CategoryWeekly:         {},
		CategoryBiMonthly:      {},
		CategoryMonthly:        {},
		CategoryEarningsWindow: {},
	}

	if runDate.Weekday() == resolveWeekday(cfg.WeeklyReviewDay) {
		due[CategoryWeekly] = weeklyTasks
	}

	for _, day := range cfg.BiMonthlyDays {
		if runDate.Day() == day {
			due[CategoryBiMonthly] = biMonthlyTasks
			break
		}
	}

	if BusinessDayOfMonth(runDate) == cfg.MonthlyReviewBusinessDay {
		due[CategoryMonthly] = monthlyTasks
	}

	if len(earningsDue) > 0 {
		due[CategoryEarningsWindow] = earningsWindowTasks
	}

	return due
}

// resolveWeekday maps a configured weekday name to a time.Weekday,
// case-insensitively. Unrecognized names fall back to Friday.
func resolveWeekday(name string) time.Weekday {
	if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return wd
	}
	return time.Friday
}

// BusinessDayOfMonth returns the 1-based count of weekdays (Mon-Fri) from
// the first of the month through date inclusive. A weekend date carries the
// count of the preceding Friday and so never matches a configured ordinal
// it has not itself advanced.
func BusinessDayOfMonth(date time.Time) int {
	count := 0
	cursor := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	for !cursor.After(date) {
		if wd := cursor.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return count
}
