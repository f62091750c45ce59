// Package engine implements the deterministic decision core of the check-in:
// guardrail evaluation, checklist cadence, and the derivations feeding them.
// Everything in this package is a pure function over immutable inputs and
// never fails; absent or malformed values are treated as non-contributing.
package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"stock-checkin/internal/config"
	"stock-checkin/internal/models"
)

// Result is the outcome of a guardrail evaluation.
type Result struct {
	Status      models.Status
	Triggers    []string
	EarningsDue []string
}

// Evaluate runs the guardrail rules over a run's snapshots and watchlist.
// Rules are evaluated independently in a fixed order; the order determines
// the trigger list, not precedence. Any trigger forces a manual review.
func Evaluate(snapshots []models.Snapshot, watchlist []models.WatchlistItem, cfg config.GuardrailConfig, runDate time.Time) Result {
	var triggered []string

	var missing []string
	for _, snap := range snapshots {
		if snap.Error != "" || snap.Price == nil {
			missing = append(missing, snap.Ticker)
		}
	}
	if len(missing) > cfg.MaxMissingTickers {
		sort.Strings(missing)
		triggered = append(triggered, fmt.Sprintf(
			"Missing critical data for %d ticker(s): %s",
			len(missing), strings.Join(missing, ", ")))
	}

	var stale []string
	for _, snap := range snapshots {
		if snap.LastTradeDate == nil || snap.Price == nil {
			continue
		}
		ageDays := models.DaysBetween(*snap.LastTradeDate, runDate)
		if ageDays > cfg.StaleDataMaxDays {
			stale = append(stale, fmt.Sprintf("%s (%s)",
				snap.Ticker, snap.LastTradeDate.Format(models.DateLayout)))
		}
	}
	if len(stale) > 0 {
		triggered = append(triggered,
			"Stale market timestamps beyond allowed window: "+strings.Join(stale, ", "))
	}

	var largeMoves []string
	for _, snap := range snapshots {
		if snap.PriceChangePct == nil {
			continue
		}
		if math.Abs(*snap.PriceChangePct) >= cfg.PriceMovePctThreshold {
			largeMoves = append(largeMoves, fmt.Sprintf("%s (%+.2f%%)",
				snap.Ticker, *snap.PriceChangePct))
		}
	}
	if len(largeMoves) > 0 {
		triggered = append(triggered, fmt.Sprintf(
			"Large daily move >= %.1f%%: %s",
			cfg.PriceMovePctThreshold, strings.Join(largeMoves, ", ")))
	}

	var earningsDue []string
	for _, item := range watchlist {
		if item.EarningsDate == nil {
			continue
		}
		delta := models.DaysBetween(runDate, *item.EarningsDate)
		if abs(delta) > cfg.EarningsWindowDays {
			continue
		}
		relation := "today"
		if delta < 0 {
			relation = fmt.Sprintf("%d day(s) ago", -delta)
		} else if delta > 0 {
			relation = fmt.Sprintf("in %d day(s)", delta)
		}
		earningsDue = append(earningsDue, fmt.Sprintf("%s (%s) earnings %s [%s]",
			item.Ticker, item.Company, item.EarningsDate.Format(models.DateLayout), relation))
	}
	if len(earningsDue) > 0 {
		triggered = append(triggered, "Earnings window active: "+strings.Join(earningsDue, "; "))
	}

	status := models.StatusAutoClear
	if len(triggered) > 0 {
		status = models.StatusManualReview
	}

	return Result{Status: status, Triggers: triggered, EarningsDue: earningsDue}
}

// ChangePercent derives a daily percentage move from a current price and the
// previous close, rounded to two decimals. It returns nil when either input
// is absent, the previous close is zero, the values are equal, or the two
// prices differ by more than 100x in either direction. The 100x bound rejects
// clearly bogus reference prices.
func ChangePercent(current, previousClose *float64) *float64 {
	if current == nil || previousClose == nil || *previousClose == 0 {
		return nil
	}
	cur, prev := *current, *previousClose
	if cur == prev {
		return nil
	}
	if prev < cur*0.01 || prev > cur*100 {
		return nil
	}
	pct := math.Round(((cur-prev)/prev)*100*100) / 100
	return &pct
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
