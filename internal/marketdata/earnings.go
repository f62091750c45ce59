package marketdata

import (
	"fmt"
	"time"

	"stock-checkin/internal/config"
	"stock-checkin/internal/models"
)

// NextEarningsDate extracts the next earnings date on or after today from a
// quote's calendar fields.
func NextEarningsDate(quote *Quote, today time.Time) *time.Time {
	if quote == nil {
		return nil
	}
	cutoff := models.DateOnly(today)
	for _, epoch := range []*int64{quote.EarningsTimestampStart, quote.EarningsTimestampEnd} {
		if epoch == nil {
			continue
		}
		d := models.DateOnly(time.Unix(*epoch, 0).UTC())
		if !d.Before(cutoff) {
			return &d
		}
	}
	return nil
}

// RefreshEarnings checks every watchlist entry for a stale or absent
// earnings date and resolves a replacement from the fetched quotes. The
// returned update map (ticker to new date) feeds the config write-back;
// failures to determine a date are reported, not fatal.
func RefreshEarnings(cfg *config.Config, quotes map[string]*Quote, today time.Time) (models.EarningsRefresh, map[string]string, []string) {
	refresh := models.EarningsRefresh{
		Updated:   []models.EarningsUpdate{},
		Unchanged: []string{},
	}
	updates := make(map[string]string)
	var errs []string

	cutoff := models.DateOnly(today)

	for _, item := range cfg.ResolveWatchlist() {
		current := item.EarningsDate
		if current != nil && !current.Before(cutoff) {
			refresh.Unchanged = append(refresh.Unchanged, item.Ticker)
			continue
		}

		next := NextEarningsDate(quotes[item.Ticker], today)
		if next == nil {
			errs = append(errs, fmt.Sprintf("%s: Could not determine next earnings date", item.Ticker))
			refresh.Unchanged = append(refresh.Unchanged, item.Ticker)
			continue
		}

		oldVal := "null"
		if current != nil {
			oldVal = current.Format(models.DateLayout)
		}
		newVal := next.Format(models.DateLayout)
		updates[item.Ticker] = newVal
		refresh.Updated = append(refresh.Updated, models.EarningsUpdate{
			Ticker:  item.Ticker,
			OldDate: oldVal,
			NewDate: newVal,
		})
	}

	return refresh, updates, errs
}
