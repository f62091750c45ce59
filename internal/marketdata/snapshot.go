package marketdata

import (
	"time"

	"stock-checkin/internal/engine"
	"stock-checkin/internal/models"
)

// BuildSnapshot normalizes a fetched quote into a Snapshot for one watchlist
// item. A non-empty fetchErr produces an error-only snapshot; a quote with no
// usable price degrades the same way via the missing-data guardrail.
func BuildSnapshot(item models.WatchlistItem, quote *Quote, fetchErr string) models.Snapshot {
	if fetchErr != "" {
		return models.ErrorSnapshot(item, fetchErr)
	}
	if quote == nil {
		return models.ErrorSnapshot(item, "No data returned from quote provider")
	}

	price := quote.CurrentPrice
	if price == nil {
		price = quote.RegularMarketPrice
	}

	snap := models.Snapshot{
		Ticker:         item.Ticker,
		Company:        item.Company,
		Price:          price,
		PriceChangePct: engine.ChangePercent(price, quote.PreviousClose),
		MarketCap:      quote.MarketCap,
		PETrailing:     quote.TrailingPE,
		PEForward:      quote.ForwardPE,
		EVEBITDA:       quote.EnterpriseToEbitda,
		PSRatio:        quote.PriceToSales,
		LastTradeDate:  epochDate(quote.RegularMarketTime),
	}

	// A ticker with no live price still shows the previous close.
	if snap.Price == nil {
		snap.Price = quote.PreviousClose
	}

	return snap
}

// BuildSnapshots produces one snapshot per watchlist item, in watchlist
// order, from a fetch pass result.
func BuildSnapshots(watchlist []models.WatchlistItem, result FetchResult) []models.Snapshot {
	snapshots := make([]models.Snapshot, 0, len(watchlist))
	for _, item := range watchlist {
		quote := result.Quotes[item.Ticker]
		fetchErr := result.Failures[item.Ticker]
		snapshots = append(snapshots, BuildSnapshot(item, quote, fetchErr))
	}
	return snapshots
}

// epochDate converts a Unix timestamp to a calendar date in UTC.
func epochDate(epoch *int64) *time.Time {
	if epoch == nil {
		return nil
	}
	d := models.DateOnly(time.Unix(*epoch, 0).UTC())
	return &d
}
