package marketdata

import (
	"fmt"
	"math"
	"sort"
	"time"

	"stock-checkin/internal/config"
	"stock-checkin/internal/models"
)

// Ecosystem calendar cutoffs, in days relative to the run date.
const (
	upcomingEarningsMaxDays = 30
	recentResultsMaxDays    = 14
)

// EcosystemTickers collects every unique ecosystem ticker for a watchlist:
// the hyperscalers, the supply-chain names, and each watchlist ticker's
// configured peers.
func EcosystemTickers(watchlist []string, cfg config.EcosystemConfig) []string {
	set := make(map[string]bool)
	for _, t := range cfg.Hyperscalers {
		set[t] = true
	}
	for _, t := range cfg.SupplyChain {
		set[t] = true
	}
	for _, w := range watchlist {
		for _, t := range cfg.Peers[w] {
			set[t] = true
		}
	}

	tickers := make([]string, 0, len(set))
	for t := range set {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// BuildEcosystemSignals assembles the ecosystem section from fetched quotes:
// the earnings calendar split into upcoming and recent windows, plus growth
// signal strings for the hyperscalers and the supply-chain proxy.
func BuildEcosystemSignals(watchlist []string, quotes map[string]*Quote, cfg config.EcosystemConfig, today time.Time) models.EcosystemSignals {
	signals := models.EcosystemSignals{
		UpcomingEarnings: []models.EcosystemEntry{},
		RecentResults:    []models.EcosystemEntry{},
		Signals:          []string{},
		Hyperscalers:     cfg.Hyperscalers,
		Peers:            cfg.Peers,
		SupplyChain:      cfg.SupplyChain,
	}

	hyperscalers := make(map[string]bool, len(cfg.Hyperscalers))
	for _, t := range cfg.Hyperscalers {
		hyperscalers[t] = true
	}
	supplyChain := make(map[string]bool, len(cfg.SupplyChain))
	for _, t := range cfg.SupplyChain {
		supplyChain[t] = true
	}

	var entries []models.EcosystemEntry
	for _, ticker := range EcosystemTickers(watchlist, cfg) {
		quote := quotes[ticker]
		if quote == nil {
			continue
		}
		entries = append(entries, ecosystemEntry(ticker, quote))
	}

	for i := range entries {
		entry := &entries[i]
		if entry.NextEarnings == "" {
			continue
		}
		ed := models.ParseDate(entry.NextEarnings)
		if ed == nil {
			continue
		}
		days := models.DaysBetween(today, *ed)
		entry.DaysUntilEarnings = &days
		switch {
		case days >= 0 && days <= upcomingEarningsMaxDays:
			signals.UpcomingEarnings = append(signals.UpcomingEarnings, *entry)
		case days >= -recentResultsMaxDays && days < 0:
			signals.RecentResults = append(signals.RecentResults, *entry)
		}
	}

	sort.SliceStable(signals.UpcomingEarnings, func(i, j int) bool {
		return *signals.UpcomingEarnings[i].DaysUntilEarnings < *signals.UpcomingEarnings[j].DaysUntilEarnings
	})
	sort.SliceStable(signals.RecentResults, func(i, j int) bool {
		return *signals.RecentResults[i].DaysUntilEarnings > *signals.RecentResults[j].DaysUntilEarnings
	})

	for _, entry := range entries {
		if hyperscalers[entry.Ticker] {
			if rg := entry.RevenueGrowthYoY; rg != nil && *rg > 15 {
				signals.Signals = append(signals.Signals, fmt.Sprintf(
					"%s revenue growing %v%% YoY - positive AI capex signal", entry.Ticker, *rg))
			}
		}
		if supplyChain[entry.Ticker] {
			if rg := entry.RevenueGrowthYoY; rg != nil {
				direction := "contracting"
				if *rg > 10 {
					direction = "expanding"
				} else if *rg > 0 {
					direction = "moderating"
				}
				signals.Signals = append(signals.Signals, fmt.Sprintf(
					"%s revenue %s (%v%% YoY) - semiconductor demand proxy", entry.Ticker, direction, *rg))
			}
		}
	}

	return signals
}

func ecosystemEntry(ticker string, quote *Quote) models.EcosystemEntry {
	entry := models.EcosystemEntry{
		Ticker: ticker,
		Name:   quote.ShortName,
	}
	if entry.Name == "" {
		entry.Name = ticker
	}
	if quote.EarningsTimestampStart != nil {
		entry.NextEarnings = time.Unix(*quote.EarningsTimestampStart, 0).UTC().Format(models.DateLayout)
	}
	if quote.RevenueGrowth != nil {
		entry.RevenueGrowthYoY = round1(*quote.RevenueGrowth * 100)
	}
	if quote.EarningsGrowth != nil {
		entry.EarningsGrowthYoY = round1(*quote.EarningsGrowth * 100)
	}
	return entry
}

func round1(v float64) *float64 {
	r := math.Round(v*10) / 10
	return &r
}
