package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"stock-checkin/pkg/utils"
)

// Fetcher runs sequential quote fetches under a shared wall-clock deadline.
// Third-party sources are rate limited, so requests are spaced by a fixed
// delay; tickers still unfetched at the deadline are recorded as errors
// rather than blocking the run.
type Fetcher struct {
	provider Provider
	delay    time.Duration
	budget   time.Duration
	logger   zerolog.Logger
}

// NewFetcher creates a Fetcher over the given provider.
func NewFetcher(provider Provider, delay, budget time.Duration, logger zerolog.Logger) *Fetcher {
	return &Fetcher{provider: provider, delay: delay, budget: budget, logger: logger}
}

// FetchResult holds the outcome of a fetch pass. Quotes carries one entry
// per ticker that was attempted and succeeded; Failures maps each attempted
// or skipped ticker without a quote to its failure summary; Errors lists the
// same summaries in fetch order for the JSON envelope.
type FetchResult struct {
	Quotes   map[string]*Quote
	Failures map[string]string
	Errors   []string
}

// FetchAll fetches one quote per unique ticker in sorted order. When the
// deadline passes mid-pass, every remaining ticker is marked failed.
func (f *Fetcher) FetchAll(ctx context.Context, tickers []string) FetchResult {
	unique := make(map[string]bool, len(tickers))
	var ordered []string
	for _, t := range tickers {
		if t == "" || unique[t] {
			continue
		}
		unique[t] = true
		ordered = append(ordered, t)
	}
	sort.Strings(ordered)

	deadline := time.Now().Add(f.budget)
	result := FetchResult{
		Quotes:   make(map[string]*Quote, len(ordered)),
		Failures: make(map[string]string),
	}

	for i, ticker := range ordered {
		if time.Now().After(deadline) {
			f.logger.Warn().Str("ticker", ticker).Msg("Fetch deadline exceeded, skipping remaining tickers")
			for _, skipped := range ordered[i:] {
				result.Failures[skipped] = "global deadline exceeded, skipping remaining"
			}
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: global deadline exceeded, skipping remaining", ticker))
			break
		}
		if i > 0 && f.delay > 0 {
			time.Sleep(f.delay)
		}

		quote, err := f.provider.Quote(ctx, ticker)
		if err != nil {
			result.Failures[ticker] = utils.SummarizeError(err.Error())
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ticker, err))
			continue
		}
		result.Quotes[ticker] = quote
	}

	return result
}
