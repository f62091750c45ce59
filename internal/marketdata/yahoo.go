// Package marketdata fetches per-ticker market snapshots and derived
// fundamentals from the quote provider.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	apperrors "stock-checkin/internal/errors"
	"stock-checkin/pkg/utils"
)

const (
	quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=price,summaryDetail,defaultKeyStatistics,financialData,calendarEvents"
	quoteUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Quote is the normalized provider response for one ticker. Every field is
// optional; downstream extraction treats nil as non-contributing.
type Quote struct {
	ShortName              string
	CurrentPrice           *float64
	RegularMarketPrice     *float64
	PreviousClose          *float64
	MarketCap              *int64
	TrailingPE             *float64
	ForwardPE              *float64
	EnterpriseToEbitda     *float64
	PriceToSales           *float64
	RegularMarketTime      *int64
	SharesShort            *int64
	SharesShortPriorMonth  *int64
	ShortRatio             *float64
	ShortPercentOfFloat    *float64
	DateShortInterest      *int64
	RevenueGrowth          *float64
	EarningsGrowth         *float64
	EarningsTimestampStart *int64
	EarningsTimestampEnd   *int64
}

// Provider supplies quotes for single tickers.
type Provider interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
}

// YahooProvider fetches quotes from the Yahoo Finance quote-summary endpoint.
type YahooProvider struct {
	client *http.Client
	retry  utils.RetryConfig
	logger zerolog.Logger
}

// NewYahooProvider creates a provider over the given HTTP client. A nil
// client falls back to http.DefaultClient.
func NewYahooProvider(client *http.Client, logger zerolog.Logger) *YahooProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &YahooProvider{
		client: client,
		retry:  utils.DefaultRetryConfig(),
		logger: logger,
	}
}

// Quote fetches and normalizes the quote summary for one ticker.
func (p *YahooProvider) Quote(ctx context.Context, ticker string) (*Quote, error) {
	start := time.Now()
	payload, err := utils.RetryWithResult(ctx, p.retry, func() (*quoteSummaryResponse, error) {
		return p.fetchSummary(ctx, ticker)
	})
	if err != nil {
		p.logger.Debug().Str("ticker", ticker).Dur("duration", time.Since(start)).
			Err(err).Msg("Quote fetch failed")
		return nil, err
	}

	if len(payload.QuoteSummary.Result) == 0 {
		return nil, apperrors.NewFetchError("yahoo", ticker, apperrors.ErrNoData)
	}

	quote := payload.QuoteSummary.Result[0].normalize()
	p.logger.Debug().Str("ticker", ticker).Dur("duration", time.Since(start)).
		Msg("Quote fetched")
	return quote, nil
}

func (p *YahooProvider) fetchSummary(ctx context.Context, ticker string) (*quoteSummaryResponse, error) {
	url := fmt.Sprintf(quoteSummaryURL, ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewFetchError("yahoo", ticker, err)
	}
	req.Header.Set("User-Agent", quoteUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError("yahoo", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperrors.NewFetchError("yahoo", ticker, apperrors.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewFetchError("yahoo", ticker,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload quoteSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewScrapeError("yahoo", ticker, "decoding quote summary", err)
	}
	return &payload, nil
}

// rawValue is the provider's {"raw": ..., "fmt": ...} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (r *rawValue) float() *float64 {
	if r == nil {
		return nil
	}
	return r.Raw
}

func (r *rawValue) int() *int64 {
	if r == nil || r.Raw == nil {
		return nil
	}
	v := int64(*r.Raw)
	return &v
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price *struct {
		ShortName          string    `json:"shortName"`
		RegularMarketPrice *rawValue `json:"regularMarketPrice"`
		RegularMarketTime  *int64    `json:"regularMarketTime"`
		MarketCap          *rawValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail *struct {
		PreviousClose *rawValue `json:"previousClose"`
		TrailingPE    *rawValue `json:"trailingPE"`
		ForwardPE     *rawValue `json:"forwardPE"`
		PriceToSales  *rawValue `json:"priceToSalesTrailing12Months"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		EnterpriseToEbitda    *rawValue `json:"enterpriseToEbitda"`
		SharesShort           *rawValue `json:"sharesShort"`
		SharesShortPriorMonth *rawValue `json:"sharesShortPriorMonth"`
		ShortRatio            *rawValue `json:"shortRatio"`
		ShortPercentOfFloat   *rawValue `json:"shortPercentOfFloat"`
		DateShortInterest     *rawValue `json:"dateShortInterest"`
	} `json:"defaultKeyStatistics"`
	FinancialData *struct {
		CurrentPrice   *rawValue `json:"currentPrice"`
		RevenueGrowth  *rawValue `json:"revenueGrowth"`
		EarningsGrowth *rawValue `json:"earningsGrowth"`
	} `json:"financialData"`
	CalendarEvents *struct {
		Earnings *struct {
			EarningsDate []rawValue `json:"earningsDate"`
		} `json:"earnings"`
	} `json:"calendarEvents"`
}

func (r quoteSummaryResult) normalize() *Quote {
	q := &Quote{}
	if r.Price != nil {
		q.ShortName = r.Price.ShortName
		q.RegularMarketPrice = r.Price.RegularMarketPrice.float()
		q.RegularMarketTime = r.Price.RegularMarketTime
		q.MarketCap = r.Price.MarketCap.int()
	}
	if r.SummaryDetail != nil {
		q.PreviousClose = r.SummaryDetail.PreviousClose.float()
		q.TrailingPE = r.SummaryDetail.TrailingPE.float()
		q.ForwardPE = r.SummaryDetail.ForwardPE.float()
		q.PriceToSales = r.SummaryDetail.PriceToSales.float()
	}
	if r.DefaultKeyStatistics != nil {
		q.EnterpriseToEbitda = r.DefaultKeyStatistics.EnterpriseToEbitda.float()
		q.SharesShort = r.DefaultKeyStatistics.SharesShort.int()
		q.SharesShortPriorMonth = r.DefaultKeyStatistics.SharesShortPriorMonth.int()
		q.ShortRatio = r.DefaultKeyStatistics.ShortRatio.float()
		q.ShortPercentOfFloat = r.DefaultKeyStatistics.ShortPercentOfFloat.float()
		q.DateShortInterest = r.DefaultKeyStatistics.DateShortInterest.int()
	}
	if r.FinancialData != nil {
		q.CurrentPrice = r.FinancialData.CurrentPrice.float()
		q.RevenueGrowth = r.FinancialData.RevenueGrowth.float()
		q.EarningsGrowth = r.FinancialData.EarningsGrowth.float()
	}
	if r.CalendarEvents != nil && r.CalendarEvents.Earnings != nil {
		dates := r.CalendarEvents.Earnings.EarningsDate
		if len(dates) > 0 {
			q.EarningsTimestampStart = dates[0].int()
		}
		if len(dates) > 1 {
			q.EarningsTimestampEnd = dates[1].int()
		}
	}
	return q
}
