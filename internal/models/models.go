// Package models provides domain models for the watchlist check-in application.
package models

import (
	"time"
)

// Status represents the guardrail verdict for a check-in run.
type Status string

const (
	StatusAutoClear    Status = "AUTO_CLEAR"
	StatusManualReview Status = "MANUAL_REVIEW_REQUIRED"
)

// Display returns the human-readable form used in reports.
func (s Status) Display() string {
	switch s {
	case StatusAutoClear:
		return "AUTO CLEAR"
	case StatusManualReview:
		return "MANUAL REVIEW REQUIRED"
	default:
		return string(s)
	}
}

// WatchlistItem is a single configured watchlist entry.
// Items are constructed once per run from config and never mutated.
type WatchlistItem struct {
	Ticker       string     `json:"ticker"`
	Company      string     `json:"company"`
	EarningsDate *time.Time `json:"earnings_date,omitempty"`
}

// Snapshot is a point-in-time normalized observation of a ticker's market
// data. If Error is non-empty, all numeric fields are nil.
type Snapshot struct {
	Ticker         string     `json:"ticker"`
	Company        string     `json:"company"`
	Price          *float64   `json:"price"`
	PriceChangePct *float64   `json:"price_change_pct"`
	MarketCap      *int64     `json:"market_cap"`
	PETrailing     *float64   `json:"pe_trailing"`
	PEForward      *float64   `json:"pe_forward"`
	EVEBITDA       *float64   `json:"ev_ebitda"`
	PSRatio        *float64   `json:"ps_ratio"`
	LastTradeDate  *time.Time `json:"last_trade_date,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// ErrorSnapshot returns a Snapshot carrying only a diagnostic string.
func ErrorSnapshot(item WatchlistItem, errMsg string) Snapshot {
	return Snapshot{
		Ticker:  item.Ticker,
		Company: item.Company,
		Error:   errMsg,
	}
}

// InsiderTransaction is one row from the insider-trading screener.
// Dates are kept as raw strings; the detector parses them and discards
// entries it cannot read.
type InsiderTransaction struct {
	FilingDate  string   `json:"filing_date"`
	TradeDate   string   `json:"trade_date"`
	InsiderName string   `json:"insider_name"`
	Title       string   `json:"title"`
	TradeType   string   `json:"trade_type"`
	Price       *float64 `json:"price"`
	Shares      *int64   `json:"shares"`
	Value       *float64 `json:"value"`
	FilingURL   string   `json:"filing_url"`
}

// InsiderActivity is the per-ticker insider screener result.
type InsiderActivity struct {
	Transactions     []InsiderTransaction `json:"transactions"`
	TransactionCount int                  `json:"transaction_count"`
	ClusterAlert     bool                 `json:"cluster_alert"`
}

// Filing is one deduplicated hit from the SEC full-text search.
type Filing struct {
	FilingType string   `json:"filing_type"`
	FiledDate  string   `json:"filed_date"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Items      []string `json:"items"`
}

// ShortInterest carries short-interest fields for one ticker.
type ShortInterest struct {
	SharesShort           *int64   `json:"shares_short"`
	SharesShortPriorMonth *int64   `json:"shares_short_prior_month"`
	ShortRatio            *float64 `json:"short_ratio"`
	ShortPctOfFloat       *float64 `json:"short_pct_of_float"`
	ChangePct             *float64 `json:"change_pct"`
	ReportDate            string   `json:"report_date,omitempty"`
	Source                string   `json:"source"`
	Available             bool     `json:"available"`
}

// EcosystemEntry is one tracked ecosystem ticker (hyperscaler, peer, or
// supply-chain name) with its earnings calendar position.
type EcosystemEntry struct {
	Ticker            string   `json:"ticker"`
	Name              string   `json:"name"`
	NextEarnings      string   `json:"next_earnings,omitempty"`
	RevenueGrowthYoY  *float64 `json:"revenue_growth_yoy"`
	EarningsGrowthYoY *float64 `json:"earnings_growth_yoy"`
	DaysUntilEarnings *int     `json:"days_until_earnings,omitempty"`
}

// EcosystemSignals is the ecosystem section of the market data envelope.
type EcosystemSignals struct {
	UpcomingEarnings []EcosystemEntry    `json:"upcoming_earnings"`
	RecentResults    []EcosystemEntry    `json:"recent_results"`
	Signals          []string            `json:"signals"`
	Hyperscalers     []string            `json:"hyperscalers_tracked"`
	Peers            map[string][]string `json:"peers_tracked"`
	SupplyChain      []string            `json:"supply_chain_tracked"`
}

// EarningsUpdate records one watchlist entry whose earnings date was refreshed.
type EarningsUpdate struct {
	Ticker  string `json:"ticker"`
	OldDate string `json:"old_date"`
	NewDate string `json:"new_date"`
}

// EarningsRefresh summarizes an earnings-date refresh pass over the config.
type EarningsRefresh struct {
	Updated   []EarningsUpdate `json:"updated"`
	Unchanged []string         `json:"unchanged"`
}

// Envelope is the JSON output contract shared by the data subcommands.
type Envelope struct {
	Source string   `json:"source"`
	Date   string   `json:"date"`
	Data   any      `json:"data"`
	Errors []string `json:"errors"`
}

// NewEnvelope creates an envelope stamped with the given run date.
func NewEnvelope(source string, date time.Time, data any, errs []string) Envelope {
	if errs == nil {
		errs = []string{}
	}
	return Envelope{
		Source: source,
		Date:   date.Format("2006-01-02"),
		Data:   data,
		Errors: errs,
	}
}
