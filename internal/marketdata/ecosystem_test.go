package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-checkin/internal/config"
)

func ecosystemConfig() config.EcosystemConfig {
	return config.EcosystemConfig{
		Hyperscalers: []string{"MSFT", "GOOG"},
		SupplyChain:  []string{"TSM"},
		Peers: map[string][]string{
			"NVDA": {"AMD"},
		},
	}
}

func TestEcosystemTickers(t *testing.T) {
	tickers := EcosystemTickers([]string{"NVDA", "MRVL"}, ecosystemConfig())
	assert.Equal(t, []string{"AMD", "GOOG", "MSFT", "TSM"}, tickers)
}

func TestEcosystemTickersNoPeerMatch(t *testing.T) {
	tickers := EcosystemTickers([]string{"MRVL"}, ecosystemConfig())
	assert.Equal(t, []string{"GOOG", "MSFT", "TSM"}, tickers)
}

func earningsQuote(name string, daysOut int, today time.Time) *Quote {
	epoch := today.AddDate(0, 0, daysOut).Unix()
	return &Quote{ShortName: name, EarningsTimestampStart: &epoch}
}

func TestBuildEcosystemSignalsCalendar(t *testing.T) {
	today := time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)
	cfg := ecosystemConfig()

	quotes := map[string]*Quote{
		"MSFT": earningsQuote("Microsoft", 5, today),
		"GOOG": earningsQuote("Alphabet", 2, today),
		"TSM":  earningsQuote("TSMC", -3, today),
		"AMD":  earningsQuote("AMD", 45, today),
	}

	signals := BuildEcosystemSignals([]string{"NVDA"}, quotes, cfg, today)

	require.Len(t, signals.UpcomingEarnings, 2)
	assert.Equal(t, "GOOG", signals.UpcomingEarnings[0].Ticker)
	assert.Equal(t, "MSFT", signals.UpcomingEarnings[1].Ticker)
	require.NotNil(t, signals.UpcomingEarnings[0].DaysUntilEarnings)
	assert.Equal(t, 2, *signals.UpcomingEarnings[0].DaysUntilEarnings)

	require.Len(t, signals.RecentResults, 1)
	assert.Equal(t, "TSM", signals.RecentResults[0].Ticker)
	assert.Equal(t, -3, *signals.RecentResults[0].DaysUntilEarnings)
}

func TestBuildEcosystemSignalsGrowth(t *testing.T) {
	today := time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)
	cfg := ecosystemConfig()

	quotes := map[string]*Quote{
		"MSFT": {ShortName: "Microsoft", RevenueGrowth: fptr(0.182)},
		"GOOG": {ShortName: "Alphabet", RevenueGrowth: fptr(0.09)},
		"TSM":  {ShortName: "TSMC", RevenueGrowth: fptr(0.251)},
	}

	signals := BuildEcosystemSignals(nil, quotes, cfg, today)

	require.Len(t, signals.Signals, 2)
	assert.Equal(t, "MSFT revenue growing 18.2% YoY - positive AI capex signal", signals.Signals[0])
	assert.Equal(t, "TSM revenue expanding (25.1% YoY) - semiconductor demand proxy", signals.Signals[1])
}

func TestBuildEcosystemSignalsSupplyChainDirections(t *testing.T) {
	today := time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)
	cfg := config.EcosystemConfig{SupplyChain: []string{"TSM"}}

	tests := []struct {
		growth float64
		want   string
	}{
		{0.25, "TSM revenue expanding (25% YoY) - semiconductor demand proxy"},
		{0.05, "TSM revenue moderating (5% YoY) - semiconductor demand proxy"},
		{-0.02, "TSM revenue contracting (-2% YoY) - semiconductor demand proxy"},
	}

	for _, tt := range tests {
		quotes := map[string]*Quote{"TSM": {RevenueGrowth: fptr(tt.growth)}}
		signals := BuildEcosystemSignals(nil, quotes, cfg, today)
		require.Len(t, signals.Signals, 1)
		assert.Equal(t, tt.want, signals.Signals[0])
	}
}

func TestBuildEcosystemSignalsMissingQuotes(t *testing.T) {
	today := time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)
	signals := BuildEcosystemSignals([]string{"NVDA"}, nil, ecosystemConfig(), today)

	assert.Empty(t, signals.UpcomingEarnings)
	assert.Empty(t, signals.RecentResults)
	assert.Empty(t, signals.Signals)
}
