package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Stock Check-In Configuration

watchlist:
  - ticker: NVDA
    company: NVIDIA
    earnings_date: null
  - ticker: MRVL
    company: Marvell Technology
    earnings_date: null

guardrails:
  # Manual review when more than this many tickers are missing data
  max_missing_tickers: 0
  # Manual review when a last-trade timestamp is older than this many days
  stale_data_max_days: 1
  # Manual review on absolute daily moves at or above this percentage
  price_move_pct_threshold: 7.0
  # Manual review within this many days of a known earnings date
  earnings_window_days: 1

cadence:
  # Weekday for the weekly review tasks
  weekly_review_day: Friday
  # Days of month for the bi-monthly tasks
  bi_monthly_days: [1, 15]
  # Ordinal business day of month for the monthly tasks
  monthly_review_business_day: 1

ecosystem:
  hyperscalers: [MSFT, GOOG, META, AMZN]
  supply_chain: [TSM]
  peers:
    NVDA: [AVGO, AMD, INTC]
    MRVL: [AVGO, ANET]

fetch:
  # Delay between consecutive requests to the same data source
  request_delay_ms: 300
  # Wall-clock budget for a full fetch pass
  total_timeout_sec: 90

output:
  report_dir: output
  # Go time layout for report filenames
  filename_layout: 2006-01-02.md
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}
