// Package config provides configuration management for the check-in application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"stock-checkin/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Watchlist  []WatchlistEntry `mapstructure:"watchlist"`
	Guardrails GuardrailConfig  `mapstructure:"guardrails"`
	Cadence    CadenceConfig    `mapstructure:"cadence"`
	Ecosystem  EcosystemConfig  `mapstructure:"ecosystem"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Output     OutputConfig     `mapstructure:"output"`

	path string // resolved config file path, for write-back
}

// WatchlistEntry is the raw config form of a watchlist item.
type WatchlistEntry struct {
	Ticker       string `mapstructure:"ticker" yaml:"ticker"`
	Company      string `mapstructure:"company" yaml:"company"`
	EarningsDate string `mapstructure:"earnings_date" yaml:"earnings_date,omitempty"`
}

// GuardrailConfig holds the thresholds for the guardrail rules.
type GuardrailConfig struct {
	MaxMissingTickers     int     `mapstructure:"max_missing_tickers"`
	StaleDataMaxDays      int     `mapstructure:"stale_data_max_days"`
	PriceMovePctThreshold float64 `mapstructure:"price_move_pct_threshold"`
	EarningsWindowDays    int     `mapstructure:"earnings_window_days"`
}

// CadenceConfig holds the calendar recurrence rules for checklist tasks.
type CadenceConfig struct {
	WeeklyReviewDay          string `mapstructure:"weekly_review_day"`
	BiMonthlyDays            []int  `mapstructure:"bi_monthly_days"`
	MonthlyReviewBusinessDay int    `mapstructure:"monthly_review_business_day"`
}

// EcosystemConfig names the tickers tracked alongside the watchlist.
type EcosystemConfig struct {
	Hyperscalers []string            `mapstructure:"hyperscalers"`
	Peers        map[string][]string `mapstructure:"peers"`
	SupplyChain  []string            `mapstructure:"supply_chain"`
}

// FetchConfig holds rate-limit settings for the external data sources.
type FetchConfig struct {
	RequestDelayMS  int `mapstructure:"request_delay_ms"`
	TotalTimeoutSec int `mapstructure:"total_timeout_sec"`
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	ReportDir      string `mapstructure:"report_dir"`
	FilenameLayout string `mapstructure:"filename_layout"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/stock-checkin"
	}
	return filepath.Join(home, ".config", "stock-checkin")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, createTemplateConfig(configDir)
		}
		return nil, fmt.Errorf("loading config.yaml: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.yaml: %w", err)
	}
	cfg.path = v.ConfigFileUsed()

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("guardrails.max_missing_tickers", 0)
	v.SetDefault("guardrails.stale_data_max_days", 1)
	v.SetDefault("guardrails.price_move_pct_threshold", 7.0)
	v.SetDefault("guardrails.earnings_window_days", 1)

	v.SetDefault("cadence.weekly_review_day", "Friday")
	v.SetDefault("cadence.bi_monthly_days", []int{1, 15})
	v.SetDefault("cadence.monthly_review_business_day", 1)

	v.SetDefault("ecosystem.hyperscalers", []string{"MSFT", "GOOG", "META", "AMZN"})
	v.SetDefault("ecosystem.supply_chain", []string{"TSM"})

	v.SetDefault("fetch.request_delay_ms", 300)
	v.SetDefault("fetch.total_timeout_sec", 90)

	v.SetDefault("output.report_dir", "output")
	v.SetDefault("output.filename_layout", "2006-01-02.md")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CHECKIN_REPORT_DIR"); v != "" {
		cfg.Output.ReportDir = v
	}
}

// Path returns the resolved path of the loaded config file, empty if the
// config was built in memory.
func (c *Config) Path() string {
	return c.path
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Guardrails.MaxMissingTickers < 0 {
		return fmt.Errorf("guardrails.max_missing_tickers must be non-negative")
	}
	if c.Guardrails.StaleDataMaxDays < 0 {
		return fmt.Errorf("guardrails.stale_data_max_days must be non-negative")
	}
	if c.Guardrails.PriceMovePctThreshold <= 0 {
		return fmt.Errorf("guardrails.price_move_pct_threshold must be positive")
	}
	if c.Guardrails.EarningsWindowDays < 0 {
		return fmt.Errorf("guardrails.earnings_window_days must be non-negative")
	}
	if c.Cadence.MonthlyReviewBusinessDay < 1 || c.Cadence.MonthlyReviewBusinessDay > 23 {
		return fmt.Errorf("cadence.monthly_review_business_day must be between 1 and 23")
	}
	for _, d := range c.Cadence.BiMonthlyDays {
		if d < 1 || d > 31 {
			return fmt.Errorf("cadence.bi_monthly_days contains invalid day %d", d)
		}
	}
	if c.Fetch.RequestDelayMS < 0 {
		return fmt.Errorf("fetch.request_delay_ms must be non-negative")
	}
	if c.Fetch.TotalTimeoutSec <= 0 {
		return fmt.Errorf("fetch.total_timeout_sec must be positive")
	}

	seen := make(map[string]bool)
	for _, entry := range c.Watchlist {
		ticker := strings.ToUpper(strings.TrimSpace(entry.Ticker))
		if ticker == "" {
			continue
		}
		if seen[ticker] {
			return fmt.Errorf("duplicate watchlist ticker: %s", ticker)
		}
		seen[ticker] = true
	}

	return nil
}

// ResolveWatchlist converts the raw watchlist entries into normalized,
// immutable watchlist items. Entries with an empty ticker are skipped and
// an unparseable earnings date degrades to absent.
func (c *Config) ResolveWatchlist() []models.WatchlistItem {
	items := make([]models.WatchlistItem, 0, len(c.Watchlist))
	for _, entry := range c.Watchlist {
		ticker := strings.ToUpper(strings.TrimSpace(entry.Ticker))
		if ticker == "" {
			continue
		}
		company := strings.TrimSpace(entry.Company)
		if company == "" {
			company = ticker
		}
		items = append(items, models.WatchlistItem{
			Ticker:       ticker,
			Company:      company,
			EarningsDate: models.ParseDate(entry.EarningsDate),
		})
	}
	return items
}

// Tickers returns the normalized watchlist tickers in config order.
func (c *Config) Tickers() []string {
	items := c.ResolveWatchlist()
	tickers := make([]string, 0, len(items))
	for _, item := range items {
		tickers = append(tickers, item.Ticker)
	}
	return tickers
}
