package cli

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stock-checkin/internal/config"
	"stock-checkin/internal/insider"
	"stock-checkin/internal/logging"
	"stock-checkin/internal/marketdata"
	"stock-checkin/internal/secfilings"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Provider marketdata.Provider
	Scraper  *insider.Scraper
	Edgar    *secfilings.Client
}

// RequestDelay returns the configured inter-request delay.
func (a *App) RequestDelay() time.Duration {
	return time.Duration(a.Config.Fetch.RequestDelayMS) * time.Millisecond
}

// FetchBudget returns the configured wall-clock budget for a fetch pass.
func (a *App) FetchBudget() time.Duration {
	return time.Duration(a.Config.Fetch.TotalTimeoutSec) * time.Second
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	httpClient := &http.Client{Timeout: 15 * time.Second}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Provider: marketdata.NewYahooProvider(httpClient, logger),
		Scraper:  insider.NewScraper(httpClient, logger),
		Edgar:    secfilings.NewClient(httpClient, logger),
	}

	rootCmd := &cobra.Command{
		Use:   "checkin",
		Short: "Stock check-in - guardrailed watchlist review CLI",
		Long: `Stock check-in generates a periodic review of a small equity watchlist.

It gathers market, insider, and filing signals, evaluates deterministic
guardrail and cadence rules, and renders a Markdown report flagging whether
a manual review is required.

Use 'checkin help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/stock-checkin)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newInsiderCmd(app))
	rootCmd.AddCommand(newFilingsCmd(app))
	rootCmd.AddCommand(newMarketCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Stock Check-In v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Watchlist")
	for _, item := range cfg.ResolveWatchlist() {
		earnings := "unknown"
		if item.EarningsDate != nil {
			earnings = item.EarningsDate.Format("2006-01-02")
		}
		output.Printf("  %-6s %-28s earnings: %s\n", item.Ticker, item.Company, earnings)
	}
	output.Println()

	output.Bold("Guardrails")
	output.Printf("  Max Missing Tickers: %d\n", cfg.Guardrails.MaxMissingTickers)
	output.Printf("  Stale Data Max Days: %d\n", cfg.Guardrails.StaleDataMaxDays)
	output.Printf("  Price Move %%:        %.1f\n", cfg.Guardrails.PriceMovePctThreshold)
	output.Printf("  Earnings Window:     %d day(s)\n", cfg.Guardrails.EarningsWindowDays)
	output.Println()

	output.Bold("Cadence")
	output.Printf("  Weekly Review Day:    %s\n", cfg.Cadence.WeeklyReviewDay)
	output.Printf("  Bi-Monthly Days:      %v\n", cfg.Cadence.BiMonthlyDays)
	output.Printf("  Monthly Business Day: %d\n", cfg.Cadence.MonthlyReviewBusinessDay)
	output.Println()

	output.Bold("Output")
	output.Printf("  Report Dir:      %s\n", cfg.Output.ReportDir)
	output.Printf("  Filename Layout: %s\n", cfg.Output.FilenameLayout)

	return nil
}
