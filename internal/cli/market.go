package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"stock-checkin/internal/config"
	"stock-checkin/internal/marketdata"
	"stock-checkin/internal/models"
	"stock-checkin/pkg/utils"
)

func newMarketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Collect short interest, ecosystem signals, and earnings dates",
		Long: `Fetch one quote per unique ticker (watchlist plus configured ecosystem
names) and extract short interest, ecosystem earnings-calendar signals, and
refreshed earnings dates in a single pass.`,
		Example: `  checkin market
  checkin market --tickers NVDA,MRVL
  checkin market --refresh-earnings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), app.FetchBudget()+30*time.Second)
			defer cancel()

			watchlist, err := resolveTickers(cmd, app)
			if err != nil {
				return err
			}
			today := models.DateOnly(time.Now())

			all := append([]string{}, watchlist...)
			all = append(all, marketdata.EcosystemTickers(watchlist, app.Config.Ecosystem)...)

			fetcher := marketdata.NewFetcher(app.Provider, app.RequestDelay(), app.FetchBudget(), app.Logger)
			fetchResult := fetcher.FetchAll(ctx, all)
			errs := fetchResult.Errors

			shortInterest := make(map[string]models.ShortInterest, len(watchlist))
			for _, ticker := range watchlist {
				shortInterest[ticker] = marketdata.ExtractShortInterest(fetchResult.Quotes[ticker])
			}

			ecosystem := marketdata.BuildEcosystemSignals(watchlist, fetchResult.Quotes, app.Config.Ecosystem, today)

			refresh, updates, refreshErrs := marketdata.RefreshEarnings(app.Config, fetchResult.Quotes, today)
			errs = append(errs, refreshErrs...)

			if doRefresh, _ := cmd.Flags().GetBool("refresh-earnings"); doRefresh && len(updates) > 0 {
				if err := config.UpdateEarningsDates(app.Config.Path(), updates); err != nil {
					errs = append(errs, utils.SummarizeError("Failed to write config: "+err.Error()))
				} else {
					app.Logger.Info().Int("updated", len(updates)).Msg("Earnings dates written back to config")
				}
			}

			envelope := models.NewEnvelope("market_data", today, map[string]any{
				"short_interest":    shortInterest,
				"ecosystem_signals": ecosystem,
				"earnings_refresh":  refresh,
			}, errs)

			if output.IsJSON() {
				return output.JSON(envelope)
			}
			return displayMarketData(output, watchlist, shortInterest, ecosystem)
		},
	}

	cmd.Flags().String("tickers", "", "comma-separated tickers (defaults to watchlist)")
	cmd.Flags().Bool("refresh-earnings", false, "write refreshed earnings dates back to the config file")

	return cmd
}

func displayMarketData(output *Output, watchlist []string, shortInterest map[string]models.ShortInterest, ecosystem models.EcosystemSignals) error {
	output.Bold("Short Interest")
	table := NewTable(output, "Ticker", "Shares Short", "Change %", "% Float", "Report Date")
	for _, ticker := range watchlist {
		si := shortInterest[ticker]
		table.AddRow(
			ticker,
			utils.FormatCount(si.SharesShort),
			utils.FormatPercent(si.ChangePct),
			utils.FormatPercent(si.ShortPctOfFloat),
			si.ReportDate,
		)
	}
	table.Render()
	output.Println()

	if len(ecosystem.UpcomingEarnings) > 0 {
		output.Bold("Upcoming Ecosystem Earnings (30 days)")
		for _, entry := range ecosystem.UpcomingEarnings {
			output.Printf("  %-6s %s (in %d day(s))\n", entry.Ticker, entry.NextEarnings, *entry.DaysUntilEarnings)
		}
		output.Println()
	}

	if len(ecosystem.Signals) > 0 {
		output.Bold("Signals")
		for _, signal := range ecosystem.Signals {
			output.Printf("  - %s\n", signal)
		}
	}

	return nil
}
