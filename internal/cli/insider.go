package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stock-checkin/internal/insider"
	"stock-checkin/internal/models"
)

func newInsiderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insider",
		Short: "Fetch insider trading activity",
		Long: `Scrape recent insider transactions for the given tickers and flag
cluster selling (three or more distinct insiders selling within a rolling
7-day window). Defaults to the configured watchlist.`,
		Example: `  checkin insider
  checkin insider --tickers NVDA,MRVL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), app.FetchBudget())
			defer cancel()

			tickers, err := resolveTickers(cmd, app)
			if err != nil {
				return err
			}

			data := make(map[string]models.InsiderActivity, len(tickers))
			var errs []string

			for i, ticker := range tickers {
				if i > 0 {
					time.Sleep(app.RequestDelay())
				}
				transactions, err := app.Scraper.Fetch(ctx, ticker)
				if err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", ticker, err))
				}
				if transactions == nil {
					transactions = []models.InsiderTransaction{}
				}
				data[ticker] = models.InsiderActivity{
					Transactions:     transactions,
					TransactionCount: len(transactions),
					ClusterAlert:     insider.DetectClusterSelling(transactions),
				}
			}

			envelope := models.NewEnvelope("insider_activity", time.Now(), data, errs)
			if output.IsJSON() {
				return output.JSON(envelope)
			}
			return displayInsiderActivity(output, tickers, data)
		},
	}

	cmd.Flags().String("tickers", "", "comma-separated tickers (defaults to watchlist)")

	return cmd
}

func displayInsiderActivity(output *Output, tickers []string, data map[string]models.InsiderActivity) error {
	for _, ticker := range tickers {
		activity := data[ticker]
		output.Bold("%s", ticker)
		if activity.ClusterAlert {
			output.Warning("  CLUSTER SELLING: 3+ distinct insiders sold within 7 days")
		}
		if activity.TransactionCount == 0 {
			output.Dim("  No recent transactions")
			output.Println()
			continue
		}

		table := NewTable(output, "Trade Date", "Insider", "Title", "Type", "Shares", "Value")
		for _, txn := range activity.Transactions {
			table.AddRow(
				txn.TradeDate,
				txn.InsiderName,
				txn.Title,
				txn.TradeType,
				formatShares(txn.Shares),
				formatValue(txn.Value),
			)
		}
		table.Render()
		output.Println()
	}
	return nil
}

func formatShares(shares *int64) string {
	if shares == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *shares)
}

func formatValue(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("$%.0f", *value)
}
