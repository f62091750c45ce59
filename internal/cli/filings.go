package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stock-checkin/internal/models"
)

func newFilingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filings",
		Short: "Query SEC EDGAR for recent filings",
		Long: `Search the SEC EDGAR full-text index for filings mentioning the given
tickers over the past week. Defaults to the configured watchlist.`,
		Example: `  checkin filings
  checkin filings --tickers NVDA,MRVL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), app.FetchBudget())
			defer cancel()

			tickers, err := resolveTickers(cmd, app)
			if err != nil {
				return err
			}

			today := time.Now()
			results := make(map[string][]models.Filing, len(tickers))
			var errs []string

			for i, ticker := range tickers {
				if i > 0 {
					time.Sleep(app.RequestDelay())
				}
				if ctx.Err() != nil {
					errs = append(errs, fmt.Sprintf("%s: total timeout exceeded", ticker))
					results[ticker] = []models.Filing{}
					continue
				}
				filings, err := app.Edgar.Search(ctx, ticker, today)
				if err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", ticker, err))
				}
				if filings == nil {
					filings = []models.Filing{}
				}
				results[ticker] = filings
			}

			envelope := models.NewEnvelope("sec_filings", today, results, errs)
			if output.IsJSON() {
				return output.JSON(envelope)
			}
			return displayFilings(output, tickers, results)
		},
	}

	cmd.Flags().String("tickers", "", "comma-separated tickers (defaults to watchlist)")

	return cmd
}

func displayFilings(output *Output, tickers []string, results map[string][]models.Filing) error {
	for _, ticker := range tickers {
		filings := results[ticker]
		output.Bold("%s", ticker)
		if len(filings) == 0 {
			output.Dim("  No recent filings")
			output.Println()
			continue
		}

		table := NewTable(output, "Form", "Filed", "Title")
		for _, filing := range filings {
			table.AddRow(filing.FilingType, filing.FiledDate, filing.Title)
		}
		table.Render()
		output.Println()
	}
	return nil
}
