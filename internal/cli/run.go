package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stock-checkin/internal/engine"
	"stock-checkin/internal/logging"
	"stock-checkin/internal/marketdata"
	"stock-checkin/internal/models"
	"stock-checkin/internal/report"
)

func newRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the daily check-in report",
		Long: `Fetch market snapshots for the configured watchlist, evaluate the
guardrail and cadence rules, and write the Markdown check-in report.`,
		Example: `  checkin run
  checkin run --date 2026-02-26
  checkin run --stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), app.FetchBudget()+30*time.Second)
			defer cancel()

			runDate := models.DateOnly(time.Now())
			if dateArg, _ := cmd.Flags().GetString("date"); dateArg != "" {
				parsed := models.ParseDate(dateArg)
				if parsed == nil {
					return fmt.Errorf("--date must be in YYYY-MM-DD format")
				}
				runDate = *parsed
			}

			watchlist := app.Config.ResolveWatchlist()
			if len(watchlist) == 0 {
				return fmt.Errorf("watchlist is empty, add tickers to %s", app.Config.Path())
			}

			fetcher := marketdata.NewFetcher(app.Provider, app.RequestDelay(), app.FetchBudget(), app.Logger)
			fetchResult := fetcher.FetchAll(ctx, app.Config.Tickers())
			snapshots := marketdata.BuildSnapshots(watchlist, fetchResult)

			result := engine.Evaluate(snapshots, watchlist, app.Config.Guardrails, runDate)
			logging.LogGuardrail(app.Logger, string(result.Status), len(result.Triggers))

			dueTasks := engine.DueTasks(runDate, app.Config.Cadence, result.EarningsDue)

			content := report.Render(report.Input{
				RunDate:     runDate,
				GeneratedAt: time.Now(),
				Status:      result.Status,
				Triggers:    result.Triggers,
				Snapshots:   snapshots,
				DueTasks:    dueTasks,
			})

			stdoutOnly, _ := cmd.Flags().GetBool("stdout")

			if output.IsJSON() {
				payload := map[string]any{
					"run_date":     runDate.Format(models.DateLayout),
					"status":       result.Status,
					"triggers":     result.Triggers,
					"earnings_due": result.EarningsDue,
					"due_tasks":    dueTasks,
					"snapshots":    snapshots,
				}
				if !stdoutOnly {
					path, err := report.Write(content, app.Config.Output.ReportDir, app.Config.Output.FilenameLayout, runDate)
					if err != nil {
						return err
					}
					logging.LogReport(app.Logger, path, string(result.Status))
					payload["report_path"] = path
				}
				return output.JSON(payload)
			}

			if stdoutOnly {
				output.Printf("%s", content)
				return nil
			}

			path, err := report.Write(content, app.Config.Output.ReportDir, app.Config.Output.FilenameLayout, runDate)
			if err != nil {
				return err
			}
			logging.LogReport(app.Logger, path, string(result.Status))

			output.Printf("Wrote daily check-in: %s\n", path)
			output.Printf("Status: %s\n", output.StatusString(result.Status.Display()))
			if len(result.Triggers) > 0 {
				output.Println("Guardrails:")
				for _, trigger := range result.Triggers {
					output.Printf(" - %s\n", trigger)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("date", "", "run date in YYYY-MM-DD (defaults to today)")
	cmd.Flags().Bool("stdout", false, "print the report instead of writing a file")

	return cmd
}
