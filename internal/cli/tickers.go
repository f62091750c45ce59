package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// resolveTickers returns the tickers for a data subcommand: the --tickers
// flag when given, the configured watchlist otherwise.
func resolveTickers(cmd *cobra.Command, app *App) ([]string, error) {
	raw, _ := cmd.Flags().GetString("tickers")
	if raw == "" {
		tickers := app.Config.Tickers()
		if len(tickers) == 0 {
			return nil, fmt.Errorf("no tickers given and watchlist is empty")
		}
		return tickers, nil
	}

	var tickers []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		ticker := strings.ToUpper(strings.TrimSpace(part))
		if ticker == "" || seen[ticker] {
			continue
		}
		seen[ticker] = true
		tickers = append(tickers, ticker)
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no valid tickers in %q", raw)
	}
	return tickers, nil
}
