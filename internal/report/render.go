// Package report renders and writes the Markdown check-in report.
package report

import (
	"fmt"
	"strings"
	"time"

	"stock-checkin/internal/engine"
	"stock-checkin/internal/models"
	"stock-checkin/pkg/utils"
)

// Input carries everything the renderer needs for one check-in report.
type Input struct {
	RunDate     time.Time
	GeneratedAt time.Time
	Status      models.Status
	Triggers    []string
	Snapshots   []models.Snapshot
	DueTasks    map[string][]string
}

// Render produces the Markdown check-in report.
func Render(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Stock Check-In - %s\n\n", in.RunDate.Format(models.DateLayout))
	fmt.Fprintf(&b, "Status: **%s**\n", in.Status.Display())
	fmt.Fprintf(&b, "Generated: %s\n\n", in.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Guardrail Triggers\n")
	if len(in.Triggers) > 0 {
		for _, trigger := range in.Triggers {
			fmt.Fprintf(&b, "- %s\n", trigger)
		}
	} else {
		b.WriteString("- No guardrails triggered.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Market Snapshot\n")
	b.WriteString("| Ticker | Company | Price | 1D % | Market Cap | P/E TTM | P/E Fwd | EV/EBITDA | P/S | Last Trade | Data Status |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|---:|---|---|\n")
	for _, snap := range in.Snapshots {
		dataStatus := "ok"
		if snap.Error != "" {
			dataStatus = "error: " + snap.Error
		}
		lastTrade := "-"
		if snap.LastTradeDate != nil {
			lastTrade = snap.LastTradeDate.Format(models.DateLayout)
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join([]string{
			snap.Ticker,
			snap.Company,
			utils.FormatMoney(snap.Price),
			utils.FormatPercent(snap.PriceChangePct),
			utils.FormatMarketCap(snap.MarketCap),
			utils.FormatRatio(snap.PETrailing),
			utils.FormatRatio(snap.PEForward),
			utils.FormatRatio(snap.EVEBITDA),
			utils.FormatRatio(snap.PSRatio),
			lastTrade,
			dataStatus,
		}, " | "))
	}
	b.WriteString("\n")

	b.WriteString("## Checklist Tasks Due Today\n")
	writeTaskSection(&b, "Daily", in.DueTasks[engine.CategoryDaily])
	writeTaskSectionIfAny(&b, "Weekly", in.DueTasks[engine.CategoryWeekly])
	writeTaskSectionIfAny(&b, "Bi-Monthly", in.DueTasks[engine.CategoryBiMonthly])
	writeTaskSectionIfAny(&b, "Monthly", in.DueTasks[engine.CategoryMonthly])
	writeTaskSectionIfAny(&b, "Earnings Window", in.DueTasks[engine.CategoryEarningsWindow])

	b.WriteString("## Next Action\n")
	if in.Status == models.StatusManualReview {
		b.WriteString("- Run an assistant-led qualitative review before making position changes.\n")
	} else {
		b.WriteString("- Proceed with normal cadence and schedule the next daily check-in.\n")
	}

	return b.String()
}

func writeTaskSection(b *strings.Builder, title string, tasks []string) {
	fmt.Fprintf(b, "### %s\n", title)
	for _, task := range tasks {
		fmt.Fprintf(b, "- [ ] %s\n", task)
	}
	b.WriteString("\n")
}

func writeTaskSectionIfAny(b *strings.Builder, title string, tasks []string) {
	if len(tasks) == 0 {
		return
	}
	writeTaskSection(b, title, tasks)
}
