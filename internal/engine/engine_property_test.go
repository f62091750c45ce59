package engine

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"stock-checkin/internal/models"
)

// Property: raising the missing-ticker allowance never turns a clear run into
// a flagged one. For any set of snapshots, if the missing-data rule does not
// fire at allowance k, it must not fire at k+1 either; and it fires exactly
// when the number of priceless snapshots exceeds the allowance.
func TestProperty_MissingDataThreshold(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	runDate := time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)

	properties.Property("missing-data rule fires iff missing count exceeds allowance", prop.ForAll(
		func(missing int, present int, allowance int) bool {
			var snapshots []models.Snapshot
			for i := 0; i < missing; i++ {
				snapshots = append(snapshots, models.ErrorSnapshot(
					models.WatchlistItem{Ticker: fmt.Sprintf("MIS%d", i)}, "fetch failed"))
			}
			for i := 0; i < present; i++ {
				price := 100.0
				snapshots = append(snapshots, models.Snapshot{
					Ticker: fmt.Sprintf("OK%d", i),
					Price:  &price,
				})
			}

			cfg := defaultGuardrails()
			cfg.MaxMissingTickers = allowance
			result := Evaluate(snapshots, nil, cfg, runDate)

			fired := false
			for _, trigger := range result.Triggers {
				if strings.HasPrefix(trigger, "Missing critical data") {
					fired = true
				}
			}
			return fired == (missing > allowance)
		},
		gen.IntRange(0, 8),
		gen.IntRange(0, 8),
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}

// Property: the derived daily change is the rounded percent move whenever both
// inputs are present, previous close is nonzero, the values differ, and the
// previous close is within two orders of magnitude of the current price.
// Outside those conditions it is nil.
func TestProperty_ChangePercent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("change percent matches rounded formula or is nil", prop.ForAll(
		func(current float64, previous float64) bool {
			got := ChangePercent(&current, &previous)

			defined := previous != 0 &&
				previous != current &&
				previous >= current*0.01 &&
				previous <= current*100

			if !defined {
				return got == nil
			}
			if got == nil {
				return false
			}
			want := math.Round((current-previous)/previous*100*100) / 100
			return *got == want
		},
		gen.Float64Range(0.01, 10000),
		gen.Float64Range(0.01, 10000),
	))

	properties.Property("nil inputs yield nil change", prop.ForAll(
		func(value float64) bool {
			return ChangePercent(nil, &value) == nil &&
				ChangePercent(&value, nil) == nil &&
				ChangePercent(nil, nil) == nil
		},
		gen.Float64Range(0.01, 10000),
	))

	properties.TestingRun(t)
}

// Property: the business-day ordinal never decreases through a month, rises by
// exactly one on weekdays, and holds flat across weekends.
func TestProperty_BusinessDayOrdinal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("ordinal advances only on weekdays", prop.ForAll(
		func(monthOffset int, day int) bool {
			start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, monthOffset, 0)
			date := start.AddDate(0, 0, day-1)
			if date.Month() != start.Month() {
				return true
			}

			ordinal := BusinessDayOfMonth(date)
			next := date.AddDate(0, 0, 1)
			if next.Month() != date.Month() {
				return true
			}

			step := 0
			if wd := next.Weekday(); wd != time.Saturday && wd != time.Sunday {
				step = 1
			}
			return BusinessDayOfMonth(next) == ordinal+step
		},
		gen.IntRange(0, 11),
		gen.IntRange(1, 28),
	))

	properties.TestingRun(t)
}
