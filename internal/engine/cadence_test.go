package engine

import (
	"testing"
	"time"

	"stock-checkin/internal/config"
)

func defaultCadence() config.CadenceConfig {
	return config.CadenceConfig{
		WeeklyReviewDay:          "Friday",
		BiMonthlyDays:            []int{1, 15},
		MonthlyReviewBusinessDay: 1,
	}
}

func TestDueTasksDailyAlwaysPresent(t *testing.T) {
	// A Saturday with no other cadence match still gets the daily list.
	due := DueTasks(date(2026, time.February, 21), defaultCadence(), nil)

	if len(due[CategoryDaily]) != 4 {
		t.Fatalf("daily tasks = %v, want 4 entries", due[CategoryDaily])
	}
	for _, category := range []string{CategoryWeekly, CategoryBiMonthly, CategoryMonthly, CategoryEarningsWindow} {
		if len(due[category]) != 0 {
			t.Fatalf("%s tasks = %v, want empty", category, due[category])
		}
	}
}

func TestDueTasksWeekly(t *testing.T) {
	cfg := defaultCadence()

	// 2026-02-27 is a Friday.
	due := DueTasks(date(2026, time.February, 27), cfg, nil)
	if len(due[CategoryWeekly]) != 3 {
		t.Fatalf("weekly tasks on Friday = %v, want 3 entries", due[CategoryWeekly])
	}

	// Thursday does not match.
	due = DueTasks(date(2026, time.February, 26), cfg, nil)
	if len(due[CategoryWeekly]) != 0 {
		t.Fatalf("weekly tasks on Thursday = %v, want empty", due[CategoryWeekly])
	}

	// Case-insensitive weekday names.
	cfg.WeeklyReviewDay = "thursday"
	due = DueTasks(date(2026, time.February, 26), cfg, nil)
	if len(due[CategoryWeekly]) != 3 {
		t.Fatalf("weekly tasks with lowercase config = %v, want 3 entries", due[CategoryWeekly])
	}

	// Unrecognized names fall back to Friday.
	cfg.WeeklyReviewDay = "someday"
	due = DueTasks(date(2026, time.February, 27), cfg, nil)
	if len(due[CategoryWeekly]) != 3 {
		t.Fatalf("weekly tasks with bad config = %v, want Friday fallback", due[CategoryWeekly])
	}
}

func TestDueTasksBiMonthly(t *testing.T) {
	cfg := defaultCadence()

	for _, day := range []int{1, 15} {
		due := DueTasks(date(2026, time.March, day), cfg, nil)
		if len(due[CategoryBiMonthly]) != 2 {
			t.Fatalf("bi-monthly tasks on day %d = %v, want 2 entries", day, due[CategoryBiMonthly])
		}
	}

	due := DueTasks(date(2026, time.March, 14), cfg, nil)
	if len(due[CategoryBiMonthly]) != 0 {
		t.Fatalf("bi-monthly tasks on day 14 = %v, want empty", due[CategoryBiMonthly])
	}
}

func TestDueTasksMonthly(t *testing.T) {
	cfg := defaultCadence()

	// June 2026 starts on a Monday, so June 1 is business day 1.
	due := DueTasks(date(2026, time.June, 1), cfg, nil)
	if len(due[CategoryMonthly]) != 2 {
		t.Fatalf("monthly tasks on first business day = %v, want 2 entries", due[CategoryMonthly])
	}

	due = DueTasks(date(2026, time.June, 2), cfg, nil)
	if len(due[CategoryMonthly]) != 0 {
		t.Fatalf("monthly tasks on second business day = %v, want empty", due[CategoryMonthly])
	}
}

func TestDueTasksMonthlyWeekendStart(t *testing.T) {
	cfg := defaultCadence()

	// August 2026 starts on a Saturday; only Monday the 3rd is business day 1.
	for _, day := range []int{1, 2} {
		due := DueTasks(date(2026, time.August, day), cfg, nil)
		if len(due[CategoryMonthly]) != 0 {
			t.Fatalf("monthly tasks on Aug %d = %v, want empty", day, due[CategoryMonthly])
		}
	}

	due := DueTasks(date(2026, time.August, 3), cfg, nil)
	if len(due[CategoryMonthly]) != 2 {
		t.Fatalf("monthly tasks on Aug 3 = %v, want 2 entries", due[CategoryMonthly])
	}
}

func TestDueTasksEarningsWindow(t *testing.T) {
	runDate := date(2026, time.February, 26)

	due := DueTasks(runDate, defaultCadence(), []string{"NVDA (NVIDIA) earnings 2026-02-26 [today]"})
	if len(due[CategoryEarningsWindow]) != 1 {
		t.Fatalf("earnings-window tasks = %v, want 1 entry", due[CategoryEarningsWindow])
	}

	due = DueTasks(runDate, defaultCadence(), nil)
	if len(due[CategoryEarningsWindow]) != 0 {
		t.Fatalf("earnings-window tasks without due earnings = %v, want empty", due[CategoryEarningsWindow])
	}
}

func TestBusinessDayOfMonth(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		// August 2026 starts on a Saturday; Monday the 3rd is business day 1.
		{"month-opening Saturday", date(2026, time.August, 1), 0},
		{"month-opening Sunday", date(2026, time.August, 2), 0},
		{"first Monday after weekend start", date(2026, time.August, 3), 1},
		{"first Friday", date(2026, time.August, 7), 5},
		// The weekend after a full week carries Friday's count.
		{"Saturday carries Friday count", date(2026, time.August, 8), 5},
		{"second Monday", date(2026, time.August, 10), 6},
		// June 2026 starts on a Monday.
		{"month-opening Monday", date(2026, time.June, 1), 1},
		{"mid-month", date(2026, time.June, 15), 11},
		{"month end", date(2026, time.June, 30), 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BusinessDayOfMonth(tt.date); got != tt.want {
				t.Fatalf("BusinessDayOfMonth(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
