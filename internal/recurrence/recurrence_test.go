package recurrence

import (
	"testing"
	"time"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestNextDue(t *testing.T) {
	tests := []struct {
		name string
		unit models.RecurrenceUnit
		due  time.Time
		want time.Time
	}{
		{"daily", models.RecurDaily, date(2024, time.June, 3), date(2024, time.June, 4)},
		{"daily month boundary", models.RecurDaily, date(2024, time.June, 30), date(2024, time.July, 1)},
		{"weekly", models.RecurWeekly, date(2024, time.June, 3), date(2024, time.June, 10)},
		{"biweekly", models.RecurBiweekly, date(2024, time.June, 3), date(2024, time.June, 17)},
		{"monthly", models.RecurMonthly, date(2024, time.June, 15), date(2024, time.July, 15)},
		{"monthly clamps to leap february", models.RecurMonthly, date(2024, time.January, 31), date(2024, time.February, 29)},
		{"monthly clamps to short february", models.RecurMonthly, date(2023, time.January, 31), date(2023, time.February, 28)},
		{"monthly clamps 31st to 30 day month", models.RecurMonthly, date(2024, time.March, 31), date(2024, time.April, 30)},
		{"monthly across year boundary", models.RecurMonthly, date(2024, time.December, 15), date(2025, time.January, 15)},
		{"yearly", models.RecurYearly, date(2024, time.June, 3), date(2025, time.June, 3)},
		{"yearly clamps leap day", models.RecurYearly, date(2024, time.February, 29), date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDue(tt.unit, tt.due)
			if !got.Equal(tt.want) {
				t.Errorf("NextDue(%s, %s) = %s, want %s",
					tt.unit, tt.due.Format(time.RFC3339), got.Format(time.RFC3339), tt.want.Format(time.RFC3339))
			}
		})
	}
}

func TestNextDuePreservesTimeOfDay(t *testing.T) {
	due := time.Date(2024, time.January, 31, 18, 45, 30, 0, time.UTC)
	got := NextDue(models.RecurMonthly, due)

	h, m, s := got.Clock()
	if h != 18 || m != 45 || s != 30 {
		t.Errorf("time of day changed: got %02d:%02d:%02d, want 18:45:30", h, m, s)
	}
}

func TestNextDueUnknownUnitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unknown unit")
		}
	}()
	NextDue(models.RecurrenceUnit("fortnightly"), date(2024, time.June, 3))
}

func TestNextDueIsStrictlyLater(t *testing.T) {
	due := date(2024, time.January, 31)
	for _, unit := range []models.RecurrenceUnit{
		models.RecurDaily, models.RecurWeekly, models.RecurBiweekly,
		models.RecurMonthly, models.RecurYearly,
	} {
		if got := NextDue(unit, due); !got.After(due) {
			t.Errorf("NextDue(%s) = %s, not after %s", unit, got, due)
		}
	}
}
