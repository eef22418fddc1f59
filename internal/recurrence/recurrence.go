// Package recurrence computes successor occurrences of recurring items and
// drives the complete/undo transitions that spawn and retire them.
package recurrence

import (
	"time"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

// NextDue returns the due date of the occurrence following due.
//
// Daily, weekly and biweekly steps are calendar-day additions. Monthly and
// yearly steps clamp to the end of the target month instead of rolling over:
// Jan 31 + monthly lands on Feb 29 in a leap year, Feb 29 + yearly lands on
// Feb 28. The result is always strictly later than due.
//
// The unit enum is validated at every entry point (request validation and a
// DB CHECK constraint); an unknown unit here is a programming error and
// panics rather than returning due unchanged.
func NextDue(unit models.RecurrenceUnit, due time.Time) time.Time {
	switch unit {
	case models.RecurDaily:
		return due.AddDate(0, 0, 1)
	case models.RecurWeekly:
		return due.AddDate(0, 0, 7)
	case models.RecurBiweekly:
		return due.AddDate(0, 0, 14)
	case models.RecurMonthly:
		return addMonthsClamped(due, 1)
	case models.RecurYearly:
		return addMonthsClamped(due, 12)
	}
	panic("unknown recurrence unit: " + string(unit))
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	target := m + time.Month(months)
	if last := daysIn(y, target, t.Location()); d > last {
		d = last
	}
	return time.Date(y, target, d, h, min, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month; time.Date
// normalizes both a month overflow and the zeroth day.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
