// Package schedule implements the recurring rent schedule engine: canonical
// due-date generation, reconciliation against persisted payments, status
// classification, overdue aging and the amortization table for lease
// agreements. Everything here is a pure function over date-only UTC values.
package schedule

import (
	"time"

	apperrors "github.com/leaseflow/billing-engine/pkg/errors"
)

const dateLayout = "2006-01-02"

// Payment days of 30 and 31 always mean "last day of the month"; lease
// agreements are worded that way, so a day-30 lease pays on Aug 31, not
// Aug 30.
const lastDayThreshold = 30

// ParseDate parses a yyyy-MM-dd calendar date in UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.WrapInvalidDate(value, err)
	}
	return t, nil
}

// DateOnly strips the time-of-day and normalizes to UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the following month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DueDateIn resolves the concrete due date for a payment day within a month.
// Days at or above the last-day threshold resolve to the last day of the
// month; otherwise the exact day is used, clamped only when the month is too
// short for it (day 29 in a non-leap February).
func DueDateIn(year int, month time.Month, paymentDay int) time.Time {
	last := DaysInMonth(year, month)
	day := paymentDay
	if paymentDay >= lastDayThreshold || paymentDay > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
