package schedule

import (
	"time"

	apperrors "github.com/leaseflow/billing-engine/pkg/errors"
)

// DueDates generates the canonical monthly due-date sequence for a lease
// term. Both bounds are inclusive and the result is strictly increasing.
//
// The first due date is the resolved payment day of the start month, pushed
// to the following month when it falls strictly before the start date (a
// lease starting on the 20th with rent due on the 15th pays first in the
// next month). A range shorter than one payment interval yields an empty
// sequence, not an error.
//
// Iteration keeps a (year, month) cursor and re-resolves the day per month
// instead of adding a month to the previous clamped date, so Jan 31 never
// drifts into March.
func DueDates(start, end time.Time, paymentDay int) ([]time.Time, error) {
	if paymentDay < 1 || paymentDay > 31 {
		return nil, apperrors.WrapInvalidPaymentDay(paymentDay)
	}

	start = DateOnly(start)
	end = DateOnly(end)
	if end.Before(start) {
		return nil, apperrors.WrapInvalidRange(start, end)
	}

	year, month := start.Year(), start.Month()
	due := DueDateIn(year, month, paymentDay)
	if due.Before(start) {
		year, month = nextMonth(year, month)
		due = DueDateIn(year, month, paymentDay)
	}

	var dates []time.Time
	for !due.After(end) {
		dates = append(dates, due)
		year, month = nextMonth(year, month)
		due = DueDateIn(year, month, paymentDay)
	}

	return dates, nil
}
