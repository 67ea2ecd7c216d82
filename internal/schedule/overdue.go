package schedule

import (
	"time"

	"github.com/leaseflow/billing-engine/internal/domain"
)

// MonthsOverdue computes the coarse month-granularity aging used in
// portfolio reports. latest is the lease payment with the most recent due
// date, or nil when nothing has been recorded.
//
// With no recorded payments the lease start date is the anchor: a lease that
// started before today and never paid is aged from its start. With a latest
// payment, the figure is the whole months elapsed since its due date, but
// only while that payment is unpaid and past due. Everything else is zero.
func MonthsOverdue(leaseStart time.Time, latest *domain.Payment, today time.Time) int {
	today = DateOnly(today)

	if latest == nil {
		start := DateOnly(leaseStart)
		if start.Before(today) {
			return wholeMonthsBetween(start, today)
		}
		return 0
	}

	due := DateOnly(latest.DueDate)
	if latest.Status != domain.PaymentStatusPaid && due.Before(today) {
		return wholeMonthsBetween(due, today)
	}
	return 0
}

// DaysOverdue is the fine-grained aging shown on payment cards ("X days
// late"): calendar days between the due date and today, zero unless the due
// date is in the past.
func DaysOverdue(dueDate, today time.Time) int {
	due := DateOnly(dueDate)
	today = DateOnly(today)
	if !due.Before(today) {
		return 0
	}
	return int(today.Sub(due).Hours() / 24)
}

// wholeMonthsBetween counts fully elapsed calendar months from one date to a
// later one: Jan 31 to Feb 28 is 0 months, Jan 15 to Feb 15 is 1.
func wholeMonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
