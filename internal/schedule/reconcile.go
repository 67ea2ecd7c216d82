package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/leaseflow/billing-engine/internal/domain"
)

// Reconcile merges the canonical due-date sequence with the persisted
// payments of a lease. A due date with a payment on the same calendar day
// becomes a recorded slot mirroring that row; every other due date becomes a
// projected slot carrying the lease rent and a status derived from today.
//
// The output has exactly one slot per canonical due date, in order.
// Persisted payments whose due date matches no canonical slot (off-cycle
// manual entries) are not represented here; the raw payment listing keeps
// them visible.
func Reconcile(dueDates []time.Time, rent decimal.Decimal, payments []*domain.Payment, today time.Time) []*domain.ScheduledPayment {
	recorded := make(map[string]*domain.Payment, len(payments))
	for _, p := range payments {
		recorded[DateOnly(p.DueDate).Format(dateLayout)] = p
	}

	slots := make([]*domain.ScheduledPayment, 0, len(dueDates))
	for _, due := range dueDates {
		if p, ok := recorded[due.Format(dateLayout)]; ok {
			slots = append(slots, domain.RecordedSlot(p))
			continue
		}
		slots = append(slots, domain.ProjectedSlot(due, rent, Classify(due, today)))
	}

	return slots
}
