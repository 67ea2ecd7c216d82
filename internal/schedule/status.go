package schedule

import (
	"time"

	"github.com/leaseflow/billing-engine/internal/domain"
)

// Classify derives the status of a projected slot from the reference date:
// strictly before today is OVERDUE, today or later is PENDING. Recorded
// slots keep their persisted status untouched, so PAID and CANCELLED never
// originate here.
func Classify(dueDate, today time.Time) domain.PaymentStatus {
	if DateOnly(dueDate).Before(DateOnly(today)) {
		return domain.PaymentStatusOverdue
	}
	return domain.PaymentStatusPending
}
