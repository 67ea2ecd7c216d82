package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaseStatus is the lifecycle state of a lease. It is owned by the CRUD
// surface; the schedule engine only reads it.
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusPending    LeaseStatus = "PENDING"
	LeaseStatusExpired    LeaseStatus = "EXPIRED"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
)

// Lease represents a rental agreement between a landlord and a tenant
type Lease struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	TenantID    uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	EndDate     time.Time       `json:"end_date" db:"end_date"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	PaymentDay  int             `json:"payment_day" db:"payment_day"`
	Status      LeaseStatus     `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateLeaseRequest struct {
	TenantID    string          `json:"tenant_id" validate:"required,uuid"`
	StartDate   string          `json:"start_date" validate:"required"`
	EndDate     string          `json:"end_date" validate:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" validate:"required"`
	PaymentDay  int             `json:"payment_day" validate:"required"`
}

type RecordPaymentRequest struct {
	DueDate       string          `json:"due_date" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Status        PaymentStatus   `json:"status" validate:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
	PaidDate      string          `json:"paid_date,omitempty"`
	Method        string          `json:"method,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
}

type ScheduleResponse struct {
	LeaseID  uuid.UUID           `json:"lease_id"`
	AsOf     string              `json:"as_of"`
	Schedule []*ScheduledPayment `json:"schedule"`
}

// TrackingEntry is a past-due schedule slot annotated with its day-level age.
type TrackingEntry struct {
	Slot     *ScheduledPayment `json:"slot"`
	DaysLate int               `json:"days_late"`
}

// TrackingReport is the landlord-facing view of a lease's schedule, bucketed
// into past-due, next and upcoming slots.
type TrackingReport struct {
	LeaseID  uuid.UUID           `json:"lease_id"`
	AsOf     string              `json:"as_of"`
	PastDue  []*TrackingEntry    `json:"past_due"`
	Next     *ScheduledPayment   `json:"next,omitempty"`
	Upcoming []*ScheduledPayment `json:"upcoming"`
}

// UpcomingPayment is one entry of the tenant-facing "next payments" view.
type UpcomingPayment struct {
	LeaseID uuid.UUID       `json:"lease_id"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Status  PaymentStatus   `json:"status"`
}

type DelinquencyResponse struct {
	LeaseID       uuid.UUID `json:"lease_id"`
	MonthsOverdue int       `json:"months_overdue"`
	IsDelinquent  bool      `json:"is_delinquent"`
}

type AmortizationResponse struct {
	LeaseID uuid.UUID          `json:"lease_id"`
	Rows    []*AmortizationRow `json:"rows"`
}
