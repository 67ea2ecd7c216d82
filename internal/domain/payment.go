package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus defines the status of a rent payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// Payment is a persisted rent payment record. Persisted records are the
// ground truth wherever their due date matches a generated schedule slot.
type Payment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	LeaseID       uuid.UUID       `json:"lease_id" db:"lease_id"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaidDate      *time.Time      `json:"paid_date,omitempty" db:"paid_date"`
	Status        PaymentStatus   `json:"status" db:"status"`
	Method        *string         `json:"method,omitempty" db:"method"`
	TransactionID *string         `json:"transaction_id,omitempty" db:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
