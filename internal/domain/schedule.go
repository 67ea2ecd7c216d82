package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduledPayment is one slot of a lease's reconciled schedule. It is
// computed fresh on every read and never persisted. A recorded slot mirrors
// a Payment row; a projected slot is synthesized from the lease terms.
//
// The RecordedSlot/ProjectedSlot constructors are the only intended way to
// build one: recorded slots always carry the payment id and projected slots
// never do.
type ScheduledPayment struct {
	DueDate       time.Time       `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PaymentStatus   `json:"status"`
	IsExisting    bool            `json:"is_existing"`
	PaymentID     *uuid.UUID      `json:"payment_id,omitempty"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	Method        *string         `json:"method,omitempty"`
	TransactionID *string         `json:"transaction_id,omitempty"`
}

// RecordedSlot builds a schedule slot backed by a persisted payment. Every
// display field derives from the record, not from the lease terms.
func RecordedSlot(p *Payment) *ScheduledPayment {
	id := p.ID
	return &ScheduledPayment{
		DueDate:       p.DueDate,
		Amount:        p.Amount,
		Status:        p.Status,
		IsExisting:    true,
		PaymentID:     &id,
		PaidDate:      p.PaidDate,
		Method:        p.Method,
		TransactionID: p.TransactionID,
	}
}

// ProjectedSlot builds a synthetic slot for a due date with no payment row.
func ProjectedSlot(dueDate time.Time, amount decimal.Decimal, status PaymentStatus) *ScheduledPayment {
	return &ScheduledPayment{
		DueDate:    dueDate,
		Amount:     amount,
		Status:     status,
		IsExisting: false,
	}
}

// AmortizationRow is one numbered line of the due-date table embedded in the
// rendered lease agreement.
type AmortizationRow struct {
	Number        int    `json:"number"`
	DueDate       string `json:"due_date"`
	AmountInWords string `json:"amount_in_words"`
}
