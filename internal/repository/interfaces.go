package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leaseflow/billing-engine/internal/domain"
)

// LeaseRepository defines the interface for lease data operations
type LeaseRepository interface {
	// Create creates a new lease
	Create(ctx context.Context, lease *domain.Lease) error

	// GetByID retrieves a lease by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lease, error)

	// GetActiveByTenantID retrieves all active leases for a tenant
	GetActiveByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*domain.Lease, error)

	// GetActive retrieves all active leases
	GetActive(ctx context.Context) ([]*domain.Lease, error)

	// MarkExpired flips active leases whose end date is before the cutoff to
	// EXPIRED and returns the number of rows affected
	MarkExpired(ctx context.Context, before time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByLeaseID retrieves all payments for a lease ordered by due date
	GetByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*domain.Payment, error)

	// GetByLeaseIDAndDueDate retrieves the payment recorded for a calendar day
	GetByLeaseIDAndDueDate(ctx context.Context, leaseID uuid.UUID, dueDate time.Time) (*domain.Payment, error)

	// GetLatestByLeaseID gets the payment with the most recent due date
	GetLatestByLeaseID(ctx context.Context, leaseID uuid.UUID) (*domain.Payment, error)

	// MarkOverdue flips pending payments due before the cutoff to OVERDUE and
	// returns the number of rows affected
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
}
