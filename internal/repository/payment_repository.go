package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/leaseflow/billing-engine/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, lease_id, due_date, amount, paid_date, status, method, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.LeaseID,
		payment.DueDate,
		payment.Amount,
		payment.PaidDate,
		payment.Status,
		payment.Method,
		payment.TransactionID,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	return err
}

func (r *paymentRepository) GetByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT id, lease_id, due_date, amount, paid_date, status, method, transaction_id, created_at, updated_at
		FROM payments
		WHERE lease_id = $1
		ORDER BY due_date
	`

	var payments []*domain.Payment
	err := r.db.SelectContext(ctx, &payments, query, leaseID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetByLeaseIDAndDueDate(ctx context.Context, leaseID uuid.UUID, dueDate time.Time) (*domain.Payment, error) {
	query := `
		SELECT id, lease_id, due_date, amount, paid_date, status, method, transaction_id, created_at, updated_at
		FROM payments
		WHERE lease_id = $1 AND due_date = $2
	`

	var payment domain.Payment
	err := r.db.GetContext(ctx, &payment, query, leaseID, dueDate)
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) GetLatestByLeaseID(ctx context.Context, leaseID uuid.UUID) (*domain.Payment, error) {
	query := `
		SELECT id, lease_id, due_date, amount, paid_date, status, method, transaction_id, created_at, updated_at
		FROM payments
		WHERE lease_id = $1
		ORDER BY due_date DESC
		LIMIT 1
	`

	var payment domain.Payment
	err := r.db.GetContext(ctx, &payment, query, leaseID)
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE payments
		SET status = 'OVERDUE', updated_at = $2
		WHERE status = 'PENDING' AND due_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, before, time.Now())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
