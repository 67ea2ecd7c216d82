package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/leaseflow/billing-engine/internal/domain"
)

type leaseRepository struct {
	db *sqlx.DB
}

func NewLeaseRepository(db *sqlx.DB) LeaseRepository {
	return &leaseRepository{db: db}
}

func (r *leaseRepository) Create(ctx context.Context, lease *domain.Lease) error {
	query := `
		INSERT INTO leases (id, tenant_id, start_date, end_date, monthly_rent, payment_day, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		lease.ID,
		lease.TenantID,
		lease.StartDate,
		lease.EndDate,
		lease.MonthlyRent,
		lease.PaymentDay,
		lease.Status,
		lease.CreatedAt,
		lease.UpdatedAt,
	)

	return err
}

func (r *leaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lease, error) {
	query := `
		SELECT id, tenant_id, start_date, end_date, monthly_rent, payment_day, status, created_at, updated_at
		FROM leases
		WHERE id = $1
	`

	var lease domain.Lease
	err := r.db.GetContext(ctx, &lease, query, id)
	if err != nil {
		return nil, err
	}

	return &lease, nil
}

func (r *leaseRepository) GetActiveByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*domain.Lease, error) {
	query := `
		SELECT id, tenant_id, start_date, end_date, monthly_rent, payment_day, status, created_at, updated_at
		FROM leases
		WHERE tenant_id = $1 AND status = 'ACTIVE'
		ORDER BY start_date
	`

	var leases []*domain.Lease
	err := r.db.SelectContext(ctx, &leases, query, tenantID)
	if err != nil {
		return nil, err
	}

	return leases, nil
}

func (r *leaseRepository) GetActive(ctx context.Context) ([]*domain.Lease, error) {
	query := `
		SELECT id, tenant_id, start_date, end_date, monthly_rent, payment_day, status, created_at, updated_at
		FROM leases
		WHERE status = 'ACTIVE'
		ORDER BY start_date
	`

	var leases []*domain.Lease
	err := r.db.SelectContext(ctx, &leases, query)
	if err != nil {
		return nil, err
	}

	return leases, nil
}

func (r *leaseRepository) MarkExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE leases
		SET status = 'EXPIRED', updated_at = $2
		WHERE status = 'ACTIVE' AND end_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, before, time.Now())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
