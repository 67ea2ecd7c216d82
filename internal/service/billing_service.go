package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/leaseflow/billing-engine/internal/config"
	"github.com/leaseflow/billing-engine/internal/domain"
	"github.com/leaseflow/billing-engine/internal/repository"
	"github.com/leaseflow/billing-engine/internal/schedule"
	customError "github.com/leaseflow/billing-engine/pkg/errors"
)

const defaultUpcomingLimit = 5

// Billing is the service surface consumed by the HTTP handlers and the
// scheduler daemon.
type Billing interface {
	CreateLease(ctx context.Context, request *domain.CreateLeaseRequest) (*domain.Lease, error)
	GetSchedule(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.ScheduleResponse, error)
	TrackingReport(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.TrackingReport, error)
	AmortizationTable(ctx context.Context, leaseID uuid.UUID) (*domain.AmortizationResponse, error)
	Delinquency(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.DelinquencyResponse, error)
	UpcomingPayments(ctx context.Context, tenantID uuid.UUID, asOf time.Time, limit int) ([]*domain.UpcomingPayment, error)
	RecordPayment(ctx context.Context, leaseID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.Payment, error)
	SweepOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type BillingService struct {
	leaseRepo   repository.LeaseRepository
	paymentRepo repository.PaymentRepository
	redis       *redis.Client
	config      *config.Config
	log         *logrus.Logger
}

var _ Billing = (*BillingService)(nil)

func NewBillingService(
	leaseRepo repository.LeaseRepository,
	paymentRepo repository.PaymentRepository,
	redisClient *redis.Client,
	cfg *config.Config,
	log *logrus.Logger,
) *BillingService {
	return &BillingService{
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
		redis:       redisClient,
		config:      cfg,
		log:         log,
	}
}

// CreateLease validates the lease terms and persists a new lease. The
// schedule itself is never persisted; it is recomputed on every read.
func (s *BillingService) CreateLease(ctx context.Context, request *domain.CreateLeaseRequest) (*domain.Lease, error) {
	start, err := schedule.ParseDate(request.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseDate(request.EndDate)
	if err != nil {
		return nil, err
	}

	// Generating the sequence validates the range and payment day up front.
	if _, err := schedule.DueDates(start, end, request.PaymentDay); err != nil {
		return nil, err
	}

	if !request.MonthlyRent.IsPositive() {
		return nil, customError.WrapInvalidRentAmount(request.MonthlyRent.String())
	}

	tenantID, err := uuid.Parse(request.TenantID)
	if err != nil {
		return nil, customError.WrapInvalidTenantID(request.TenantID, err)
	}

	now := time.Now()
	lease := &domain.Lease{
		ID:          uuid.New(),
		TenantID:    tenantID,
		StartDate:   start,
		EndDate:     end,
		MonthlyRent: request.MonthlyRent,
		PaymentDay:  request.PaymentDay,
		Status:      domain.LeaseStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.leaseRepo.Create(ctx, lease); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"lease_id":  lease.ID,
		"tenant_id": lease.TenantID,
	}).Info("lease created")

	return lease, nil
}

// GetSchedule returns the reconciled schedule for a lease as of a reference
// date. Results are cached per lease and date; recording a payment drops
// today's entry.
func (s *BillingService) GetSchedule(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.ScheduleResponse, error) {
	asOf = schedule.DateOnly(asOf)

	if cached, ok := s.cachedSchedule(ctx, leaseID, asOf); ok {
		return cached, nil
	}

	slots, err := s.computeSchedule(ctx, leaseID, asOf)
	if err != nil {
		return nil, err
	}

	response := &domain.ScheduleResponse{
		LeaseID:  leaseID,
		AsOf:     asOf.Format("2006-01-02"),
		Schedule: slots,
	}

	s.cacheSchedule(ctx, leaseID, asOf, response)

	return response, nil
}

// TrackingReport buckets the reconciled schedule into the landlord view:
// past-due slots with their day-level age, the next slot falling due, and
// the remaining upcoming slots.
func (s *BillingService) TrackingReport(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.TrackingReport, error) {
	asOf = schedule.DateOnly(asOf)

	slots, err := s.computeSchedule(ctx, leaseID, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.TrackingReport{
		LeaseID:  leaseID,
		AsOf:     asOf.Format("2006-01-02"),
		PastDue:  []*domain.TrackingEntry{},
		Upcoming: []*domain.ScheduledPayment{},
	}

	for _, slot := range slots {
		if slot.Status == domain.PaymentStatusPaid || slot.Status == domain.PaymentStatusCancelled {
			continue
		}
		if slot.DueDate.Before(asOf) {
			report.PastDue = append(report.PastDue, &domain.TrackingEntry{
				Slot:     slot,
				DaysLate: schedule.DaysOverdue(slot.DueDate, asOf),
			})
			continue
		}
		if report.Next == nil {
			report.Next = slot
			continue
		}
		report.Upcoming = append(report.Upcoming, slot)
	}

	return report, nil
}

// AmortizationTable produces the numbered due-date table embedded into the
// lease agreement document.
func (s *BillingService) AmortizationTable(ctx context.Context, leaseID uuid.UUID) (*domain.AmortizationResponse, error) {
	lease, err := s.getLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	rows, err := schedule.BuildTable(lease.StartDate, lease.EndDate, lease.PaymentDay, lease.MonthlyRent, s.config.Business.CurrencySuffix)
	if err != nil {
		return nil, err
	}

	return &domain.AmortizationResponse{LeaseID: leaseID, Rows: rows}, nil
}

// Delinquency reports the month-granularity overdue figure for a lease.
func (s *BillingService) Delinquency(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.DelinquencyResponse, error) {
	lease, err := s.getLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	latest, err := s.paymentRepo.GetLatestByLeaseID(ctx, leaseID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDatabaseError(err)
		}
		latest = nil
	}

	months := schedule.MonthsOverdue(lease.StartDate, latest, asOf)

	return &domain.DelinquencyResponse{
		LeaseID:       leaseID,
		MonthsOverdue: months,
		IsDelinquent:  months >= s.config.Business.DelinquencyThreshold,
	}, nil
}

// UpcomingPayments is the tenant-facing view: the earliest unpaid slots due
// on or after asOf across all of the tenant's active leases, ascending by
// due date, capped at limit (config default when limit is not positive).
func (s *BillingService) UpcomingPayments(ctx context.Context, tenantID uuid.UUID, asOf time.Time, limit int) ([]*domain.UpcomingPayment, error) {
	asOf = schedule.DateOnly(asOf)

	if limit <= 0 {
		limit = s.config.Business.UpcomingLimit
	}
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}

	leases, err := s.leaseRepo.GetActiveByTenantID(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	upcoming := []*domain.UpcomingPayment{}
	for _, lease := range leases {
		slots, err := s.scheduleForLease(ctx, lease, asOf)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			if slot.Status == domain.PaymentStatusPaid || slot.Status == domain.PaymentStatusCancelled {
				continue
			}
			if slot.DueDate.Before(asOf) {
				continue
			}
			upcoming = append(upcoming, &domain.UpcomingPayment{
				LeaseID: lease.ID,
				DueDate: slot.DueDate,
				Amount:  slot.Amount,
				Status:  slot.Status,
			})
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	return upcoming, nil
}

// RecordPayment persists a payment against a lease and invalidates the
// cached schedule for today.
func (s *BillingService) RecordPayment(ctx context.Context, leaseID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.Payment, error) {
	lease, err := s.getLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	if lease.Status != domain.LeaseStatusActive {
		return nil, customError.WrapLeaseNotActive(leaseID.String(), string(lease.Status))
	}

	dueDate, err := schedule.ParseDate(request.DueDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.paymentRepo.GetByLeaseIDAndDueDate(ctx, leaseID, dueDate)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		return nil, customError.WrapPaymentAlreadyRecorded(leaseID.String(), dueDate)
	}

	status := request.Status
	if status == "" {
		status = domain.PaymentStatusPaid
	}

	var paidDate *time.Time
	if request.PaidDate != "" {
		parsed, err := schedule.ParseDate(request.PaidDate)
		if err != nil {
			return nil, err
		}
		paidDate = &parsed
	} else if status == domain.PaymentStatusPaid {
		today := schedule.DateOnly(time.Now())
		paidDate = &today
	}

	var method, transactionID *string
	if request.Method != "" {
		method = &request.Method
	}
	if request.TransactionID != "" {
		transactionID = &request.TransactionID
	}

	now := time.Now()
	payment := &domain.Payment{
		ID:            uuid.New(),
		LeaseID:       leaseID,
		DueDate:       dueDate,
		Amount:        request.Amount,
		PaidDate:      paidDate,
		Status:        status,
		Method:        method,
		TransactionID: transactionID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSchedule(ctx, leaseID)

	s.log.WithFields(logrus.Fields{
		"lease_id":   leaseID,
		"payment_id": payment.ID,
		"due_date":   payment.DueDate.Format("2006-01-02"),
		"status":     payment.Status,
	}).Info("payment recorded")

	return payment, nil
}

// SweepOverdue marks persisted PENDING payments due before asOf as OVERDUE
// and expires leases whose term has ended. The scheduler daemon runs this
// daily.
func (s *BillingService) SweepOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	asOf = schedule.DateOnly(asOf)

	overdue, err := s.paymentRepo.MarkOverdue(ctx, asOf)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	expired, err := s.leaseRepo.MarkExpired(ctx, asOf)
	if err != nil {
		return overdue, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"payments_overdue": overdue,
		"leases_expired":   expired,
		"as_of":            asOf.Format("2006-01-02"),
	}).Info("overdue sweep completed")

	return overdue, nil
}

func (s *BillingService) getLease(ctx context.Context, leaseID uuid.UUID) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLeaseNotFound(leaseID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return lease, nil
}

// computeSchedule generates, reconciles and classifies a lease's schedule
// without touching the cache.
func (s *BillingService) computeSchedule(ctx context.Context, leaseID uuid.UUID, asOf time.Time) ([]*domain.ScheduledPayment, error) {
	lease, err := s.getLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	return s.scheduleForLease(ctx, lease, asOf)
}

// scheduleForLease is computeSchedule for a lease already in hand, so
// callers iterating a fetched set do not re-read each row.
func (s *BillingService) scheduleForLease(ctx context.Context, lease *domain.Lease, asOf time.Time) ([]*domain.ScheduledPayment, error) {
	payments, err := s.paymentRepo.GetByLeaseID(ctx, lease.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	dueDates, err := schedule.DueDates(lease.StartDate, lease.EndDate, lease.PaymentDay)
	if err != nil {
		return nil, err
	}

	return schedule.Reconcile(dueDates, lease.MonthlyRent, payments, asOf), nil
}

func scheduleCacheKey(leaseID uuid.UUID, asOf time.Time) string {
	return fmt.Sprintf("lease:schedule:%s:%s", leaseID, asOf.Format("2006-01-02"))
}

func (s *BillingService) cachedSchedule(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.ScheduleResponse, bool) {
	if s.redis == nil {
		return nil, false
	}

	raw, err := s.redis.Get(ctx, scheduleCacheKey(leaseID, asOf)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).Warn("schedule cache read failed")
		}
		return nil, false
	}

	var response domain.ScheduleResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		s.log.WithError(err).Warn("schedule cache entry corrupt, ignoring")
		return nil, false
	}

	return &response, true
}

func (s *BillingService) cacheSchedule(ctx context.Context, leaseID uuid.UUID, asOf time.Time, response *domain.ScheduleResponse) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(response)
	if err != nil {
		s.log.WithError(err).Warn("schedule cache encode failed")
		return
	}

	if err := s.redis.Set(ctx, scheduleCacheKey(leaseID, asOf), raw, s.config.GetScheduleCacheTTL()).Err(); err != nil {
		s.log.WithError(err).Warn("schedule cache write failed")
	}
}

// invalidateSchedule drops the cached schedule for today. Entries keyed on
// other reference dates age out through the TTL.
func (s *BillingService) invalidateSchedule(ctx context.Context, leaseID uuid.UUID) {
	if s.redis == nil {
		return
	}

	key := scheduleCacheKey(leaseID, schedule.DateOnly(time.Now()))
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		s.log.WithError(err).Warn("schedule cache invalidation failed")
	}
}
