package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/leaseflow/billing-engine/internal/domain"
)

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) CreateLease(ctx context.Context, request *domain.CreateLeaseRequest) (*domain.Lease, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func (m *MockBillingService) GetSchedule(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.ScheduleResponse, error) {
	args := m.Called(ctx, leaseID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleResponse), args.Error(1)
}

func (m *MockBillingService) TrackingReport(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.TrackingReport, error) {
	args := m.Called(ctx, leaseID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingReport), args.Error(1)
}

func (m *MockBillingService) AmortizationTable(ctx context.Context, leaseID uuid.UUID) (*domain.AmortizationResponse, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AmortizationResponse), args.Error(1)
}

func (m *MockBillingService) Delinquency(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (*domain.DelinquencyResponse, error) {
	args := m.Called(ctx, leaseID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DelinquencyResponse), args.Error(1)
}

func (m *MockBillingService) UpcomingPayments(ctx context.Context, tenantID uuid.UUID, asOf time.Time, limit int) ([]*domain.UpcomingPayment, error) {
	args := m.Called(ctx, tenantID, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UpcomingPayment), args.Error(1)
}

func (m *MockBillingService) RecordPayment(ctx context.Context, leaseID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, leaseID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockBillingService) SweepOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}
