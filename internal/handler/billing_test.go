package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/leaseflow/billing-engine/internal/domain"
	customError "github.com/leaseflow/billing-engine/pkg/errors"
	"github.com/leaseflow/billing-engine/tests/mocks"
)

func setupRouter(h *BillingHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/leases", h.CreateLease).Methods("POST")
	router.HandleFunc("/api/v1/leases/{leaseId}/schedule", h.GetSchedule).Methods("GET")
	router.HandleFunc("/api/v1/leases/{leaseId}/amortization", h.GetAmortization).Methods("GET")
	router.HandleFunc("/api/v1/leases/{leaseId}/delinquency", h.GetDelinquency).Methods("GET")
	router.HandleFunc("/api/v1/leases/{leaseId}/payments", h.RecordPayment).Methods("POST")
	router.HandleFunc("/api/v1/tenants/{tenantId}/upcoming", h.GetUpcoming).Methods("GET")
	return router
}

func TestGetSchedule(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	leaseID := uuid.New()
	asOf := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	expected := &domain.ScheduleResponse{
		LeaseID: leaseID,
		AsOf:    "2024-03-01",
		Schedule: []*domain.ScheduledPayment{
			domain.ProjectedSlot(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(5000), domain.PaymentStatusPending),
		},
	}
	mockService.On("GetSchedule", mock.Anything, leaseID, asOf).Return(expected, nil)

	url := fmt.Sprintf("/api/v1/leases/%s/schedule?as_of=2024-03-01", leaseID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool                    `json:"success"`
		Data    domain.ScheduleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, leaseID, envelope.Data.LeaseID)
	require.Len(t, envelope.Data.Schedule, 1)
	assert.False(t, envelope.Data.Schedule[0].IsExisting)

	mockService.AssertExpectations(t)
}

func TestGetSchedule_InvalidLeaseID(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leases/not-a-uuid/schedule", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSchedule_InvalidAsOf(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	url := fmt.Sprintf("/api/v1/leases/%s/schedule?as_of=03-01-2024", uuid.New())
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSchedule_LeaseNotFound(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	leaseID := uuid.New()
	mockService.On("GetSchedule", mock.Anything, leaseID, mock.Anything).
		Return(nil, customError.WrapLeaseNotFound(leaseID.String()))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/leases/%s/schedule", leaseID), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateLease(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	tenantID := uuid.New()
	request := domain.CreateLeaseRequest{
		TenantID:    tenantID.String(),
		StartDate:   "2024-01-01",
		EndDate:     "2024-12-31",
		MonthlyRent: decimal.NewFromInt(5000),
		PaymentDay:  15,
	}

	expected := &domain.Lease{
		ID:          uuid.New(),
		TenantID:    tenantID,
		StartDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent: decimal.NewFromInt(5000),
		PaymentDay:  15,
		Status:      domain.LeaseStatusActive,
	}

	mockService.On("CreateLease", mock.Anything, mock.MatchedBy(func(req *domain.CreateLeaseRequest) bool {
		return req.TenantID == tenantID.String() && req.PaymentDay == 15
	})).Return(expected, nil)

	body, _ := json.Marshal(request)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leases", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestCreateLease_MissingFields(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	body := []byte(`{"tenant_id": "` + uuid.NewString() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leases", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateLease", mock.Anything, mock.Anything)
}

func TestRecordPayment(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	leaseID := uuid.New()
	payment := &domain.Payment{
		ID:      uuid.New(),
		LeaseID: leaseID,
		DueDate: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
		Amount:  decimal.NewFromInt(5000),
		Status:  domain.PaymentStatusPaid,
	}

	mockService.On("RecordPayment", mock.Anything, leaseID, mock.MatchedBy(func(req *domain.RecordPaymentRequest) bool {
		return req.DueDate == "2024-02-15" && req.Amount.Equal(decimal.NewFromInt(5000))
	})).Return(payment, nil)

	body := []byte(`{"due_date": "2024-02-15", "amount": "5000"}`)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/leases/%s/payments", leaseID), bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestRecordPayment_Duplicate(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	leaseID := uuid.New()
	dueDate := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	mockService.On("RecordPayment", mock.Anything, leaseID, mock.Anything).
		Return(nil, customError.WrapPaymentAlreadyRecorded(leaseID.String(), dueDate))

	body := []byte(`{"due_date": "2024-02-15", "amount": "5000"}`)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/leases/%s/payments", leaseID), bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetUpcoming(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	tenantID := uuid.New()
	upcoming := []*domain.UpcomingPayment{
		{
			LeaseID: uuid.New(),
			DueDate: time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
			Amount:  decimal.NewFromInt(5000),
			Status:  domain.PaymentStatusPending,
		},
	}

	mockService.On("UpcomingPayments", mock.Anything, tenantID, mock.Anything, 3).Return(upcoming, nil)

	url := fmt.Sprintf("/api/v1/tenants/%s/upcoming?limit=3", tenantID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestGetUpcoming_InvalidLimit(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	url := fmt.Sprintf("/api/v1/tenants/%s/upcoming?limit=zero", uuid.New())
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "UpcomingPayments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetDelinquency(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	leaseID := uuid.New()
	mockService.On("Delinquency", mock.Anything, leaseID, mock.Anything).Return(&domain.DelinquencyResponse{
		LeaseID:       leaseID,
		MonthsOverdue: 2,
		IsDelinquent:  true,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/leases/%s/delinquency", leaseID), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data domain.DelinquencyResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.MonthsOverdue)
	assert.True(t, envelope.Data.IsDelinquent)
}

func TestGetAmortization(t *testing.T) {
	mockService := &mocks.MockBillingService{}
	handler := NewBillingHandler(mockService)
	router := setupRouter(handler)

	leaseID := uuid.New()
	mockService.On("AmortizationTable", mock.Anything, leaseID).Return(&domain.AmortizationResponse{
		LeaseID: leaseID,
		Rows: []*domain.AmortizationRow{
			{Number: 1, DueDate: "2024-01-15", AmountInWords: "FIVE THOUSAND AND 00/100 DOLLARS"},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/leases/%s/amortization", leaseID), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data domain.AmortizationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Rows, 1)
	assert.Equal(t, "FIVE THOUSAND AND 00/100 DOLLARS", envelope.Data.Rows[0].AmountInWords)
}
