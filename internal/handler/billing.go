package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/leaseflow/billing-engine/internal/domain"
	"github.com/leaseflow/billing-engine/internal/schedule"
	"github.com/leaseflow/billing-engine/internal/service"
	customError "github.com/leaseflow/billing-engine/pkg/errors"
	"github.com/leaseflow/billing-engine/pkg/response"
)

type BillingHandler struct {
	service   service.Billing
	validator *validator.Validate
}

func NewBillingHandler(svc service.Billing) *BillingHandler {
	return &BillingHandler{
		service:   svc,
		validator: validator.New(),
	}
}

// CreateLease handles POST /leases
func (h *BillingHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	lease, err := h.service.CreateLease(r.Context(), &request)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.Created(w, lease)
}

// GetSchedule handles GET /leases/{leaseId}/schedule
func (h *BillingHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetSchedule(r.Context(), leaseID, asOf)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTracking handles GET /leases/{leaseId}/tracking
func (h *BillingHandler) GetTracking(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	result, err := h.service.TrackingReport(r.Context(), leaseID, asOf)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAmortization handles GET /leases/{leaseId}/amortization
func (h *BillingHandler) GetAmortization(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	result, err := h.service.AmortizationTable(r.Context(), leaseID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDelinquency handles GET /leases/{leaseId}/delinquency
func (h *BillingHandler) GetDelinquency(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	result, err := h.service.Delinquency(r.Context(), leaseID, asOf)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.Success(w, result)
}

// RecordPayment handles POST /leases/{leaseId}/payments
func (h *BillingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	var request domain.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), leaseID, &request)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.Created(w, payment)
}

// GetUpcoming handles GET /tenants/{tenantId}/upcoming
func (h *BillingHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, err := uuid.Parse(vars["tenantId"])
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID", err)
		return
	}

	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.BadRequest(w, "limit must be a positive integer", err)
			return
		}
	}

	result, err := h.service.UpcomingPayments(r.Context(), tenantID, asOf, limit)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *BillingHandler) leaseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	leaseID, err := uuid.Parse(vars["leaseId"])
	if err != nil {
		response.BadRequest(w, "Invalid lease ID", err)
		return uuid.Nil, false
	}
	return leaseID, true
}

// asOf reads the optional as_of query parameter, defaulting to today UTC.
func (h *BillingHandler) asOf(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return schedule.DateOnly(time.Now().UTC()), true
	}

	asOf, err := schedule.ParseDate(raw)
	if err != nil {
		response.BadRequest(w, "Invalid as_of date", err)
		return time.Time{}, false
	}
	return asOf, true
}

// respondError maps business error codes onto HTTP statuses.
func (h *BillingHandler) respondError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeLeaseNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeInvalidDate,
		customError.ErrCodeInvalidRange,
		customError.ErrCodeInvalidPaymentDay,
		customError.ErrCodeInvalidRentAmount,
		customError.ErrCodeInvalidTenantID:
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeLeaseNotActive,
		customError.ErrCodePaymentAlreadyRecorded:
		response.Conflict(w, businessErr.Message, businessErr.Err)
	default:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	}
}
