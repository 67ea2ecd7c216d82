package errors

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrInvalidDate            = errors.New("invalid calendar date")
	ErrInvalidRange           = errors.New("end must be after start")
	ErrInvalidPaymentDay      = errors.New("payment day must be between 1 and 31")
	ErrLeaseNotFound          = errors.New("lease not found")
	ErrLeaseNotActive         = errors.New("lease is not active")
	ErrPaymentAlreadyRecorded = errors.New("payment already recorded for due date")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidDate            = "INVALID_DATE"
	ErrCodeInvalidRange           = "INVALID_RANGE"
	ErrCodeInvalidPaymentDay      = "INVALID_PAYMENT_DAY"
	ErrCodeInvalidRentAmount      = "INVALID_RENT_AMOUNT"
	ErrCodeInvalidTenantID        = "INVALID_TENANT_ID"
	ErrCodeLeaseNotFound          = "LEASE_NOT_FOUND"
	ErrCodeLeaseNotActive         = "LEASE_NOT_ACTIVE"
	ErrCodePaymentAlreadyRecorded = "PAYMENT_ALREADY_RECORDED"
	ErrCodeDatabaseError          = "DATABASE_ERROR"
	ErrCodeCacheError             = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapInvalidDate(value string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDate,
		fmt.Sprintf("Invalid calendar date %q, expected yyyy-MM-dd", value),
		errors.Join(ErrInvalidDate, err),
	)
}

func WrapInvalidRange(start, end time.Time) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRange,
		fmt.Sprintf("End date %s is before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02")),
		ErrInvalidRange,
	)
}

func WrapInvalidPaymentDay(day int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentDay,
		fmt.Sprintf("Payment day %d is outside 1-31", day),
		ErrInvalidPaymentDay,
	)
}

func WrapInvalidRentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRentAmount,
		fmt.Sprintf("Monthly rent must be positive, got %s", amount),
		nil,
	)
}

func WrapInvalidTenantID(value string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTenantID,
		fmt.Sprintf("Tenant ID %q is not a valid UUID", value),
		err,
	)
}

func WrapLeaseNotFound(leaseID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLeaseNotFound,
		fmt.Sprintf("Lease with ID %s not found", leaseID),
		ErrLeaseNotFound,
	)
}

func WrapLeaseNotActive(leaseID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeLeaseNotActive,
		fmt.Sprintf("Lease with ID %s is %s, recording payments requires an active lease", leaseID, status),
		ErrLeaseNotActive,
	)
}

func WrapPaymentAlreadyRecorded(leaseID string, dueDate time.Time) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAlreadyRecorded,
		fmt.Sprintf("Lease %s already has a payment recorded for %s", leaseID, dueDate.Format("2006-01-02")),
		ErrPaymentAlreadyRecorded,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
