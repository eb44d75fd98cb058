// Package errors provides custom error types for the Kepler ledger engine.
// All service-layer errors should use AppError to ensure consistent,
// typed results that callers can render without leaking internals.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Input rejection errors. Nothing is written when these are returned.
var (
	ErrInvalidInput    = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidCategory = &AppError{Code: "INVALID_CATEGORY", Message: "Unknown budget category", StatusCode: http.StatusBadRequest}
	ErrUnknownAction   = &AppError{Code: "UNKNOWN_ACTION", Message: "Unrecognized ledger action", StatusCode: http.StatusBadRequest}
)

// Provisioning errors: a required row is missing. Fatal to the request,
// not to the process.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "No budget row for category", StatusCode: http.StatusNotFound}
	ErrDebtNotFound        = &AppError{Code: "DEBT_NOT_FOUND", Message: "Debt not found", StatusCode: http.StatusNotFound}
	ErrPatrimonyNotFound   = &AppError{Code: "PATRIMONY_NOT_FOUND", Message: "Patrimony record not provisioned", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrReminderNotFound    = &AppError{Code: "REMINDER_NOT_FOUND", Message: "Reminder not found", StatusCode: http.StatusNotFound}
)

// Storage and reconciliation errors.
var (
	ErrPersistence           = &AppError{Code: "PERSISTENCE_ERROR", Message: "Store rejected the operation", StatusCode: http.StatusInternalServerError}
	ErrPartialReconciliation = &AppError{Code: "PARTIAL_RECONCILIATION", Message: "One or more reconciliation steps failed", StatusCode: http.StatusMultiStatus}
	ErrInternalServer        = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
