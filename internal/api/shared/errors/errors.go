package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/ispcore/ipam/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeNoCapacity       ErrorCode = "no_capacity"
	ErrCodeTooManyRequests  ErrorCode = "too_many_requests"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// Envelope wraps an APIError into the response body
func Envelope(err *APIError) ErrorResponse {
	return ErrorResponse{Error: err}
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return newError(ErrCodeBadRequest, message, details...)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(ErrCodeNotFound, message, details...)
}

func NewValidationError(details ...string) *APIError {
	return newError(ErrCodeValidationFailed, "Validation failed", details...)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newError(ErrCodeUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newError(ErrCodeForbidden, message, details...)
}

func NewConflictError(message string, details ...string) *APIError {
	return newError(ErrCodeConflict, message, details...)
}

func NewNoCapacityError(message string, details ...string) *APIError {
	return newError(ErrCodeNoCapacity, message, details...)
}

func NewTooManyRequestsError(message string, details ...string) *APIError {
	return newError(ErrCodeTooManyRequests, message, details...)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(ErrCodeInternalError, message, details...)
}

func NewDatabaseError(message string, details ...string) *APIError {
	return newError(ErrCodeDatabaseError, message, details...)
}

func NewServiceError(message string, details ...string) *APIError {
	return newError(ErrCodeServiceError, message, details...)
}

func newError(code ErrorCode, message string, details ...string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomainError maps a domain error to its HTTP status and API error.
// Unknown errors are internal; their text is not exposed.
func FromDomainError(err error) (int, *APIError) {
	switch {
	case stderrors.Is(err, domain.ErrInfrastructure):
		return http.StatusInternalServerError, NewDatabaseError("Backing store unavailable")

	case stderrors.Is(err, domain.ErrPoolNotFound),
		stderrors.Is(err, domain.ErrSubnetNotFound),
		stderrors.Is(err, domain.ErrAllocationNotFound),
		stderrors.Is(err, domain.ErrMigrationNotFound),
		stderrors.Is(err, domain.ErrBackupNotFound):
		return http.StatusNotFound, NewNotFoundError(err.Error())

	case stderrors.Is(err, domain.ErrNoCapacity):
		return http.StatusConflict, NewNoCapacityError(err.Error())

	case stderrors.Is(err, domain.ErrAlreadyReleased),
		stderrors.Is(err, domain.ErrSubnetOverlap),
		stderrors.Is(err, domain.ErrPoolNameTaken),
		stderrors.Is(err, domain.ErrPoolInUse),
		stderrors.Is(err, domain.ErrSubnetInUse),
		stderrors.Is(err, domain.ErrMigrationConflict):
		return http.StatusConflict, NewConflictError(err.Error())

	case stderrors.Is(err, domain.ErrInvalidRange),
		stderrors.Is(err, domain.ErrInvalidMACAddress),
		stderrors.Is(err, domain.ErrInvalidUsername):
		return http.StatusUnprocessableEntity, NewValidationError(err.Error())
	}

	return http.StatusInternalServerError, NewInternalError("Internal server error")
}
