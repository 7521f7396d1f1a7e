package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/cep-market-client/internal/domain"
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
	ErrCodeWalletConflict   ErrorCode = "wallet_conflict"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
	ErrCodeServiceError  ErrorCode = "service_error"
	ErrCodeNodeRejected  ErrorCode = "node_rejected"
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

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewWalletConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeWalletConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNodeRejectedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNodeRejected,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromError maps an error of the deploy and reconciliation layers to a status code and API error
func FromError(err error) (int, *APIError) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrCodeBadRequest:
			return http.StatusBadRequest, apiErr
		case ErrCodeNotFound:
			return http.StatusNotFound, apiErr
		case ErrCodeValidationFailed:
			return http.StatusUnprocessableEntity, apiErr
		case ErrCodeUnauthorized:
			return http.StatusUnauthorized, apiErr
		case ErrCodeForbidden:
			return http.StatusForbidden, apiErr
		case ErrCodeWalletConflict:
			return http.StatusConflict, apiErr
		case ErrCodeNodeRejected, ErrCodeServiceError:
			return http.StatusBadGateway, apiErr
		default:
			return http.StatusInternalServerError, apiErr
		}
	}

	var submission *domain.SubmissionError
	switch {
	case errors.As(err, &submission):
		return http.StatusBadGateway, NewNodeRejectedError("Node rejected the deploy", submission.Message)
	case errors.Is(err, domain.ErrEncoding),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingContractReference),
		errors.Is(err, domain.ErrInvalidWasm),
		errors.Is(err, domain.ErrInvalidDeploy):
		return http.StatusUnprocessableEntity, NewValidationError(err.Error())
	case errors.Is(err, domain.ErrWalletUnavailable),
		errors.Is(err, domain.ErrWalletLocked),
		errors.Is(err, domain.ErrUserRejectedSigning):
		return http.StatusConflict, NewWalletConflictError("Wallet is not ready", err.Error())
	case errors.Is(err, domain.ErrTokenNotFound):
		return http.StatusNotFound, NewNotFoundError("Token not found")
	case errors.Is(err, domain.ErrSubmission):
		return http.StatusBadGateway, NewNodeRejectedError("Node rejected the deploy", err.Error())
	default:
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}
}
