package domain

import (
	"fmt"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

// Collaborator error kinds.
var (
	// ErrDownstreamUnavailable indicates a transport failure: connection refused, timeout, 5xx.
	ErrDownstreamUnavailable = apperrors.Wrap(apperrors.ErrServiceUnavailable, "downstream unavailable")

	// ErrDownstreamRejected indicates the collaborator answered and reported a failure.
	ErrDownstreamRejected = apperrors.Wrap(apperrors.ErrBadGateway, "downstream rejected")
)

// Error is the classified error returned by every collaborator call.
type Error struct {
	Service   Service
	Operation string
	Kind      error
	Message   string
}

// Error renders the classified message, e.g. "Order service unavailable: <detail>".
func (e *Error) Error() string {
	if e.Kind == ErrDownstreamRejected {
		return fmt.Sprintf("%s service rejected request: %s", e.Service.Name(), e.Message)
	}
	return fmt.Sprintf("%s service unavailable: %s", e.Service.Name(), e.Message)
}

// Unwrap exposes the error kind so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewUnavailableError builds a Downstream-Unavailable error.
func NewUnavailableError(service Service, operation, message string) *Error {
	return &Error{Service: service, Operation: operation, Kind: ErrDownstreamUnavailable, Message: message}
}

// NewRejectedError builds a Downstream-Rejected error.
func NewRejectedError(service Service, operation, message string) *Error {
	return &Error{Service: service, Operation: operation, Kind: ErrDownstreamRejected, Message: message}
}

// ConnectionRefusedMessage is the classified wording for a refused connection.
func ConnectionRefusedMessage(service Service) string {
	return fmt.Sprintf("%s service connection refused - service may not be running", service.Name())
}

// TimeoutMessage is the classified wording for a timed out request.
func TimeoutMessage(service Service) string {
	return fmt.Sprintf("%s service request timeout - service may be slow or unavailable", service.Name())
}
