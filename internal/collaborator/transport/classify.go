package transport

import (
	"context"
	"errors"
	"net"
	"syscall"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
)

// Classify turns a transport error into a Downstream-Unavailable error with the
// per-collaborator wording for refused connections and timeouts.
func Classify(service collabDomain.Service, operation string, err error) *collabDomain.Error {
	var message string

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		message = collabDomain.ConnectionRefusedMessage(service)
	case isTimeout(err):
		message = collabDomain.TimeoutMessage(service)
	default:
		message = err.Error()
	}

	return collabDomain.NewUnavailableError(service, operation, message)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
