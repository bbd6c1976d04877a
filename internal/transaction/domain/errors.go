package domain

import (
	"strings"

	"github.com/allisson/stockpay/internal/errors"
)

// Transaction errors.
var (
	// ErrTransactionNotFound indicates no transaction has the requested id.
	ErrTransactionNotFound = errors.Wrap(errors.ErrNotFound, "transaction not found")

	// ErrTransactionAlreadyExists indicates a transaction id collision on insert.
	ErrTransactionAlreadyExists = errors.Wrap(errors.ErrConflict, "transaction already exists")

	// ErrAlreadyProcessed indicates the payment of the transaction was already confirmed.
	ErrAlreadyProcessed = errors.Wrap(errors.ErrConflict, "payment already processed for this transaction")

	// ErrInsufficientStock indicates the inventory cannot serve the requested items.
	ErrInsufficientStock = errors.Wrap(errors.ErrConflict, "insufficient stock for requested items")

	// ErrConfirmationInProgress indicates another confirmation holds the transaction lock.
	ErrConfirmationInProgress = errors.Wrap(errors.ErrConflict, "payment confirmation already in progress")

	// ErrPaymentNotAccepted indicates the payment collaborator reported neither success nor pending.
	ErrPaymentNotAccepted = errors.Wrap(errors.ErrBadGateway, "payment not accepted")

	// ErrInvalidStateTransition indicates a workflow state change the state machine forbids.
	ErrInvalidStateTransition = errors.Wrap(errors.ErrConflict, "invalid state transition")
)

// StockDeductionError aggregates the failed per-item deductions of one confirmation.
// Successful deductions of the same batch are not rolled back.
type StockDeductionError struct {
	Failures []error
}

func (e *StockDeductionError) Error() string {
	messages := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		messages = append(messages, failure.Error())
	}
	return "stock update failed: " + strings.Join(messages, ", ")
}

// Unwrap exposes every item failure to errors.Is and errors.As.
func (e *StockDeductionError) Unwrap() []error {
	return e.Failures
}
