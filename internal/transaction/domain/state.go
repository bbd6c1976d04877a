package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

// WorkflowState is the orchestration state of a transaction.
type WorkflowState string

const (
	StateCreated          WorkflowState = "CREATED"
	StateStockChecked     WorkflowState = "STOCK_CHECKED"
	StateOrderPlaced      WorkflowState = "ORDER_PLACED"
	StatePaymentPending   WorkflowState = "PAYMENT_PENDING"
	StatePaymentConfirmed WorkflowState = "PAYMENT_CONFIRMED"
	StateFailed           WorkflowState = "FAILED"
)

// A FAILED transaction may be confirmed again; each failed retry is recorded as FAILED -> FAILED.
var transitions = map[WorkflowState][]WorkflowState{
	StateCreated:          {StateStockChecked, StateFailed},
	StateStockChecked:     {StateOrderPlaced, StateFailed},
	StateOrderPlaced:      {StatePaymentPending, StateFailed},
	StatePaymentPending:   {StatePaymentConfirmed, StateFailed},
	StateFailed:           {StatePaymentConfirmed, StateFailed},
	StatePaymentConfirmed: {},
}

// CanTransition reports whether the workflow may move from one state to another.
func CanTransition(from, to WorkflowState) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s WorkflowState) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// StateTransition is an append-only record of one workflow state change. FromState is nil
// for the initial CREATED record.
type StateTransition struct {
	ID            uuid.UUID
	TransactionID string
	FromState     *WorkflowState
	ToState       WorkflowState
	Reason        string
	CreatedAt     time.Time
}

// NewInitialTransition records the creation of a transaction.
func NewInitialTransition(transactionID string) *StateTransition {
	return &StateTransition{
		ID:            uuid.Must(uuid.NewV7()),
		TransactionID: transactionID,
		ToState:       StateCreated,
		Reason:        "transaction created",
		CreatedAt:     time.Now().UTC(),
	}
}

// NewStateTransition validates and records a state change.
func NewStateTransition(transactionID string, from, to WorkflowState, reason string) (*StateTransition, error) {
	if !CanTransition(from, to) {
		return nil, apperrors.Wrapf(ErrInvalidStateTransition, "%s -> %s", from, to)
	}

	return &StateTransition{
		ID:            uuid.Must(uuid.NewV7()),
		TransactionID: transactionID,
		FromState:     &from,
		ToState:       to,
		Reason:        reason,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
