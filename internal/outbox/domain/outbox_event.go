// Package domain defines the outbox events emitted in the same database transaction as
// the ledger writes they describe.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus represents the status of an outbox event
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// Event types.
const (
	EventTransactionCreated          = "transaction.created"
	EventTransactionPaymentConfirmed = "transaction.payment_confirmed"
	EventTransactionPaymentFailed    = "transaction.payment_failed"
	EventOrderConfirmationRequested  = "order.confirmation_requested"
)

// OutboxEvent represents an event in the transactional outbox pattern. AggregateID is the
// transaction id the event belongs to.
type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOutboxEvent builds a pending event with a JSON encoded payload.
func NewOutboxEvent(aggregateID, eventType string, payload any) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}

	now := time.Now().UTC()
	return &OutboxEvent{
		ID:          uuid.Must(uuid.NewV7()),
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     string(data),
		Status:      OutboxEventStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkProcessed settles the event at now.
func (e *OutboxEvent) MarkProcessed(now time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &now
	e.LastError = nil
}

// MarkAttemptFailed counts a failed delivery attempt. The event stays pending until
// maxRetries attempts have failed and reports whether it was given up on.
func (e *OutboxEvent) MarkAttemptFailed(cause error, maxRetries int) bool {
	e.Retries++
	msg := cause.Error()
	e.LastError = &msg
	if e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
		return true
	}
	return false
}

// TransactionEvent is the payload of the transaction.* events.
type TransactionEvent struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id,omitempty"`
	PaymentStatus string `json:"payment_status"`
	State         string `json:"state"`
	TotalCost     string `json:"total_cost"`
	PaymentID     string `json:"payment_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// OrderConfirmationRequest is the payload of order.confirmation_requested. It is emitted when
// the best-effort order confirmation of a successful payment was skipped.
type OrderConfirmationRequest struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	Reason        string `json:"reason"`
}
