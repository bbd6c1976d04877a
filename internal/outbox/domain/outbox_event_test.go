package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := NewOutboxEvent("TXN-1-AAAAAAAA", EventOrderConfirmationRequested, OrderConfirmationRequest{
		TransactionID: "TXN-1-AAAAAAAA",
		OrderID:       "42",
		Status:        "confirmed",
		Reason:        "Order service unavailable: timeout",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "TXN-1-AAAAAAAA", event.AggregateID)
	assert.Equal(t, EventOrderConfirmationRequested, event.EventType)
	assert.Equal(t, OutboxEventStatusPending, event.Status)
	assert.Zero(t, event.Retries)
	assert.JSONEq(
		t,
		`{"transaction_id":"TXN-1-AAAAAAAA","order_id":"42","status":"confirmed","reason":"Order service unavailable: timeout"}`,
		event.Payload,
	)
}

func TestNewOutboxEvent_EncodeError(t *testing.T) {
	event, err := NewOutboxEvent("TXN-1-AAAAAAAA", EventTransactionCreated, make(chan int))

	assert.Nil(t, event)
	assert.Error(t, err)
}

func TestOutboxEvent_MarkProcessed(t *testing.T) {
	event, err := NewOutboxEvent("TXN-1-AAAAAAAA", EventTransactionCreated, TransactionEvent{})
	require.NoError(t, err)
	previous := "Order service unavailable: timeout"
	event.LastError = &previous

	now := time.Now().UTC()
	event.MarkProcessed(now)

	assert.Equal(t, OutboxEventStatusProcessed, event.Status)
	require.NotNil(t, event.ProcessedAt)
	assert.Equal(t, now, *event.ProcessedAt)
	assert.Nil(t, event.LastError)
}

func TestOutboxEvent_MarkAttemptFailed(t *testing.T) {
	event, err := NewOutboxEvent("TXN-1-AAAAAAAA", EventOrderConfirmationRequested, OrderConfirmationRequest{})
	require.NoError(t, err)
	cause := errors.New("Order service unavailable: timeout")

	assert.False(t, event.MarkAttemptFailed(cause, 2))
	assert.Equal(t, OutboxEventStatusPending, event.Status)
	assert.Equal(t, 1, event.Retries)
	require.NotNil(t, event.LastError)
	assert.Equal(t, cause.Error(), *event.LastError)

	assert.True(t, event.MarkAttemptFailed(cause, 2))
	assert.Equal(t, OutboxEventStatusFailed, event.Status)
	assert.Equal(t, 2, event.Retries)
	assert.Nil(t, event.ProcessedAt)
}
