// Package domain defines the append-only ledger records written alongside transactions.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions.
const (
	ActionOrderCreated     = "ORDER_CREATED"
	ActionPaymentConfirmed = "PAYMENT_CONFIRMED"
	ActionPaymentFailed    = "PAYMENT_FAILED"
)

// ActorSystem is the actor of every workflow driven audit entry.
const ActorSystem = "SYSTEM"

// AuditLogEntry records a significant workflow event. Entries are never mutated or deleted.
type AuditLogEntry struct {
	ID            uuid.UUID
	TransactionID *string
	Action        string
	Actor         string
	Details       map[string]any
	CreatedAt     time.Time
}

// NewAuditLogEntry builds an entry with a UUIDv7 id and the current UTC time.
func NewAuditLogEntry(transactionID, action, actor string, details map[string]any) *AuditLogEntry {
	entry := &AuditLogEntry{
		ID:        uuid.Must(uuid.NewV7()),
		Action:    action,
		Actor:     actor,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	if transactionID != "" {
		entry.TransactionID = &transactionID
	}
	return entry
}
