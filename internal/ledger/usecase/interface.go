// Package usecase records and reads the audit and integration status ledgers.
package usecase

import (
	"context"

	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

// AuditLogRepository persists audit log entries.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*ledgerDomain.AuditLogEntry, error)
}

// IntegrationStatusRepository persists integration status entries.
type IntegrationStatusRepository interface {
	Create(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*ledgerDomain.IntegrationStatusEntry, error)
}

// AuditLogUseCase appends and lists audit log entries.
type AuditLogUseCase interface {
	// Record appends an entry. Entries are never updated or deleted.
	Record(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error

	// ListByTransaction returns the entries of a transaction, oldest first.
	ListByTransaction(ctx context.Context, transactionID string) ([]*ledgerDomain.AuditLogEntry, error)
}

// IntegrationStatusUseCase appends and lists integration status entries.
type IntegrationStatusUseCase interface {
	// Record appends an entry describing one collaborator call.
	Record(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) error

	// ListByTransaction returns the collaborator calls of a transaction, oldest first.
	ListByTransaction(ctx context.Context, transactionID string) ([]*ledgerDomain.IntegrationStatusEntry, error)
}
