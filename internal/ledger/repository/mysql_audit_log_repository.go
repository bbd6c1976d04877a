package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/stockpay/internal/database"
	apperrors "github.com/allisson/stockpay/internal/errors"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

// MySQLAuditLogRepository implements AuditLogEntry persistence for MySQL.
// Entry ids are stored as BINARY(16).
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// Create inserts a new audit log entry. Nil details are stored as NULL.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error {
	querier := database.GetTx(ctx, m.db)

	var detailsJSON []byte
	var err error

	if entry.Details != nil {
		detailsJSON, err = json.Marshal(entry.Details)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit log details")
		}
	}

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit log id")
	}

	query := `INSERT INTO audit_logs (id, transaction_id, action, actor, details, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, entry.TransactionID, entry.Action, entry.Actor, detailsJSON, entry.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// ListByTransaction returns the audit entries of a transaction, oldest first.
func (m *MySQLAuditLogRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.AuditLogEntry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, transaction_id, action, actor, details, created_at
			  FROM audit_logs
			  WHERE transaction_id = ?
			  ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*ledgerDomain.AuditLogEntry, 0)
	for rows.Next() {
		var entry ledgerDomain.AuditLogEntry
		var id, detailsJSON []byte

		if err := rows.Scan(&id, &entry.TransactionID, &entry.Action, &entry.Actor, &detailsJSON, &entry.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}

		if err := entry.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit log id")
		}

		if err := unmarshalDetails(detailsJSON, &entry); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}

	return entries, nil
}

// NewMySQLAuditLogRepository creates a new MySQL AuditLog repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}
