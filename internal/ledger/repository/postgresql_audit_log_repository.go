// Package repository provides PostgreSQL and MySQL persistence for the append-only audit
// and integration status ledgers.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/stockpay/internal/database"
	apperrors "github.com/allisson/stockpay/internal/errors"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

// PostgreSQLAuditLogRepository implements AuditLogEntry persistence for PostgreSQL.
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// Create inserts a new audit log entry. Nil details are stored as NULL.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error {
	querier := database.GetTx(ctx, p.db)

	var detailsJSON []byte
	var err error

	if entry.Details != nil {
		detailsJSON, err = json.Marshal(entry.Details)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit log details")
		}
	}

	query := `INSERT INTO audit_logs (id, transaction_id, action, actor, details, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.TransactionID,
		entry.Action,
		entry.Actor,
		detailsJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// ListByTransaction returns the audit entries of a transaction, oldest first.
func (p *PostgreSQLAuditLogRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.AuditLogEntry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, transaction_id, action, actor, details, created_at
			  FROM audit_logs
			  WHERE transaction_id = $1
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
		var detailsJSON []byte

		err := rows.Scan(
			&entry.ID,
			&entry.TransactionID,
			&entry.Action,
			&entry.Actor,
			&detailsJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
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

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL AuditLog repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}

func unmarshalDetails(detailsJSON []byte, entry *ledgerDomain.AuditLogEntry) error {
	if detailsJSON == nil {
		return nil
	}
	if err := json.Unmarshal(detailsJSON, &entry.Details); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal audit log details")
	}
	return nil
}
