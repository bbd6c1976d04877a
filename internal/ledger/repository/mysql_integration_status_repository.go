package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/stockpay/internal/database"
	apperrors "github.com/allisson/stockpay/internal/errors"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

// MySQLIntegrationStatusRepository implements IntegrationStatusEntry persistence for MySQL.
// Entry ids are stored as BINARY(16).
type MySQLIntegrationStatusRepository struct {
	db *sql.DB
}

// Create inserts a new integration status entry. Missing snapshots are stored as NULL.
func (m *MySQLIntegrationStatusRepository) Create(
	ctx context.Context,
	entry *ledgerDomain.IntegrationStatusEntry,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal integration status id")
	}

	query := `INSERT INTO integration_status (id, transaction_id, service_name, operation, status, request_data,
			  response_data, error_message, duration_ms, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		entry.TransactionID,
		entry.ServiceName,
		entry.Operation,
		string(entry.Status),
		nullableJSON(entry.RequestData),
		nullableJSON(entry.ResponseData),
		entry.ErrorMessage,
		entry.DurationMs,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create integration status")
	}

	return nil
}

// ListByTransaction returns the collaborator calls of a transaction, oldest first.
func (m *MySQLIntegrationStatusRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.IntegrationStatusEntry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, transaction_id, service_name, operation, status, request_data, response_data,
			  error_message, duration_ms, created_at
			  FROM integration_status
			  WHERE transaction_id = ?
			  ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list integration status")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*ledgerDomain.IntegrationStatusEntry, 0)
	for rows.Next() {
		var entry ledgerDomain.IntegrationStatusEntry
		var id, requestData, responseData []byte
		var status string

		err := rows.Scan(
			&id,
			&entry.TransactionID,
			&entry.ServiceName,
			&entry.Operation,
			&status,
			&requestData,
			&responseData,
			&entry.ErrorMessage,
			&entry.DurationMs,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan integration status")
		}

		if err := entry.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal integration status id")
		}

		entry.Status = ledgerDomain.IntegrationOutcome(status)
		entry.RequestData = requestData
		entry.ResponseData = responseData
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate integration status")
	}

	return entries, nil
}

// NewMySQLIntegrationStatusRepository creates a new MySQL IntegrationStatus repository.
func NewMySQLIntegrationStatusRepository(db *sql.DB) *MySQLIntegrationStatusRepository {
	return &MySQLIntegrationStatusRepository{db: db}
}
