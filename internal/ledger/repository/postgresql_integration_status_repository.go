package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/stockpay/internal/database"
	apperrors "github.com/allisson/stockpay/internal/errors"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

// PostgreSQLIntegrationStatusRepository implements IntegrationStatusEntry persistence for PostgreSQL.
type PostgreSQLIntegrationStatusRepository struct {
	db *sql.DB
}

// Create inserts a new integration status entry. Missing snapshots are stored as NULL.
func (p *PostgreSQLIntegrationStatusRepository) Create(
	ctx context.Context,
	entry *ledgerDomain.IntegrationStatusEntry,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO integration_status (id, transaction_id, service_name, operation, status, request_data,
			  response_data, error_message, duration_ms, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID,
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
func (p *PostgreSQLIntegrationStatusRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.IntegrationStatusEntry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, transaction_id, service_name, operation, status, request_data, response_data,
			  error_message, duration_ms, created_at
			  FROM integration_status
			  WHERE transaction_id = $1
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
		var status string
		var requestData, responseData []byte

		err := rows.Scan(
			&entry.ID,
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

// NewPostgreSQLIntegrationStatusRepository creates a new PostgreSQL IntegrationStatus repository.
func NewPostgreSQLIntegrationStatusRepository(db *sql.DB) *PostgreSQLIntegrationStatusRepository {
	return &PostgreSQLIntegrationStatusRepository{db: db}
}

// nullableJSON maps an empty snapshot to NULL.
func nullableJSON(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	return data
}
