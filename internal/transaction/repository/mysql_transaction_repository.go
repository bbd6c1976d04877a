package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/stockpay/internal/database"
	apperrors "github.com/allisson/stockpay/internal/errors"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// MySQLTransactionRepository implements Transaction persistence for MySQL.
// JSON snapshots are stored in JSON columns, nil snapshots as NULL.
type MySQLTransactionRepository struct {
	db *sql.DB
}

// Create inserts a new transaction. A duplicate transaction id returns ErrTransactionAlreadyExists.
func (p *MySQLTransactionRepository) Create(
	ctx context.Context,
	transaction *transactionDomain.Transaction,
) error {
	querier := database.GetTx(ctx, p.db)

	columns, err := encodeJSONColumns(transaction)
	if err != nil {
		return err
	}

	query := `INSERT INTO transactions (` + transactionColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		transaction.TransactionID,
		transaction.ExternalOrderID,
		transaction.OrderID,
		transaction.TotalCost,
		string(transaction.PaymentStatus),
		string(transaction.State),
		transaction.PaymentMethod,
		transaction.PaymentID,
		transaction.PaymentCompletedAt,
		columns.stockBefore,
		columns.stockAfter,
		transaction.SourceSystem,
		columns.request,
		columns.response,
		transaction.ErrorDetails,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return transactionDomain.ErrTransactionAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create transaction")
	}

	return nil
}

// Update writes the payment outcome columns of an existing transaction.
func (p *MySQLTransactionRepository) Update(
	ctx context.Context,
	transaction *transactionDomain.Transaction,
) error {
	querier := database.GetTx(ctx, p.db)

	columns, err := encodeJSONColumns(transaction)
	if err != nil {
		return err
	}

	query := `UPDATE transactions
			  SET payment_status = ?, workflow_state = ?, payment_method = ?, payment_id = ?,
			      payment_completed_at = ?, stock_after = ?, response_payload = ?, error_details = ?,
			      updated_at = ?
			  WHERE transaction_id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(transaction.PaymentStatus),
		string(transaction.State),
		transaction.PaymentMethod,
		transaction.PaymentID,
		transaction.PaymentCompletedAt,
		columns.stockAfter,
		columns.response,
		transaction.ErrorDetails,
		transaction.UpdatedAt,
		transaction.TransactionID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update transaction")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return transactionDomain.ErrTransactionNotFound
	}

	return nil
}

// GetByTransactionID retrieves a transaction by id. Returns ErrTransactionNotFound if absent.
func (p *MySQLTransactionRepository) GetByTransactionID(
	ctx context.Context,
	transactionID string,
) (*transactionDomain.Transaction, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + transactionColumns + `
			  FROM transactions
			  WHERE transaction_id = ?`

	return scanTransaction(querier.QueryRowContext(ctx, query, transactionID))
}

// List retrieves transactions newest first with offset/limit pagination.
func (p *MySQLTransactionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*transactionDomain.Transaction, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + transactionColumns + `
			  FROM transactions
			  ORDER BY created_at DESC, transaction_id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list transactions")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanTransactions(rows)
}

// Statistics counts transactions and sums their total cost per payment status.
func (p *MySQLTransactionRepository) Statistics(
	ctx context.Context,
) ([]transactionDomain.StatusStatistics, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT payment_status, COUNT(*), COALESCE(SUM(total_cost), 0)
			  FROM transactions
			  GROUP BY payment_status
			  ORDER BY payment_status`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get transaction statistics")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanStatistics(rows)
}

// NewMySQLTransactionRepository creates a new MySQL Transaction repository.
func NewMySQLTransactionRepository(db *sql.DB) *MySQLTransactionRepository {
	return &MySQLTransactionRepository{db: db}
}
