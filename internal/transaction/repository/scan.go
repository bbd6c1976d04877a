// Package repository provides PostgreSQL and MySQL persistence for transactions and their
// workflow state transitions.
package repository

import (
	"database/sql"
	"encoding/json"

	apperrors "github.com/allisson/stockpay/internal/errors"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

const transactionColumns = `transaction_id, external_order_id, order_id, total_cost, payment_status, workflow_state,
			  payment_method, payment_id, payment_completed_at, stock_before, stock_after, source_system,
			  request_payload, response_payload, error_details, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// jsonColumns holds the encoded JSON columns of a transaction row. Nil slices are stored as NULL.
type jsonColumns struct {
	stockBefore []byte
	stockAfter  []byte
	request     []byte
	response    []byte
}

func encodeJSONColumns(transaction *transactionDomain.Transaction) (*jsonColumns, error) {
	var columns jsonColumns
	var err error

	if transaction.StockBefore != nil {
		if columns.stockBefore, err = json.Marshal(transaction.StockBefore); err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal stock before")
		}
	}
	if transaction.StockAfter != nil {
		if columns.stockAfter, err = json.Marshal(transaction.StockAfter); err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal stock after")
		}
	}
	if columns.request, err = json.Marshal(transaction.RequestPayload); err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal request payload")
	}
	if transaction.ResponsePayload != nil {
		if columns.response, err = json.Marshal(transaction.ResponsePayload); err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal response payload")
		}
	}

	return &columns, nil
}

func scanTransaction(scanner rowScanner) (*transactionDomain.Transaction, error) {
	var transaction transactionDomain.Transaction
	var paymentStatus, workflowState string
	var columns jsonColumns

	err := scanner.Scan(
		&transaction.TransactionID,
		&transaction.ExternalOrderID,
		&transaction.OrderID,
		&transaction.TotalCost,
		&paymentStatus,
		&workflowState,
		&transaction.PaymentMethod,
		&transaction.PaymentID,
		&transaction.PaymentCompletedAt,
		&columns.stockBefore,
		&columns.stockAfter,
		&transaction.SourceSystem,
		&columns.request,
		&columns.response,
		&transaction.ErrorDetails,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, transactionDomain.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan transaction")
	}

	transaction.PaymentStatus = transactionDomain.PaymentStatus(paymentStatus)
	transaction.State = transactionDomain.WorkflowState(workflowState)

	if columns.stockBefore != nil {
		if err := json.Unmarshal(columns.stockBefore, &transaction.StockBefore); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal stock before")
		}
	}
	if columns.stockAfter != nil {
		if err := json.Unmarshal(columns.stockAfter, &transaction.StockAfter); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal stock after")
		}
	}
	if columns.request != nil {
		if err := json.Unmarshal(columns.request, &transaction.RequestPayload); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal request payload")
		}
	}
	if columns.response != nil {
		transaction.ResponsePayload = &transactionDomain.ResponsePayload{}
		if err := json.Unmarshal(columns.response, transaction.ResponsePayload); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal response payload")
		}
	}

	return &transaction, nil
}

func scanTransactions(rows *sql.Rows) ([]*transactionDomain.Transaction, error) {
	transactions := make([]*transactionDomain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate transactions")
	}

	return transactions, nil
}

func scanStatistics(rows *sql.Rows) ([]transactionDomain.StatusStatistics, error) {
	stats := make([]transactionDomain.StatusStatistics, 0)
	for rows.Next() {
		var row transactionDomain.StatusStatistics
		var paymentStatus string

		if err := rows.Scan(&paymentStatus, &row.Count, &row.TotalCost); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan transaction statistics")
		}

		row.PaymentStatus = transactionDomain.PaymentStatus(paymentStatus)
		stats = append(stats, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate transaction statistics")
	}

	return stats, nil
}
