package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	apperrors "github.com/allisson/stockpay/internal/errors"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

var transactionColumnNames = []string{
	"transaction_id", "external_order_id", "order_id", "total_cost", "payment_status", "workflow_state",
	"payment_method", "payment_id", "payment_completed_at", "stock_before", "stock_after", "source_system",
	"request_payload", "response_payload", "error_details", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, mock
}

func newTestTransaction() *transactionDomain.Transaction {
	orderID := "42"
	now := time.Now().UTC()
	return &transactionDomain.Transaction{
		TransactionID:   "TXN-1700000000000-ABCDEF12",
		ExternalOrderID: "EXT-1700000000000",
		OrderID:         &orderID,
		TotalCost:       decimal.RequireFromString("150.00"),
		PaymentStatus:   transactionDomain.PaymentStatusPending,
		State:           transactionDomain.StatePaymentPending,
		StockBefore:     []collabDomain.StockLevel{{ProductID: "P1", AvailableStock: 10}},
		SourceSystem:    "EXTERNAL_SYSTEM",
		RequestPayload: transactionDomain.OrderRequest{
			Items: []transactionDomain.OrderItem{{ProductID: "P1", Quantity: 3, Price: decimal.NewFromInt(50)}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func transactionRow(rows *sqlmock.Rows, now time.Time) *sqlmock.Rows {
	return rows.AddRow(
		"TXN-1700000000000-ABCDEF12",
		"EXT-1700000000000",
		"42",
		"150.00",
		"SUCCESS",
		"PAYMENT_CONFIRMED",
		"BANK_TRANSFER",
		"PAY-9",
		now,
		[]byte(`[{"product_id":"P1","available_stock":10}]`),
		[]byte(`[{"product_id":"P1","available_stock":7}]`),
		"EXTERNAL_SYSTEM",
		[]byte(`{"items":[{"product_id":"P1","quantity":3,"price":"50"}]}`),
		[]byte(`{"payment":{"payment_id":"PAY-9","status":"SUCCESS"},"stock":{"updated":true,"updated_stock":[]},"order_confirmation":{"applied":true}}`),
		nil,
		now,
		now,
	)
}

func TestPostgreSQLTransactionRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTransactionRepository(db)
		transaction := newTestTransaction()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
			WithArgs(
				transaction.TransactionID,
				transaction.ExternalOrderID,
				"42",
				transaction.TotalCost,
				"PENDING",
				"PAYMENT_PENDING",
				nil,
				nil,
				nil,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				"EXTERNAL_SYSTEM",
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				nil,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, transaction)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateTransactionID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTransactionRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, newTestTransaction())

		assert.ErrorIs(t, err, transactionDomain.ErrTransactionAlreadyExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTransactionRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
			WillReturnError(errors.New("connection reset"))

		err := repo.Create(ctx, newTestTransaction())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create transaction")
	})
}

func TestPostgreSQLTransactionRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTransactionRepository(db)
		transaction := newTestTransaction()
		paymentID := "PAY-9"
		transaction.PaymentStatus = transactionDomain.PaymentStatusSuccess
		transaction.State = transactionDomain.StatePaymentConfirmed
		transaction.PaymentID = &paymentID
		transaction.ResponsePayload = &transactionDomain.ResponsePayload{
			OrderConfirmation: transactionDomain.Applied(),
		}

		mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions")).
			WithArgs(
				"SUCCESS",
				"PAYMENT_CONFIRMED",
				nil,
				"PAY-9",
				nil,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				nil,
				sqlmock.AnyArg(),
				transaction.TransactionID,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, transaction)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTransactionRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, newTestTransaction())

		assert.ErrorIs(t, err, transactionDomain.ErrTransactionNotFound)
	})
}

func TestPostgreSQLTransactionRepository_GetByTransactionID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTransactionRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE transaction_id = $1")).
			WithArgs("TXN-1700000000000-ABCDEF12").
			WillReturnRows(transactionRow(sqlmock.NewRows(transactionColumnNames), now))

		transaction, err := repo.GetByTransactionID(ctx, "TXN-1700000000000-ABCDEF12")

		require.NoError(t, err)
		assert.Equal(t, "42", *transaction.OrderID)
		assert.Equal(t, "150", transaction.TotalCost.String())
		assert.Equal(t, transactionDomain.PaymentStatusSuccess, transaction.PaymentStatus)
		assert.Equal(t, transactionDomain.StatePaymentConfirmed, transaction.State)
		assert.Equal(t, "BANK_TRANSFER", *transaction.PaymentMethod)
		require.Len(t, transaction.StockAfter, 1)
		assert.Equal(t, 7, transaction.StockAfter[0].AvailableStock)
		require.Len(t, transaction.RequestPayload.Items, 1)
		assert.Equal(t, 3, transaction.RequestPayload.Items[0].Quantity)
		require.NotNil(t, transaction.ResponsePayload)
		assert.Equal(t, "PAY-9", transaction.ResponsePayload.Payment.PaymentID)
		assert.True(t, transaction.ResponsePayload.OrderConfirmation.Applied)
		assert.Nil(t, transaction.ErrorDetails)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTransactionRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM transactions")).
			WithArgs("TXN-missing").
			WillReturnRows(sqlmock.NewRows(transactionColumnNames))

		transaction, err := repo.GetByTransactionID(ctx, "TXN-missing")

		assert.Nil(t, transaction)
		assert.ErrorIs(t, err, transactionDomain.ErrTransactionNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLTransactionRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLTransactionRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(50, 0).
		WillReturnRows(transactionRow(sqlmock.NewRows(transactionColumnNames), now))

	transactions, err := repo.List(context.Background(), 0, 50)

	require.NoError(t, err)
	assert.Len(t, transactions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTransactionRepository_Statistics(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLTransactionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY payment_status")).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "count", "sum"}).
			AddRow("FAILED", int64(1), "20.00").
			AddRow("SUCCESS", int64(3), "450.50"))

	stats, err := repo.Statistics(context.Background())

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, transactionDomain.PaymentStatusFailed, stats[0].PaymentStatus)
	assert.Equal(t, int64(3), stats[1].Count)
	assert.Equal(t, "450.5", stats[1].TotalCost.String())
}

func TestMySQLTransactionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLTransactionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), newTestTransaction())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLTransactionRepository_GetByTransactionID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLTransactionRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE transaction_id = ?")).
		WithArgs("TXN-1700000000000-ABCDEF12").
		WillReturnRows(transactionRow(sqlmock.NewRows(transactionColumnNames), now))

	transaction, err := repo.GetByTransactionID(context.Background(), "TXN-1700000000000-ABCDEF12")

	require.NoError(t, err)
	assert.Equal(t, "TXN-1700000000000-ABCDEF12", transaction.TransactionID)
}

func TestPostgreSQLStateTransitionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_Initial", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLStateTransitionRepository(db)
		transition := transactionDomain.NewInitialTransition("TXN-1")

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transaction_state_transitions")).
			WithArgs(transition.ID, "TXN-1", nil, "CREATED", "transaction created", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, transition)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListByTransaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLStateTransitionRepository(db)
		id1 := uuid.Must(uuid.NewV7())
		id2 := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM transaction_state_transitions")).
			WithArgs("TXN-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_id", "from_state", "to_state", "reason", "created_at"}).
				AddRow(id1.String(), "TXN-1", nil, "CREATED", "transaction created", now).
				AddRow(id2.String(), "TXN-1", "CREATED", "STOCK_CHECKED", "stock available", now))

		transitions, err := repo.ListByTransaction(ctx, "TXN-1")

		require.NoError(t, err)
		require.Len(t, transitions, 2)
		assert.Nil(t, transitions[0].FromState)
		assert.Equal(t, id1, transitions[0].ID)
		require.NotNil(t, transitions[1].FromState)
		assert.Equal(t, transactionDomain.StateCreated, *transitions[1].FromState)
		assert.Equal(t, transactionDomain.StateStockChecked, transitions[1].ToState)
	})
}

func TestMySQLStateTransitionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLStateTransitionRepository(db)
		transition, err := transactionDomain.NewStateTransition(
			"TXN-1",
			transactionDomain.StatePaymentPending,
			transactionDomain.StateFailed,
			"payment declined",
		)
		require.NoError(t, err)
		idBytes, err := transition.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transaction_state_transitions")).
			WithArgs(idBytes, "TXN-1", "PAYMENT_PENDING", "FAILED", "payment declined", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(ctx, transition)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListByTransaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLStateTransitionRepository(db)
		id := uuid.Must(uuid.NewV7())
		idBytes, err := id.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE transaction_id = ?")).
			WithArgs("TXN-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_id", "from_state", "to_state", "reason", "created_at"}).
				AddRow(idBytes, "TXN-1", nil, "CREATED", "transaction created", time.Now().UTC()))

		transitions, err := repo.ListByTransaction(ctx, "TXN-1")

		require.NoError(t, err)
		require.Len(t, transitions, 1)
		assert.Equal(t, id, transitions[0].ID)
	})
}
