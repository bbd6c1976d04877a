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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/stockpay/internal/outbox/domain"
)

var outboxColumns = []string{
	"id", "aggregate_id", "event_type", "payload", "status", "retries",
	"last_error", "processed_at", "created_at", "updated_at",
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

func newTestEvent(t *testing.T) *domain.OutboxEvent {
	t.Helper()

	event, err := domain.NewOutboxEvent("TXN-1-AAAAAAAA", domain.EventTransactionCreated, domain.TransactionEvent{
		TransactionID: "TXN-1-AAAAAAAA",
		PaymentStatus: "PENDING",
		State:         "PAYMENT_PENDING",
		TotalCost:     "20",
	})
	require.NoError(t, err)

	return event
}

func TestPostgreSQLOutboxEventRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)
	event := newTestEvent(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, event.AggregateID, event.EventType, event.Payload, event.Status,
			event.Retries, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), event)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOutboxEventRepository_Create_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), newTestEvent(t))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create outbox event")
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)

	id1 := uuid.Must(uuid.NewV7())
	id2 := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	rows := sqlmock.NewRows(outboxColumns).
		AddRow(id1.String(), "TXN-1-AAAAAAAA", domain.EventTransactionCreated, `{}`, "pending", 0, nil, nil, now, now).
		AddRow(id2.String(), "TXN-2-BBBBBBBB", domain.EventOrderConfirmationRequested, `{}`, "pending", 1, "timeout", nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs(domain.OutboxEventStatusPending, 10).
		WillReturnRows(rows)

	events, err := repo.GetPendingEvents(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, id1, events[0].ID)
	assert.Equal(t, "TXN-1-AAAAAAAA", events[0].AggregateID)
	assert.Equal(t, domain.OutboxEventStatusPending, events[0].Status)
	assert.Nil(t, events[0].LastError)
	assert.Equal(t, id2, events[1].ID)
	require.NotNil(t, events[1].LastError)
	assert.Equal(t, "timeout", *events[1].LastError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WillReturnRows(sqlmock.NewRows(outboxColumns))

	events, err := repo.GetPendingEvents(context.Background(), 10)

	assert.NoError(t, err)
	assert.NotNil(t, events)
	assert.Len(t, events, 0)
}

func TestPostgreSQLOutboxEventRepository_ListByAggregateID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)

	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE aggregate_id = $1")).
		WithArgs("TXN-1-AAAAAAAA").
		WillReturnRows(sqlmock.NewRows(outboxColumns).
			AddRow(id.String(), "TXN-1-AAAAAAAA", domain.EventTransactionPaymentConfirmed, `{}`, "processed", 0, nil, now, now, now))

	events, err := repo.ListByAggregateID(context.Background(), "TXN-1-AAAAAAAA")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.OutboxEventStatusProcessed, events[0].Status)
	assert.NotNil(t, events[0].ProcessedAt)
}

func TestPostgreSQLOutboxEventRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)
	event := newTestEvent(t)

	now := time.Now().UTC()
	event.Status = domain.OutboxEventStatusProcessed
	event.ProcessedAt = &now

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs(domain.OutboxEventStatusProcessed, 0, nil, sqlmock.AnyArg(), event.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), event)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newTestEvent(t)

	idBytes, err := event.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(idBytes, event.AggregateID, event.EventType, event.Payload, event.Status,
			event.Retries, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), event)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)

	id := uuid.Must(uuid.NewV7())
	idBytes, err := id.MarshalBinary()
	require.NoError(t, err)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs(domain.OutboxEventStatusPending, 5).
		WillReturnRows(sqlmock.NewRows(outboxColumns).
			AddRow(idBytes, "TXN-1-AAAAAAAA", domain.EventTransactionCreated, `{}`, "pending", 0, nil, nil, now, now))

	events, err := repo.GetPendingEvents(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_GetPendingEvents_InvalidID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WillReturnRows(sqlmock.NewRows(outboxColumns).
			AddRow([]byte{0x01}, "TXN-1-AAAAAAAA", domain.EventTransactionCreated, `{}`, "pending", 0, nil, nil, now, now))

	events, err := repo.GetPendingEvents(context.Background(), 5)

	assert.Nil(t, events)
	assert.Error(t, err)
}

func TestMySQLOutboxEventRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newTestEvent(t)

	lastError := "Order service unavailable: timeout"
	event.Retries = 2
	event.LastError = &lastError

	idBytes, err := event.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs(domain.OutboxEventStatusPending, 2, lastError, nil, idBytes).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(context.Background(), event)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
