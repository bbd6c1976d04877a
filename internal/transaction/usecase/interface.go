// Package usecase orchestrates the transaction workflow: stock check, order placement,
// payment confirmation and stock deduction against the downstream collaborators, with the
// ledger, state transitions and outbox events written in one database transaction.
package usecase

import (
	"context"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
	outboxDomain "github.com/allisson/stockpay/internal/outbox/domain"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// TransactionRepository defines the interface for Transaction persistence operations.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *transactionDomain.Transaction) error
	Update(ctx context.Context, transaction *transactionDomain.Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*transactionDomain.Transaction, error)
	List(ctx context.Context, offset, limit int) ([]*transactionDomain.Transaction, error)
	Statistics(ctx context.Context) ([]transactionDomain.StatusStatistics, error)
}

// StateTransitionRepository defines the interface for the append-only workflow history.
type StateTransitionRepository interface {
	Create(ctx context.Context, transition *transactionDomain.StateTransition) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*transactionDomain.StateTransition, error)
}

// OutboxEventRepository is the write side of the outbox.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// InventoryService is the Inventory collaborator.
type InventoryService interface {
	CheckStock(ctx context.Context, items []collabDomain.StockItem) (*collabDomain.StockCheck, error)
	DeductStock(ctx context.Context, deduction collabDomain.StockDeduction) (*collabDomain.StockLevel, error)
}

// OrderService is the Order collaborator.
type OrderService interface {
	CreateOrder(ctx context.Context, draft *collabDomain.OrderDraft) (*collabDomain.PlacedOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
}

// PaymentService is the Payment collaborator.
type PaymentService interface {
	CreatePayment(ctx context.Context, charge *collabDomain.PaymentCharge) (*collabDomain.PaymentReceipt, error)
}

// AuditRecorder appends audit log entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error
}

// IntegrationRecorder appends integration status entries.
type IntegrationRecorder interface {
	Record(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) error
}

// ConfirmationLocker serializes payment confirmations of the same transaction. Acquire
// returns an error wrapping errors.ErrConflict when the lock is held elsewhere.
type ConfirmationLocker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// TransactionUseCase defines the interface for the transaction workflow.
type TransactionUseCase interface {
	// Create checks stock, places the order and records a PENDING transaction.
	Create(
		ctx context.Context,
		request *transactionDomain.OrderRequest,
	) (*transactionDomain.CreateTransactionOutput, error)

	// ConfirmPayment charges the payment, deducts the stock of every item and marks the
	// transaction SUCCESS. A failed charge or deduction marks it FAILED and returns the cause.
	ConfirmPayment(
		ctx context.Context,
		request *transactionDomain.PaymentRequest,
	) (*transactionDomain.ConfirmPaymentOutput, error)

	Get(ctx context.Context, transactionID string) (*transactionDomain.Transaction, error)
	List(ctx context.Context, offset, limit int) ([]*transactionDomain.Transaction, error)
	Statistics(ctx context.Context) (*transactionDomain.Statistics, error)
	ListTransitions(ctx context.Context, transactionID string) ([]*transactionDomain.StateTransition, error)
}
