package usecase

import (
	"context"
	"time"

	"github.com/allisson/stockpay/internal/metrics"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// transactionUseCaseWithMetrics decorates TransactionUseCase with metrics instrumentation.
type transactionUseCaseWithMetrics struct {
	next    TransactionUseCase
	metrics metrics.BusinessMetrics
}

// NewTransactionUseCaseWithMetrics wraps a TransactionUseCase with metrics recording.
func NewTransactionUseCaseWithMetrics(useCase TransactionUseCase, m metrics.BusinessMetrics) TransactionUseCase {
	return &transactionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for transaction creation.
func (t *transactionUseCaseWithMetrics) Create(
	ctx context.Context,
	request *transactionDomain.OrderRequest,
) (*transactionDomain.CreateTransactionOutput, error) {
	start := time.Now()
	output, err := t.next.Create(ctx, request)
	metrics.Observe(ctx, t.metrics, metrics.DomainTransactions, "transaction_create", start, err)
	return output, err
}

// ConfirmPayment records metrics for payment confirmation.
func (t *transactionUseCaseWithMetrics) ConfirmPayment(
	ctx context.Context,
	request *transactionDomain.PaymentRequest,
) (*transactionDomain.ConfirmPaymentOutput, error) {
	start := time.Now()
	output, err := t.next.ConfirmPayment(ctx, request)
	metrics.Observe(ctx, t.metrics, metrics.DomainTransactions, "payment_confirm", start, err)
	return output, err
}

// Get records metrics for transaction retrieval.
func (t *transactionUseCaseWithMetrics) Get(
	ctx context.Context,
	transactionID string,
) (*transactionDomain.Transaction, error) {
	start := time.Now()
	transaction, err := t.next.Get(ctx, transactionID)
	metrics.Observe(ctx, t.metrics, metrics.DomainTransactions, "transaction_get", start, err)
	return transaction, err
}

// List records metrics for transaction listing.
func (t *transactionUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*transactionDomain.Transaction, error) {
	start := time.Now()
	transactions, err := t.next.List(ctx, offset, limit)
	metrics.Observe(ctx, t.metrics, metrics.DomainTransactions, "transaction_list", start, err)
	return transactions, err
}

// Statistics records metrics for the ledger summary.
func (t *transactionUseCaseWithMetrics) Statistics(ctx context.Context) (*transactionDomain.Statistics, error) {
	start := time.Now()
	stats, err := t.next.Statistics(ctx)
	metrics.Observe(ctx, t.metrics, metrics.DomainTransactions, "transaction_statistics", start, err)
	return stats, err
}

// ListTransitions records metrics for workflow history retrieval.
func (t *transactionUseCaseWithMetrics) ListTransitions(
	ctx context.Context,
	transactionID string,
) ([]*transactionDomain.StateTransition, error) {
	start := time.Now()
	transitions, err := t.next.ListTransitions(ctx, transactionID)
	metrics.Observe(ctx, t.metrics, metrics.DomainTransactions, "transition_list", start, err)
	return transitions, err
}
