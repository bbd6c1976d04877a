package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/database"
	apperrors "github.com/allisson/stockpay/internal/errors"
	"github.com/allisson/stockpay/internal/idempotency"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
	outboxDomain "github.com/allisson/stockpay/internal/outbox/domain"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// Response messages.
const (
	MessageOrderCreated     = "Order created successfully. Please proceed to payment."
	MessagePaymentConfirmed = "Payment confirmed, stock updated, and order status updated successfully"
	MessagePaymentNoOrder   = "Payment confirmed and stock updated, order status update skipped"
)

// maxConcurrentDeductions bounds the parallel stock deduction calls of one confirmation.
const maxConcurrentDeductions = 8

// OperationTransactionCreate is the integration status operation of a failed creation.
const OperationTransactionCreate = "transaction_create"

// Repositories groups the persistence dependencies of the workflow.
type Repositories struct {
	Transactions TransactionRepository
	Transitions  StateTransitionRepository
	Outbox       OutboxEventRepository
}

// Collaborators groups the downstream services of the workflow.
type Collaborators struct {
	Inventory InventoryService
	Orders    OrderService
	Payments  PaymentService
}

// transactionUseCase implements the TransactionUseCase interface.
type transactionUseCase struct {
	txManager           database.TxManager
	repos               Repositories
	collaborators       Collaborators
	audit               AuditRecorder
	integrations        IntegrationRecorder
	locker              ConfirmationLocker
	defaultSourceSystem string
	logger              *slog.Logger
}

// Create checks stock, places the order and persists the PENDING transaction together with
// its state transitions and the transaction.created event.
func (t *transactionUseCase) Create(
	ctx context.Context,
	request *transactionDomain.OrderRequest,
) (*transactionDomain.CreateTransactionOutput, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orderRequest := request.WithDefaults(now, t.defaultSourceSystem)
	transactionID := transactionDomain.NewTransactionID(now)
	callCtx := collabDomain.WithTransactionID(context.WithoutCancel(ctx), transactionID)

	output, err := t.create(callCtx, transactionID, &orderRequest, now)
	if err != nil {
		t.recordIntegration(callCtx, ledgerDomain.NewIntegrationStatusEntry(
			transactionID,
			string(collabDomain.ServiceOrder),
			OperationTransactionCreate,
			orderRequest,
			nil,
			err,
			time.Since(now),
		))
		return nil, err
	}

	return output, nil
}

func (t *transactionUseCase) create(
	ctx context.Context,
	transactionID string,
	request *transactionDomain.OrderRequest,
	now time.Time,
) (*transactionDomain.CreateTransactionOutput, error) {
	transaction := &transactionDomain.Transaction{
		TransactionID:   transactionID,
		ExternalOrderID: request.ExternalOrderID,
		PaymentStatus:   transactionDomain.PaymentStatusPending,
		State:           transactionDomain.StateCreated,
		SourceSystem:    request.SourceSystem,
		RequestPayload:  *request,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	transitions := []*transactionDomain.StateTransition{transactionDomain.NewInitialTransition(transactionID)}

	check, err := t.collaborators.Inventory.CheckStock(ctx, request.StockItems())
	if err != nil {
		return nil, err
	}
	if !check.Available {
		return nil, transactionDomain.ErrInsufficientStock
	}
	transaction.StockBefore = check.Stock
	if err := advance(transaction, &transitions, transactionDomain.StateStockChecked, "stock available"); err != nil {
		return nil, err
	}

	order, err := t.collaborators.Orders.CreateOrder(ctx, request.OrderDraft())
	if err != nil {
		return nil, err
	}
	transaction.OrderID = &order.ID
	if err := advance(transaction, &transitions, transactionDomain.StateOrderPlaced, "order "+order.ID+" placed"); err != nil {
		return nil, err
	}

	transaction.TotalCost = transactionDomain.CalculateTotalCost(request.Items, request.TotalAmount, order.TotalPrice)
	if err := advance(transaction, &transitions, transactionDomain.StatePaymentPending, "awaiting payment"); err != nil {
		return nil, err
	}

	event, err := outboxDomain.NewOutboxEvent(
		transactionID,
		outboxDomain.EventTransactionCreated,
		transactionEvent(transaction, ""),
	)
	if err != nil {
		return nil, err
	}

	err = t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := t.repos.Transactions.Create(txCtx, transaction); err != nil {
			return err
		}
		for _, transition := range transitions {
			if err := t.repos.Transitions.Create(txCtx, transition); err != nil {
				return err
			}
		}
		return t.repos.Outbox.Create(txCtx, event)
	})
	if err != nil {
		return nil, err
	}

	t.recordAudit(ctx, ledgerDomain.NewAuditLogEntry(
		transactionID,
		ledgerDomain.ActionOrderCreated,
		ledgerDomain.ActorSystem,
		map[string]any{
			"order_id":     order.ID,
			"total_cost":   transaction.TotalCost.StringFixed(transactionDomain.MoneyScale),
			"order_status": order.Status,
		},
	))

	return &transactionDomain.CreateTransactionOutput{
		TransactionID: transactionID,
		OrderID:       order.ID,
		TotalCost:     transaction.TotalCost,
		PaymentStatus: transaction.PaymentStatus,
		Message:       MessageOrderCreated,
	}, nil
}

// ConfirmPayment charges the transaction, deducts the stock and marks it SUCCESS.
//
// Without a ConfirmationLocker two concurrent confirmations of the same PENDING transaction
// both pass the status check: both charge the payment and both record a transition.
func (t *transactionUseCase) ConfirmPayment(
	ctx context.Context,
	request *transactionDomain.PaymentRequest,
) (*transactionDomain.ConfirmPaymentOutput, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	callCtx := collabDomain.WithTransactionID(context.WithoutCancel(ctx), request.TransactionID)

	release, err := t.locker.Acquire(callCtx, request.TransactionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, transactionDomain.ErrConfirmationInProgress
		}
		return nil, apperrors.Wrap(apperrors.ErrServiceUnavailable, "failed to acquire confirmation lock")
	}
	defer func() {
		if err := release(callCtx); err != nil {
			t.logger.Warn("failed to release confirmation lock",
				slog.String("transaction_id", request.TransactionID),
				slog.Any("error", err),
			)
		}
	}()

	transaction, err := t.repos.Transactions.GetByTransactionID(callCtx, request.TransactionID)
	if err != nil {
		return nil, err
	}
	if transaction.PaymentStatus == transactionDomain.PaymentStatusSuccess || transaction.State.IsTerminal() {
		return nil, transactionDomain.ErrAlreadyProcessed
	}
	if !transactionDomain.CanTransition(transaction.State, transactionDomain.StatePaymentConfirmed) {
		return nil, apperrors.Wrapf(
			transactionDomain.ErrInvalidStateTransition,
			"%s -> %s",
			transaction.State,
			transactionDomain.StatePaymentConfirmed,
		)
	}

	receipt, levels, err := t.chargeAndDeduct(callCtx, transaction, request.PaymentMethod)
	if err != nil {
		t.markFailed(callCtx, transaction, request.PaymentMethod, err)
		return nil, err
	}

	outcome := t.confirmOrder(callCtx, transaction, receipt)

	now := time.Now().UTC()
	transaction.PaymentStatus = transactionDomain.PaymentStatusSuccess
	transaction.PaymentMethod = optional(request.PaymentMethod)
	transaction.PaymentID = &receipt.PaymentID
	transaction.PaymentCompletedAt = &now
	transaction.StockAfter = levels
	transaction.ErrorDetails = nil
	transaction.UpdatedAt = now
	transaction.ResponsePayload = &transactionDomain.ResponsePayload{
		Payment:           receipt,
		Stock:             transactionDomain.StockUpdate{Updated: true, UpdatedStock: levels},
		OrderConfirmation: outcome,
	}

	transition, err := transaction.Transition(
		transactionDomain.StatePaymentConfirmed,
		"payment "+receipt.PaymentID+" "+string(receipt.Status),
	)
	if err != nil {
		return nil, err
	}

	events := make([]*outboxDomain.OutboxEvent, 0, 2)
	event, err := outboxDomain.NewOutboxEvent(
		transaction.TransactionID,
		outboxDomain.EventTransactionPaymentConfirmed,
		transactionEvent(transaction, ""),
	)
	if err != nil {
		return nil, err
	}
	events = append(events, event)

	if !outcome.Applied && receipt.Status == collabDomain.PaymentOutcomeSuccess && transaction.OrderID != nil {
		replay, err := outboxDomain.NewOutboxEvent(
			transaction.TransactionID,
			outboxDomain.EventOrderConfirmationRequested,
			outboxDomain.OrderConfirmationRequest{
				TransactionID: transaction.TransactionID,
				OrderID:       *transaction.OrderID,
				Status:        collabDomain.OrderStatusConfirmed,
				Reason:        outcome.Reason,
			},
		)
		if err != nil {
			return nil, err
		}
		events = append(events, replay)
	}

	if err := t.persist(callCtx, transaction, transition, events); err != nil {
		return nil, err
	}

	t.recordAudit(callCtx, ledgerDomain.NewAuditLogEntry(
		transaction.TransactionID,
		ledgerDomain.ActionPaymentConfirmed,
		ledgerDomain.ActorSystem,
		map[string]any{
			"payment_id":           receipt.PaymentID,
			"payment_method":       request.PaymentMethod,
			"order_status_updated": outcome.Applied,
		},
	))

	t.logger.Info("payment confirmed",
		slog.String("transaction_id", transaction.TransactionID),
		slog.String("payment_id", receipt.PaymentID),
		slog.String("order_confirmation", outcome.String()),
	)

	message := MessagePaymentConfirmed
	if !outcome.Applied {
		message = MessagePaymentNoOrder + ": " + outcome.Reason
	}

	return &transactionDomain.ConfirmPaymentOutput{
		TransactionID:     transaction.TransactionID,
		PaymentStatus:     transaction.PaymentStatus,
		PaymentID:         receipt.PaymentID,
		OrderConfirmation: outcome,
		Message:           message,
	}, nil
}

// chargeAndDeduct runs the two steps whose failure marks the transaction FAILED.
func (t *transactionUseCase) chargeAndDeduct(
	ctx context.Context,
	transaction *transactionDomain.Transaction,
	paymentMethod string,
) (*collabDomain.PaymentReceipt, []collabDomain.StockLevel, error) {
	charge := &collabDomain.PaymentCharge{
		TransactionID: transaction.TransactionID,
		CustomerID:    transaction.RequestPayload.CustomerID,
		CustomerName:  transaction.RequestPayload.CustomerName,
		Amount:        transaction.TotalCost,
		Method:        paymentMethod,
	}
	if transaction.OrderID != nil {
		charge.OrderID = *transaction.OrderID
	}

	receipt, err := t.collaborators.Payments.CreatePayment(ctx, charge)
	if err != nil {
		return nil, nil, err
	}
	if !receipt.Status.Accepted() {
		return nil, nil, apperrors.Wrapf(
			transactionDomain.ErrPaymentNotAccepted,
			"payment processing failed with status %s",
			receipt.Status,
		)
	}

	levels, err := t.deductStock(ctx, transaction.RequestPayload.Deductions())
	if err != nil {
		return nil, nil, err
	}

	return receipt, levels, nil
}

// deductStock deducts every item concurrently, at most maxConcurrentDeductions at a time,
// and waits for all of them. Deductions that succeeded are kept even when another item
// fails; every failure is reported.
func (t *transactionUseCase) deductStock(
	ctx context.Context,
	deductions []collabDomain.StockDeduction,
) ([]collabDomain.StockLevel, error) {
	levels := make([]collabDomain.StockLevel, len(deductions))
	failures := make([]error, len(deductions))

	var g errgroup.Group
	g.SetLimit(maxConcurrentDeductions)
	for i, deduction := range deductions {
		g.Go(func() error {
			level, err := t.collaborators.Inventory.DeductStock(ctx, deduction)
			if err != nil {
				failures[i] = err
				return err
			}
			if level != nil {
				levels[i] = *level
			}
			return nil
		})
	}
	if err := g.Wait(); err == nil {
		return levels, nil
	}

	deductionErr := &transactionDomain.StockDeductionError{}
	for _, failure := range failures {
		if failure != nil {
			deductionErr.Failures = append(deductionErr.Failures, failure)
		}
	}
	return nil, deductionErr
}

// confirmOrder asks the Order collaborator to confirm the order of a successful payment.
// Failures are logged and reported as a skipped outcome.
func (t *transactionUseCase) confirmOrder(
	ctx context.Context,
	transaction *transactionDomain.Transaction,
	receipt *collabDomain.PaymentReceipt,
) transactionDomain.Outcome {
	if receipt.Status != collabDomain.PaymentOutcomeSuccess {
		return transactionDomain.Skipped("payment pending")
	}
	if transaction.OrderID == nil || *transaction.OrderID == "" {
		return transactionDomain.Skipped("no order id")
	}

	err := t.collaborators.Orders.UpdateOrderStatus(ctx, *transaction.OrderID, collabDomain.OrderStatusConfirmed)
	if err != nil {
		t.logger.Warn("order status update skipped",
			slog.String("transaction_id", transaction.TransactionID),
			slog.String("order_id", *transaction.OrderID),
			slog.Any("error", err),
		)
		return transactionDomain.Skipped(err.Error())
	}

	return transactionDomain.Applied()
}

// markFailed records the FAILED state of a confirmation. Persistence errors are logged so
// the caller still sees the original cause.
func (t *transactionUseCase) markFailed(
	ctx context.Context,
	transaction *transactionDomain.Transaction,
	paymentMethod string,
	cause error,
) {
	message := cause.Error()
	transaction.PaymentStatus = transactionDomain.PaymentStatusFailed
	transaction.ErrorDetails = &message
	transaction.UpdatedAt = time.Now().UTC()
	if method := optional(paymentMethod); method != nil {
		transaction.PaymentMethod = method
	}

	logger := t.logger.With(slog.String("transaction_id", transaction.TransactionID))

	transition, err := transaction.Transition(transactionDomain.StateFailed, message)
	if err != nil {
		logger.Error("failed to transition transaction to FAILED", slog.Any("error", err))
		return
	}

	event, err := outboxDomain.NewOutboxEvent(
		transaction.TransactionID,
		outboxDomain.EventTransactionPaymentFailed,
		transactionEvent(transaction, message),
	)
	if err != nil {
		logger.Error("failed to build payment failed event", slog.Any("error", err))
		return
	}

	if err := t.persist(ctx, transaction, transition, []*outboxDomain.OutboxEvent{event}); err != nil {
		logger.Error("failed to mark transaction as FAILED", slog.Any("error", err))
		return
	}

	t.recordAudit(ctx, ledgerDomain.NewAuditLogEntry(
		transaction.TransactionID,
		ledgerDomain.ActionPaymentFailed,
		ledgerDomain.ActorSystem,
		map[string]any{"error": message},
	))
}

// persist writes the row update, its transition and events atomically.
func (t *transactionUseCase) persist(
	ctx context.Context,
	transaction *transactionDomain.Transaction,
	transition *transactionDomain.StateTransition,
	events []*outboxDomain.OutboxEvent,
) error {
	return t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := t.repos.Transactions.Update(txCtx, transaction); err != nil {
			return err
		}
		if err := t.repos.Transitions.Create(txCtx, transition); err != nil {
			return err
		}
		for _, event := range events {
			if err := t.repos.Outbox.Create(txCtx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves a transaction by id.
func (t *transactionUseCase) Get(ctx context.Context, transactionID string) (*transactionDomain.Transaction, error) {
	return t.repos.Transactions.GetByTransactionID(ctx, transactionID)
}

// List retrieves transactions ordered by creation time descending.
func (t *transactionUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*transactionDomain.Transaction, error) {
	return t.repos.Transactions.List(ctx, offset, limit)
}

// Statistics summarizes the ledger by payment status.
func (t *transactionUseCase) Statistics(ctx context.Context) (*transactionDomain.Statistics, error) {
	rows, err := t.repos.Transactions.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	return transactionDomain.NewStatistics(rows), nil
}

// ListTransitions returns the workflow history of an existing transaction.
func (t *transactionUseCase) ListTransitions(
	ctx context.Context,
	transactionID string,
) ([]*transactionDomain.StateTransition, error) {
	if _, err := t.repos.Transactions.GetByTransactionID(ctx, transactionID); err != nil {
		return nil, err
	}
	return t.repos.Transitions.ListByTransaction(ctx, transactionID)
}

func (t *transactionUseCase) recordAudit(ctx context.Context, entry *ledgerDomain.AuditLogEntry) {
	if err := t.audit.Record(ctx, entry); err != nil {
		t.logger.Warn("failed to record audit log",
			slog.String("action", entry.Action),
			slog.Any("error", err),
		)
	}
}

func (t *transactionUseCase) recordIntegration(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) {
	if err := t.integrations.Record(ctx, entry); err != nil {
		t.logger.Warn("failed to record integration status",
			slog.String("service", entry.ServiceName),
			slog.String("operation", entry.Operation),
			slog.Any("error", err),
		)
	}
}

func advance(
	transaction *transactionDomain.Transaction,
	transitions *[]*transactionDomain.StateTransition,
	to transactionDomain.WorkflowState,
	reason string,
) error {
	transition, err := transaction.Transition(to, reason)
	if err != nil {
		return err
	}
	*transitions = append(*transitions, transition)
	return nil
}

func transactionEvent(transaction *transactionDomain.Transaction, errMessage string) outboxDomain.TransactionEvent {
	event := outboxDomain.TransactionEvent{
		TransactionID: transaction.TransactionID,
		PaymentStatus: string(transaction.PaymentStatus),
		State:         string(transaction.State),
		TotalCost:     transaction.TotalCost.StringFixed(2),
		Error:         errMessage,
	}
	if transaction.OrderID != nil {
		event.OrderID = *transaction.OrderID
	}
	if transaction.PaymentID != nil {
		event.PaymentID = *transaction.PaymentID
	}
	return event
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// NewTransactionUseCase creates a new TransactionUseCase. A nil locker disables the
// confirmation guard.
func NewTransactionUseCase(
	txManager database.TxManager,
	repos Repositories,
	collaborators Collaborators,
	audit AuditRecorder,
	integrations IntegrationRecorder,
	locker ConfirmationLocker,
	defaultSourceSystem string,
	logger *slog.Logger,
) TransactionUseCase {
	if locker == nil {
		locker = idempotency.NoopLocker{}
	}
	return &transactionUseCase{
		txManager:           txManager,
		repos:               repos,
		collaborators:       collaborators,
		audit:               audit,
		integrations:        integrations,
		locker:              locker,
		defaultSourceSystem: defaultSourceSystem,
		logger:              logger,
	}
}
