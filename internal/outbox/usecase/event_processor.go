package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/database"
	"github.com/allisson/stockpay/internal/outbox/domain"
)

// OrderStatusUpdater is the part of the Order collaborator the processor replays.
type OrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
}

// TransactionEventProcessor replays order confirmations that were skipped during payment
// confirmation and logs the transaction lifecycle events.
type TransactionEventProcessor struct {
	orders OrderStatusUpdater
	logger *slog.Logger
}

// NewTransactionEventProcessor creates a new TransactionEventProcessor
func NewTransactionEventProcessor(orders OrderStatusUpdater, logger *slog.Logger) *TransactionEventProcessor {
	return &TransactionEventProcessor{
		orders: orders,
		logger: logger,
	}
}

// Process dispatches on the event type. Unknown event types are logged and acknowledged.
func (p *TransactionEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case domain.EventOrderConfirmationRequested:
		var payload domain.OrderConfirmationRequest
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", event.EventType, err)
		}
		if payload.OrderID == "" {
			return fmt.Errorf("%s event %s has no order id", event.EventType, event.ID)
		}

		status := payload.Status
		if status == "" {
			status = collabDomain.OrderStatusConfirmed
		}

		// The call happens even if the batch rolls back, so its integration entry is
		// written outside the batch transaction.
		callCtx := collabDomain.WithTransactionID(database.WithoutTx(ctx), payload.TransactionID)
		if err := p.orders.UpdateOrderStatus(callCtx, payload.OrderID, status); err != nil {
			return err
		}

		if p.logger != nil {
			p.logger.Info("order confirmation replayed",
				slog.String("transaction_id", payload.TransactionID),
				slog.String("order_id", payload.OrderID),
			)
		}

	case domain.EventTransactionCreated,
		domain.EventTransactionPaymentConfirmed,
		domain.EventTransactionPaymentFailed:
		var payload domain.TransactionEvent
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", event.EventType, err)
		}

		if p.logger != nil {
			p.logger.Info("transaction event",
				slog.String("event_type", event.EventType),
				slog.String("transaction_id", payload.TransactionID),
				slog.String("payment_status", payload.PaymentStatus),
				slog.String("state", payload.State),
			)
		}

	default:
		if p.logger != nil {
			p.logger.Warn("unknown event type", slog.String("event_type", event.EventType))
		}
	}

	return nil
}
