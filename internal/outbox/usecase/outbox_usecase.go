// Package usecase implements the outbox worker: it drains pending events written by the
// transaction workflow and replays the side effects that were skipped inline.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/stockpay/internal/database"
	"github.com/allisson/stockpay/internal/metrics"
	"github.com/allisson/stockpay/internal/outbox/domain"
)

// Config holds outbox use case configuration
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	ListByAggregateID(ctx context.Context, aggregateID string) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor defines the interface for processing different event types
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the interface for outbox use cases
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.OutboxEvent, error)
}

// OutboxUseCase implements business logic for processing outbox events
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	metrics        metrics.BusinessMetrics
	logger         *slog.Logger
}

// NewOutboxUseCase creates a new OutboxUseCase. A nil BusinessMetrics disables metrics and a
// nil logger discards worker logs.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *OutboxUseCase {
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		metrics:        businessMetrics,
		logger:         logger.With(slog.String("component", "outbox_worker")),
	}
}

// Start polls the outbox every Interval until ctx is cancelled. A failed poll is logged and
// the next tick tries again.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	uc.logger.Info("outbox worker started",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
		slog.Int("max_retries", uc.config.MaxRetries),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("outbox worker stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("outbox poll failed", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents claims up to BatchSize pending events and delivers them inside a single
// database transaction. Delivery failures are recorded on the event; only storage errors
// abort the batch.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}
		if len(events) > 0 {
			uc.logger.Debug("outbox batch claimed", slog.Int("count", len(events)))
		}

		for _, event := range events {
			uc.deliver(ctx, event)
			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByTransaction returns the outbox events emitted for a transaction, oldest first.
func (uc *OutboxUseCase) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*domain.OutboxEvent, error) {
	return uc.outboxRepo.ListByAggregateID(ctx, transactionID)
}

// deliver runs the processor for event and settles it in memory.
func (uc *OutboxUseCase) deliver(ctx context.Context, event *domain.OutboxEvent) {
	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.String("transaction_id", event.AggregateID),
	}

	start := time.Now()
	err := uc.eventProcessor.Process(ctx, event)
	metrics.Observe(ctx, uc.metrics, metrics.DomainOutbox, event.EventType, start, err)

	if err == nil {
		event.MarkProcessed(time.Now().UTC())
		uc.logger.Info("outbox event processed", attrs...)
		return
	}

	if event.MarkAttemptFailed(err, uc.config.MaxRetries) {
		uc.logger.Error("outbox event failed permanently",
			append(attrs, slog.Int("retries", event.Retries), slog.Any("error", err))...)
		return
	}
	uc.logger.Warn("outbox event will be retried",
		append(attrs, slog.Int("retries", event.Retries), slog.Any("error", err))...)
}
