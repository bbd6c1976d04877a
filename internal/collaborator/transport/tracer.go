package transport

import (
	"context"
	"log/slog"
	"time"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
	"github.com/allisson/stockpay/internal/metrics"
)

// IntegrationRecorder persists one integration status entry per collaborator call.
type IntegrationRecorder interface {
	Record(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) error
}

// Tracer records the outcome of every call made to one collaborator: an integration status
// entry, the collaborator metrics and a log line. Recording never fails the call.
type Tracer struct {
	service  collabDomain.Service
	recorder IntegrationRecorder
	metrics  metrics.BusinessMetrics
	logger   *slog.Logger
}

// NewTracer creates a tracer. recorder and businessMetrics may be nil.
func NewTracer(
	service collabDomain.Service,
	recorder IntegrationRecorder,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracer{
		service:  service,
		recorder: recorder,
		metrics:  businessMetrics,
		logger:   logger,
	}
}

// Trace records a call that started at start and finished with err. The response snapshot is
// only stored for successful calls.
func (t *Tracer) Trace(ctx context.Context, operation string, request, response any, start time.Time, err error) {
	if t == nil {
		return
	}

	duration := time.Since(start)
	transactionID, _ := collabDomain.TransactionIDFromContext(ctx)

	attrs := []any{
		slog.String("service", string(t.service)),
		slog.String("operation", operation),
		slog.String("transaction_id", transactionID),
		slog.Duration("duration", duration),
	}
	if err != nil {
		t.logger.Error("collaborator call failed", append(attrs, slog.Any("error", err))...)
	} else {
		t.logger.Debug("collaborator call succeeded", attrs...)
	}

	metrics.Observe(ctx, t.metrics, metrics.DomainCollaborators, operation, start, err)

	if t.recorder == nil {
		return
	}

	entry := ledgerDomain.NewIntegrationStatusEntry(
		transactionID,
		string(t.service),
		operation,
		request,
		response,
		err,
		duration,
	)
	if recordErr := t.recorder.Record(context.WithoutCancel(ctx), entry); recordErr != nil {
		t.logger.Warn("failed to record integration status",
			slog.String("service", string(t.service)),
			slog.String("operation", operation),
			slog.Any("error", recordErr),
		)
	}
}
