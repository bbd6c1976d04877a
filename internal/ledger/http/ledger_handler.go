// Package http exposes the per transaction ledgers over HTTP.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/stockpay/internal/httputil"
	"github.com/allisson/stockpay/internal/ledger/http/dto"
	ledgerUseCase "github.com/allisson/stockpay/internal/ledger/usecase"
	outboxDomain "github.com/allisson/stockpay/internal/outbox/domain"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// TransactionFinder resolves a transaction so unknown ids answer 404 instead of an empty list.
type TransactionFinder interface {
	Get(ctx context.Context, transactionID string) (*transactionDomain.Transaction, error)
}

// EventLister lists the outbox events emitted for a transaction.
type EventLister interface {
	ListByTransaction(ctx context.Context, transactionID string) ([]*outboxDomain.OutboxEvent, error)
}

// LedgerHandler serves the audit trail, the collaborator calls and the outbox events of a
// transaction.
type LedgerHandler struct {
	transactions TransactionFinder
	auditLogs    ledgerUseCase.AuditLogUseCase
	integrations ledgerUseCase.IntegrationStatusUseCase
	events       EventLister
	logger       *slog.Logger
}

// NewLedgerHandler creates a new ledger handler with required dependencies.
func NewLedgerHandler(
	transactions TransactionFinder,
	auditLogs ledgerUseCase.AuditLogUseCase,
	integrations ledgerUseCase.IntegrationStatusUseCase,
	events EventLister,
	logger *slog.Logger,
) *LedgerHandler {
	return &LedgerHandler{
		transactions: transactions,
		auditLogs:    auditLogs,
		integrations: integrations,
		events:       events,
		logger:       logger,
	}
}

// AuditLogsHandler lists the audit trail of a transaction, oldest first.
// GET /v1/transactions/:id/audit-logs
func (h *LedgerHandler) AuditLogsHandler(c *gin.Context) {
	transactionID, ok := h.resolve(c)
	if !ok {
		return
	}

	entries, err := h.auditLogs.ListByTransaction(c.Request.Context(), transactionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditLogsToListResponse(entries))
}

// IntegrationsHandler lists every collaborator call made for a transaction, oldest first.
// A creation that failed leaves entries under an id with no transaction row, so the id is
// only resolved when nothing was recorded for it.
// GET /v1/transactions/:id/integrations
func (h *LedgerHandler) IntegrationsHandler(c *gin.Context) {
	transactionID := c.Param("id")

	entries, err := h.integrations.ListByTransaction(c.Request.Context(), transactionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if len(entries) == 0 {
		if _, ok := h.resolve(c); !ok {
			return
		}
	}

	c.JSON(http.StatusOK, dto.MapIntegrationStatusToListResponse(entries))
}

// EventsHandler lists the outbox events of a transaction with their delivery status.
// GET /v1/transactions/:id/events
func (h *LedgerHandler) EventsHandler(c *gin.Context) {
	transactionID, ok := h.resolve(c)
	if !ok {
		return
	}

	events, err := h.events.ListByTransaction(c.Request.Context(), transactionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOutboxEventsToListResponse(events))
}

func (h *LedgerHandler) resolve(c *gin.Context) (string, bool) {
	transactionID := c.Param("id")
	if _, err := h.transactions.Get(c.Request.Context(), transactionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return "", false
	}
	return transactionID, true
}
