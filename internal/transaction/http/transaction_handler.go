// Package http provides the HTTP handlers of the transaction orchestrator.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/stockpay/internal/httputil"
	"github.com/allisson/stockpay/internal/transaction/http/dto"
	transactionUseCase "github.com/allisson/stockpay/internal/transaction/usecase"
	customValidation "github.com/allisson/stockpay/internal/validation"
)

// TransactionHandler handles HTTP requests for the transaction workflow.
type TransactionHandler struct {
	transactionUseCase transactionUseCase.TransactionUseCase
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler with required dependencies.
func NewTransactionHandler(
	transactionUseCase transactionUseCase.TransactionUseCase,
	logger *slog.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
		logger:             logger,
	}
}

// CreateHandler checks stock, places the order and opens a PENDING transaction.
// POST /v1/transactions - Returns 201 Created with the transaction id and total cost.
func (h *TransactionHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateTransactionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.transactionUseCase.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreateOutputToResponse(output))
}

// ConfirmPaymentHandler charges the payment and deducts the stock of a pending transaction.
// POST /v1/payments/confirm - Returns 200 OK. A duplicate confirmation answers 409 Conflict.
func (h *TransactionHandler) ConfirmPaymentHandler(c *gin.Context) {
	var req dto.ConfirmPaymentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.transactionUseCase.ConfirmPayment(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConfirmOutputToResponse(output))
}

// GetHandler returns a transaction by id.
// GET /v1/transactions/:id
func (h *TransactionHandler) GetHandler(c *gin.Context) {
	transaction, err := h.transactionUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionToResponse(transaction))
}

// ListHandler returns transactions newest first.
// GET /v1/transactions?offset=0&limit=50
func (h *TransactionHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	transactions, err := h.transactionUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionsToListResponse(transactions, offset, limit))
}

// ListTransitionsHandler returns the workflow history of a transaction.
// GET /v1/transactions/:id/transitions
func (h *TransactionHandler) ListTransitionsHandler(c *gin.Context) {
	transitions, err := h.transactionUseCase.ListTransitions(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransitionsToListResponse(transitions))
}

// StatisticsHandler summarizes the ledger by payment status.
// GET /v1/statistics
func (h *TransactionHandler) StatisticsHandler(c *gin.Context) {
	stats, err := h.transactionUseCase.Statistics(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatisticsToResponse(stats))
}
