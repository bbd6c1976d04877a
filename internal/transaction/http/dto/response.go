package dto

import (
	"time"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/httputil"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// CreateTransactionResponse is returned by POST /v1/transactions.
type CreateTransactionResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
	TotalCost     string `json:"total_cost"`
	PaymentStatus string `json:"payment_status"`
	Message       string `json:"message"`
}

// MapCreateOutputToResponse converts the creation output to an API response.
func MapCreateOutputToResponse(output *transactionDomain.CreateTransactionOutput) CreateTransactionResponse {
	return CreateTransactionResponse{
		Success:       true,
		TransactionID: output.TransactionID,
		OrderID:       output.OrderID,
		TotalCost:     output.TotalCost.StringFixed(2),
		PaymentStatus: string(output.PaymentStatus),
		Message:       output.Message,
	}
}

// ConfirmPaymentResponse is returned by POST /v1/payments/confirm.
type ConfirmPaymentResponse struct {
	Success           bool                      `json:"success"`
	TransactionID     string                    `json:"transaction_id"`
	PaymentStatus     string                    `json:"payment_status"`
	PaymentID         string                    `json:"payment_id"`
	OrderConfirmation transactionDomain.Outcome `json:"order_confirmation"`
	Message           string                    `json:"message"`
}

// MapConfirmOutputToResponse converts the confirmation output to an API response.
func MapConfirmOutputToResponse(output *transactionDomain.ConfirmPaymentOutput) ConfirmPaymentResponse {
	return ConfirmPaymentResponse{
		Success:           true,
		TransactionID:     output.TransactionID,
		PaymentStatus:     string(output.PaymentStatus),
		PaymentID:         output.PaymentID,
		OrderConfirmation: output.OrderConfirmation,
		Message:           output.Message,
	}
}

// TransactionResponse represents a ledger row in API responses.
type TransactionResponse struct {
	TransactionID      string                             `json:"transaction_id"`
	ExternalOrderID    string                             `json:"external_order_id"`
	OrderID            *string                            `json:"order_id"`
	TotalCost          string                             `json:"total_cost"`
	PaymentStatus      string                             `json:"payment_status"`
	State              string                             `json:"state"`
	PaymentMethod      *string                            `json:"payment_method"`
	PaymentID          *string                            `json:"payment_id"`
	PaymentCompletedAt *time.Time                         `json:"payment_completed_at"`
	StockBefore        []collabDomain.StockLevel          `json:"stock_before"`
	StockAfter         []collabDomain.StockLevel          `json:"stock_after"`
	SourceSystem       string                             `json:"source_system"`
	RequestPayload     transactionDomain.OrderRequest     `json:"request_payload"`
	ResponsePayload    *transactionDomain.ResponsePayload `json:"response_payload"`
	ErrorDetails       *string                            `json:"error_details"`
	CreatedAt          time.Time                          `json:"created_at"`
	UpdatedAt          time.Time                          `json:"updated_at"`
}

// MapTransactionToResponse converts a domain transaction to an API response.
func MapTransactionToResponse(transaction *transactionDomain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      transaction.TransactionID,
		ExternalOrderID:    transaction.ExternalOrderID,
		OrderID:            transaction.OrderID,
		TotalCost:          transaction.TotalCost.StringFixed(2),
		PaymentStatus:      string(transaction.PaymentStatus),
		State:              string(transaction.State),
		PaymentMethod:      transaction.PaymentMethod,
		PaymentID:          transaction.PaymentID,
		PaymentCompletedAt: transaction.PaymentCompletedAt,
		StockBefore:        transaction.StockBefore,
		StockAfter:         transaction.StockAfter,
		SourceSystem:       transaction.SourceSystem,
		RequestPayload:     transaction.RequestPayload,
		ResponsePayload:    transaction.ResponsePayload,
		ErrorDetails:       transaction.ErrorDetails,
		CreatedAt:          transaction.CreatedAt,
		UpdatedAt:          transaction.UpdatedAt,
	}
}

// ListTransactionsResponse is a page of transactions, newest first.
type ListTransactionsResponse struct {
	Data []TransactionResponse `json:"data"`
	Meta httputil.PageMeta     `json:"meta"`
}

// MapTransactionsToListResponse converts a page of transactions to a list API response.
func MapTransactionsToListResponse(
	transactions []*transactionDomain.Transaction,
	offset, limit int,
) ListTransactionsResponse {
	data := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, MapTransactionToResponse(transaction))
	}
	return ListTransactionsResponse{
		Data: data,
		Meta: httputil.NewPageMeta(offset, limit, len(data)),
	}
}

// StateTransitionResponse represents one workflow state change.
type StateTransitionResponse struct {
	ID        string    `json:"id"`
	FromState *string   `json:"from_state"`
	ToState   string    `json:"to_state"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// ListStateTransitionsResponse is the workflow history of a transaction, oldest first.
type ListStateTransitionsResponse struct {
	Data []StateTransitionResponse `json:"data"`
}

// MapTransitionsToListResponse converts state transitions to a list API response.
func MapTransitionsToListResponse(transitions []*transactionDomain.StateTransition) ListStateTransitionsResponse {
	data := make([]StateTransitionResponse, 0, len(transitions))
	for _, transition := range transitions {
		var from *string
		if transition.FromState != nil {
			state := string(*transition.FromState)
			from = &state
		}
		data = append(data, StateTransitionResponse{
			ID:        transition.ID.String(),
			FromState: from,
			ToState:   string(transition.ToState),
			Reason:    transition.Reason,
			CreatedAt: transition.CreatedAt,
		})
	}
	return ListStateTransitionsResponse{Data: data}
}

// StatusStatisticsResponse aggregates the transactions sharing a payment status.
type StatusStatisticsResponse struct {
	PaymentStatus string `json:"payment_status"`
	Count         int64  `json:"count"`
	TotalCost     string `json:"total_cost"`
}

// StatisticsResponse is returned by GET /v1/statistics.
type StatisticsResponse struct {
	TotalTransactions int64                      `json:"total_transactions"`
	TotalRevenue      string                     `json:"total_revenue"`
	ByStatus          []StatusStatisticsResponse `json:"by_status"`
}

// MapStatisticsToResponse converts ledger statistics to an API response.
func MapStatisticsToResponse(stats *transactionDomain.Statistics) StatisticsResponse {
	byStatus := make([]StatusStatisticsResponse, 0, len(stats.ByStatus))
	for _, row := range stats.ByStatus {
		byStatus = append(byStatus, StatusStatisticsResponse{
			PaymentStatus: string(row.PaymentStatus),
			Count:         row.Count,
			TotalCost:     row.TotalCost.StringFixed(2),
		})
	}
	return StatisticsResponse{
		TotalTransactions: stats.TotalTransactions,
		TotalRevenue:      stats.TotalRevenue.StringFixed(2),
		ByStatus:          byStatus,
	}
}
