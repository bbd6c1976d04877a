// Package domain defines the transaction ledger entity, its workflow state machine and the
// requests accepted by the orchestrator.
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
)

// PaymentStatus is the ledger-level payment status. It moves PENDING -> SUCCESS or
// PENDING -> FAILED and never leaves SUCCESS.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Transaction is one external purchase attempt. It is created once the order is placed,
// mutated at payment confirmation and never deleted.
type Transaction struct {
	TransactionID      string
	ExternalOrderID    string
	OrderID            *string
	TotalCost          decimal.Decimal
	PaymentStatus      PaymentStatus
	State              WorkflowState
	PaymentMethod      *string
	PaymentID          *string
	PaymentCompletedAt *time.Time
	StockBefore        []collabDomain.StockLevel
	StockAfter         []collabDomain.StockLevel
	SourceSystem       string
	RequestPayload     OrderRequest
	ResponsePayload    *ResponsePayload
	ErrorDetails       *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Transition moves the transaction to the given state and returns the record to persist
// alongside the row update.
func (t *Transaction) Transition(to WorkflowState, reason string) (*StateTransition, error) {
	transition, err := NewStateTransition(t.TransactionID, t.State, to, reason)
	if err != nil {
		return nil, err
	}
	t.State = to
	return transition, nil
}

// StockUpdate is the aggregated result of the per-item inventory deduction.
type StockUpdate struct {
	Updated      bool                      `json:"updated"`
	UpdatedStock []collabDomain.StockLevel `json:"updated_stock"`
}

// ResponsePayload is stored on the transaction once the payment is confirmed.
type ResponsePayload struct {
	Payment           *collabDomain.PaymentReceipt `json:"payment"`
	Stock             StockUpdate                  `json:"stock"`
	OrderConfirmation Outcome                      `json:"order_confirmation"`
}

// CreateTransactionOutput is returned by a successful transaction creation.
type CreateTransactionOutput struct {
	TransactionID string
	OrderID       string
	TotalCost     decimal.Decimal
	PaymentStatus PaymentStatus
	Message       string
}

// ConfirmPaymentOutput is returned by a successful payment confirmation.
type ConfirmPaymentOutput struct {
	TransactionID     string
	PaymentStatus     PaymentStatus
	PaymentID         string
	OrderConfirmation Outcome
	Message           string
}

// MoneyScale is the number of decimal places the ledger stores for amounts.
const MoneyScale = 2

// CalculateTotalCost prefers the total reported by the Order collaborator, then the total
// supplied by the caller, then the sum of price x quantity over the items. The result is
// rounded to MoneyScale so the quoted total is the one persisted and charged.
func CalculateTotalCost(items []OrderItem, provided, ordered *decimal.Decimal) decimal.Decimal {
	if ordered != nil && ordered.IsPositive() {
		return ordered.Round(MoneyScale)
	}
	if provided != nil && provided.IsPositive() {
		return provided.Round(MoneyScale)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(MoneyScale)
}
