// Package dto provides data transfer objects for the transaction endpoints.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
	customValidation "github.com/allisson/stockpay/internal/validation"
)

// OrderItemRequest is one line of a create transaction request.
type OrderItemRequest struct {
	ProductID FlexibleID      `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
}

// Validate checks a single order line.
func (r OrderItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.Price, customValidation.PositiveDecimal),
	)
}

// CreateTransactionRequest is the body of POST /v1/transactions.
type CreateTransactionRequest struct {
	ExternalOrderID string             `json:"external_order_id"`
	SourceSystem    string             `json:"source_system"`
	CustomerID      FlexibleID         `json:"customerId"`
	CustomerName    string             `json:"customerName"`
	Notes           *string            `json:"notes"`
	ShippingAddress *string            `json:"shippingAddress"`
	TotalAmount     *decimal.Decimal   `json:"total_amount"`
	Items           []OrderItemRequest `json:"items"`
}

// Validate checks the request shape before any collaborator is called.
func (r *CreateTransactionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Items, validation.Required.Error("order must contain at least one item")),
		validation.Field(&r.TotalAmount, customValidation.NonNegativeDecimal),
		validation.Field(&r.ExternalOrderID, validation.Length(0, 255)),
		validation.Field(&r.SourceSystem, validation.Length(0, 100), customValidation.NoWhitespace),
	)
}

// ToDomain converts the request into the orchestrator order request.
func (r *CreateTransactionRequest) ToDomain() *transactionDomain.OrderRequest {
	items := make([]transactionDomain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, transactionDomain.OrderItem{
			ProductID: strings.TrimSpace(item.ProductID.String()),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Unit:      item.Unit,
		})
	}

	return &transactionDomain.OrderRequest{
		ExternalOrderID: r.ExternalOrderID,
		SourceSystem:    r.SourceSystem,
		CustomerID:      r.CustomerID.String(),
		CustomerName:    r.CustomerName,
		Notes:           r.Notes,
		ShippingAddress: r.ShippingAddress,
		TotalAmount:     r.TotalAmount,
		Items:           items,
	}
}

// ConfirmPaymentRequest is the body of POST /v1/payments/confirm.
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
	PaymentMethod string `json:"payment_method"`
}

// Validate checks the confirmation request.
func (r *ConfirmPaymentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TransactionID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.PaymentMethod, customValidation.PaymentMethod),
	)
}

// ToDomain converts the request into the orchestrator payment request.
func (r *ConfirmPaymentRequest) ToDomain() *transactionDomain.PaymentRequest {
	return &transactionDomain.PaymentRequest{
		TransactionID: strings.TrimSpace(r.TransactionID),
		PaymentMethod: r.PaymentMethod,
	}
}
