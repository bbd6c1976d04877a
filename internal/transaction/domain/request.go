package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	apperrors "github.com/allisson/stockpay/internal/errors"
)

// OrderItem is one line of an external order request.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit,omitempty"`
}

// OrderRequest is the purchase request submitted by an external system. It is stored
// verbatim as the transaction request payload.
type OrderRequest struct {
	ExternalOrderID string           `json:"external_order_id,omitempty"`
	SourceSystem    string           `json:"source_system,omitempty"`
	CustomerID      string           `json:"customerId,omitempty"`
	CustomerName    string           `json:"customerName,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	ShippingAddress *string          `json:"shippingAddress,omitempty"`
	TotalAmount     *decimal.Decimal `json:"total_amount,omitempty"`
	Items           []OrderItem      `json:"items"`
}

// Validate rejects requests without items and items lacking a product id, a positive
// quantity or a positive price.
func (r *OrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "order must contain at least one item")
	}

	for i, item := range r.Items {
		switch {
		case strings.TrimSpace(item.ProductID) == "":
			return apperrors.Wrapf(apperrors.ErrInvalidInput, "item at index %d missing product_id", i)
		case item.Quantity <= 0:
			return apperrors.Wrapf(apperrors.ErrInvalidInput, "item at index %d has invalid quantity", i)
		case !item.Price.IsPositive():
			return apperrors.Wrapf(apperrors.ErrInvalidInput, "item at index %d has invalid price", i)
		}
	}

	return nil
}

// WithDefaults returns a copy with the external order id and source system filled in.
func (r OrderRequest) WithDefaults(now time.Time, defaultSourceSystem string) OrderRequest {
	if r.ExternalOrderID == "" {
		r.ExternalOrderID = fmt.Sprintf("EXT-%d", now.UnixMilli())
	}
	if r.SourceSystem == "" {
		r.SourceSystem = defaultSourceSystem
	}
	return r
}

// StockItems returns the availability check lines for the request.
func (r *OrderRequest) StockItems() []collabDomain.StockItem {
	items := make([]collabDomain.StockItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, collabDomain.StockItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return items
}

// Deductions returns one stock deduction per item.
func (r *OrderRequest) Deductions() []collabDomain.StockDeduction {
	deductions := make([]collabDomain.StockDeduction, 0, len(r.Items))
	for _, item := range r.Items {
		deductions = append(deductions, collabDomain.StockDeduction{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return deductions
}

// OrderDraft translates the request into the order collaborator draft.
func (r *OrderRequest) OrderDraft() *collabDomain.OrderDraft {
	lines := make([]collabDomain.OrderLine, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, collabDomain.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Unit:      item.Unit,
		})
	}

	return &collabDomain.OrderDraft{
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		Lines:           lines,
		Notes:           r.Notes,
		ShippingAddress: r.ShippingAddress,
	}
}

// PaymentRequest confirms the payment of a pending transaction.
type PaymentRequest struct {
	TransactionID string
	PaymentMethod string
}

// Validate requires a transaction id.
func (r *PaymentRequest) Validate() error {
	if strings.TrimSpace(r.TransactionID) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "transaction_id is required")
	}
	return nil
}
