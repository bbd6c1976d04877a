// Package domain defines the wire-neutral types exchanged with the Order, Inventory and
// Payment collaborators, and the classified error every collaborator call returns.
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Service identifies a downstream collaborator in integration status entries.
type Service string

const (
	ServiceOrder     Service = "ORDER_SERVICE"
	ServiceInventory Service = "INVENTORY_SERVICE"
	ServicePayment   Service = "PAYMENT_SERVICE"
)

// Name returns the human readable name used in classified error messages.
func (s Service) Name() string {
	switch s {
	case ServiceOrder:
		return "Order"
	case ServiceInventory:
		return "Inventory"
	case ServicePayment:
		return "Payment"
	default:
		return string(s)
	}
}

// Operations recorded in integration status entries and metrics.
const (
	OperationInventoryCheck    = "inventory_check"
	OperationInventoryDeduct   = "inventory_deduct"
	OperationOrderCreate       = "order_create"
	OperationOrderStatusUpdate = "order_status_update"
	OperationPaymentCreate     = "payment_create"
)

// OrderStatusConfirmed is the order status requested after a successful payment.
const OrderStatusConfirmed = "confirmed"

// StockItem is one line of an availability check.
type StockItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// StockLevel is a collaborator-reported stock snapshot for one product.
type StockLevel struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name,omitempty"`
	AvailableStock int    `json:"available_stock"`
	ReservedStock  int    `json:"reserved_stock,omitempty"`
	Unit           string `json:"unit,omitempty"`
}

// StockCheck is the result of an availability check.
type StockCheck struct {
	Available bool         `json:"available"`
	Stock     []StockLevel `json:"stock"`
}

// StockDeduction removes Quantity units of ProductID from the inventory.
type StockDeduction struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderLine is one item of an order draft.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit,omitempty"`
}

// OrderDraft carries what the Order collaborator needs to create an order.
type OrderDraft struct {
	CustomerID      string      `json:"customer_id,omitempty"`
	CustomerName    string      `json:"customer_name,omitempty"`
	Lines           []OrderLine `json:"lines"`
	Notes           *string     `json:"notes,omitempty"`
	ShippingAddress *string     `json:"shipping_address,omitempty"`
}

// PlacedOrder is the order record returned by the Order collaborator.
type PlacedOrder struct {
	ID         string           `json:"id"`
	TotalPrice *decimal.Decimal `json:"total_price,omitempty"`
	Status     string           `json:"status"`
	CreatedAt  string           `json:"created_at,omitempty"`
}

// PaymentOutcome is the normalized status of a payment.
type PaymentOutcome string

const (
	PaymentOutcomeSuccess PaymentOutcome = "SUCCESS"
	PaymentOutcomePending PaymentOutcome = "PENDING"
	PaymentOutcomeFailed  PaymentOutcome = "FAILED"
)

// Accepted reports whether the orchestrator may continue after this outcome.
func (o PaymentOutcome) Accepted() bool {
	return o == PaymentOutcomeSuccess || o == PaymentOutcomePending
}

// PaymentCharge requests a payment for a placed order.
type PaymentCharge struct {
	TransactionID string          `json:"transaction_id"`
	OrderID       string          `json:"order_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"payment_method"`
}

// PaymentReceipt is the payment record returned by the Payment collaborator.
type PaymentReceipt struct {
	PaymentID          string         `json:"payment_id"`
	Status             PaymentOutcome `json:"status"`
	CollaboratorStatus string         `json:"collaborator_status,omitempty"`
	Method             string         `json:"payment_method,omitempty"`
	ProcessedAt        *time.Time     `json:"processed_at,omitempty"`
}

// MapPaymentStatus normalizes a payment record status reported by the Payment collaborator.
func MapPaymentStatus(status string) PaymentOutcome {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "confirmed", "paid", "success", "completed":
		return PaymentOutcomeSuccess
	case "failed", "cancelled", "canceled", "rejected":
		return PaymentOutcomeFailed
	default:
		return PaymentOutcomePending
	}
}

var paymentMethods = map[string]string{
	"BANK_TRANSFER": "transfer",
	"TRANSFER":      "transfer",
	"CASH":          "cash",
	"E_WALLET":      "e_wallet",
	"CREDIT_CARD":   "credit_card",
}

// MapPaymentMethod translates an orchestrator payment method code into the Payment
// collaborator vocabulary. Unknown codes are lowercased, an empty code means transfer.
func MapPaymentMethod(method string) string {
	method = strings.TrimSpace(method)
	if method == "" {
		return "transfer"
	}
	if mapped, ok := paymentMethods[strings.ToUpper(method)]; ok {
		return mapped
	}
	return strings.ToLower(method)
}
