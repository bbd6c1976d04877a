// Package payment is the Payment collaborator client.
package payment

import (
	"context"
	"strconv"
	"strings"
	"time"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/collaborator/graphql"
	"github.com/allisson/stockpay/internal/collaborator/transport"
)

const (
	defaultCustomerID   = 1
	defaultCustomerName = "Customer"
)

const createPaymentMutation = `
mutation CreatePayment($input: CreatePaymentInput!) {
	createPayment(input: $input) {
		success
		message
		payment {
			id
			orderId
			amount
			paymentMethod
			status
			createdAt
		}
	}
}`

type paymentPayload struct {
	Payment *struct {
		ID            transport.ID `json:"id"`
		PaymentMethod string       `json:"paymentMethod"`
		Status        string       `json:"status"`
		CreatedAt     string       `json:"createdAt"`
	} `json:"payment"`
}

// Client charges payments.
type Client struct {
	graphql *graphql.Client
	tracer  *transport.Tracer
}

// NewClient creates a Payment collaborator client.
func NewClient(cfg transport.Config, tracer *transport.Tracer) *Client {
	return &Client{
		graphql: graphql.NewClient(transport.NewClient(collabDomain.ServicePayment, cfg)),
		tracer:  tracer,
	}
}

// CreatePayment charges the order amount. The returned receipt status is normalized, a
// FAILED status is returned as a receipt and not as an error.
func (c *Client) CreatePayment(
	ctx context.Context,
	charge *collabDomain.PaymentCharge,
) (*collabDomain.PaymentReceipt, error) {
	start := time.Now()
	input := createPaymentInput(charge)

	var payload paymentPayload
	raw, err := c.graphql.Mutate(
		ctx,
		collabDomain.OperationPaymentCreate,
		graphql.Request{Query: createPaymentMutation, Variables: map[string]any{"input": input}},
		"createPayment",
		&payload,
	)
	if err == nil && (payload.Payment == nil || payload.Payment.ID == "") {
		err = collabDomain.NewRejectedError(
			collabDomain.ServicePayment,
			collabDomain.OperationPaymentCreate,
			"payment id missing in response",
		)
	}
	c.tracer.Trace(ctx, collabDomain.OperationPaymentCreate, input, raw, start, err)
	if err != nil {
		return nil, err
	}

	receipt := &collabDomain.PaymentReceipt{
		PaymentID:          string(payload.Payment.ID),
		Status:             collabDomain.MapPaymentStatus(payload.Payment.Status),
		CollaboratorStatus: payload.Payment.Status,
		Method:             payload.Payment.PaymentMethod,
	}
	if processedAt, err := time.Parse(time.RFC3339, payload.Payment.CreatedAt); err == nil {
		processedAt = processedAt.UTC()
		receipt.ProcessedAt = &processedAt
	}

	return receipt, nil
}

// createPaymentInput translates the charge into the collaborator's CreatePaymentInput.
func createPaymentInput(charge *collabDomain.PaymentCharge) map[string]any {
	customerName := charge.CustomerName
	if customerName == "" {
		customerName = defaultCustomerName
	}

	return map[string]any{
		"orderId":       atoiOr(charge.OrderID, 0),
		"customerId":    atoiOr(charge.CustomerID, defaultCustomerID),
		"customerName":  customerName,
		"amount":        charge.Amount.InexactFloat64(),
		"paymentMethod": collabDomain.MapPaymentMethod(charge.Method),
		"notes":         "Transaction: " + charge.TransactionID,
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return fallback
	}
	return n
}
