// Package order is the Order collaborator client. Orders are created and moved through their
// status over the collaborator's GraphQL endpoint.
package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/collaborator/graphql"
	"github.com/allisson/stockpay/internal/collaborator/transport"
)

const (
	defaultCustomerID   = 1
	defaultCustomerName = "Customer"
	defaultUnit         = "kg"
)

const createOrderMutation = `
mutation CreateOrder($input: CreateOrderInput!) {
	createOrder(input: $input) {
		success
		message
		order {
			id
			customerId
			customerName
			totalPrice
			status
			createdAt
		}
	}
}`

const updateOrderStatusMutation = `
mutation UpdateOrderStatus($id: ID!, $status: OrderStatus!) {
	updateOrderStatus(id: $id, status: $status) {
		success
		message
		order {
			id
			status
			updatedAt
		}
	}
}`

type orderPayload struct {
	Order *struct {
		ID         transport.ID     `json:"id"`
		TotalPrice *decimal.Decimal `json:"totalPrice"`
		Status     string           `json:"status"`
		CreatedAt  string           `json:"createdAt"`
	} `json:"order"`
}

// Client creates orders and updates their status.
type Client struct {
	graphql *graphql.Client
	tracer  *transport.Tracer
}

// NewClient creates an Order collaborator client.
func NewClient(cfg transport.Config, tracer *transport.Tracer) *Client {
	return &Client{
		graphql: graphql.NewClient(transport.NewClient(collabDomain.ServiceOrder, cfg)),
		tracer:  tracer,
	}
}

// CreateOrder places an order for the draft.
func (c *Client) CreateOrder(ctx context.Context, draft *collabDomain.OrderDraft) (*collabDomain.PlacedOrder, error) {
	start := time.Now()
	input := createOrderInput(draft)

	var payload orderPayload
	raw, err := c.graphql.Mutate(
		ctx,
		collabDomain.OperationOrderCreate,
		graphql.Request{Query: createOrderMutation, Variables: map[string]any{"input": input}},
		"createOrder",
		&payload,
	)
	if err == nil && (payload.Order == nil || payload.Order.ID == "") {
		err = collabDomain.NewRejectedError(collabDomain.ServiceOrder, collabDomain.OperationOrderCreate, "order id missing in response")
	}
	c.tracer.Trace(ctx, collabDomain.OperationOrderCreate, input, raw, start, err)
	if err != nil {
		return nil, err
	}

	return &collabDomain.PlacedOrder{
		ID:         string(payload.Order.ID),
		TotalPrice: payload.Order.TotalPrice,
		Status:     payload.Order.Status,
		CreatedAt:  payload.Order.CreatedAt,
	}, nil
}

// UpdateOrderStatus moves the order to status. The collaborator expects lowercase statuses.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	start := time.Now()
	variables := map[string]any{
		"id":     orderID,
		"status": strings.ToLower(status),
	}

	raw, err := c.graphql.Mutate(
		ctx,
		collabDomain.OperationOrderStatusUpdate,
		graphql.Request{Query: updateOrderStatusMutation, Variables: variables},
		"updateOrderStatus",
		nil,
	)
	c.tracer.Trace(ctx, collabDomain.OperationOrderStatusUpdate, variables, raw, start, err)
	return err
}

// createOrderInput translates the draft into the collaborator's CreateOrderInput. Product ids
// become numeric ingredient ids, missing names, units and customers get defaults.
func createOrderInput(draft *collabDomain.OrderDraft) map[string]any {
	items := make([]map[string]any, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		name := line.Name
		if name == "" {
			name = fmt.Sprintf("Product %s", line.ProductID)
		}
		unit := line.Unit
		if unit == "" {
			unit = defaultUnit
		}
		items = append(items, map[string]any{
			"ingredientId": atoiOr(line.ProductID, 0),
			"name":         name,
			"quantity":     line.Quantity,
			"price":        line.Price.InexactFloat64(),
			"unit":         unit,
		})
	}

	customerName := draft.CustomerName
	if customerName == "" {
		customerName = defaultCustomerName
	}

	return map[string]any{
		"customerId":      atoiOr(draft.CustomerID, defaultCustomerID),
		"customerName":    customerName,
		"items":           items,
		"notes":           draft.Notes,
		"shippingAddress": draft.ShippingAddress,
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return fallback
	}
	return n
}
