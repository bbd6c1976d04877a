// Package inventory is the Inventory collaborator client. Availability is checked over REST,
// stock is deducted one item at a time over GraphQL.
package inventory

import (
	"context"
	"strconv"
	"time"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/collaborator/graphql"
	"github.com/allisson/stockpay/internal/collaborator/transport"
)

// CheckStockPath is the REST availability endpoint.
const CheckStockPath = "/api/check-stock"

const updateStockMutation = `
mutation UpdateStock($input: UpdateStockInput!) {
	updateStock(input: $input) {
		success
		message
		item {
			id
			name
			quantity
			unit
		}
	}
}`

type checkStockRequest struct {
	Items []collabDomain.StockItem `json:"items"`
}

type stockLevel struct {
	ProductID      transport.ID `json:"product_id"`
	Name           string       `json:"name"`
	AvailableStock int          `json:"available_stock"`
	ReservedStock  int          `json:"reserved_stock"`
	Unit           string       `json:"unit"`
}

type checkStockResponse struct {
	Success   *bool        `json:"success"`
	Message   string       `json:"message"`
	Available bool         `json:"available"`
	Stock     []stockLevel `json:"stock"`
}

type updateStockPayload struct {
	Item *struct {
		ID       transport.ID `json:"id"`
		Name     string       `json:"name"`
		Quantity int          `json:"quantity"`
		Unit     string       `json:"unit"`
	} `json:"item"`
}

// Client checks and deducts stock.
type Client struct {
	checkTransport *transport.Client
	graphql        *graphql.Client
	tracer         *transport.Tracer
}

// NewClient creates an Inventory collaborator client. The availability check uses its own,
// usually shorter, timeout.
func NewClient(cfg transport.Config, checkTimeout time.Duration, tracer *transport.Tracer) *Client {
	checkCfg := cfg
	checkCfg.Timeout = checkTimeout

	return &Client{
		checkTransport: transport.NewClient(collabDomain.ServiceInventory, checkCfg),
		graphql:        graphql.NewClient(transport.NewClient(collabDomain.ServiceInventory, cfg)),
		tracer:         tracer,
	}
}

// CheckStock asks whether every item can be served.
func (c *Client) CheckStock(ctx context.Context, items []collabDomain.StockItem) (*collabDomain.StockCheck, error) {
	start := time.Now()
	request := checkStockRequest{Items: items}

	var response checkStockResponse
	err := c.checkTransport.PostJSON(ctx, collabDomain.OperationInventoryCheck, CheckStockPath, request, &response)
	if err == nil && response.Success != nil && !*response.Success {
		message := response.Message
		if message == "" {
			message = "stock check failed"
		}
		err = collabDomain.NewRejectedError(collabDomain.ServiceInventory, collabDomain.OperationInventoryCheck, message)
	}
	if err != nil {
		c.tracer.Trace(ctx, collabDomain.OperationInventoryCheck, request, nil, start, err)
		return nil, err
	}

	check := &collabDomain.StockCheck{
		Available: response.Available,
		Stock:     make([]collabDomain.StockLevel, 0, len(response.Stock)),
	}
	for _, level := range response.Stock {
		check.Stock = append(check.Stock, collabDomain.StockLevel{
			ProductID:      string(level.ProductID),
			Name:           level.Name,
			AvailableStock: level.AvailableStock,
			ReservedStock:  level.ReservedStock,
			Unit:           level.Unit,
		})
	}

	c.tracer.Trace(ctx, collabDomain.OperationInventoryCheck, request, check, start, nil)
	return check, nil
}

// DeductStock removes the deduction quantity from one product and returns its new level.
func (c *Client) DeductStock(
	ctx context.Context,
	deduction collabDomain.StockDeduction,
) (*collabDomain.StockLevel, error) {
	start := time.Now()
	input := map[string]any{
		"id":             deduction.ProductID,
		"quantityChange": -deduction.Quantity,
	}

	var payload updateStockPayload
	raw, err := c.graphql.Mutate(
		ctx,
		collabDomain.OperationInventoryDeduct,
		graphql.Request{Query: updateStockMutation, Variables: map[string]any{"input": input}},
		"updateStock",
		&payload,
	)
	if err == nil && payload.Item == nil {
		err = collabDomain.NewRejectedError(
			collabDomain.ServiceInventory,
			collabDomain.OperationInventoryDeduct,
			"item missing in response for product "+strconv.Quote(deduction.ProductID),
		)
	}
	c.tracer.Trace(ctx, collabDomain.OperationInventoryDeduct, input, raw, start, err)
	if err != nil {
		return nil, err
	}

	productID := string(payload.Item.ID)
	if productID == "" {
		productID = deduction.ProductID
	}

	return &collabDomain.StockLevel{
		ProductID:      productID,
		Name:           payload.Item.Name,
		AvailableStock: payload.Item.Quantity,
		Unit:           payload.Item.Unit,
	}, nil
}
