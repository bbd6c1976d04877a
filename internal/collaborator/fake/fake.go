// Package fake provides in-process collaborators that answer every call with a plausible
// success. They are selected by configuration for local runs and demos, and still record
// integration status entries through the same tracer as the HTTP clients.
package fake

import (
	"context"
	"fmt"
	"sync"
	"time"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/collaborator/transport"
)

// DefaultStock is the level every unknown product starts with.
const DefaultStock = 100

// Inventory keeps stock levels in memory.
type Inventory struct {
	mu     sync.Mutex
	levels map[string]int
	tracer *transport.Tracer
}

// NewInventory creates a fake inventory where every product starts at DefaultStock.
func NewInventory(tracer *transport.Tracer) *Inventory {
	return &Inventory{levels: make(map[string]int), tracer: tracer}
}

func (i *Inventory) level(productID string) int {
	if level, ok := i.levels[productID]; ok {
		return level
	}
	return DefaultStock
}

// CheckStock reports availability against the in-memory levels.
func (i *Inventory) CheckStock(ctx context.Context, items []collabDomain.StockItem) (*collabDomain.StockCheck, error) {
	start := time.Now()
	check := i.checkStock(items)
	i.tracer.Trace(ctx, collabDomain.OperationInventoryCheck, map[string]any{"items": items}, check, start, nil)
	return check, nil
}

func (i *Inventory) checkStock(items []collabDomain.StockItem) *collabDomain.StockCheck {
	i.mu.Lock()
	defer i.mu.Unlock()

	check := &collabDomain.StockCheck{Available: true, Stock: make([]collabDomain.StockLevel, 0, len(items))}
	for _, item := range items {
		level := i.level(item.ProductID)
		if item.Quantity > level {
			check.Available = false
		}
		check.Stock = append(check.Stock, collabDomain.StockLevel{ProductID: item.ProductID, AvailableStock: level})
	}
	return check
}

// DeductStock lowers the in-memory level. Levels never go below zero.
func (i *Inventory) DeductStock(
	ctx context.Context,
	deduction collabDomain.StockDeduction,
) (*collabDomain.StockLevel, error) {
	start := time.Now()

	i.mu.Lock()
	level := i.level(deduction.ProductID) - deduction.Quantity
	if level < 0 {
		level = 0
	}
	i.levels[deduction.ProductID] = level
	i.mu.Unlock()

	result := &collabDomain.StockLevel{ProductID: deduction.ProductID, AvailableStock: level}
	i.tracer.Trace(ctx, collabDomain.OperationInventoryDeduct, deduction, result, start, nil)
	return result, nil
}

// Orders accepts every order.
type Orders struct {
	mu       sync.Mutex
	sequence int
	statuses map[string]string
	tracer   *transport.Tracer
}

// NewOrders creates a fake order collaborator.
func NewOrders(tracer *transport.Tracer) *Orders {
	return &Orders{statuses: make(map[string]string), tracer: tracer}
}

// CreateOrder returns a pending order with a sequential id. The total is left to the caller.
func (o *Orders) CreateOrder(ctx context.Context, draft *collabDomain.OrderDraft) (*collabDomain.PlacedOrder, error) {
	start := time.Now()

	o.mu.Lock()
	o.sequence++
	order := &collabDomain.PlacedOrder{
		ID:        fmt.Sprintf("%d", o.sequence),
		Status:    "pending",
		CreatedAt: start.UTC().Format(time.RFC3339),
	}
	o.statuses[order.ID] = order.Status
	o.mu.Unlock()

	o.tracer.Trace(ctx, collabDomain.OperationOrderCreate, draft, order, start, nil)
	return order, nil
}

// UpdateOrderStatus stores the status of a known order and rejects unknown ones.
func (o *Orders) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	start := time.Now()

	o.mu.Lock()
	_, ok := o.statuses[orderID]
	if ok {
		o.statuses[orderID] = status
	}
	o.mu.Unlock()

	var err error
	if !ok {
		err = collabDomain.NewRejectedError(
			collabDomain.ServiceOrder,
			collabDomain.OperationOrderStatusUpdate,
			fmt.Sprintf("order %s not found", orderID),
		)
	}
	o.tracer.Trace(ctx, collabDomain.OperationOrderStatusUpdate,
		map[string]string{"id": orderID, "status": status}, nil, start, err)
	return err
}

// Status returns the last status stored for an order.
func (o *Orders) Status(orderID string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	status, ok := o.statuses[orderID]
	return status, ok
}

// Payments confirms every payment.
type Payments struct {
	mu       sync.Mutex
	sequence int
	tracer   *transport.Tracer
}

// NewPayments creates a fake payment collaborator.
func NewPayments(tracer *transport.Tracer) *Payments {
	return &Payments{tracer: tracer}
}

// CreatePayment returns a confirmed receipt with a sequential PAY- id.
func (p *Payments) CreatePayment(
	ctx context.Context,
	charge *collabDomain.PaymentCharge,
) (*collabDomain.PaymentReceipt, error) {
	start := time.Now()

	p.mu.Lock()
	p.sequence++
	id := fmt.Sprintf("PAY-%d", p.sequence)
	p.mu.Unlock()

	processedAt := start.UTC()
	receipt := &collabDomain.PaymentReceipt{
		PaymentID:          id,
		Status:             collabDomain.PaymentOutcomeSuccess,
		CollaboratorStatus: "confirmed",
		Method:             collabDomain.MapPaymentMethod(charge.Method),
		ProcessedAt:        &processedAt,
	}

	p.tracer.Trace(ctx, collabDomain.OperationPaymentCreate, charge, receipt, start, nil)
	return receipt, nil
}
