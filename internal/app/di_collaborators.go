package app

import (
	"fmt"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/collaborator/fake"
	"github.com/allisson/stockpay/internal/collaborator/inventory"
	"github.com/allisson/stockpay/internal/collaborator/order"
	"github.com/allisson/stockpay/internal/collaborator/payment"
	"github.com/allisson/stockpay/internal/collaborator/transport"
	transactionUseCase "github.com/allisson/stockpay/internal/transaction/usecase"
)

// InventoryService returns the Inventory collaborator, in-process when
// COLLABORATORS_FAKE is set.
func (c *Container) InventoryService() (transactionUseCase.InventoryService, error) {
	var err error
	c.inventoryServiceInit.Do(func() {
		c.inventoryService, err = c.initInventoryService()
		if err != nil {
			c.initErrors["inventoryService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["inventoryService"]; exists {
		return nil, storedErr
	}
	return c.inventoryService, nil
}

// OrderService returns the Order collaborator. The same instance serves the workflow and
// the outbox worker.
func (c *Container) OrderService() (transactionUseCase.OrderService, error) {
	var err error
	c.orderServiceInit.Do(func() {
		c.orderService, err = c.initOrderService()
		if err != nil {
			c.initErrors["orderService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["orderService"]; exists {
		return nil, storedErr
	}
	return c.orderService, nil
}

// PaymentService returns the Payment collaborator.
func (c *Container) PaymentService() (transactionUseCase.PaymentService, error) {
	var err error
	c.paymentServiceInit.Do(func() {
		c.paymentService, err = c.initPaymentService()
		if err != nil {
			c.initErrors["paymentService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["paymentService"]; exists {
		return nil, storedErr
	}
	return c.paymentService, nil
}

// tracer builds the tracer that records every call to service in integration_status.
func (c *Container) tracer(service collabDomain.Service) (*transport.Tracer, error) {
	recorder, err := c.IntegrationStatusUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get integration status use case for %s tracer: %w", service, err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for %s tracer: %w", service, err)
	}

	return transport.NewTracer(service, recorder, businessMetrics, c.Logger()), nil
}

func (c *Container) initInventoryService() (transactionUseCase.InventoryService, error) {
	tracer, err := c.tracer(collabDomain.ServiceInventory)
	if err != nil {
		return nil, err
	}

	if c.config.CollaboratorsFake {
		return fake.NewInventory(tracer), nil
	}

	cfg := transport.Config{BaseURL: c.config.InventoryServiceURL, Timeout: c.config.CollaboratorTimeout}
	return inventory.NewClient(cfg, c.config.InventoryCheckTimeout, tracer), nil
}

func (c *Container) initOrderService() (transactionUseCase.OrderService, error) {
	tracer, err := c.tracer(collabDomain.ServiceOrder)
	if err != nil {
		return nil, err
	}

	if c.config.CollaboratorsFake {
		return fake.NewOrders(tracer), nil
	}

	cfg := transport.Config{BaseURL: c.config.OrderServiceURL, Timeout: c.config.CollaboratorTimeout}
	return order.NewClient(cfg, tracer), nil
}

func (c *Container) initPaymentService() (transactionUseCase.PaymentService, error) {
	tracer, err := c.tracer(collabDomain.ServicePayment)
	if err != nil {
		return nil, err
	}

	if c.config.CollaboratorsFake {
		return fake.NewPayments(tracer), nil
	}

	cfg := transport.Config{BaseURL: c.config.PaymentServiceURL, Timeout: c.config.CollaboratorTimeout}
	return payment.NewClient(cfg, tracer), nil
}
