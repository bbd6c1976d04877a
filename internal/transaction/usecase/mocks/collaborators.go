package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
)

// MockInventoryService is a mock implementation of InventoryService.
type MockInventoryService struct {
	mock.Mock
}

// NewMockInventoryService creates a mock whose expectations are asserted on cleanup.
func NewMockInventoryService(t testingT) *MockInventoryService {
	m := &MockInventoryService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockInventoryService) CheckStock(
	ctx context.Context,
	items []collabDomain.StockItem,
) (*collabDomain.StockCheck, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collabDomain.StockCheck), args.Error(1)
}

func (m *MockInventoryService) DeductStock(
	ctx context.Context,
	deduction collabDomain.StockDeduction,
) (*collabDomain.StockLevel, error) {
	args := m.Called(ctx, deduction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collabDomain.StockLevel), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

// NewMockOrderService creates a mock whose expectations are asserted on cleanup.
func NewMockOrderService(t testingT) *MockOrderService {
	m := &MockOrderService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOrderService) CreateOrder(
	ctx context.Context,
	draft *collabDomain.OrderDraft,
) (*collabDomain.PlacedOrder, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collabDomain.PlacedOrder), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

// MockPaymentService is a mock implementation of PaymentService.
type MockPaymentService struct {
	mock.Mock
}

// NewMockPaymentService creates a mock whose expectations are asserted on cleanup.
func NewMockPaymentService(t testingT) *MockPaymentService {
	m := &MockPaymentService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPaymentService) CreatePayment(
	ctx context.Context,
	charge *collabDomain.PaymentCharge,
) (*collabDomain.PaymentReceipt, error) {
	args := m.Called(ctx, charge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collabDomain.PaymentReceipt), args.Error(1)
}
