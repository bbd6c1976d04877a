package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// MockTransactionUseCase is a mock implementation of TransactionUseCase.
type MockTransactionUseCase struct {
	mock.Mock
}

// NewMockTransactionUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockTransactionUseCase(t testingT) *MockTransactionUseCase {
	m := &MockTransactionUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionUseCase) Create(
	ctx context.Context,
	request *transactionDomain.OrderRequest,
) (*transactionDomain.CreateTransactionOutput, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transactionDomain.CreateTransactionOutput), args.Error(1)
}

func (m *MockTransactionUseCase) ConfirmPayment(
	ctx context.Context,
	request *transactionDomain.PaymentRequest,
) (*transactionDomain.ConfirmPaymentOutput, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transactionDomain.ConfirmPaymentOutput), args.Error(1)
}

func (m *MockTransactionUseCase) Get(
	ctx context.Context,
	transactionID string,
) (*transactionDomain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transactionDomain.Transaction), args.Error(1)
}

func (m *MockTransactionUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*transactionDomain.Transaction, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transactionDomain.Transaction), args.Error(1)
}

func (m *MockTransactionUseCase) Statistics(ctx context.Context) (*transactionDomain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transactionDomain.Statistics), args.Error(1)
}

func (m *MockTransactionUseCase) ListTransitions(
	ctx context.Context,
	transactionID string,
) ([]*transactionDomain.StateTransition, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transactionDomain.StateTransition), args.Error(1)
}
