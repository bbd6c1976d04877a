// Package mocks provides mock implementations of the transaction use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	outboxDomain "github.com/allisson/stockpay/internal/outbox/domain"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates a mock whose expectations are asserted on cleanup.
func NewMockTransactionRepository(t testingT) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *transactionDomain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, transaction *transactionDomain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByTransactionID(
	ctx context.Context,
	transactionID string,
) (*transactionDomain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transactionDomain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*transactionDomain.Transaction, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transactionDomain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Statistics(ctx context.Context) ([]transactionDomain.StatusStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]transactionDomain.StatusStatistics), args.Error(1)
}

// MockStateTransitionRepository is a mock implementation of StateTransitionRepository.
type MockStateTransitionRepository struct {
	mock.Mock
}

// NewMockStateTransitionRepository creates a mock whose expectations are asserted on cleanup.
func NewMockStateTransitionRepository(t testingT) *MockStateTransitionRepository {
	m := &MockStateTransitionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStateTransitionRepository) Create(
	ctx context.Context,
	transition *transactionDomain.StateTransition,
) error {
	args := m.Called(ctx, transition)
	return args.Error(0)
}

func (m *MockStateTransitionRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*transactionDomain.StateTransition, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transactionDomain.StateTransition), args.Error(1)
}

// MockOutboxEventRepository is a mock implementation of OutboxEventRepository.
type MockOutboxEventRepository struct {
	mock.Mock
}

// NewMockOutboxEventRepository creates a mock whose expectations are asserted on cleanup.
func NewMockOutboxEventRepository(t testingT) *MockOutboxEventRepository {
	m := &MockOutboxEventRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
