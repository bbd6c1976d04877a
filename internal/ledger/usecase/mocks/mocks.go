// Package mocks provides testify mocks for the ledger use cases and repositories.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAuditLogRepository is a mock implementation of AuditLogRepository.
type MockAuditLogRepository struct {
	mock.Mock
}

// NewMockAuditLogRepository creates a mock whose expectations are asserted on cleanup.
func NewMockAuditLogRepository(t testingT) *MockAuditLogRepository {
	m := &MockAuditLogRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.AuditLogEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.AuditLogEntry), args.Error(1)
}

// MockIntegrationStatusRepository is a mock implementation of IntegrationStatusRepository.
type MockIntegrationStatusRepository struct {
	mock.Mock
}

// NewMockIntegrationStatusRepository creates a mock whose expectations are asserted on cleanup.
func NewMockIntegrationStatusRepository(t testingT) *MockIntegrationStatusRepository {
	m := &MockIntegrationStatusRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIntegrationStatusRepository) Create(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockIntegrationStatusRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.IntegrationStatusEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.IntegrationStatusEntry), args.Error(1)
}

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase.
type MockAuditLogUseCase struct {
	mock.Mock
}

// NewMockAuditLogUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockAuditLogUseCase(t testingT) *MockAuditLogUseCase {
	m := &MockAuditLogUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditLogUseCase) Record(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogUseCase) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.AuditLogEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.AuditLogEntry), args.Error(1)
}

// MockIntegrationStatusUseCase is a mock implementation of IntegrationStatusUseCase.
type MockIntegrationStatusUseCase struct {
	mock.Mock
}

// NewMockIntegrationStatusUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockIntegrationStatusUseCase(t testingT) *MockIntegrationStatusUseCase {
	m := &MockIntegrationStatusUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIntegrationStatusUseCase) Record(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockIntegrationStatusUseCase) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.IntegrationStatusEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.IntegrationStatusEntry), args.Error(1)
}
