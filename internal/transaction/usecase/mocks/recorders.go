package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

// MockAuditRecorder is a mock implementation of AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

// NewMockAuditRecorder creates a mock whose expectations are asserted on cleanup.
func NewMockAuditRecorder(t testingT) *MockAuditRecorder {
	m := &MockAuditRecorder{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditRecorder) Record(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockIntegrationRecorder is a mock implementation of IntegrationRecorder.
type MockIntegrationRecorder struct {
	mock.Mock
}

// NewMockIntegrationRecorder creates a mock whose expectations are asserted on cleanup.
func NewMockIntegrationRecorder(t testingT) *MockIntegrationRecorder {
	m := &MockIntegrationRecorder{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIntegrationRecorder) Record(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockConfirmationLocker is a mock implementation of ConfirmationLocker. The release
// function records a "Release" call.
type MockConfirmationLocker struct {
	mock.Mock
}

// NewMockConfirmationLocker creates a mock whose expectations are asserted on cleanup.
func NewMockConfirmationLocker(t testingT) *MockConfirmationLocker {
	m := &MockConfirmationLocker{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConfirmationLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		return m.MethodCalled("Release", ctx, key).Error(0)
	}, nil
}
