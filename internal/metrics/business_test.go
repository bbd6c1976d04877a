package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

// assertMetricLine matches a sample line; the exporter adds otel scope labels, so the
// label pattern is partial.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("bm_test")
	require.NoError(t, err)
	defer func() { assert.NoError(t, provider.Shutdown(context.Background())) }()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "bm_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, DomainTransactions, "transaction_create", StatusSuccess)
	bm.RecordOperation(ctx, DomainTransactions, "transaction_create", StatusSuccess)
	bm.RecordOperation(ctx, DomainTransactions, "transaction_create", StatusRejected)
	bm.RecordOperation(ctx, DomainCollaborators, "order_create", StatusUnavailable)
	bm.RecordDuration(ctx, DomainTransactions, "transaction_create", 50*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, DomainTransactions, "transaction_create", 70*time.Millisecond, StatusSuccess)

	output := scrape(t, provider)
	assertMetricLine(t, output, `bm_test_operations_total`,
		`domain="transactions".*operation="transaction_create".*status="success"`, `2`)
	assertMetricLine(t, output, `bm_test_operations_total`,
		`domain="transactions".*operation="transaction_create".*status="rejected"`, `1`)
	assertMetricLine(t, output, `bm_test_operations_total`,
		`domain="collaborators".*operation="order_create".*status="unavailable"`, `1`)
	assertMetricLine(t, output, `bm_test_operation_duration_seconds_count`,
		`domain="transactions".*operation="transaction_create".*status="success"`, `2`)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, StatusSuccess},
		{"unavailable", apperrors.Wrap(apperrors.ErrServiceUnavailable, "Order service connection refused"), StatusUnavailable},
		{"bad gateway", apperrors.Wrap(apperrors.ErrBadGateway, "Payment service rejected request"), StatusRejected},
		{"conflict", apperrors.Wrap(apperrors.ErrConflict, "insufficient stock"), StatusRejected},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "items: cannot be blank"), StatusRejected},
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "transaction not found"), StatusRejected},
		{"unknown", assert.AnError, StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusOf(tt.err))
		})
	}
}

func TestObserve(t *testing.T) {
	provider, err := NewProvider("observe_test")
	require.NoError(t, err)
	defer func() { assert.NoError(t, provider.Shutdown(context.Background())) }()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "observe_test")
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now().Add(-10 * time.Millisecond)

	Observe(ctx, bm, DomainCollaborators, "inventory_check", start, nil)
	Observe(ctx, bm, DomainCollaborators, "inventory_check", start, assert.AnError)
	assert.NotPanics(t, func() { Observe(ctx, nil, DomainCollaborators, "inventory_check", start, nil) })

	output := scrape(t, provider)
	assertMetricLine(t, output, `observe_test_operations_total`,
		`domain="collaborators".*operation="inventory_check".*status="success"`, `1`)
	assertMetricLine(t, output, `observe_test_operations_total`,
		`domain="collaborators".*operation="inventory_check".*status="error"`, `1`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noop := NewNoOpBusinessMetrics()
	assert.NotPanics(t, func() {
		noop.RecordOperation(context.Background(), DomainOutbox, "transaction.created", StatusSuccess)
		noop.RecordDuration(context.Background(), DomainOutbox, "transaction.created", time.Second, StatusError)
	})
}
