package domain

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

func decimalPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestCalculateTotalCost(t *testing.T) {
	items := []OrderItem{
		{ProductID: "P1", Quantity: 2, Price: decimal.NewFromInt(10)},
		{ProductID: "P2", Quantity: 1, Price: decimal.RequireFromString("2.50")},
	}

	tests := []struct {
		name     string
		provided *decimal.Decimal
		ordered  *decimal.Decimal
		expected string
	}{
		{"order total wins", decimalPtr("99"), decimalPtr("30"), "30"},
		{"caller total when order has none", decimalPtr("99"), nil, "99"},
		{"sum when no totals", nil, nil, "22.5"},
		{"zero order total is ignored", nil, decimalPtr("0"), "22.5"},
		{"order total rounded to cents", nil, decimalPtr("30.004"), "30"},
		{"caller total rounded to cents", decimalPtr("12.345"), nil, "12.35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := CalculateTotalCost(items, tt.provided, tt.ordered)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(total), total.String())
		})
	}

	t.Run("single item scenario totals 20", func(t *testing.T) {
		total := CalculateTotalCost(
			[]OrderItem{{ProductID: "P1", Quantity: 2, Price: decimal.NewFromInt(10)}},
			nil,
			nil,
		)
		assert.Equal(t, "20", total.String())
	})

	t.Run("fractional cents are rounded once on the sum", func(t *testing.T) {
		total := CalculateTotalCost(
			[]OrderItem{{ProductID: "P1", Quantity: 3, Price: decimal.RequireFromString("0.335")}},
			nil,
			nil,
		)
		assert.Equal(t, "1.01", total.StringFixed(MoneyScale))
		assert.True(t, total.Equal(total.Round(MoneyScale)))
	})
}

func TestOrderRequest_Validate(t *testing.T) {
	valid := OrderItem{ProductID: "P1", Quantity: 2, Price: decimal.NewFromInt(10)}

	tests := []struct {
		name    string
		items   []OrderItem
		message string
	}{
		{"no items", nil, "order must contain at least one item"},
		{"missing product id", []OrderItem{valid, {Quantity: 1, Price: decimal.NewFromInt(1)}}, "item at index 1 missing product_id"},
		{"zero quantity", []OrderItem{{ProductID: "P1", Price: decimal.NewFromInt(1)}}, "item at index 0 has invalid quantity"},
		{"negative quantity", []OrderItem{{ProductID: "P1", Quantity: -1, Price: decimal.NewFromInt(1)}}, "item at index 0 has invalid quantity"},
		{"zero price", []OrderItem{{ProductID: "P1", Quantity: 1}}, "item at index 0 has invalid price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &OrderRequest{Items: tt.items}
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	t.Run("valid", func(t *testing.T) {
		req := &OrderRequest{Items: []OrderItem{valid}}
		assert.NoError(t, req.Validate())
	})
}

func TestOrderRequest_WithDefaults(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	req := OrderRequest{Items: []OrderItem{{ProductID: "P1"}}}
	filled := req.WithDefaults(now, "EXTERNAL_SYSTEM")
	assert.Equal(t, "EXT-1700000000000", filled.ExternalOrderID)
	assert.Equal(t, "EXTERNAL_SYSTEM", filled.SourceSystem)
	assert.Empty(t, req.ExternalOrderID)

	kept := OrderRequest{ExternalOrderID: "SHOP-1", SourceSystem: "SHOP"}.WithDefaults(now, "EXTERNAL_SYSTEM")
	assert.Equal(t, "SHOP-1", kept.ExternalOrderID)
	assert.Equal(t, "SHOP", kept.SourceSystem)
}

func TestOrderRequest_Translations(t *testing.T) {
	notes := "leave at door"
	req := &OrderRequest{
		CustomerID:   "7",
		CustomerName: "Ana",
		Notes:        &notes,
		Items: []OrderItem{
			{ProductID: "P1", Name: "Flour", Quantity: 2, Price: decimal.NewFromInt(10), Unit: "kg"},
			{ProductID: "P2", Quantity: 1, Price: decimal.NewFromInt(5)},
		},
	}

	draft := req.OrderDraft()
	assert.Equal(t, "7", draft.CustomerID)
	assert.Equal(t, "Ana", draft.CustomerName)
	assert.Equal(t, &notes, draft.Notes)
	require.Len(t, draft.Lines, 2)
	assert.Equal(t, "Flour", draft.Lines[0].Name)
	assert.Equal(t, "P2", draft.Lines[1].ProductID)

	stock := req.StockItems()
	require.Len(t, stock, 2)
	assert.Equal(t, 2, stock[0].Quantity)

	deductions := req.Deductions()
	require.Len(t, deductions, 2)
	assert.Equal(t, "P2", deductions[1].ProductID)
	assert.Equal(t, 1, deductions[1].Quantity)
}

func TestPaymentRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PaymentRequest{TransactionID: "TXN-1-AAAAAAAA"}).Validate())

	err := (&PaymentRequest{TransactionID: "  "}).Validate()
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestNewTransactionID(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	id := NewTransactionID(now)
	assert.Regexp(t, regexp.MustCompile(`^TXN-1700000000123-[0-9A-F]{8}$`), id)
	assert.NotEqual(t, id, NewTransactionID(now))
}

func TestTransaction_Transition(t *testing.T) {
	txn := &Transaction{TransactionID: "TXN-1-AAAAAAAA", State: StatePaymentPending}

	transition, err := txn.Transition(StatePaymentConfirmed, "payment accepted")
	require.NoError(t, err)
	assert.Equal(t, StatePaymentConfirmed, txn.State)
	require.NotNil(t, transition.FromState)
	assert.Equal(t, StatePaymentPending, *transition.FromState)
	assert.Equal(t, StatePaymentConfirmed, transition.ToState)
	assert.Equal(t, "TXN-1-AAAAAAAA", transition.TransactionID)

	_, err = txn.Transition(StateFailed, "too late")
	assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	assert.Equal(t, StatePaymentConfirmed, txn.State)
}

func TestStockDeductionError(t *testing.T) {
	err := &StockDeductionError{Failures: []error{
		apperrors.Wrap(apperrors.ErrBadGateway, "P1 not found"),
		errors.New("P2 locked"),
	}}

	assert.Equal(t, "stock update failed: P1 not found: bad gateway, P2 locked", err.Error())
	assert.True(t, apperrors.Is(err, apperrors.ErrBadGateway))
}

func TestNewStatistics(t *testing.T) {
	stats := NewStatistics([]StatusStatistics{
		{PaymentStatus: PaymentStatusSuccess, Count: 2, TotalCost: decimal.NewFromInt(40)},
		{PaymentStatus: PaymentStatusPending, Count: 3, TotalCost: decimal.NewFromInt(60)},
		{PaymentStatus: PaymentStatusFailed, Count: 1, TotalCost: decimal.NewFromInt(5)},
	})

	assert.Equal(t, int64(6), stats.TotalTransactions)
	assert.Equal(t, "40", stats.TotalRevenue.String())

	empty := NewStatistics(nil)
	assert.Equal(t, int64(0), empty.TotalTransactions)
	assert.NotNil(t, empty.ByStatus)
}
