package domain

import "github.com/shopspring/decimal"

// StatusStatistics aggregates transactions sharing a payment status.
type StatusStatistics struct {
	PaymentStatus PaymentStatus
	Count         int64
	TotalCost     decimal.Decimal
}

// Statistics is the ledger summary grouped by payment status.
type Statistics struct {
	TotalTransactions int64
	TotalRevenue      decimal.Decimal
	ByStatus          []StatusStatistics
}

// NewStatistics derives the totals from the per status rows. Revenue only counts SUCCESS.
func NewStatistics(byStatus []StatusStatistics) *Statistics {
	stats := &Statistics{TotalRevenue: decimal.Zero, ByStatus: byStatus}
	for _, row := range byStatus {
		stats.TotalTransactions += row.Count
		if row.PaymentStatus == PaymentStatusSuccess {
			stats.TotalRevenue = stats.TotalRevenue.Add(row.TotalCost)
		}
	}
	if stats.ByStatus == nil {
		stats.ByStatus = []StatusStatistics{}
	}
	return stats
}
