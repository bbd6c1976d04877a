package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/allisson/stockpay/internal/transaction/http/dto"
	transactionUseCase "github.com/allisson/stockpay/internal/transaction/usecase"
)

// RunStatistics prints the ledger summary grouped by payment status.
func RunStatistics(
	ctx context.Context,
	useCase transactionUseCase.TransactionUseCase,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	stats, err := useCase.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	response := dto.MapStatisticsToResponse(stats)
	if format == "json" {
		return writeJSON(writer, response)
	}

	_, _ = fmt.Fprintf(writer, "Total transactions: %d\n", response.TotalTransactions)
	_, _ = fmt.Fprintf(writer, "Total revenue: %s\n", response.TotalRevenue)
	for _, row := range response.ByStatus {
		_, _ = fmt.Fprintf(writer, "  %-8s count=%d total=%s\n", row.PaymentStatus, row.Count, row.TotalCost)
	}
	return nil
}
