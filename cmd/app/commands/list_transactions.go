package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/allisson/stockpay/internal/httputil"
	"github.com/allisson/stockpay/internal/transaction/http/dto"
	transactionUseCase "github.com/allisson/stockpay/internal/transaction/usecase"
)

// RunListTransactions prints one page of transactions, newest first.
func RunListTransactions(
	ctx context.Context,
	useCase transactionUseCase.TransactionUseCase,
	writer io.Writer,
	offset, limit int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if err := httputil.ValidatePagination(offset, limit); err != nil {
		return err
	}

	transactions, err := useCase.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	response := dto.MapTransactionsToListResponse(transactions, offset, limit)
	if format == "json" {
		return writeJSON(writer, response)
	}

	if len(response.Data) == 0 {
		_, _ = fmt.Fprintln(writer, "No transactions found")
		return nil
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TRANSACTION ID\tSTATE\tPAYMENT\tTOTAL\tCREATED AT")
	for _, tx := range response.Data {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tx.TransactionID,
			tx.State,
			tx.PaymentStatus,
			tx.TotalCost,
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.Flush()
}
