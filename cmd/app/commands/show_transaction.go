package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/allisson/stockpay/internal/transaction/http/dto"
	transactionUseCase "github.com/allisson/stockpay/internal/transaction/usecase"
)

// RunShowTransaction prints one transaction with its workflow history.
func RunShowTransaction(
	ctx context.Context,
	useCase transactionUseCase.TransactionUseCase,
	writer io.Writer,
	transactionID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	transaction, err := useCase.Get(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	transitions, err := useCase.ListTransitions(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to list transitions: %w", err)
	}

	tx := dto.MapTransactionToResponse(transaction)
	history := dto.MapTransitionsToListResponse(transitions)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"transaction": tx,
			"transitions": history.Data,
		})
	}

	_, _ = fmt.Fprintf(writer, "Transaction: %s\n", tx.TransactionID)
	_, _ = fmt.Fprintf(writer, "External order: %s\n", tx.ExternalOrderID)
	if tx.OrderID != nil {
		_, _ = fmt.Fprintf(writer, "Order: %s\n", *tx.OrderID)
	}
	_, _ = fmt.Fprintf(writer, "State: %s\n", tx.State)
	_, _ = fmt.Fprintf(writer, "Payment: %s\n", tx.PaymentStatus)
	_, _ = fmt.Fprintf(writer, "Total: %s\n", tx.TotalCost)
	if tx.ErrorDetails != nil {
		_, _ = fmt.Fprintf(writer, "Error: %s\n", *tx.ErrorDetails)
	}

	_, _ = fmt.Fprintln(writer, "History:")
	for _, transition := range history.Data {
		from := "-"
		if transition.FromState != nil {
			from = *transition.FromState
		}
		_, _ = fmt.Fprintf(writer, "  %s  %s -> %s  %s\n",
			transition.CreatedAt.Format("2006-01-02 15:04:05"),
			from,
			transition.ToState,
			transition.Reason,
		)
	}
	return nil
}
