package usecase

import (
	"context"

	apperrors "github.com/allisson/stockpay/internal/errors"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

type integrationStatusUseCase struct {
	integrationRepo IntegrationStatusRepository
}

func (i *integrationStatusUseCase) Record(ctx context.Context, entry *ledgerDomain.IntegrationStatusEntry) error {
	if entry == nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "integration status entry is required")
	}

	if err := i.integrationRepo.Create(ctx, entry); err != nil {
		return apperrors.Wrap(err, "failed to record integration status")
	}

	return nil
}

func (i *integrationStatusUseCase) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.IntegrationStatusEntry, error) {
	if transactionID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "transaction id is required")
	}
	return i.integrationRepo.ListByTransaction(ctx, transactionID)
}

// NewIntegrationStatusUseCase creates a new IntegrationStatusUseCase.
func NewIntegrationStatusUseCase(integrationRepo IntegrationStatusRepository) IntegrationStatusUseCase {
	return &integrationStatusUseCase{integrationRepo: integrationRepo}
}
