package usecase

import (
	"context"

	apperrors "github.com/allisson/stockpay/internal/errors"
	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
)

type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
}

// Record appends an audit log entry. Entries without a transaction are still accepted.
func (a *auditLogUseCase) Record(ctx context.Context, entry *ledgerDomain.AuditLogEntry) error {
	if entry == nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "audit log entry is required")
	}

	if err := a.auditLogRepo.Create(ctx, entry); err != nil {
		return apperrors.Wrap(err, "failed to record audit log")
	}

	return nil
}

// ListByTransaction returns the audit trail of a transaction.
func (a *auditLogUseCase) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*ledgerDomain.AuditLogEntry, error) {
	if transactionID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "transaction id is required")
	}
	return a.auditLogRepo.ListByTransaction(ctx, transactionID)
}

// NewAuditLogUseCase creates a new AuditLogUseCase.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository) AuditLogUseCase {
	return &auditLogUseCase{auditLogRepo: auditLogRepo}
}
