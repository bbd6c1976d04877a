package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/stockpay/internal/database"
	apperrors "github.com/allisson/stockpay/internal/errors"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// MySQLStateTransitionRepository implements the append-only workflow history for MySQL.
// Transition ids are stored as BINARY(16).
type MySQLStateTransitionRepository struct {
	db *sql.DB
}

// Create appends a state transition. A nil FromState is stored as NULL.
func (m *MySQLStateTransitionRepository) Create(
	ctx context.Context,
	transition *transactionDomain.StateTransition,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := transition.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal state transition id")
	}

	query := `INSERT INTO transaction_state_transitions (id, transaction_id, from_state, to_state, reason, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		transition.TransactionID,
		fromStateValue(transition.FromState),
		string(transition.ToState),
		transition.Reason,
		transition.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create state transition")
	}

	return nil
}

// ListByTransaction returns the transitions of a transaction, oldest first.
func (m *MySQLStateTransitionRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*transactionDomain.StateTransition, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, transaction_id, from_state, to_state, reason, created_at
			  FROM transaction_state_transitions
			  WHERE transaction_id = ?
			  ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list state transitions")
	}
	defer func() {
		_ = rows.Close()
	}()

	transitions := make([]*transactionDomain.StateTransition, 0)
	for rows.Next() {
		var transition transactionDomain.StateTransition
		var id []byte
		var fromState sql.NullString
		var toState string

		err := rows.Scan(&id, &transition.TransactionID, &fromState, &toState, &transition.Reason, &transition.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan state transition")
		}

		if err := transition.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal state transition id")
		}

		transition.FromState = toFromState(fromState)
		transition.ToState = transactionDomain.WorkflowState(toState)
		transitions = append(transitions, &transition)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate state transitions")
	}

	return transitions, nil
}

// NewMySQLStateTransitionRepository creates a new MySQL StateTransition repository.
func NewMySQLStateTransitionRepository(db *sql.DB) *MySQLStateTransitionRepository {
	return &MySQLStateTransitionRepository{db: db}
}
