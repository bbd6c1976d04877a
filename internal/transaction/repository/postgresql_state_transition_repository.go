package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/stockpay/internal/database"
	apperrors "github.com/allisson/stockpay/internal/errors"
	transactionDomain "github.com/allisson/stockpay/internal/transaction/domain"
)

// PostgreSQLStateTransitionRepository implements the append-only workflow history for PostgreSQL.
type PostgreSQLStateTransitionRepository struct {
	db *sql.DB
}

// Create appends a state transition. A nil FromState is stored as NULL.
func (p *PostgreSQLStateTransitionRepository) Create(
	ctx context.Context,
	transition *transactionDomain.StateTransition,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO transaction_state_transitions (id, transaction_id, from_state, to_state, reason, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		transition.ID,
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
func (p *PostgreSQLStateTransitionRepository) ListByTransaction(
	ctx context.Context,
	transactionID string,
) ([]*transactionDomain.StateTransition, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, transaction_id, from_state, to_state, reason, created_at
			  FROM transaction_state_transitions
			  WHERE transaction_id = $1
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
		var fromState sql.NullString
		var toState string

		err := rows.Scan(
			&transition.ID,
			&transition.TransactionID,
			&fromState,
			&toState,
			&transition.Reason,
			&transition.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan state transition")
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

// NewPostgreSQLStateTransitionRepository creates a new PostgreSQL StateTransition repository.
func NewPostgreSQLStateTransitionRepository(db *sql.DB) *PostgreSQLStateTransitionRepository {
	return &PostgreSQLStateTransitionRepository{db: db}
}

func fromStateValue(state *transactionDomain.WorkflowState) *string {
	if state == nil {
		return nil
	}
	value := string(*state)
	return &value
}

func toFromState(value sql.NullString) *transactionDomain.WorkflowState {
	if !value.Valid {
		return nil
	}
	state := transactionDomain.WorkflowState(value.String)
	return &state
}
