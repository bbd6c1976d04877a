package domain

import "context"

type contextKey struct{}

// WithTransactionID attaches the transaction id that integration status entries are recorded under.
func WithTransactionID(ctx context.Context, transactionID string) context.Context {
	return context.WithValue(ctx, contextKey{}, transactionID)
}

// TransactionIDFromContext returns the transaction id attached by WithTransactionID, if any.
func TransactionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}
