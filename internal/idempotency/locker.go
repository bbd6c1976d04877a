// Package idempotency provides the per transaction lock that keeps two payment
// confirmations of the same transaction from running at once.
package idempotency

import (
	"context"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

// ErrLockHeld indicates the key is locked by another holder.
var ErrLockHeld = apperrors.Wrap(apperrors.ErrConflict, "lock already held")

// ErrLockLost indicates the lock expired or changed owner before release.
var ErrLockLost = apperrors.New("lock expired before release")

// Locker acquires exclusive, expiring locks by key.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// NoopLocker always grants the lock.
type NoopLocker struct{}

// Acquire returns a release func that does nothing.
func (NoopLocker) Acquire(_ context.Context, _ string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
