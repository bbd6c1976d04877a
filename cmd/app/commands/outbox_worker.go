package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// OutboxRunner is the outbox worker loop.
type OutboxRunner interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// RunOutboxWorker drains the outbox. With once set it processes a single batch and
// returns; otherwise it polls until SIGINT/SIGTERM.
func RunOutboxWorker(ctx context.Context, runner OutboxRunner, logger *slog.Logger, once bool) error {
	if once {
		logger.Info("processing one outbox batch")
		if err := runner.ProcessEvents(ctx); err != nil {
			return fmt.Errorf("failed to process outbox events: %w", err)
		}
		return nil
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := runner.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker stopped: %w", err)
	}

	logger.Info("outbox worker stopped")
	return nil
}
