package app

import (
	"context"
	"fmt"

	"github.com/allisson/stockpay/internal/idempotency"
	transactionHTTP "github.com/allisson/stockpay/internal/transaction/http"
	transactionRepository "github.com/allisson/stockpay/internal/transaction/repository"
	transactionUseCase "github.com/allisson/stockpay/internal/transaction/usecase"
)

// TransactionRepository returns the transaction repository for the configured driver.
func (c *Container) TransactionRepository() (transactionUseCase.TransactionRepository, error) {
	var err error
	c.transactionRepositoryInit.Do(func() {
		c.transactionRepository, err = c.initTransactionRepository()
		if err != nil {
			c.initErrors["transactionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionRepository"]; exists {
		return nil, storedErr
	}
	return c.transactionRepository, nil
}

// StateTransitionRepository returns the state transition repository for the configured
// driver.
func (c *Container) StateTransitionRepository() (transactionUseCase.StateTransitionRepository, error) {
	var err error
	c.stateTransitionRepositoryInit.Do(func() {
		c.stateTransitionRepository, err = c.initStateTransitionRepository()
		if err != nil {
			c.initErrors["stateTransitionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["stateTransitionRepository"]; exists {
		return nil, storedErr
	}
	return c.stateTransitionRepository, nil
}

// ConfirmationLocker returns the Redis lock guarding payment confirmation, or a NoopLocker
// when the lock is disabled.
func (c *Container) ConfirmationLocker() (transactionUseCase.ConfirmationLocker, error) {
	var err error
	c.confirmationLockerInit.Do(func() {
		c.confirmationLocker, err = c.initConfirmationLocker()
		if err != nil {
			c.initErrors["confirmationLocker"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["confirmationLocker"]; exists {
		return nil, storedErr
	}
	return c.confirmationLocker, nil
}

// TransactionUseCase returns the transaction workflow, wrapped with metrics when enabled.
func (c *Container) TransactionUseCase() (transactionUseCase.TransactionUseCase, error) {
	var err error
	c.transactionUseCaseInit.Do(func() {
		c.transactionUseCase, err = c.initTransactionUseCase()
		if err != nil {
			c.initErrors["transactionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionUseCase"]; exists {
		return nil, storedErr
	}
	return c.transactionUseCase, nil
}

// TransactionHandler returns the HTTP handler for the transaction endpoints.
func (c *Container) TransactionHandler() (*transactionHTTP.TransactionHandler, error) {
	var err error
	c.transactionHandlerInit.Do(func() {
		c.transactionHandler, err = c.initTransactionHandler()
		if err != nil {
			c.initErrors["transactionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionHandler"]; exists {
		return nil, storedErr
	}
	return c.transactionHandler, nil
}

func (c *Container) initTransactionRepository() (transactionUseCase.TransactionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for transaction repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return transactionRepository.NewPostgreSQLTransactionRepository(db), nil
	case "mysql":
		return transactionRepository.NewMySQLTransactionRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initStateTransitionRepository() (transactionUseCase.StateTransitionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for state transition repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return transactionRepository.NewPostgreSQLStateTransitionRepository(db), nil
	case "mysql":
		return transactionRepository.NewMySQLStateTransitionRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initConfirmationLocker() (transactionUseCase.ConfirmationLocker, error) {
	if !c.config.ConfirmationLockEnabled {
		return idempotency.NoopLocker{}, nil
	}

	client, err := idempotency.NewRedisClient(context.Background(), c.config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis for confirmation lock: %w", err)
	}
	c.redisClient = client

	return idempotency.NewRedisLocker(client, "", c.config.ConfirmationLockTTL), nil
}

func (c *Container) initTransactionUseCase() (transactionUseCase.TransactionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for transaction use case: %w", err)
	}

	transactions, err := c.TransactionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction repository for transaction use case: %w", err)
	}

	transitions, err := c.StateTransitionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get state transition repository for transaction use case: %w", err)
	}

	outbox, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for transaction use case: %w", err)
	}

	inventoryService, err := c.InventoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory service for transaction use case: %w", err)
	}

	orderService, err := c.OrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to get order service for transaction use case: %w", err)
	}

	paymentService, err := c.PaymentService()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment service for transaction use case: %w", err)
	}

	auditLogs, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for transaction use case: %w", err)
	}

	integrations, err := c.IntegrationStatusUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get integration status use case for transaction use case: %w", err)
	}

	locker, err := c.ConfirmationLocker()
	if err != nil {
		return nil, fmt.Errorf("failed to get confirmation locker for transaction use case: %w", err)
	}

	baseUseCase := transactionUseCase.NewTransactionUseCase(
		txManager,
		transactionUseCase.Repositories{
			Transactions: transactions,
			Transitions:  transitions,
			Outbox:       outbox,
		},
		transactionUseCase.Collaborators{
			Inventory: inventoryService,
			Orders:    orderService,
			Payments:  paymentService,
		},
		auditLogs,
		integrations,
		locker,
		c.config.DefaultSourceSystem,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for transaction use case: %w", err)
		}
		return transactionUseCase.NewTransactionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initTransactionHandler() (*transactionHTTP.TransactionHandler, error) {
	useCase, err := c.TransactionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction use case for transaction handler: %w", err)
	}
	return transactionHTTP.NewTransactionHandler(useCase, c.Logger()), nil
}
