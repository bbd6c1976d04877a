package app

import (
	"fmt"

	ledgerHTTP "github.com/allisson/stockpay/internal/ledger/http"
	ledgerRepository "github.com/allisson/stockpay/internal/ledger/repository"
	ledgerUseCase "github.com/allisson/stockpay/internal/ledger/usecase"
)

// AuditLogRepository returns the audit log repository for the configured driver.
func (c *Container) AuditLogRepository() (ledgerUseCase.AuditLogRepository, error) {
	var err error
	c.auditLogRepositoryInit.Do(func() {
		c.auditLogRepository, err = c.initAuditLogRepository()
		if err != nil {
			c.initErrors["auditLogRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogRepository"]; exists {
		return nil, storedErr
	}
	return c.auditLogRepository, nil
}

// IntegrationStatusRepository returns the integration status repository for the
// configured driver.
func (c *Container) IntegrationStatusRepository() (ledgerUseCase.IntegrationStatusRepository, error) {
	var err error
	c.integrationStatusRepositoryInit.Do(func() {
		c.integrationStatusRepository, err = c.initIntegrationStatusRepository()
		if err != nil {
			c.initErrors["integrationStatusRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["integrationStatusRepository"]; exists {
		return nil, storedErr
	}
	return c.integrationStatusRepository, nil
}

// AuditLogUseCase returns the audit log use case.
func (c *Container) AuditLogUseCase() (ledgerUseCase.AuditLogUseCase, error) {
	var err error
	c.auditLogUseCaseInit.Do(func() {
		c.auditLogUseCase, err = c.initAuditLogUseCase()
		if err != nil {
			c.initErrors["auditLogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditLogUseCase, nil
}

// IntegrationStatusUseCase returns the integration status use case. It is also the
// recorder behind every collaborator tracer.
func (c *Container) IntegrationStatusUseCase() (ledgerUseCase.IntegrationStatusUseCase, error) {
	var err error
	c.integrationStatusUseCaseInit.Do(func() {
		c.integrationStatusUseCase, err = c.initIntegrationStatusUseCase()
		if err != nil {
			c.initErrors["integrationStatusUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["integrationStatusUseCase"]; exists {
		return nil, storedErr
	}
	return c.integrationStatusUseCase, nil
}

// LedgerHandler returns the HTTP handler for the per transaction ledger endpoints.
func (c *Container) LedgerHandler() (*ledgerHTTP.LedgerHandler, error) {
	var err error
	c.ledgerHandlerInit.Do(func() {
		c.ledgerHandler, err = c.initLedgerHandler()
		if err != nil {
			c.initErrors["ledgerHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ledgerHandler"]; exists {
		return nil, storedErr
	}
	return c.ledgerHandler, nil
}

func (c *Container) initAuditLogRepository() (ledgerUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return ledgerRepository.NewPostgreSQLAuditLogRepository(db), nil
	case "mysql":
		return ledgerRepository.NewMySQLAuditLogRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initIntegrationStatusRepository() (ledgerUseCase.IntegrationStatusRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for integration status repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return ledgerRepository.NewPostgreSQLIntegrationStatusRepository(db), nil
	case "mysql":
		return ledgerRepository.NewMySQLIntegrationStatusRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initAuditLogUseCase() (ledgerUseCase.AuditLogUseCase, error) {
	repo, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository for audit log use case: %w", err)
	}
	return ledgerUseCase.NewAuditLogUseCase(repo), nil
}

func (c *Container) initIntegrationStatusUseCase() (ledgerUseCase.IntegrationStatusUseCase, error) {
	repo, err := c.IntegrationStatusRepository()
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get integration status repository for integration status use case: %w",
			err,
		)
	}
	return ledgerUseCase.NewIntegrationStatusUseCase(repo), nil
}

func (c *Container) initLedgerHandler() (*ledgerHTTP.LedgerHandler, error) {
	transactions, err := c.TransactionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction use case for ledger handler: %w", err)
	}

	auditLogs, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for ledger handler: %w", err)
	}

	integrations, err := c.IntegrationStatusUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get integration status use case for ledger handler: %w", err)
	}

	events, err := c.OutboxUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox use case for ledger handler: %w", err)
	}

	return ledgerHTTP.NewLedgerHandler(transactions, auditLogs, integrations, events, c.Logger()), nil
}
