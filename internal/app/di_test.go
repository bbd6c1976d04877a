package app

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/stockpay/internal/collaborator/fake"
	"github.com/allisson/stockpay/internal/collaborator/inventory"
	"github.com/allisson/stockpay/internal/collaborator/order"
	"github.com/allisson/stockpay/internal/collaborator/payment"
	"github.com/allisson/stockpay/internal/config"
	"github.com/allisson/stockpay/internal/idempotency"
	"github.com/allisson/stockpay/internal/metrics"
	transactionRepository "github.com/allisson/stockpay/internal/transaction/repository"
)

// newContainerWithDB returns a container whose database is a sqlmock connection.
func newContainerWithDB(t *testing.T, cfg *config.Config) *Container {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	container := NewContainer(cfg)
	container.dbInit.Do(func() { container.db = db })
	return container
}

func baseConfig() *config.Config {
	return &config.Config{
		LogLevel:              "info",
		DBDriver:              "postgres",
		ServerHost:            "localhost",
		ServerPort:            8080,
		MetricsNamespace:      "stockpay_test",
		MetricsPort:           8081,
		CollaboratorTimeout:   time.Second,
		InventoryCheckTimeout: time.Second,
		WorkerInterval:        time.Second,
		WorkerBatchSize:       10,
		WorkerMaxRetries:      3,
		DefaultSourceSystem:   "EXTERNAL_SYSTEM",
	}
}

func TestNewContainer(t *testing.T) {
	cfg := baseConfig()
	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
	assert.Nil(t, container.logger)
}

func TestContainer_Logger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "invalid"} {
		t.Run(level, func(t *testing.T) {
			container := NewContainer(&config.Config{LogLevel: level})

			logger := container.Logger()
			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
		})
	}
}

func TestContainer_DB_InvalidDriver(t *testing.T) {
	container := NewContainer(&config.Config{DBDriver: "invalid_driver"})

	_, err := container.DB()
	assert.Error(t, err)

	_, err = container.DB()
	assert.Error(t, err)
}

func TestContainer_Metrics(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		container := NewContainer(baseConfig())

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		businessMetrics, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.IsType(t, metrics.NoOpBusinessMetrics{}, businessMetrics)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("Enabled", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		require.NotNil(t, provider)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.NotNil(t, server)

		assert.NoError(t, container.Shutdown(context.Background()))
	})
}

func TestContainer_Repositories(t *testing.T) {
	t.Run("Postgres", func(t *testing.T) {
		container := newContainerWithDB(t, baseConfig())

		repo, err := container.TransactionRepository()
		require.NoError(t, err)
		assert.IsType(t, &transactionRepository.PostgreSQLTransactionRepository{}, repo)
	})

	t.Run("MySQL", func(t *testing.T) {
		cfg := baseConfig()
		cfg.DBDriver = "mysql"
		container := newContainerWithDB(t, cfg)

		repo, err := container.TransactionRepository()
		require.NoError(t, err)
		assert.IsType(t, &transactionRepository.MySQLTransactionRepository{}, repo)
	})

	t.Run("UnsupportedDriver", func(t *testing.T) {
		cfg := baseConfig()
		cfg.DBDriver = "sqlite"
		container := newContainerWithDB(t, cfg)

		_, err := container.TransactionRepository()
		assert.EqualError(t, err, "unsupported database driver: sqlite")

		_, err = container.AuditLogRepository()
		assert.Error(t, err)

		_, err = container.OutboxRepository()
		assert.Error(t, err)
	})
}

func TestContainer_Collaborators(t *testing.T) {
	t.Run("HTTPClients", func(t *testing.T) {
		container := newContainerWithDB(t, baseConfig())

		inventoryService, err := container.InventoryService()
		require.NoError(t, err)
		assert.IsType(t, &inventory.Client{}, inventoryService)

		orderService, err := container.OrderService()
		require.NoError(t, err)
		assert.IsType(t, &order.Client{}, orderService)

		paymentService, err := container.PaymentService()
		require.NoError(t, err)
		assert.IsType(t, &payment.Client{}, paymentService)
	})

	t.Run("Fakes", func(t *testing.T) {
		cfg := baseConfig()
		cfg.CollaboratorsFake = true
		container := newContainerWithDB(t, cfg)

		inventoryService, err := container.InventoryService()
		require.NoError(t, err)
		assert.IsType(t, &fake.Inventory{}, inventoryService)

		orderService, err := container.OrderService()
		require.NoError(t, err)
		assert.IsType(t, &fake.Orders{}, orderService)

		again, err := container.OrderService()
		require.NoError(t, err)
		assert.Same(t, orderService, again)
	})
}

func TestContainer_ConfirmationLocker(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		container := NewContainer(baseConfig())

		locker, err := container.ConfirmationLocker()
		require.NoError(t, err)
		assert.IsType(t, idempotency.NoopLocker{}, locker)
	})

	t.Run("Enabled", func(t *testing.T) {
		server := miniredis.RunT(t)

		cfg := baseConfig()
		cfg.ConfirmationLockEnabled = true
		cfg.RedisURL = "redis://" + server.Addr() + "/0"
		cfg.ConfirmationLockTTL = time.Minute
		container := NewContainer(cfg)

		locker, err := container.ConfirmationLocker()
		require.NoError(t, err)
		assert.IsType(t, &idempotency.RedisLocker{}, locker)

		assert.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("Error_Unreachable", func(t *testing.T) {
		cfg := baseConfig()
		cfg.ConfirmationLockEnabled = true
		cfg.RedisURL = "redis://127.0.0.1:1/0"
		container := NewContainer(cfg)

		_, err := container.ConfirmationLocker()
		assert.Error(t, err)
	})
}

func TestContainer_HTTPServer(t *testing.T) {
	container := newContainerWithDB(t, baseConfig())

	server, err := container.HTTPServer()
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.NotNil(t, server.GetHandler())

	outbox, err := container.OutboxUseCase()
	require.NoError(t, err)
	assert.NotNil(t, outbox)
}

func TestContainer_Shutdown(t *testing.T) {
	container := NewContainer(baseConfig())
	assert.NoError(t, container.Shutdown(context.Background()))
}

