package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubServer struct {
	mu          sync.Mutex
	startErr    error
	shutdownErr error
	done        chan struct{}
	shutdowns   int
}

func newStubServer(startErr, shutdownErr error) *stubServer {
	return &stubServer{startErr: startErr, shutdownErr: shutdownErr, done: make(chan struct{})}
}

func (s *stubServer) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.done
	return nil
}

func (s *stubServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdowns == 0 {
		close(s.done)
	}
	s.shutdowns++
	return s.shutdownErr
}

func TestRunServers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("shutdown-on-cancel", func(t *testing.T) {
		api := newStubServer(nil, nil)
		metricsSrv := newStubServer(nil, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := runServers(ctx, map[string]server{"api": api, "metrics": metricsSrv}, logger)

		require.NoError(t, err)
		assert.Equal(t, 1, api.shutdowns)
		assert.Equal(t, 1, metricsSrv.shutdowns)
	})

	t.Run("start-error-shuts-down-others", func(t *testing.T) {
		api := newStubServer(errors.New("address in use"), nil)
		metricsSrv := newStubServer(nil, errors.New("shutdown failed"))

		err := runServers(context.Background(), map[string]server{"api": api, "metrics": metricsSrv}, logger)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "api server error: address in use")
		assert.Contains(t, err.Error(), "metrics server shutdown: shutdown failed")
		assert.Equal(t, 1, metricsSrv.shutdowns)
	})
}
