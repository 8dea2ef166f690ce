package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthService(t *testing.T) {
	ctx := context.Background()
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("server status", func(t *testing.T) {
		status := NewHealthService(testLogger(), up, nil).GetServerHealthStatus()

		assert.True(t, status.ServiceAlive)
		assert.GreaterOrEqual(t, status.Uptime, 0.0)
		require.NotNil(t, status.RamStats)
	})

	t.Run("database up", func(t *testing.T) {
		status, err := NewHealthService(testLogger(), up, nil).GetDatabaseHealthStatus(ctx)

		require.NoError(t, err)
		assert.True(t, status.Connected)
	})

	t.Run("database down", func(t *testing.T) {
		status, err := NewHealthService(testLogger(), down, nil).GetDatabaseHealthStatus(ctx)

		require.Error(t, err)
		assert.False(t, status.Connected)
	})

	t.Run("no cache configured", func(t *testing.T) {
		status, err := NewHealthService(testLogger(), up, nil).GetCacheHealthStatus(ctx)

		require.NoError(t, err)
		assert.False(t, status.Connected)
	})

	t.Run("cache down", func(t *testing.T) {
		status, err := NewHealthService(testLogger(), up, down).GetCacheHealthStatus(ctx)

		require.Error(t, err)
		assert.False(t, status.Connected)
	})
}
