package services

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/config"
	"github.com/localnerve/raulo-crmdb/internal/logging"
	"github.com/localnerve/raulo-crmdb/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	cfg := config.Defaults()

	t.Run("Healthy", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		t.Cleanup(func() { _ = ln.Close() })
		_, port, _ := net.SplitHostPort(ln.Addr().String())

		var sawDeadline bool
		backend := pingerFunc(func(ctx context.Context) error {
			_, sawDeadline = ctx.Deadline()
			return nil
		})

		result := HealthCheck(context.Background(), &cfg, backend, utils.LocalServerURL(port), logging.Discard())
		assert.Equal(t, "healthy", result.Status)
		assert.Equal(t, "ok", result.Storage)
		assert.Equal(t, "ok", result.Server)
		assert.Equal(t, "sqlite", result.Details["database_type"])
		assert.True(t, sawDeadline, "backend ping is bounded by the store timeout")
	})

	t.Run("BackendDown", func(t *testing.T) {
		backend := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

		result := HealthCheck(context.Background(), &cfg, backend, "", logging.Discard())
		assert.Equal(t, "unhealthy", result.Status)
		assert.Equal(t, "unreachable", result.Storage)
		assert.Empty(t, result.Server)
		assert.Contains(t, result.ErrorMessage, "connection refused")
	})
}
