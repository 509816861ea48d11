// AngelaMos | 2026
// redis.go

//go:build integration

package testdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carterperez-dev/teamcomm/internal/config"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

// StartRedis runs redis:7-alpine for the logged-out session list.
func StartRedis(t *testing.T, ctx context.Context) *core.Redis {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	r, err := core.NewRedis(ctx, config.RedisConfig{
		URL:      fmt.Sprintf("redis://%s:%s/0", host, port.Port()),
		PoolSize: 5,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
	})

	return r
}
