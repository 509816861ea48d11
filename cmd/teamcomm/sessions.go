// AngelaMos | 2026
// sessions.go

package main

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/teamcomm/internal/auth"
	"github.com/carterperez-dev/teamcomm/internal/core"
	"github.com/carterperez-dev/teamcomm/internal/user"
)

type SessionsCmd struct {
	Purge PurgeCmd `cmd:"" help:"Delete sessions that expired or ended before the grace period."`
}

type PurgeCmd struct{}

func (c *PurgeCmd) Run(ctx context.Context, g *Globals) error {
	cfg, logger, db, err := bootstrap(ctx, g)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits next

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redis.Close() //nolint:errcheck // process exits next

	svc := auth.NewService(
		auth.NewRepository(db.DB),
		user.NewAccountProvider(user.NewRepository(db.DB)),
		auth.NewRedisRevocations(redis.Client),
		cfg.Session,
		nil,
	)

	n, err := svc.PurgeExpired(ctx)
	if err != nil {
		logger.Error("session purge failed", "error", err)
		return err
	}

	fmt.Printf("deleted %d stale sessions\n", n)
	return nil
}
