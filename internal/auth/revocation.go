// AngelaMos | 2026
// revocation.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/teamcomm/internal/core"
)

// Revocations remembers logged-out token hashes until their sessions would
// have expired anyway.
type Revocations interface {
	Revoke(ctx context.Context, tokenHash string, until time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

func revokedKey(tokenHash string) string {
	return core.RedisKey("session", "revoked", tokenHash)
}

type redisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(client *redis.Client) Revocations {
	return &redisRevocations{client: client}
}

func (r *redisRevocations) Revoke(
	ctx context.Context,
	tokenHash string,
	until time.Time,
) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedKey(tokenHash), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (r *redisRevocations) IsRevoked(
	ctx context.Context,
	tokenHash string,
) (bool, error) {
	exists, err := r.client.Exists(ctx, revokedKey(tokenHash)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked session: %w", err)
	}

	return exists > 0, nil
}
