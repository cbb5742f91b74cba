package db

import (
	"context"
	"time"

	"yellowduck-gpx/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a client for the configured address, or nil when no
// address is set. The connection itself is established lazily.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// PingRedis checks that the server answers within a short timeout.
func PingRedis(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}
