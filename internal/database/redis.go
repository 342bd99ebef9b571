package database

import (
	"context"
	"fmt"

	"go-gin-event-hub/config"

	"github.com/redis/go-redis/v9"
)

// RedisCache 是共用的 Redis client 快取
type RedisCache = ConnectionCache[*redis.Client]

func NewRedisCache(cfg *config.RedisConfig) *RedisCache {
	return NewConnectionCache(
		func(ctx context.Context) (*redis.Client, error) {
			return connectRedis(ctx, cfg)
		},
		WithCloser(func(rdb *redis.Client) { _ = rdb.Close() }),
	)
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}
