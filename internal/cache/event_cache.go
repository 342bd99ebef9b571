package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-gin-event-hub/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss 代表 Redis 中沒有該活動
var ErrCacheMiss = errors.New("event cache miss")

// ClientProvider 提供 Redis client，通常是 database.RedisCache
type ClientProvider interface {
	Acquire(ctx context.Context) (*redis.Client, error)
}

type EventCache interface {
	// 取得：依 slug 取得快取的活動
	Get(ctx context.Context, slug string) (*model.Event, error)
	// 寫入：以 slug 為 key 快取活動
	Set(ctx context.Context, event *model.Event) error
	// 失效：刪除一或多個 slug 的快取
	Invalidate(ctx context.Context, slugs ...string) error
}

type RedisEventCacheImpl struct {
	clients ClientProvider
	ttl     time.Duration
}

func NewRedisEventCache(clients ClientProvider, ttl time.Duration) EventCache {
	return &RedisEventCacheImpl{
		clients: clients,
		ttl:     ttl,
	}
}

// 活動 key
func (c *RedisEventCacheImpl) getKey(slug string) string {
	return fmt.Sprintf("event:%s", slug)
}

func (c *RedisEventCacheImpl) Get(ctx context.Context, slug string) (*model.Event, error) {
	client, err := c.clients.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	data, err := client.Get(ctx, c.getKey(slug)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode cached event: %w", err)
	}
	return &event, nil
}

func (c *RedisEventCacheImpl) Set(ctx context.Context, event *model.Event) error {
	client, err := c.clients.Acquire(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return client.Set(ctx, c.getKey(event.Slug), data, c.ttl).Err()
}

func (c *RedisEventCacheImpl) Invalidate(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	client, err := c.clients.Acquire(ctx)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, c.getKey(slug))
	}
	return client.Del(ctx, keys...).Err()
}
