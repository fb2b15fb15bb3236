package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-event-registry/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss 快取中沒有該活動
var ErrCacheMiss = errors.New("event cache miss")

type EventCache interface {
	// Get 讀取快取的活動；不存在時回傳 ErrCacheMiss
	Get(ctx context.Context, id int64) (*model.Event, error)
	// Set 寫入活動快取
	Set(ctx context.Context, event *model.Event) error
	// Invalidate 活動變更後移除快取
	Invalidate(ctx context.Context, id int64) error
}

type RedisEventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventCache(client *redis.Client, ttl time.Duration) EventCache {
	return &RedisEventCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisEventCache) getKey(id int64) string {
	return fmt.Sprintf("event:%d", id)
}

func (c *RedisEventCache) Get(ctx context.Context, id int64) (*model.Event, error) {
	data, err := c.client.Get(ctx, c.getKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var event model.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *RedisEventCache) Set(ctx context.Context, event *model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.getKey(event.ID), data, c.ttl).Err()
}

func (c *RedisEventCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.getKey(id)).Err()
}

// NoopEventCache 供測試與 standalone 模式使用
type NoopEventCache struct{}

func NewNoopEventCache() EventCache {
	return NoopEventCache{}
}

func (NoopEventCache) Get(ctx context.Context, id int64) (*model.Event, error) {
	return nil, ErrCacheMiss
}

func (NoopEventCache) Set(ctx context.Context, event *model.Event) error {
	return nil
}

func (NoopEventCache) Invalidate(ctx context.Context, id int64) error {
	return nil
}
