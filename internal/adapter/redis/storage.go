package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter is origin-scoped storage shared by every client pointed at
// the same Redis and origin.
type RedisAdapter struct {
	client *redis.Client
	origin string
	ttl    time.Duration
}

// NewRedisAdapter keeps entries for ttl; zero means no expiry.
func NewRedisAdapter(client *redis.Client, origin string, ttl time.Duration) *RedisAdapter {
	return &RedisAdapter{
		client: client,
		origin: origin,
		ttl:    ttl,
	}
}

func (r *RedisAdapter) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *RedisAdapter) SetItem(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) RemoveItem(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) key(key string) string {
	return fmt.Sprintf("storage:%s:%s", r.origin, key)
}
