package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartStore is the session-keyed product_id -> quantity mapping.
// Consumers define this interface, not the Redis implementation.
type CartStore interface {
	// Add increments the stored quantity for productID by qty, creating
	// the entry when absent. The increment is atomic on the backing
	// store, so concurrent adds for the same product never lose updates.
	Add(ctx context.Context, sessionKey, productID string, qty int64) error
	Remove(ctx context.Context, sessionKey, productID string) error
	Clear(ctx context.Context, sessionKey string) error
	// Entries is a point-in-time read. A session with no cart yields an
	// empty map, not an error.
	Entries(ctx context.Context, sessionKey string) (map[string]int64, error)
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCartStore{client: client, ttl: ttl}
}

// RedisCartStore keeps each session's cart in a sorted set whose member
// scores are quantities. The key expires with the session cookie, so
// abandoned carts are reaped by Redis itself.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r RedisCartStore) Add(ctx context.Context, sessionKey, productID string, qty int64) error {
	key := cartKey(sessionKey)

	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, key, float64(qty), productID)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis zincrby failed: %w", err)
	}
	return nil
}

func (r RedisCartStore) Remove(ctx context.Context, sessionKey, productID string) error {
	if err := r.client.ZRem(ctx, cartKey(sessionKey), productID).Err(); err != nil {
		return fmt.Errorf("redis zrem failed: %w", err)
	}
	return nil
}

func (r RedisCartStore) Clear(ctx context.Context, sessionKey string) error {
	if err := r.client.Del(ctx, cartKey(sessionKey)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (r RedisCartStore) Entries(ctx context.Context, sessionKey string) (map[string]int64, error) {
	members, err := r.client.ZRangeWithScores(ctx, cartKey(sessionKey), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrange failed: %w", err)
	}

	entries := make(map[string]int64, len(members))
	for _, m := range members {
		id, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries[id] = int64(m.Score)
	}
	return entries, nil
}

func cartKey(sessionKey string) string {
	return fmt.Sprintf("cart:%s", sessionKey)
}
