package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// BookmarkStore is the per-session set of bookmarked product slugs.
type BookmarkStore interface {
	// Toggle flips membership of slug and reports whether it is now present.
	Toggle(ctx context.Context, sessionKey, slug string) (bool, error)
	List(ctx context.Context, sessionKey string) ([]string, error)
}

func NewRedisBookmarkStore(client *redis.Client) *RedisBookmarkStore {
	return &RedisBookmarkStore{client: client}
}

type RedisBookmarkStore struct {
	client *redis.Client
}

func (r RedisBookmarkStore) Toggle(ctx context.Context, sessionKey, slug string) (bool, error) {
	key := bookmarkKey(sessionKey)

	member, err := r.client.SIsMember(ctx, key, slug).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember failed: %w", err)
	}

	if member {
		if err := r.client.SRem(ctx, key, slug).Err(); err != nil {
			return false, fmt.Errorf("redis srem failed: %w", err)
		}
		return false, nil
	}

	if err := r.client.SAdd(ctx, key, slug).Err(); err != nil {
		return false, fmt.Errorf("redis sadd failed: %w", err)
	}
	return true, nil
}

func (r RedisBookmarkStore) List(ctx context.Context, sessionKey string) ([]string, error) {
	slugs, err := r.client.SMembers(ctx, bookmarkKey(sessionKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers failed: %w", err)
	}
	return slugs, nil
}

func bookmarkKey(sessionKey string) string {
	return fmt.Sprintf("bookmark:%s", sessionKey)
}
