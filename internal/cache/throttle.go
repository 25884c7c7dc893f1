package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failureWindow = 6 * time.Minute
	failureLimit  = 3
	blockDuration = time.Minute
)

// PasswordThrottle counts failed password-change attempts per email and
// blocks the account for a short period after too many of them.
type PasswordThrottle interface {
	// BlockedFor returns how long the email stays blocked, zero if not blocked.
	BlockedFor(ctx context.Context, email string) (time.Duration, error)
	RecordFailure(ctx context.Context, email string) error
}

func NewRedisPasswordThrottle(client *redis.Client) *RedisPasswordThrottle {
	return &RedisPasswordThrottle{client: client}
}

type RedisPasswordThrottle struct {
	client *redis.Client
}

func (r RedisPasswordThrottle) BlockedFor(ctx context.Context, email string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, blockKey(email)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis ttl failed: %w", err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r RedisPasswordThrottle) RecordFailure(ctx context.Context, email string) error {
	key := counterKey(email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis incr failed: %w", err)
	}
	if err := r.client.Expire(ctx, key, failureWindow).Err(); err != nil {
		return fmt.Errorf("redis expire failed: %w", err)
	}

	if count >= failureLimit {
		if err := r.client.Set(ctx, blockKey(email), 1, blockDuration).Err(); err != nil {
			return fmt.Errorf("redis set failed: %w", err)
		}
	}
	return nil
}

// ErrBlocked is returned by callers that refuse an attempt while the
// block key is live.
var ErrBlocked = errors.New("too many failed attempts")

func counterKey(email string) string {
	return fmt.Sprintf("spam_control:%s", email)
}

func blockKey(email string) string {
	return fmt.Sprintf("block:%s", email)
}
