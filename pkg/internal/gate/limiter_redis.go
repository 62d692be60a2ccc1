//go:build !no_redis

package gate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisCounterPrefix = "upload_window:"

// RedisCounterStore keeps upload windows in Redis so multiple processes share
// one limit. INCR is atomic, so there is no lost-update race, and key expiry
// replaces sweeping.
type RedisCounterStore struct {
	client *redis.Client
	limits Limits
}

// NewRedisCounterStore creates a Redis-backed counter store.
func NewRedisCounterStore(client *redis.Client, limits Limits) *RedisCounterStore {
	return &RedisCounterStore{client: client, limits: limits}
}

func (s *RedisCounterStore) key(clientID string) string {
	return redisCounterPrefix + clientID
}

// Take increments the client's window counter, opening a fresh window when
// the key is new. A count past the limit is decremented back so a rejected
// attempt does not consume window budget.
func (s *RedisCounterStore) Take(ctx context.Context, clientID string, now time.Time) (Decision, error) {
	key := s.key(clientID)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("increment upload counter: %w", err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, key, s.limits.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("set window expiry: %w", err)
		}

		return Decision{Admitted: true, Remaining: s.limits.Limit - 1, ResetAt: now.Add(s.limits.Window)}, nil
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("read window expiry: %w", err)
	}

	if ttl < 0 {
		// expiry lost (e.g. a crashed PExpire); restore it
		ttl = s.limits.Window
		if err := s.client.PExpire(ctx, key, ttl).Err(); err != nil {
			return Decision{}, fmt.Errorf("restore window expiry: %w", err)
		}
	}

	resetAt := now.Add(ttl)

	if count > int64(s.limits.Limit) {
		if err := s.client.Decr(ctx, key).Err(); err != nil {
			return Decision{}, fmt.Errorf("roll back upload counter: %w", err)
		}

		return Decision{Admitted: false, Remaining: 0, ResetAt: resetAt}, nil
	}

	return Decision{Admitted: true, Remaining: s.limits.Limit - int(count), ResetAt: resetAt}, nil
}

// Sweep is a no-op: Redis expires window keys natively.
func (s *RedisCounterStore) Sweep(ctx context.Context, now time.Time) int {
	return 0
}
