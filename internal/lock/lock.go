package lock

import (
	"context"
	"fmt"
	"time"

	"scooter-sharing-backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a debounce key survives a crashed holder.
const DefaultTTL = 5 * time.Second

// Locker is a short-lived, non-blocking, advisory lock. It only suppresses
// duplicate submissions; correctness comes from database row locks.
type Locker interface {
	// Acquire reports false without waiting when the key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release removes the key unconditionally.
	Release(ctx context.Context, key string) error
}

type RedisLocker struct {
	client redis.Cmdable
}

func NewRedisLocker(client redis.Cmdable) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	logger.ExternalServiceCall("redis", "SETNX", "key", key, "ttl", ttl)
	ok, err := l.client.SetNX(ctx, key, "1", ttl).Result()
	logger.ExternalServiceResult("redis", "SETNX", err, "key", key, "acquired", ok)
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return ok, nil
}

func (l *RedisLocker) Release(ctx context.Context, key string) error {
	logger.ExternalServiceCall("redis", "DEL", "key", key)
	err := l.client.Del(ctx, key).Err()
	logger.ExternalServiceResult("redis", "DEL", err, "key", key)
	if err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	return nil
}

// Scope acquires key, runs fn with the outcome and releases the key on every
// exit path when it was acquired. A release failure is logged; the key then
// lapses after ttl.
func Scope(ctx context.Context, l Locker, key string, ttl time.Duration, fn func(acquired bool) error) error {
	acquired, err := l.Acquire(ctx, key, ttl)
	if err != nil {
		return err
	}
	if acquired {
		defer func() {
			if err := l.Release(context.WithoutCancel(ctx), key); err != nil {
				logger.Warn("Failed to release lock", "key", key, "error", err)
			}
		}()
	}
	return fn(acquired)
}

func ReserveKey(userID, scooterID int32) string {
	return fmt.Sprintf("reserve:%d:%d", userID, scooterID)
}

func StartRentalKey(userID, scooterID int32) string {
	return fmt.Sprintf("start:%d:%d", userID, scooterID)
}
