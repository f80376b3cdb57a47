package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultOrderLockPrefix = "bookstore:vnpay:order:"
	DefaultOrderLockTTL    = 30 * time.Second
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by another process is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOrderLocker serialises callback processing per order across instances.
type RedisOrderLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisOrderLocker(client *redis.Client, prefix string, ttl time.Duration) *RedisOrderLocker {
	if prefix == "" {
		prefix = DefaultOrderLockPrefix
	}
	if ttl <= 0 {
		ttl = DefaultOrderLockTTL
	}
	return &RedisOrderLocker{client: client, prefix: prefix, ttl: ttl}
}

// TryLock attempts to take the lock for orderID without waiting. When it
// reports true the caller must invoke release once done.
func (l *RedisOrderLocker) TryLock(ctx context.Context, orderID uint) (func(context.Context) error, bool, error) {
	if orderID == 0 {
		return nil, false, errors.New("order ID is required")
	}

	key := l.buildKey(orderID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire order lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release order lock: %w", err)
		}
		return nil
	}
	return release, true, nil
}

func (l *RedisOrderLocker) buildKey(orderID uint) string {
	return l.prefix + strconv.FormatUint(uint64(orderID), 10)
}
