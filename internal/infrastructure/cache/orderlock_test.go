package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisOrderLocker_ExclusiveUntilReleased(t *testing.T) {
	client := setupTestRedis(t)
	locker := NewRedisOrderLocker(client, "test:order:", time.Minute)
	ctx := context.Background()

	release, ok, err := locker.TryLock(ctx, 1024)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.TryLock(ctx, 1024)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	_, ok, err = locker.TryLock(ctx, 1025)
	require.NoError(t, err)
	assert.True(t, ok, "locks are per order")

	require.NoError(t, release(ctx))

	_, ok, err = locker.TryLock(ctx, 1024)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisOrderLocker_StaleReleaseKeepsNewHolder(t *testing.T) {
	client := setupTestRedis(t)
	locker := NewRedisOrderLocker(client, "test:order:", 50*time.Millisecond)
	ctx := context.Background()

	staleRelease, ok, err := locker.TryLock(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(100 * time.Millisecond)

	fresh := NewRedisOrderLocker(client, "test:order:", time.Minute)
	_, ok, err = fresh.TryLock(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok, "expired lock can be re-acquired")

	require.NoError(t, staleRelease(ctx))

	exists, err := client.Exists(ctx, "test:order:7").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestRedisOrderLocker_Defaults(t *testing.T) {
	locker := NewRedisOrderLocker(nil, "", 0)

	assert.Equal(t, DefaultOrderLockTTL, locker.ttl)
	assert.Equal(t, "bookstore:vnpay:order:42", locker.buildKey(42))

	_, _, err := locker.TryLock(context.Background(), 0)
	assert.Error(t, err)
}
