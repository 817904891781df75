//go:build integration

package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"myShop/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})

	return client
}

func TestProductCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewProductCache(newTestClient(t), time.Minute)

	_, err := cache.Get(ctx, 1)
	require.ErrorIs(t, err, domain.ErrCacheMiss)

	p := domain.Product{ID: 1, Name: "Tea", Price: 4.5, StockQuantity: 3, IsActive: true}
	require.NoError(t, cache.Set(ctx, p))

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Tea", got.Name)
	assert.Equal(t, 4.5, got.Price)

	require.NoError(t, cache.Delete(ctx, 1, 2))
	_, err = cache.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestProductCache_Expires(t *testing.T) {
	ctx := context.Background()
	cache := NewProductCache(newTestClient(t), 50*time.Millisecond)

	require.NoError(t, cache.Set(ctx, domain.Product{ID: 7, Name: "Short"}))
	time.Sleep(150 * time.Millisecond)

	_, err := cache.Get(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestProductCache_SetAfterDeleteIsDropped(t *testing.T) {
	ctx := context.Background()
	cache := NewProductCache(newTestClient(t), time.Minute)

	// a reader fetched stock 5 before the checkout committed and invalidated
	stale := domain.Product{ID: 3, Name: "Tea", StockQuantity: 5}
	require.NoError(t, cache.Delete(ctx, 3))
	require.NoError(t, cache.Set(ctx, stale))

	_, err := cache.Get(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	// other products are unaffected
	require.NoError(t, cache.Set(ctx, domain.Product{ID: 4, Name: "Coffee"}))
	_, err = cache.Get(ctx, 4)
	assert.NoError(t, err)
}
