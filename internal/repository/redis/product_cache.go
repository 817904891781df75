package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"myShop/domain"

	"github.com/redis/go-redis/v9"
)

// InvalidationGuard is how long a deleted product refuses new cache writes.
// It outlasts a request, so a read that raced a checkout cannot re-cache the
// stock it saw before the commit.
const InvalidationGuard = 15 * time.Second

// setUnlessGuarded writes KEYS[1] only while the guard KEYS[2] is absent.
var setUnlessGuarded = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
if tonumber(ARGV[2]) > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// ProductCache keeps single-product lookups in Redis as JSON.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
	}
}

func productKey(id uint) string {
	// key format: "product:{id}"
	return fmt.Sprintf("product:%d", id)
}

func guardKey(id uint) string {
	return fmt.Sprintf("product:%d:invalidated", id)
}

// Get returns domain.ErrCacheMiss when the product is not cached.
func (c *ProductCache) Get(ctx context.Context, id uint) (domain.Product, error) {
	val, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Product{}, domain.ErrCacheMiss
		}
		return domain.Product{}, fmt.Errorf("failed to get product from Redis: %w", err)
	}

	var product domain.Product
	if err := json.Unmarshal(val, &product); err != nil {
		return domain.Product{}, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return product, nil
}

// Set is a no-op while the product is inside its invalidation guard.
func (c *ProductCache) Set(ctx context.Context, product domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	keys := []string{productKey(product.ID), guardKey(product.ID)}
	if err := setUnlessGuarded.Run(ctx, c.client, keys, data, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to store product in Redis: %w", err)
	}

	return nil
}

func (c *ProductCache) Delete(ctx context.Context, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids))
	pipe := c.client.TxPipeline()
	for _, id := range ids {
		keys = append(keys, productKey(id))
		pipe.Set(ctx, guardKey(id), 1, InvalidationGuard)
	}
	pipe.Del(ctx, keys...)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete products from Redis: %w", err)
	}

	return nil
}
