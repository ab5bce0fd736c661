package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"catalog-api/internal/cache"
	"catalog-api/internal/model"
)

// CacheOptions configures the cache-aside layer. Injected rather than
// read from globals so tests can use short TTLs.
type CacheOptions struct {
	// TTL bounds the lifetime of every cache entry. Entries expire after
	// this duration regardless of invalidation activity.
	TTL time.Duration

	// KeyPrefix namespaces every cache key (e.g. "catalog:").
	KeyPrefix string
}

// DefaultCacheOptions returns the production cache settings.
func DefaultCacheOptions() CacheOptions {
	return CacheOptions{
		TTL:       10 * time.Minute,
		KeyPrefix: "catalog:",
	}
}

// CachedCatalog decorates a Catalog with cache-aside reads and
// invalidate-on-write. Cache failures are absorbed and logged; they never
// affect the correctness of reads or writes, which always have the wrapped
// catalog as the authoritative path.
type CachedCatalog struct {
	inner Catalog
	cache cache.Cache
	opts  CacheOptions
}

// NewCachedCatalog wraps a catalog with the cache-aside layer.
func NewCachedCatalog(inner Catalog, c cache.Cache, opts CacheOptions) *CachedCatalog {
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheOptions().TTL
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultCacheOptions().KeyPrefix
	}
	return &CachedCatalog{inner: inner, cache: c, opts: opts}
}

// Cache key scheme: namespaced, hierarchical, deterministic from
// operation + arguments.
func (c *CachedCatalog) allKey() string {
	return c.opts.KeyPrefix + "items:all"
}

func (c *CachedCatalog) itemKey(id int64) string {
	return fmt.Sprintf("%sitems:%d", c.opts.KeyPrefix, id)
}

func (c *CachedCatalog) brandKey(brandID int64) string {
	return fmt.Sprintf("%sitems:brand:%d", c.opts.KeyPrefix, brandID)
}

func (c *CachedCatalog) typeKey(typeID int64) string {
	return fmt.Sprintf("%sitems:type:%d", c.opts.KeyPrefix, typeID)
}

// lookup fetches and deserializes a cached value. The second return is true
// only on a usable hit. A corrupt payload is deleted so the next read
// repopulates; any cache error is logged and reported as a miss.
func lookup[T any](ctx context.Context, c *CachedCatalog, key string) (T, bool) {
	var value T

	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss {
			log.Printf("[CachedCatalog] cache get failed for %s: %v", key, err)
		}
		return value, false
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		log.Printf("[CachedCatalog] dropping corrupt cache entry %s: %v", key, err)
		if delErr := c.cache.Delete(ctx, key); delErr != nil {
			log.Printf("[CachedCatalog] cache delete failed for %s: %v", key, delErr)
		}
		var zero T
		return zero, false
	}

	return value, true
}

// store serializes a value under key with the configured TTL. A cache-store
// failure must never fail the read, so errors are only logged.
func store[T any](ctx context.Context, c *CachedCatalog, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[CachedCatalog] marshal failed for %s: %v", key, err)
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.opts.TTL); err != nil {
		log.Printf("[CachedCatalog] cache set failed for %s: %v", key, err)
	}
}

// invalidate deletes the given keys. Deleting an absent key is a no-op, and
// delete failures are logged; stale entries age out via TTL either way.
func (c *CachedCatalog) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.cache.Delete(ctx, key); err != nil {
			log.Printf("[CachedCatalog] cache invalidate failed for %s: %v", key, err)
		}
	}
}

// ListAll returns every item, serving from cache when possible.
func (c *CachedCatalog) ListAll(ctx context.Context) ([]model.ItemView, error) {
	key := c.allKey()
	if items, ok := lookup[[]model.ItemView](ctx, c, key); ok {
		return items, nil
	}

	items, err := c.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	store(ctx, c, key, items)
	return items, nil
}

// GetByID returns a single item, serving from cache when possible.
// A nil (not-found) result is returned as-is and never cached.
func (c *CachedCatalog) GetByID(ctx context.Context, id int64) (*model.ItemView, error) {
	key := c.itemKey(id)
	if item, ok := lookup[*model.ItemView](ctx, c, key); ok {
		return item, nil
	}

	item, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	store(ctx, c, key, item)
	return item, nil
}

// ListByBrand returns all items of the given brand, serving from cache when possible.
func (c *CachedCatalog) ListByBrand(ctx context.Context, brandID int64) ([]model.ItemView, error) {
	key := c.brandKey(brandID)
	if items, ok := lookup[[]model.ItemView](ctx, c, key); ok {
		return items, nil
	}

	items, err := c.inner.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}

	store(ctx, c, key, items)
	return items, nil
}

// ListByType returns all items of the given type, serving from cache when possible.
func (c *CachedCatalog) ListByType(ctx context.Context, typeID int64) ([]model.ItemView, error) {
	key := c.typeKey(typeID)
	if items, ok := lookup[[]model.ItemView](ctx, c, key); ok {
		return items, nil
	}

	items, err := c.inner.ListByType(ctx, typeID)
	if err != nil {
		return nil, err
	}

	store(ctx, c, key, items)
	return items, nil
}

// Create delegates to the wrapped catalog, then invalidates the full list,
// the new item's key, and the brand/type lists it now appears in.
func (c *CachedCatalog) Create(ctx context.Context, input model.ItemInput) (*model.ItemView, error) {
	created, err := c.inner.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx,
		c.allKey(),
		c.itemKey(created.ID),
		c.brandKey(input.BrandID),
		c.typeKey(input.TypeID),
	)
	return created, nil
}

// Update delegates to the wrapped catalog. Not-found propagates without
// touching the cache. Invalidation uses the brand/type ids from the input:
// if the update moved the item to a different brand or type, the list entry
// for the previous one stays stale until its TTL expires.
func (c *CachedCatalog) Update(ctx context.Context, id int64, input model.ItemInput) (*model.ItemView, error) {
	updated, err := c.inner.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	c.invalidate(ctx,
		c.allKey(),
		c.itemKey(id),
		c.brandKey(input.BrandID),
		c.typeKey(input.TypeID),
	)
	return updated, nil
}

// Delete delegates to the wrapped catalog, then invalidates the item's key
// and the full list. The item's brand/type are unknown at this point (it is
// not looked up first), so those list entries are left to expire via TTL.
func (c *CachedCatalog) Delete(ctx context.Context, id int64) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}

	c.invalidate(ctx, c.allKey(), c.itemKey(id))
	return nil
}

// Ensure CachedCatalog implements Catalog
var _ Catalog = (*CachedCatalog)(nil)
