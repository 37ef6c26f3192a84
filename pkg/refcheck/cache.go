package refcheck

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aretw0/aniame/pkg/ports"
)

type cacheKey struct {
	schema string
	key    string
}

// Cache is a ports.ReferenceStore that remembers keys found in the
// underlying store. Misses are never cached, so a record created after a
// failed lookup is seen on the next call.
type Cache struct {
	store ports.ReferenceStore
	lru   *lru.Cache[cacheKey, struct{}]
}

// NewCache wraps store with an LRU of at most size positive entries.
func NewCache(store ports.ReferenceStore, size int) (*Cache, error) {
	c, err := lru.New[cacheKey, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("refcheck: cache: %w", err)
	}
	return &Cache{store: store, lru: c}, nil
}

// Exists implements ports.ReferenceStore.
func (c *Cache) Exists(ctx context.Context, schemaName, key string) (bool, error) {
	k := cacheKey{schema: schemaName, key: key}
	if c.lru.Contains(k) {
		return true, nil
	}
	ok, err := c.store.Exists(ctx, schemaName, key)
	if err != nil || !ok {
		return ok, err
	}
	c.lru.Add(k, struct{}{})
	return true, nil
}

// Forget drops a cached key, e.g. after the record was deleted.
func (c *Cache) Forget(schemaName, key string) {
	c.lru.Remove(cacheKey{schema: schemaName, key: key})
}

// Len returns the number of cached keys.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge empties the cache.
func (c *Cache) Purge() { c.lru.Purge() }
