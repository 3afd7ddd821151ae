package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/poloedu/polobill/internal/config"
)

// Cache is a small in-process TTL cache in front of plan reads. Entries are
// invalidated on writes; a polo never serves another polo's entries because
// keys embed the record ID, which is globally unique.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache with the configured TTL.
func New(cfg *config.Configuration) *Cache {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	cleanup := cfg.Cache.CleanupInterval
	if cleanup <= 0 {
		cleanup = 2 * ttl
	}
	return &Cache{store: gocache.New(ttl, cleanup)}
}

// Get returns the cached value for the key, if present.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores a value under the key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Delete drops the key.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// PlanKey builds the cache key for a plan record.
func PlanKey(planID string) string {
	return "plan:" + planID
}
