package directory

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// CacheConfig sizes the player cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache sizing
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

type cachedPlayerEntry struct {
	Version  string
	Player   domain.Player
	CachedAt time.Time
}

// playerCache is an in-memory LRU of player profiles with time-based expiration
type playerCache struct {
	lru    *expirable.LRU[string, *cachedPlayerEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newPlayerCache(cfg CacheConfig) *playerCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &playerCache{
		lru: expirable.NewLRU[string, *cachedPlayerEntry](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns a copy of the cached player. Entries with a stale schema version are dropped.
func (c *playerCache) Get(id string) (domain.Player, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		c.misses.Add(1)
		return domain.Player{}, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		c.misses.Add(1)
		return domain.Player{}, false
	}
	c.hits.Add(1)
	return entry.Player, true
}

func (c *playerCache) Set(p domain.Player) {
	c.lru.Add(p.ID, &cachedPlayerEntry{
		Version:  CacheSchemaVersion,
		Player:   p,
		CachedAt: time.Now(),
	})
}

func (c *playerCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
