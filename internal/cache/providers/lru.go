package providers

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"rawg-catalog-service/internal/cache/config"
	"rawg-catalog-service/internal/metrics"
)

const lruName = "lru"

// LRU keeps at most MaxEntries values in process. The expirable LRU has one
// cache-wide TTL, so each entry also carries its own deadline.
type LRU struct {
	cache *expirable.LRU[string, lruEntry]
	now   func() time.Time
}

type lruEntry struct {
	value     []byte
	expiresAt time.Time // zero = no expiry
}

func NewLRU(cfg config.LRU) *LRU {
	return &LRU{
		cache: expirable.NewLRU[string, lruEntry](cfg.MaxEntries, nil, cfg.MaxTTL),
		now:   time.Now,
	}
}

func (c *LRU) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(lruName, "get", time.Since(start).Seconds())
		metrics.RecordProviderOp(lruName, "get", err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, false, err
	}

	entry, ok := c.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.cache.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *LRU) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(lruName, "set", time.Since(start).Seconds())
		metrics.RecordProviderOp(lruName, "set", err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	entry := lruEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.cache.Add(key, entry)
	return nil
}

func (c *LRU) Len() int {
	return c.cache.Len()
}

func (c *LRU) Close() error {
	c.cache.Purge()
	return nil
}

var _ CacheProvider = (*LRU)(nil)
