package providers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"

	"rawg-catalog-service/internal/cache/config"
	"rawg-catalog-service/internal/metrics"
)

const ristrettoName = "ristretto"

type Ristretto struct {
	mu    sync.RWMutex
	cache *ristretto.Cache
}

func NewRistretto(cfg config.Ristretto) (*Ristretto, error) {
	maxCostBytes, err := cfg.MaxCostBytes()
	if err != nil {
		return nil, err
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     int64(maxCostBytes),
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать Ristretto кэш: %w", err)
	}

	return &Ristretto{cache: cache}, nil
}

func (c *Ristretto) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(ristrettoName, "get", time.Since(start).Seconds())
		metrics.RecordProviderOp(ristrettoName, "get", err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cache == nil {
		return nil, false, closedError{ristrettoName}
	}

	val, ok := c.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	bytes, castOk := val.([]byte)
	if !castOk {
		return nil, false, nil
	}
	return bytes, true, nil
}

// Set waits for ristretto's write buffer, so the value is visible to the next
// Get unless the admission policy rejected it.
func (c *Ristretto) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(ristrettoName, "set", time.Since(start).Seconds())
		metrics.RecordProviderOp(ristrettoName, "set", err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cache == nil {
		return closedError{ristrettoName}
	}

	cost := int64(len(value))
	if cost == 0 {
		cost = 1
	}
	if ttl > 0 {
		c.cache.SetWithTTL(key, value, cost, ttl)
	} else {
		c.cache.Set(key, value, cost)
	}
	c.cache.Wait()
	return nil
}

func (c *Ristretto) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache != nil {
		c.cache.Close()
		c.cache = nil
	}
	return nil
}

var _ CacheProvider = (*Ristretto)(nil)
