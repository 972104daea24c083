package providers

import (
	"context"
	"time"
)

// CacheProvider is the key-value store behind the catalog cache. Values are
// serialized JSON; ttl <= 0 stores without expiry. Implementations are safe
// for concurrent use.
//
// Реализации:
//   - Ristretto - in-process, теряется при рестарте;
//   - LRU       - in-process, ограничение по количеству записей;
//   - Redis     - сетевой, общий для нескольких инстансов;
//   - RocksDbCF - локальный на диске, переживает рестарт (build tag rocksdb).
type CacheProvider interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// closedError is returned by in-process providers after Close.
type closedError struct{ provider string }

func (e closedError) Error() string { return e.provider + ": provider is closed" }
