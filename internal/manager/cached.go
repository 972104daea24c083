package manager

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"rawg-catalog-service/internal/integration"
	"rawg-catalog-service/internal/metrics"
)

// cached returns the value stored under key or loads it and stores it with
// the class TTL. A broken store never fails the call: read errors and
// undecodable entries count as misses, write errors are only logged.
func cached[T any](ctx context.Context, m *CatalogManager, class dataClass, key string, load func(context.Context) (T, error)) (T, error) {
	storageKey := m.keys.ToStorageKey(key)

	data, found, err := m.store.Get(ctx, storageKey)
	switch {
	case err != nil:
		zap.S().Warnw("cache read failed, treating as miss", "key", storageKey, "error", err)
		metrics.RecordCacheLookup(string(class), metrics.CacheError)
	case found:
		var v T
		decodeErr := json.Unmarshal(data, &v)
		if decodeErr == nil {
			metrics.RecordCacheLookup(string(class), metrics.CacheHit)
			return v, nil
		}
		zap.S().Warnw("cached entry is undecodable, treating as miss", "key", storageKey, "error", decodeErr)
		metrics.RecordCacheLookup(string(class), metrics.CacheError)
	default:
		metrics.RecordCacheLookup(string(class), metrics.CacheMiss)
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		zap.S().Warnw("cache encode failed", "key", storageKey, "error", err)
		return v, nil
	}
	if err := m.store.Set(ctx, storageKey, encoded, m.ttl.of(class)); err != nil {
		zap.S().Warnw("cache write failed", "key", storageKey, "error", err)
	}
	return v, nil
}

// fetchAs calls the catalog API and normalizes the body.
func fetchAs[T any](ctx context.Context, f integration.Fetcher, path string, params integration.Params, normalize func([]byte) (T, error)) (T, error) {
	body, err := f.Fetch(ctx, path, params)
	if err != nil {
		var zero T
		return zero, err
	}
	return normalize(body)
}
