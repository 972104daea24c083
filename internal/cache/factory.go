package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rawg-catalog-service/internal/cache/config"
	"rawg-catalog-service/internal/cache/providers"
)

// CreateProvider builds the cache store selected in config.
func CreateProvider(ctx context.Context, p config.Provider) (providers.CacheProvider, error) {
	var (
		provider providers.CacheProvider
		err      error
	)
	switch c := p.(type) {
	case *config.Ristretto:
		provider, err = providers.NewRistretto(*c)
	case *config.LRU:
		provider = providers.NewLRU(*c)
	case *config.Redis:
		provider, err = providers.NewRedis(ctx, *c)
	case *config.RocksDB:
		provider, err = providers.NewRocksDbCF(*c)
	default:
		return nil, fmt.Errorf("unsupported provider type: %T", c)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cache provider %q (%s): %w", p.GetName(), p.GetType(), err)
	}

	zap.S().Infow("cache provider ready", "name", p.GetName(), "type", p.GetType())
	return provider, nil
}
