package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rawg-catalog-service/internal/cache/config"
	"rawg-catalog-service/internal/metrics"
)

const redisName = "redis"

type Redis struct {
	rdb *redis.Client
}

func NewRedis(ctx context.Context, cfg config.Redis) (*Redis, error) {

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	// Connection check
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	zap.S().Infow("connected to Redis", "host", cfg.Host, "port", cfg.Port)

	return &Redis{
		rdb: rdb,
	}, nil
}

func (c *Redis) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(redisName, "get", time.Since(start).Seconds())
		metrics.RecordProviderOp(redisName, "get", err)
	}()

	value, err = c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка получения из Redis (key %q): %w", key, err)
	}
	return value, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(redisName, "set", time.Since(start).Seconds())
		metrics.RecordProviderOp(redisName, "set", err)
	}()

	var expiration time.Duration
	if ttl > 0 {
		expiration = ttl
	}
	if err = c.rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения в Redis (key %q): %w", key, err)
	}
	return nil
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

var _ CacheProvider = (*Redis)(nil)
