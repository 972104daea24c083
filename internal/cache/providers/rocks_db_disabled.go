//go:build !rocksdb

package providers

import (
	"context"
	"errors"
	"time"

	"rawg-catalog-service/internal/cache/config"
)

// ErrRocksDBNotBuilt: the binary was built without the rocksdb tag (cgo + librocksdb).
var ErrRocksDBNotBuilt = errors.New("rocksdb store is not compiled in, rebuild with -tags rocksdb")

type RocksDbCF struct{}

func NewRocksDbCF(config.RocksDB) (*RocksDbCF, error) {
	return nil, ErrRocksDBNotBuilt
}

func (c *RocksDbCF) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, ErrRocksDBNotBuilt
}

func (c *RocksDbCF) Set(context.Context, string, []byte, time.Duration) error {
	return ErrRocksDBNotBuilt
}

func (c *RocksDbCF) Close() error { return nil }

var _ CacheProvider = (*RocksDbCF)(nil)
