//go:build rocksdb

// RocksDB провайдер кэша: срок жизни (TTL) хранится в отдельной Column Family
// `ttl_cf`.
//
// Структура CF:
//
//	default  - ключ → значение (JSON);
//	ttl_cf   - ключ → время истечения UnixNano (int64 big endian).
//
// Просроченные записи удаляются двумя способами:
//  1. Ленивая очистка при чтении (Get): ключ удаляется из обеих CF.
//  2. Фоновый коллектор (StartTTLCollector): периодически сканирует ttl_cf.
package providers

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/linxGnu/grocksdb"
	"go.uber.org/zap"

	"rawg-catalog-service/internal/cache/config"
	"rawg-catalog-service/internal/metrics"
)

const (
	rocksName     = "rocksdb"
	defaultCFName = "default"
	ttlCFName     = "ttl_cf"
)

// RocksDbCF is safe for concurrent use: RocksDB itself is, and read/write
// options are never mutated after open.
type RocksDbCF struct {
	db        *grocksdb.DB
	defaultCF *grocksdb.ColumnFamilyHandle
	ttlCF     *grocksdb.ColumnFamilyHandle

	readOpts  *grocksdb.ReadOptions
	writeOpts *grocksdb.WriteOptions

	now           func() time.Time
	stopCollector context.CancelFunc
}

func NewRocksDbCF(cfg config.RocksDB) (*RocksDbCF, error) {
	dbOpts := grocksdb.NewDefaultOptions()
	dbOpts.SetCreateIfMissing(cfg.CreateIfMissing)
	dbOpts.SetCreateIfMissingColumnFamilies(true)
	if cfg.MaxOpenFiles > 0 {
		dbOpts.SetMaxOpenFiles(cfg.MaxOpenFiles)
	}
	if cfg.WriteBufferSize != "" {
		if size, err := cfg.WriteBufferSizeBytes(); err == nil && size > 0 {
			dbOpts.SetWriteBufferSize(size)
		}
	}

	// Block‑cache tuning (optional)
	blockCacheBytes, _ := cfg.BlockCacheBytes()
	blockSizeBytes, _ := cfg.BlockSizeBytes()
	if blockCacheBytes > 0 {
		bbto := grocksdb.NewDefaultBlockBasedTableOptions()
		bbto.SetBlockCache(grocksdb.NewLRUCache(blockCacheBytes))
		if blockSizeBytes > 0 {
			bbto.SetBlockSize(int(blockSizeBytes))
		}
		dbOpts.SetBlockBasedTableFactory(bbto)
	}

	cfNames := []string{defaultCFName, ttlCFName}
	cfOpts := []*grocksdb.Options{dbOpts, dbOpts}

	db, cfHandles, err := grocksdb.OpenDbColumnFamilies(dbOpts, cfg.Path, cfNames, cfOpts)
	if err != nil {
		return nil, fmt.Errorf("open rocksdb with column families: %w", err)
	}

	c := &RocksDbCF{
		db:        db,
		defaultCF: cfHandles[0],
		ttlCF:     cfHandles[1],
		readOpts:  grocksdb.NewDefaultReadOptions(),
		writeOpts: grocksdb.NewDefaultWriteOptions(),
		now:       time.Now,
	}
	if cfg.CollectInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		c.stopCollector = cancel
		c.StartTTLCollector(ctx, cfg.CollectInterval)
	}
	zap.S().Infow("opened RocksDB store", "path", cfg.Path, "collectInterval", cfg.CollectInterval)
	return c, nil
}

func (c *RocksDbCF) Close() error {
	if c.stopCollector != nil {
		c.stopCollector()
	}
	c.readOpts.Destroy()
	c.writeOpts.Destroy()
	// ColumnFamily handles must be destroyed before db Close.
	c.defaultCF.Destroy()
	c.ttlCF.Destroy()
	c.db.Close()
	return nil
}

// ---------------- helpers ----------------

// encodeInt64 converts int64 -> []byte (big endian).
func encodeInt64(v int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return b[:]
}

func decodeInt64(b []byte) int64 {
	if len(b) < 8 {
		n, _ := strconv.ParseInt(string(b), 10, 64)
		return n
	}
	return int64(binary.BigEndian.Uint64(b))
}

// expiry returns the stored deadline (UnixNano) of key.
func (c *RocksDbCF) expiry(key []byte) (int64, bool, error) {
	slice, err := c.db.GetCF(c.readOpts, c.ttlCF, key)
	if err != nil {
		return 0, false, fmt.Errorf("rocksdb get ttl: %w", err)
	}
	defer slice.Free()
	if !slice.Exists() {
		return 0, false, nil
	}
	return decodeInt64(slice.Data()), true, nil
}

// ---------------- CacheProvider ----------------

func (c *RocksDbCF) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(rocksName, "get", time.Since(start).Seconds())
		metrics.RecordProviderOp(rocksName, "get", err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, false, err
	}

	k := []byte(key)
	ts, hasTTL, err := c.expiry(k)
	if err != nil {
		return nil, false, err
	}
	if hasTTL && c.now().UnixNano() > ts {
		c.deleteExpired(k)
		return nil, false, nil
	}

	slice, err := c.db.GetCF(c.readOpts, c.defaultCF, k)
	if err != nil {
		return nil, false, fmt.Errorf("rocksdb get: %w", err)
	}
	defer slice.Free()
	if !slice.Exists() {
		return nil, false, nil
	}
	// slice memory is owned by rocksdb until Free
	value = append([]byte(nil), slice.Data()...)
	return value, true, nil
}

func (c *RocksDbCF) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(rocksName, "set", time.Since(start).Seconds())
		metrics.RecordProviderOp(rocksName, "set", err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	batch := grocksdb.NewWriteBatch()
	defer batch.Destroy()

	k := []byte(key)
	batch.PutCF(c.defaultCF, k, value)
	if ttl > 0 {
		batch.PutCF(c.ttlCF, k, encodeInt64(c.now().Add(ttl).UnixNano()))
	} else {
		batch.DeleteCF(c.ttlCF, k)
	}
	if err = c.db.Write(c.writeOpts, batch); err != nil {
		return fmt.Errorf("rocksdb put: %w", err)
	}
	return nil
}

func (c *RocksDbCF) deleteExpired(key []byte) {
	batch := grocksdb.NewWriteBatch()
	defer batch.Destroy()
	batch.DeleteCF(c.defaultCF, key)
	batch.DeleteCF(c.ttlCF, key)
	if err := c.db.Write(c.writeOpts, batch); err != nil {
		zap.S().Warnw("rocksdb expired key cleanup failed", "key", string(key), "error", err)
	}
}

// ---------------- Background TTL collector ----------------

// StartTTLCollector scans ttl_cf every interval and hard-deletes expired
// keys. Cancel ctx to stop it.
func (c *RocksDbCF) StartTTLCollector(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := c.collectOnce(); n > 0 {
					zap.S().Debugw("rocksdb ttl collector removed keys", "count", n)
				}
			}
		}
	}()
}

func (c *RocksDbCF) collectOnce() int {
	now := c.now().UnixNano()
	it := c.db.NewIteratorCF(c.readOpts, c.ttlCF)
	defer it.Close()

	batch := grocksdb.NewWriteBatch()
	defer batch.Destroy()

	count := 0
	for it.SeekToFirst(); it.Valid(); it.Next() {
		k := it.Key()
		v := it.Value()
		if now > decodeInt64(v.Data()) {
			key := append([]byte(nil), k.Data()...)
			batch.DeleteCF(c.defaultCF, key)
			batch.DeleteCF(c.ttlCF, key)
			count++
		}
		k.Free()
		v.Free()
	}

	if count > 0 {
		if err := c.db.Write(c.writeOpts, batch); err != nil {
			zap.S().Warnw("rocksdb ttl collector write failed", "error", err)
			return 0
		}
	}
	return count
}

var _ CacheProvider = (*RocksDbCF)(nil)
