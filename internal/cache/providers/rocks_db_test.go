//go:build rocksdb

package providers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rawg-catalog-service/internal/cache/config"
)

func newTestRocks(t *testing.T) *RocksDbCF {
	cfg := config.RocksDB{
		Path:            filepath.Join(t.TempDir(), "db"),
		CreateIfMissing: true,
		MaxOpenFiles:    100,
		BlockCache:      "512KB",
		BlockSize:       "4KB",
	}

	client, err := NewRocksDbCF(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRocksDbCF_SetGet(t *testing.T) {
	ctx := context.Background()
	client := newTestRocks(t)

	require.NoError(t, client.Set(ctx, "foo", []byte("bar"), time.Minute))

	val, found, err := client.Get(ctx, "foo")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bar", string(val))

	_, found, err = client.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestRocksDbCF_TTLExpiration(t *testing.T) {
	ctx := context.Background()
	client := newTestRocks(t)

	now := time.Now()
	client.now = func() time.Time { return now }

	require.NoError(t, client.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, client.Set(ctx, "forever", []byte("2"), 0))

	now = now.Add(2 * time.Minute)

	_, found, err := client.Get(ctx, "short")
	assert.NoError(t, err)
	assert.False(t, found)

	_, found, err = client.Get(ctx, "forever")
	assert.NoError(t, err)
	assert.True(t, found)
}

func TestRocksDbCF_CollectOnce(t *testing.T) {
	ctx := context.Background()
	client := newTestRocks(t)

	now := time.Now()
	client.now = func() time.Time { return now }

	require.NoError(t, client.Set(ctx, "a", []byte("1"), time.Second))
	require.NoError(t, client.Set(ctx, "b", []byte("2"), time.Hour))

	now = now.Add(time.Minute)
	assert.Equal(t, 1, client.collectOnce())
}
