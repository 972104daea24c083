package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() AppConfig {
	cfg := AppConfig{
		Store: Store{Provider: &Ristretto{
			ProviderMeta: ProviderMeta{Name: "mem", Type: ProviderTypeRistretto},
			NumCounters:  1000,
			BufferItems:  64,
			MaxCost:      "128MB",
		}},
		Upstream: Upstream{APIKey: "k"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_FullValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_SuccessRocksDB(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Provider = &RocksDB{
		ProviderMeta:    ProviderMeta{Name: "disk", Type: ProviderTypeRocksDb},
		Path:            t.TempDir(),
		MaxOpenFiles:    100,
		BlockSize:       "4KB",
		BlockCache:      "64MB",
		WriteBufferSize: "8MB",
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_InvalidRocksDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Provider = &RocksDB{
		ProviderMeta:    ProviderMeta{Name: "db", Type: ProviderTypeRocksDb},
		Path:            "/invalid-path",
		MaxOpenFiles:    100,
		CreateIfMissing: false,
	}

	err := cfg.Validate()
	assert.ErrorContains(t, err, "does not exist and createIfMissing=false")
}

func TestValidate_InvalidRistrettoMaxCost(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Provider = &Ristretto{
		ProviderMeta: ProviderMeta{Name: "mem", Type: ProviderTypeRistretto},
		NumCounters:  10, BufferItems: 10, MaxCost: "lots",
	}

	err := cfg.Validate()
	assert.ErrorContains(t, err, "invalid maxCost 'lots'")
}

func TestValidate_RedisPort(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Provider = &Redis{
		ProviderMeta: ProviderMeta{Name: "r", Type: ProviderTypeRedis},
		Host:         "localhost",
		Port:         70000,
		PoolSize:     1,
		Timeout:      time.Second,
	}

	err := cfg.Validate()
	assert.ErrorContains(t, err, "port must be 1..65535")
}

func TestValidate_TTLOrder(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.TTL.Search = 2 * time.Hour

	err := cfg.Validate()
	assert.ErrorContains(t, err, "search (2h0m0s) must be shorter than detail")

	cfg = validConfig()
	cfg.Cache.TTL.Genres = 30 * time.Minute

	err = cfg.Validate()
	assert.ErrorContains(t, err, "detail (1h0m0s) must be shorter than genres")
}

func TestValidate_PrefixSeparator(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Prefix = "a:b"

	err := cfg.Validate()
	assert.ErrorContains(t, err, "must not contain ':'")
}

func TestValidate_InvalidBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Upstream.BaseURL = "ftp://api.rawg.io"

	err := cfg.Validate()
	assert.ErrorContains(t, err, "unsupported scheme 'ftp'")
}

func TestValidate_SamePorts(t *testing.T) {
	cfg := validConfig()
	cfg.Server.MetricsPort = cfg.Server.APIPort

	err := cfg.Validate()
	assert.ErrorContains(t, err, "must differ")
}

func TestValidate_TracingEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Tracing.Enabled = true

	err := cfg.Validate()
	assert.ErrorContains(t, err, "tracing: endpoint is required")
}

func TestDefaultTTL_ClassSeparation(t *testing.T) {
	ttl := DefaultTTL()
	assert.Less(t, ttl.Search, ttl.Detail)
	assert.Less(t, ttl.Detail, ttl.Genres)
	assert.Less(t, ttl.Detail, ttl.Platforms)
	assert.Less(t, ttl.Detail, ttl.Relations)
}

func TestParseByteSize(t *testing.T) {
	bytes, err := ParseByteSize(" 1MB ")
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000*1000), bytes)

	_, err = ParseBytesStr("x", "store -> maxCost")
	assert.ErrorContains(t, err, "store -> maxCost")
}
