package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvOTLPEndpoint, "")
}

func TestLoadAppConfig_Success(t *testing.T) {
	clearEnv(t)
	yml := `
store:
  name: shared
  type: redis
  host: localhost
  port: 6379
  poolSize: 10
  timeout: 1s

cache:
  prefix: gs
  ttl:
    search: 5m
    detail: 2h
    genres: 24h
    platforms: 336h

upstream:
  baseUrl: https://api.rawg.io/api
  apiKey: secret
  timeout: 3s
  rateLimit: 5
  burst: 10
  breaker:
    enabled: true
    failureThreshold: 3
    openTimeout: 10s

server:
  apiPort: 8081
  metricsPort: 9081

warmUp:
  timeout: 30s
`

	tmpFile := t.TempDir() + "/config.yml"
	err := os.WriteFile(tmpFile, []byte(yml), 0644)
	require.NoError(t, err)

	got, err := LoadAppConfig(tmpFile)
	require.NoError(t, err)

	expected := &AppConfig{
		Store: Store{Provider: &Redis{
			ProviderMeta: ProviderMeta{Name: "shared", Type: ProviderTypeRedis},
			Host:         "localhost",
			Port:         6379,
			PoolSize:     10,
			Timeout:      time.Second,
		}},
		Cache: Cache{
			Prefix: "gs",
			TTL: TTL{
				Search:    5 * time.Minute,
				Detail:    2 * time.Hour,
				Genres:    24 * time.Hour,
				Platforms: 336 * time.Hour,
				Reference: fourteenDays,
				Relations: fourteenDays,
			},
		},
		Upstream: Upstream{
			BaseURL:             "https://api.rawg.io/api",
			APIKey:              "secret",
			Timeout:             3 * time.Second,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			RateLimit:           5,
			Burst:               10,
			Breaker: Breaker{
				Enabled:          true,
				FailureThreshold: 3,
				MaxRequests:      1,
				OpenTimeout:      10 * time.Second,
			},
		},
		Server:  Server{APIPort: 8081, MetricsPort: 9081},
		Logging: Logging{Level: "info"},
		WarmUp:  WarmUp{Timeout: 30 * time.Second},
	}

	assert.Equal(t, expected, got)
}

func TestParseAppConfig_Defaults(t *testing.T) {
	clearEnv(t)

	got, err := ParseAppConfig([]byte("upstream:\n  apiKey: k\n"))
	require.NoError(t, err)

	assert.Equal(t, &Ristretto{
		ProviderMeta: ProviderMeta{Name: "memory", Type: ProviderTypeRistretto},
		NumCounters:  1e6,
		BufferItems:  64,
		MaxCost:      "256MB",
	}, got.Store.Provider)
	assert.Equal(t, "rawg", got.Cache.Prefix)
	assert.Equal(t, DefaultTTL(), got.Cache.TTL)
	assert.Equal(t, DefaultBaseURL, got.Upstream.BaseURL)
	assert.Equal(t, 15*time.Second, got.Upstream.Timeout)
	assert.Equal(t, 8080, got.Server.APIPort)
	assert.Equal(t, 9080, got.Server.MetricsPort)
	assert.False(t, got.WarmUp.Disabled)
}

func TestParseAppConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvBaseURL, "http://localhost:9999/api")
	t.Setenv(EnvOTLPEndpoint, "localhost:4317")

	got, err := ParseAppConfig([]byte("upstream:\n  apiKey: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", got.Upstream.APIKey)
	assert.Equal(t, "http://localhost:9999/api", got.Upstream.BaseURL)
	assert.True(t, got.Tracing.Enabled)
	assert.Equal(t, "localhost:4317", got.Tracing.Endpoint)
}

func TestParseAppConfig_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := ParseAppConfig([]byte("server:\n  apiPort: 8080\n"))
	assert.ErrorContains(t, err, "apiKey is required")
}

func TestParseAppConfig_UnknownStoreType(t *testing.T) {
	clearEnv(t)

	_, err := ParseAppConfig([]byte("store:\n  name: x\n  type: memcached\nupstream:\n  apiKey: k\n"))
	assert.ErrorContains(t, err, "unknown provider type")
}

func TestParseAppConfig_LRUStore(t *testing.T) {
	clearEnv(t)

	got, err := ParseAppConfig([]byte("store:\n  name: local\n  type: lru\n  maxTTL: 48h\nupstream:\n  apiKey: k\n"))
	require.NoError(t, err)

	assert.Equal(t, &LRU{
		ProviderMeta: ProviderMeta{Name: "local", Type: ProviderTypeLRU},
		MaxEntries:   10000,
		MaxTTL:       48 * time.Hour,
	}, got.Store.Provider)
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	_, err := LoadAppConfig(t.TempDir() + "/nope.yml")
	assert.ErrorContains(t, err, "read error")
}

func TestLoadAppConfig_SampleFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "from-env")

	got, err := LoadAppConfig("../../../configs/config.yml")
	require.NoError(t, err)

	assert.Equal(t, "from-env", got.Upstream.APIKey)
	assert.Equal(t, ProviderTypeRistretto, got.Store.Provider.GetType())
	assert.Equal(t, DefaultTTL(), got.Cache.TTL)
	assert.True(t, got.Upstream.Breaker.Enabled)
}
