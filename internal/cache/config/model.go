package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type AppConfig struct {
	Store    Store    `yaml:"store"`
	Cache    Cache    `yaml:"cache"`
	Upstream Upstream `yaml:"upstream"`
	Server   Server   `yaml:"server"`
	Logging  Logging  `yaml:"logging"`
	Tracing  Tracing  `yaml:"tracing"`
	WarmUp   WarmUp   `yaml:"warmUp"`
}

///////////////////////////////////////////////////////////
/// Sections
///////////////////////////////////////////////////////////

// Upstream describes the catalog API and the client guarding it.
type Upstream struct {
	BaseURL             string        `yaml:"baseUrl"`
	APIKey              string        `yaml:"apiKey"`
	Timeout             time.Duration `yaml:"timeout"`
	MaxIdleConns        int           `yaml:"maxIdleConns"`
	MaxIdleConnsPerHost int           `yaml:"maxIdleConnsPerHost"`
	RateLimit           float64       `yaml:"rateLimit"` // requests per second, 0 = unlimited
	Burst               int           `yaml:"burst"`
	Breaker             Breaker       `yaml:"breaker"`
}

type Breaker struct {
	Enabled          bool          `yaml:"enabled"`
	FailureThreshold uint32        `yaml:"failureThreshold"`
	MaxRequests      uint32        `yaml:"maxRequests"` // allowed in half-open state
	Interval         time.Duration `yaml:"interval"`
	OpenTimeout      time.Duration `yaml:"openTimeout"`
}

type Server struct {
	APIPort     int `yaml:"apiPort"`
	MetricsPort int `yaml:"metricsPort"`
}

type Logging struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Tracing struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

type WarmUp struct {
	Disabled bool          `yaml:"disabled"`
	Timeout  time.Duration `yaml:"timeout"`
}

const (
	DefaultBaseURL        = "https://api.rawg.io/api"
	defaultUpstreamTO     = 15 * time.Second
	defaultIdleConns      = 100
	defaultIdleConnsHost  = 10
	defaultBreakerFails   = 5
	defaultBreakerHalf    = 1
	defaultBreakerOpen    = 30 * time.Second
	defaultAPIPort        = 8080
	defaultMetricsPort    = 9080
	defaultLogLevel       = "info"
	defaultWarmUpTimeout  = 2 * time.Minute
	defaultRistrettoCost  = "256MB"
	defaultRistrettoCount = 1e6
	defaultBufferItems    = 64
	defaultLRUEntries     = 10000
)

// ApplyDefaults fills zero values. Store-specific fields are defaulted only
// for the provider that is configured.
func (c *AppConfig) ApplyDefaults() {
	if c.Store.Provider == nil {
		c.Store.Provider = &Ristretto{ProviderMeta: ProviderMeta{Name: "memory", Type: ProviderTypeRistretto}}
	}
	switch p := c.Store.Provider.(type) {
	case *Ristretto:
		if p.NumCounters == 0 {
			p.NumCounters = defaultRistrettoCount
		}
		if p.BufferItems == 0 {
			p.BufferItems = defaultBufferItems
		}
		if p.MaxCost == "" {
			p.MaxCost = defaultRistrettoCost
		}
	case *LRU:
		if p.MaxEntries == 0 {
			p.MaxEntries = defaultLRUEntries
		}
	}

	c.Cache.applyDefaults()

	u := &c.Upstream
	if u.BaseURL == "" {
		u.BaseURL = DefaultBaseURL
	}
	if u.Timeout == 0 {
		u.Timeout = defaultUpstreamTO
	}
	if u.MaxIdleConns == 0 {
		u.MaxIdleConns = defaultIdleConns
	}
	if u.MaxIdleConnsPerHost == 0 {
		u.MaxIdleConnsPerHost = defaultIdleConnsHost
	}
	if u.RateLimit > 0 && u.Burst == 0 {
		u.Burst = 1
	}
	if u.Breaker.Enabled {
		if u.Breaker.FailureThreshold == 0 {
			u.Breaker.FailureThreshold = defaultBreakerFails
		}
		if u.Breaker.MaxRequests == 0 {
			u.Breaker.MaxRequests = defaultBreakerHalf
		}
		if u.Breaker.OpenTimeout == 0 {
			u.Breaker.OpenTimeout = defaultBreakerOpen
		}
	}

	if c.Server.APIPort == 0 {
		c.Server.APIPort = defaultAPIPort
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = defaultMetricsPort
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.WarmUp.Timeout == 0 {
		c.WarmUp.Timeout = defaultWarmUpTimeout
	}
}

func (c *AppConfig) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.Cache.validate(); err != nil {
		return err
	}
	if err := c.validateUpstream(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing: endpoint is required when enabled")
	}
	return nil
}

func (c *AppConfig) validateStore() error {
	p := c.Store.Provider
	if p == nil {
		return fmt.Errorf("store: provider is required")
	}
	if p.GetType() == ProviderTypeUnknown {
		return fmt.Errorf("store (%s): unknown type '%s'", p.GetName(), p.GetType())
	}

	// -------- специфичные проверки -------------------------------------
	switch v := p.(type) {
	case *Ristretto:
		return validateRistretto(v)
	case *LRU:
		return validateLRU(v)
	case *Redis:
		return validateRedis(v)
	case *RocksDB:
		return validateRocksDB(v)
	default:
		return fmt.Errorf("store (%s): validation not implemented for type %T", p.GetName(), p)
	}
}

func validateRistretto(r *Ristretto) error {
	if r.NumCounters <= 0 {
		return fmt.Errorf("store (%s): numCounters must be > 0", r.Name)
	}
	if r.BufferItems <= 0 {
		return fmt.Errorf("store (%s): bufferItems must be > 0", r.Name)
	}
	// maxCost должен конвертироваться и быть >0
	if bytes, err := ParseByteSize(r.MaxCost); err != nil || bytes == 0 {
		return fmt.Errorf("store (%s): invalid maxCost '%s'", r.Name, r.MaxCost)
	}
	return nil
}

func validateLRU(l *LRU) error {
	if l.MaxEntries <= 0 {
		return fmt.Errorf("store (%s): maxEntries must be > 0", l.Name)
	}
	if l.MaxTTL < 0 {
		return fmt.Errorf("store (%s): maxTTL must be >= 0", l.Name)
	}
	return nil
}

func validateRedis(r *Redis) error {
	if r.Host == "" {
		return fmt.Errorf("store (%s): host is required", r.Name)
	}
	if r.Port <= 0 || r.Port > 65535 {
		return fmt.Errorf("store (%s): port must be 1..65535", r.Name)
	}
	if r.PoolSize <= 0 {
		return fmt.Errorf("store (%s): poolSize must be > 0", r.Name)
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("store (%s): timeout must be > 0", r.Name)
	}
	return nil
}

func validateRocksDB(r *RocksDB) error {
	if r.Path == "" {
		return fmt.Errorf("store (%s): path is required", r.Name)
	}
	if r.MaxOpenFiles <= 0 {
		return fmt.Errorf("store (%s): maxOpenFiles must be > 0", r.Name)
	}
	if r.CollectInterval < 0 {
		return fmt.Errorf("store (%s): collectInterval must be >= 0", r.Name)
	}

	// Проверка существования директории, если CreateIfMissing == false
	if !r.CreateIfMissing {
		info, err := os.Stat(r.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("store (%s): path '%s' does not exist and createIfMissing=false", r.Name, r.Path)
			}
			return fmt.Errorf("store (%s): unable to access path '%s': %v", r.Name, r.Path, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store (%s): path '%s' exists but is not a directory", r.Name, r.Path)
		}
	}

	if r.BlockSize != "" {
		if _, err := r.BlockSizeBytes(); err != nil {
			return fmt.Errorf("store (%s): %v", r.Name, err)
		}
	}
	if r.BlockCache != "" {
		if _, err := r.BlockCacheBytes(); err != nil {
			return fmt.Errorf("store (%s): %v", r.Name, err)
		}
	}
	if r.WriteBufferSize != "" {
		if _, err := r.WriteBufferSizeBytes(); err != nil {
			return fmt.Errorf("store (%s): %v", r.Name, err)
		}
	}
	return nil
}

func (c *AppConfig) validateUpstream() error {
	u := c.Upstream
	if u.APIKey == "" {
		return fmt.Errorf("upstream: apiKey is required (or set RAWG_API_KEY)")
	}

	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("upstream: invalid baseUrl '%s': %v", u.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("upstream: unsupported scheme '%s' in baseUrl", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("upstream: missing host in baseUrl '%s'", u.BaseURL)
	}

	if u.Timeout <= 0 {
		return fmt.Errorf("upstream: timeout must be > 0")
	}
	if u.RateLimit < 0 {
		return fmt.Errorf("upstream: rateLimit must be >= 0")
	}
	if u.RateLimit > 0 && u.Burst <= 0 {
		return fmt.Errorf("upstream: burst must be > 0 when rateLimit is set")
	}
	if u.Breaker.Enabled && u.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("upstream: breaker.failureThreshold must be > 0")
	}
	return nil
}

func (c *AppConfig) validateServer() error {
	if c.Server.APIPort <= 0 || c.Server.APIPort > 65535 {
		return fmt.Errorf("server: apiPort must be 1..65535")
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("server: metricsPort must be 1..65535")
	}
	if c.Server.APIPort == c.Server.MetricsPort {
		return fmt.Errorf("server: apiPort and metricsPort must differ")
	}
	return nil
}

///////////////////////////////////////////////////////////
/// UTILS
///////////////////////////////////////////////////////////

func ParseByteSize(s string) (uint64, error) {
	return humanize.ParseBytes(strings.TrimSpace(s))
}

func ParseBytesStr(bytesString string, errorPath string) (uint64, error) {
	bytes, err := ParseByteSize(bytesString)
	if err != nil {
		return 0, fmt.Errorf("invalid config -> %v: %v has wrong value (%v)", errorPath, bytesString, err)
	}
	return bytes, nil
}
