package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////
/// Store provider structs
///////////////////////////////////////////////////////////

type ProviderType string

const (
	ProviderTypeRistretto ProviderType = "ristretto"
	ProviderTypeLRU       ProviderType = "lru"
	ProviderTypeRedis     ProviderType = "redis"
	ProviderTypeRocksDb   ProviderType = "rocksdb"
	ProviderTypeUnknown   ProviderType = "unknown"
)

/* ---------- общее ядро ---------- */

type ProviderMeta struct {
	Name string       `yaml:"name"`
	Type ProviderType `yaml:"type"`
}

func (m ProviderMeta) GetName() string       { return m.Name }
func (m ProviderMeta) GetType() ProviderType { return m.Type }

/* ---------- интерфейс ---------- */

type Provider interface {
	GetName() string
	GetType() ProviderType
}

/* ---------- конкретные типы ---------- */

type Ristretto struct {
	ProviderMeta `yaml:",inline"`

	NumCounters int64  `yaml:"numCounters"`
	BufferItems int64  `yaml:"bufferItems"`
	MaxCost     string `yaml:"maxCost"`
}

func (r *Ristretto) MaxCostBytes() (uint64, error) {
	return ParseBytesStr(r.MaxCost, r.Name+" -> maxCost")
}

// LRU is an in-process store bounded by entry count.
type LRU struct {
	ProviderMeta `yaml:",inline"`

	MaxEntries int           `yaml:"maxEntries"`
	MaxTTL     time.Duration `yaml:"maxTTL"` // 0 = bounded by entry TTLs only
}

type Redis struct {
	ProviderMeta `yaml:",inline"`

	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	Timeout  time.Duration `yaml:"timeout"`
}

type RocksDB struct {
	ProviderMeta `yaml:",inline"`

	Path            string        `yaml:"path"`
	CreateIfMissing bool          `yaml:"createIfMissing"`
	MaxOpenFiles    int           `yaml:"maxOpenFiles"`
	BlockSize       string        `yaml:"blockSize"`
	BlockCache      string        `yaml:"blockCache"`
	WriteBufferSize string        `yaml:"writeBufferSize"`
	CollectInterval time.Duration `yaml:"collectInterval"` // 0 = lazy expiry only
}

func (r *RocksDB) BlockSizeBytes() (uint64, error) {
	return ParseBytesStr(r.BlockSize, r.Name+" -> blockSize")
}

func (r *RocksDB) BlockCacheBytes() (uint64, error) {
	return ParseBytesStr(r.BlockCache, r.Name+" -> blockCache")
}

func (r *RocksDB) WriteBufferSizeBytes() (uint64, error) {
	return ParseBytesStr(r.WriteBufferSize, r.Name+" -> writeBufferSize")
}

type Unknown struct {
	ProviderMeta `yaml:",inline"`
}

/* ---------- кастомный Unmarshal ---------- */

// Store wraps the configured provider; the concrete type is picked by `type`.
type Store struct {
	Provider Provider
}

func (s *Store) UnmarshalYAML(value *yaml.Node) error {
	var meta ProviderMeta
	if err := value.Decode(&meta); err != nil {
		return err
	}

	var prov Provider
	switch meta.Type {
	case ProviderTypeRistretto:
		prov = &Ristretto{}
	case ProviderTypeLRU:
		prov = &LRU{}
	case ProviderTypeRedis:
		prov = &Redis{}
	case ProviderTypeRocksDb:
		prov = &RocksDB{}
	default:
		prov = &Unknown{}
	}

	if err := value.Decode(prov); err != nil {
		return err
	}
	s.Provider = prov
	return nil
}

func (pt *ProviderType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	switch s {
	case string(ProviderTypeRistretto), string(ProviderTypeLRU), string(ProviderTypeRedis), string(ProviderTypeRocksDb):
		*pt = ProviderType(s)
		return nil
	default:
		return fmt.Errorf("unknown provider type: %q", s)
	}
}
