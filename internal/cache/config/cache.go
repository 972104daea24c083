package config

import (
	"fmt"
	"strings"
	"time"
)

// Cache holds the storage key prefix and the TTL of every data class.
type Cache struct {
	Prefix string `yaml:"prefix"`
	TTL    TTL    `yaml:"ttl"`
}

// TTL per data volatility class. 0 = use the default.
type TTL struct {
	Search    time.Duration `yaml:"search"`
	Detail    time.Duration `yaml:"detail"`
	Genres    time.Duration `yaml:"genres"`
	Platforms time.Duration `yaml:"platforms"`
	Reference time.Duration `yaml:"reference"` // developers, publishers
	Relations time.Duration `yaml:"relations"` // by publisher, DLCs, sequels
}

const fourteenDays = 14 * 24 * time.Hour

func DefaultTTL() TTL {
	return TTL{
		Search:    10 * time.Minute,
		Detail:    time.Hour,
		Genres:    12 * time.Hour,
		Platforms: fourteenDays,
		Reference: fourteenDays,
		Relations: fourteenDays,
	}
}

func (c *Cache) applyDefaults() {
	if strings.TrimSpace(c.Prefix) == "" {
		c.Prefix = "rawg"
	}
	def := DefaultTTL()
	if c.TTL.Search == 0 {
		c.TTL.Search = def.Search
	}
	if c.TTL.Detail == 0 {
		c.TTL.Detail = def.Detail
	}
	if c.TTL.Genres == 0 {
		c.TTL.Genres = def.Genres
	}
	if c.TTL.Platforms == 0 {
		c.TTL.Platforms = def.Platforms
	}
	if c.TTL.Reference == 0 {
		c.TTL.Reference = def.Reference
	}
	if c.TTL.Relations == 0 {
		c.TTL.Relations = def.Relations
	}
}

// validate keeps classes ordered: search < detail < genres, platforms.
func (c *Cache) validate() error {
	if strings.Contains(c.Prefix, ":") {
		return fmt.Errorf("cache: prefix '%s' must not contain ':'", c.Prefix)
	}
	ttls := map[string]time.Duration{
		"search":    c.TTL.Search,
		"detail":    c.TTL.Detail,
		"genres":    c.TTL.Genres,
		"platforms": c.TTL.Platforms,
		"reference": c.TTL.Reference,
		"relations": c.TTL.Relations,
	}
	for name, ttl := range ttls {
		if ttl <= 0 {
			return fmt.Errorf("cache.ttl.%s: must be > 0", name)
		}
	}
	if c.TTL.Search >= c.TTL.Detail {
		return fmt.Errorf("cache.ttl: search (%s) must be shorter than detail (%s)", c.TTL.Search, c.TTL.Detail)
	}
	if c.TTL.Detail >= c.TTL.Genres || c.TTL.Detail >= c.TTL.Platforms {
		return fmt.Errorf("cache.ttl: detail (%s) must be shorter than genres (%s) and platforms (%s)",
			c.TTL.Detail, c.TTL.Genres, c.TTL.Platforms)
	}
	return nil
}
