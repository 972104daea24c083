package manager

import (
	"time"

	"rawg-catalog-service/internal/cache/config"
)

// dataClass labels a volatility class in logs and metrics.
type dataClass string

const (
	classSearch    dataClass = "search"
	classDetail    dataClass = "detail"
	classGenres    dataClass = "genres"
	classPlatforms dataClass = "platforms"
	classReference dataClass = "reference"
	classRelations dataClass = "relations"
)

// TTLs - время жизни записей по классам данных.
type TTLs struct {
	Search    time.Duration
	Detail    time.Duration
	Genres    time.Duration
	Platforms time.Duration
	Reference time.Duration
	Relations time.Duration
}

func TTLsFromConfig(c config.TTL) TTLs {
	return TTLs{
		Search:    c.Search,
		Detail:    c.Detail,
		Genres:    c.Genres,
		Platforms: c.Platforms,
		Reference: c.Reference,
		Relations: c.Relations,
	}
}

func DefaultTTLs() TTLs {
	return TTLsFromConfig(config.DefaultTTL())
}

func (t TTLs) of(c dataClass) time.Duration {
	switch c {
	case classSearch:
		return t.Search
	case classDetail:
		return t.Detail
	case classGenres:
		return t.Genres
	case classPlatforms:
		return t.Platforms
	case classReference:
		return t.Reference
	case classRelations:
		return t.Relations
	default:
		return t.Search
	}
}
