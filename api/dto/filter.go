package dto

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 50
)

// FilterQuery is the combination of search/filter parameters of a list query.
// Two queries with equal fields after Normalize share one cache entry.
type FilterQuery struct {
	Search     string
	Platform   string
	Developer  string
	Publisher  string
	Genre      string
	Metacritic string
	Ordering   string
	Page       int
	PageSize   int
}

// NewFilterQuery builds a normalized query.
func NewFilterQuery(search, platform, developer, publisher, genre, metacritic, ordering string, page, pageSize int) FilterQuery {
	return FilterQuery{
		Search:     search,
		Platform:   platform,
		Developer:  developer,
		Publisher:  publisher,
		Genre:      genre,
		Metacritic: metacritic,
		Ordering:   ordering,
		Page:       page,
		PageSize:   pageSize,
	}.Normalize()
}

// DefaultFilterQuery is the unfiltered first page used by anonymous browsing and warm-up.
func DefaultFilterQuery() FilterQuery {
	return FilterQuery{Page: DefaultPage, PageSize: DefaultPageSize}
}

// PlatformFilterQuery is a first page filtered by a single platform id.
func PlatformFilterQuery(platform string) FilterQuery {
	q := DefaultFilterQuery()
	q.Platform = platform
	return q.Normalize()
}

// Normalize trims text fields and clamps paging. Out-of-range values are
// corrected, never rejected.
func (q FilterQuery) Normalize() FilterQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.Platform = strings.TrimSpace(q.Platform)
	q.Developer = strings.TrimSpace(q.Developer)
	q.Publisher = strings.TrimSpace(q.Publisher)
	q.Genre = strings.TrimSpace(q.Genre)
	q.Metacritic = strings.TrimSpace(q.Metacritic)
	q.Ordering = strings.TrimSpace(q.Ordering)
	q.Page = ClampPage(q.Page)
	q.PageSize = ClampPageSize(q.PageSize)
	return q
}

func (q FilterQuery) IsDefault() bool {
	return q.Normalize() == DefaultFilterQuery()
}

// ClampPageSize returns max(MinPageSize, min(MaxPageSize, n)).
func ClampPageSize(n int) int {
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func ClampPage(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
