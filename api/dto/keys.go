package dto

import (
	"net/url"
	"strconv"
	"strings"
)

// Логические ключи кэша (без префикса хранилища).
const (
	DefaultSearchKey = "search:default:page=1|size=20"

	searchKeyPrefix    = "search:"
	detailKeyPrefix    = "detail:"
	publisherKeyPrefix = "publisher:"
	additionsKeyPrefix = "additions:"
	sequelsKeyPrefix   = "sequels:"

	fieldSeparator = "|"
)

// Kinds of paged reference lists.
const (
	KindGenres     = "genres"
	KindPlatforms  = "platforms"
	KindDevelopers = "developers"
	KindPublishers = "publishers"
	KindPopular    = "popular"
)

// CacheKey serializes every field in a fixed order, so the key depends only on
// field values. The default query maps to DefaultSearchKey.
func (q FilterQuery) CacheKey() string {
	q = q.Normalize()
	if q == DefaultFilterQuery() {
		return DefaultSearchKey
	}

	var b strings.Builder
	b.WriteString(searchKeyPrefix)
	writeField(&b, "q", q.Search, false)
	writeField(&b, "platform", q.Platform, true)
	writeField(&b, "developer", q.Developer, true)
	writeField(&b, "publisher", q.Publisher, true)
	writeField(&b, "genre", q.Genre, true)
	writeField(&b, "metacritic", q.Metacritic, true)
	writeField(&b, "order", q.Ordering, true)
	writeField(&b, "page", strconv.Itoa(q.Page), true)
	writeField(&b, "size", strconv.Itoa(q.PageSize), true)
	return b.String()
}

// values are escaped so that separators inside user input can't collide
func writeField(b *strings.Builder, name, value string, sep bool) {
	if sep {
		b.WriteString(fieldSeparator)
	}
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}

func DetailKey(id int) string {
	return detailKeyPrefix + strconv.Itoa(id)
}

// PageKey is the key of a paged reference list, e.g. "genres:page=1|size=20".
// Paging must already be clamped.
func PageKey(kind string, page, pageSize int) string {
	return kind + ":page=" + strconv.Itoa(page) + fieldSeparator + "size=" + strconv.Itoa(pageSize)
}

// PublisherKey: excludeID 0 means no exclusion.
func PublisherKey(publisherIDs string, excludeID int) string {
	exclude := ""
	if excludeID != 0 {
		exclude = strconv.Itoa(excludeID)
	}
	return publisherKeyPrefix + "publishers=" + url.QueryEscape(strings.TrimSpace(publisherIDs)) +
		fieldSeparator + "excludeId=" + exclude
}

func AdditionsKey(gameID int) string {
	return additionsKeyPrefix + "gameId=" + strconv.Itoa(gameID)
}

func SequelsKey(gameID int) string {
	return sequelsKeyPrefix + "gameId=" + strconv.Itoa(gameID)
}
