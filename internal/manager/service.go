package manager

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rawg-catalog-service/api/dto"
	"rawg-catalog-service/internal/cache/providers"
	"rawg-catalog-service/internal/integration"
	"rawg-catalog-service/internal/normalizer"
)

// Catalog определяет операции чтения каталога игр поверх кэша.
//
// Данные берутся из хранилища по логическому ключу запроса, при промахе
// запрашиваются у внешнего API, нормализуются и кладутся в хранилище с TTL
// своего класса. Пробы Has* не кэшируются и никогда не возвращают ошибку.
type Catalog interface {
	SearchAndFilter(ctx context.Context, q dto.FilterQuery) (dto.GamePage, error)
	GetDetail(ctx context.Context, id int) (dto.GameDetail, error)
	GetPopular(ctx context.Context, page, pageSize int) ([]dto.GameSummary, error)

	GetGenres(ctx context.Context, page, pageSize int) ([]dto.Genre, error)
	GetPlatforms(ctx context.Context, page, pageSize int) ([]dto.Platform, error)
	GetDevelopers(ctx context.Context, page, pageSize int) ([]dto.Developer, error)
	GetPublishers(ctx context.Context, page, pageSize int) ([]dto.Publisher, error)

	GetByPublisher(ctx context.Context, publisherIDs string, excludeID int) ([]dto.GameSummary, error)
	GetDLCs(ctx context.Context, id int) ([]dto.GameSummary, error)
	GetSequels(ctx context.Context, id int) ([]dto.GameSummary, error)

	HasOtherGamesByPublisher(ctx context.Context, publisherIDs string, currentID int) bool
	HasDLCs(ctx context.Context, id int) bool
	HasSequels(ctx context.Context, id int) bool
	Relations(ctx context.Context, id int, publisherIDs string) dto.GameRelations
}

const (
	pathGames = "games"

	orderNewestFirst = "-released"
)

type CatalogManager struct {
	store   providers.CacheProvider
	fetcher integration.Fetcher
	keys    *dto.KeyMapper
	ttl     TTLs
}

func NewCatalogManager(store providers.CacheProvider, fetcher integration.Fetcher, keys *dto.KeyMapper, ttl TTLs) *CatalogManager {
	if keys == nil {
		keys = dto.NewKeyMapper("")
	}
	return &CatalogManager{store: store, fetcher: fetcher, keys: keys, ttl: ttl}
}

/* ---------- поиск и карточка игры ---------- */

func (m *CatalogManager) SearchAndFilter(ctx context.Context, q dto.FilterQuery) (dto.GamePage, error) {
	q = q.Normalize()
	key := q.CacheKey()

	page, err := cached(ctx, m, classSearch, key, func(ctx context.Context) (dto.GamePage, error) {
		return fetchAs(ctx, m.fetcher, pathGames, searchParams(q), normalizer.GamePage)
	})
	if err != nil {
		return dto.GamePage{}, &QueryError{Op: "SearchAndFilter", Query: key, Err: err}
	}
	return page, nil
}

func searchParams(q dto.FilterQuery) integration.Params {
	return integration.NewParams().
		Add("search", q.Search).
		Add("platforms", q.Platform).
		Add("developers", q.Developer).
		Add("publishers", q.Publisher).
		Add("genres", q.Genre).
		Add("metacritic", q.Metacritic).
		Add("ordering", q.Ordering).
		AddInt("page", q.Page).
		AddInt("page_size", q.PageSize).
		Add("search_precise", "true")
}

func (m *CatalogManager) GetDetail(ctx context.Context, id int) (dto.GameDetail, error) {
	detail, err := cached(ctx, m, classDetail, dto.DetailKey(id), func(ctx context.Context) (dto.GameDetail, error) {
		return fetchAs(ctx, m.fetcher, gamePath(id), integration.NewParams(), normalizer.GameDetail)
	})
	if err != nil {
		return dto.GameDetail{}, &QueryError{Op: "GetDetail", ID: id, Err: err}
	}
	return detail, nil
}

func (m *CatalogManager) GetPopular(ctx context.Context, page, pageSize int) ([]dto.GameSummary, error) {
	return listPage(ctx, m, "GetPopular", dto.KindPopular, pathGames, classSearch, page, pageSize, normalizer.GameList)
}

/* ---------- справочники ---------- */

func (m *CatalogManager) GetGenres(ctx context.Context, page, pageSize int) ([]dto.Genre, error) {
	return listPage(ctx, m, "GetGenres", dto.KindGenres, "genres", classGenres, page, pageSize, normalizer.Genres)
}

func (m *CatalogManager) GetPlatforms(ctx context.Context, page, pageSize int) ([]dto.Platform, error) {
	return listPage(ctx, m, "GetPlatforms", dto.KindPlatforms, "platforms", classPlatforms, page, pageSize, normalizer.Platforms)
}

func (m *CatalogManager) GetDevelopers(ctx context.Context, page, pageSize int) ([]dto.Developer, error) {
	return listPage(ctx, m, "GetDevelopers", dto.KindDevelopers, "developers", classReference, page, pageSize, normalizer.Developers)
}

func (m *CatalogManager) GetPublishers(ctx context.Context, page, pageSize int) ([]dto.Publisher, error) {
	return listPage(ctx, m, "GetPublishers", dto.KindPublishers, "publishers", classReference, page, pageSize, normalizer.Publishers)
}

// listPage serves a paged list endpoint. Paging is clamped before the key is built.
func listPage[T any](ctx context.Context, m *CatalogManager, op, kind, path string, class dataClass, page, pageSize int, normalize func([]byte) ([]T, error)) ([]T, error) {
	page, pageSize = dto.ClampPage(page), dto.ClampPageSize(pageSize)
	key := dto.PageKey(kind, page, pageSize)

	items, err := cached(ctx, m, class, key, func(ctx context.Context) ([]T, error) {
		params := integration.NewParams().AddInt("page", page).AddInt("page_size", pageSize)
		return fetchAs(ctx, m.fetcher, path, params, normalize)
	})
	if err != nil {
		return nil, &QueryError{Op: op, Query: key, Err: err}
	}
	return items, nil
}

/* ---------- связанные игры ---------- */

// GetByPublisher lists games of the given publishers, newest first. A blank
// id list yields an empty result without an upstream call.
func (m *CatalogManager) GetByPublisher(ctx context.Context, publisherIDs string, excludeID int) ([]dto.GameSummary, error) {
	publisherIDs = strings.TrimSpace(publisherIDs)
	if publisherIDs == "" {
		return []dto.GameSummary{}, nil
	}
	key := dto.PublisherKey(publisherIDs, excludeID)

	games, err := cached(ctx, m, classRelations, key, func(ctx context.Context) ([]dto.GameSummary, error) {
		list, err := fetchAs(ctx, m.fetcher, pathGames, publisherParams(publisherIDs), normalizer.GameList)
		if err != nil {
			return nil, err
		}
		return without(list, excludeID), nil
	})
	if err != nil {
		return nil, &QueryError{Op: "GetByPublisher", ID: excludeID, Query: key, Err: err}
	}
	return games, nil
}

func (m *CatalogManager) GetDLCs(ctx context.Context, id int) ([]dto.GameSummary, error) {
	return m.related(ctx, "GetDLCs", id, dto.AdditionsKey(id), additionsPath(id))
}

func (m *CatalogManager) GetSequels(ctx context.Context, id int) ([]dto.GameSummary, error) {
	return m.related(ctx, "GetSequels", id, dto.SequelsKey(id), seriesPath(id))
}

// related lists games attached to id, newest first, without id itself.
func (m *CatalogManager) related(ctx context.Context, op string, id int, key, path string) ([]dto.GameSummary, error) {
	games, err := cached(ctx, m, classRelations, key, func(ctx context.Context) ([]dto.GameSummary, error) {
		params := integration.NewParams().Add("ordering", orderNewestFirst)
		list, err := fetchAs(ctx, m.fetcher, path, params, normalizer.GameList)
		if err != nil {
			return nil, err
		}
		return without(list, id), nil
	})
	if err != nil {
		return nil, &QueryError{Op: op, ID: id, Err: err}
	}
	return games, nil
}

func publisherParams(publisherIDs string) integration.Params {
	return integration.NewParams().
		Add("publishers", publisherIDs).
		Add("ordering", orderNewestFirst).
		Add("search_precise", "true")
}

func gamePath(id int) string      { return pathGames + "/" + strconv.Itoa(id) }
func additionsPath(id int) string { return gamePath(id) + "/additions" }
func seriesPath(id int) string    { return gamePath(id) + "/game-series" }

// without drops entries with the given id; 0 keeps everything.
func without(list []dto.GameSummary, id int) []dto.GameSummary {
	out := make([]dto.GameSummary, 0, len(list))
	for _, g := range list {
		if id != 0 && g.ID == id {
			continue
		}
		out = append(out, g)
	}
	if len(out) < len(list) {
		zap.S().Debugw("excluded current game from related list", "id", id)
	}
	return out
}

var _ Catalog = (*CatalogManager)(nil)
