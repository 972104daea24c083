package manager

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rawg-catalog-service/api/dto"
	"rawg-catalog-service/internal/integration"
	"rawg-catalog-service/internal/metrics"
	"rawg-catalog-service/internal/normalizer"
)

// probePageSize: two entries are enough to see one that is not the current game.
const probePageSize = 2

// Пробы управляют показом необязательных блоков страницы игры.
// Ложный отрицательный ответ допустим, поэтому любые ошибки проглатываются.

func (m *CatalogManager) HasOtherGamesByPublisher(ctx context.Context, publisherIDs string, currentID int) bool {
	publisherIDs = strings.TrimSpace(publisherIDs)
	if publisherIDs == "" {
		return false
	}
	params := publisherParams(publisherIDs).AddInt("page_size", probePageSize)
	return m.probe(ctx, "publisher", pathGames, params, currentID)
}

func (m *CatalogManager) HasDLCs(ctx context.Context, id int) bool {
	return m.probe(ctx, "additions", additionsPath(id), probeParams(), id)
}

func (m *CatalogManager) HasSequels(ctx context.Context, id int) bool {
	return m.probe(ctx, "sequels", seriesPath(id), probeParams(), id)
}

// Relations runs the three probes concurrently.
func (m *CatalogManager) Relations(ctx context.Context, id int, publisherIDs string) dto.GameRelations {
	var rel dto.GameRelations
	var g errgroup.Group
	g.Go(func() error {
		rel.HasOtherGamesByPublisher = m.HasOtherGamesByPublisher(ctx, publisherIDs, id)
		return nil
	})
	g.Go(func() error {
		rel.HasDLCs = m.HasDLCs(ctx, id)
		return nil
	})
	g.Go(func() error {
		rel.HasSequels = m.HasSequels(ctx, id)
		return nil
	})
	_ = g.Wait()
	return rel
}

func probeParams() integration.Params {
	return integration.NewParams().AddInt("page_size", probePageSize).Add("search_precise", "true")
}

// probe reports whether the list at path holds any game other than currentID.
// It never fails: errors are logged, counted and answered with false.
func (m *CatalogManager) probe(ctx context.Context, name, path string, params integration.Params, currentID int) bool {
	list, err := fetchAs(ctx, m.fetcher, path, params, normalizer.GameList)
	if err != nil {
		zap.S().Warnw("relation probe failed", "probe", name, "path", path, "error", err)
		metrics.RecordProbeFailure(name)
		return false
	}
	for _, g := range list {
		if g.ID != currentID {
			return true
		}
	}
	return false
}
