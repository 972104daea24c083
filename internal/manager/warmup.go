package manager

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rawg-catalog-service/api/dto"
	"rawg-catalog-service/internal/metrics"
)

// Платформы, чьи первые страницы прогреваются при старте:
// PC, PS5, Xbox One, PS4, Xbox Series S/X, Nintendo Switch.
var warmUpPlatforms = []string{"4", "187", "1", "18", "186", "7"}

const defaultWarmUpTimeout = 2 * time.Minute

// DefaultWarmUpQueries is the default first page followed by one first page
// per popular platform.
func DefaultWarmUpQueries() []dto.FilterQuery {
	queries := make([]dto.FilterQuery, 0, len(warmUpPlatforms)+1)
	queries = append(queries, dto.DefaultFilterQuery())
	for _, p := range warmUpPlatforms {
		queries = append(queries, dto.PlatformFilterQuery(p))
	}
	return queries
}

// Searcher is the part of Catalog the warm-up needs.
type Searcher interface {
	SearchAndFilter(ctx context.Context, q dto.FilterQuery) (dto.GamePage, error)
}

type WarmUpReport struct {
	Total     int
	Succeeded int
	Failed    int
}

type WarmUp struct {
	searcher Searcher
	queries  []dto.FilterQuery
}

// NewWarmUp uses DefaultWarmUpQueries when queries is empty.
func NewWarmUp(s Searcher, queries ...dto.FilterQuery) *WarmUp {
	if len(queries) == 0 {
		queries = DefaultWarmUpQueries()
	}
	return &WarmUp{searcher: s, queries: queries}
}

// Run issues every query in order. A failed query is logged and counted, the
// rest still run.
func (w *WarmUp) Run(ctx context.Context) WarmUpReport {
	report := WarmUpReport{Total: len(w.queries)}
	for _, q := range w.queries {
		if ctx.Err() != nil {
			zap.S().Warnw("warm-up interrupted", "error", ctx.Err(), "remaining", report.Total-report.Succeeded-report.Failed)
			break
		}
		_, err := w.searcher.SearchAndFilter(ctx, q)
		metrics.RecordWarmUp(err)
		if err != nil {
			report.Failed++
			zap.S().Warnw("warm-up query failed", "key", q.CacheKey(), "error", err)
			continue
		}
		report.Succeeded++
		zap.S().Debugw("warm-up query cached", "key", q.CacheKey())
	}
	return report
}

// Start runs the warm-up once in the background with a bounded context.
// The returned channel yields the report and is closed afterwards.
func (w *WarmUp) Start(timeout time.Duration) <-chan WarmUpReport {
	if timeout <= 0 {
		zap.S().Warnf("warm-up timeout ≤ 0 set %s", defaultWarmUpTimeout)
		timeout = defaultWarmUpTimeout
	}
	done := make(chan WarmUpReport, 1)

	go func() {
		defer close(done)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorf("warm-up panic: %v", r)
			}
		}()

		zap.S().Infow("warm-up started", "queries", len(w.queries))
		report := w.Run(ctx)
		zap.S().Infow("warm-up finished", "succeeded", report.Succeeded, "failed", report.Failed)
		done <- report
	}()
	return done
}
