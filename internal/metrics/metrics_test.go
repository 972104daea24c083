package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordProviderOp(t *testing.T) {
	before := testutil.ToFloat64(ProviderOperations.WithLabelValues("test", "get", "error"))

	RecordProviderOp("test", "get", errors.New("boom"))
	RecordProviderOp("test", "get", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(ProviderOperations.WithLabelValues("test", "get", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(ProviderOperations.WithLabelValues("test", "get", "success")), 1.0)
}

func TestRecordCacheLookup(t *testing.T) {
	before := testutil.ToFloat64(CatalogCacheRequests.WithLabelValues("test-class", CacheHit))

	RecordCacheLookup("test-class", CacheHit)
	RecordCacheLookup("test-class", CacheHit)

	assert.Equal(t, before+2, testutil.ToFloat64(CatalogCacheRequests.WithLabelValues("test-class", CacheHit)))
}

func TestRecordWarmUp(t *testing.T) {
	before := testutil.ToFloat64(WarmUpQueries.WithLabelValues("error"))

	RecordWarmUp(errors.New("down"))

	assert.Equal(t, before+1, testutil.ToFloat64(WarmUpQueries.WithLabelValues("error")))
}
