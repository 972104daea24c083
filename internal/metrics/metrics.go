package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts all HTTP requests processed by the service.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled by the service.",
		},
		[]string{"path", "method", "status"},
	)

	// HTTPRequestDuration measures how long HTTP handlers take to respond.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of latencies for HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// ProviderOperations tracks operations performed by cache store providers.
	ProviderOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_provider_operations_total",
			Help: "Count of cache provider operations.",
		},
		[]string{"provider", "operation", "status"},
	)

	// ProviderOperationDuration measures how long cache provider
	// operations take to complete.
	ProviderOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_provider_operation_duration_seconds",
			Help:    "Histogram of latencies for cache provider operations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	// ExternalRequests counts calls to the catalog API.
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_requests_total",
			Help: "Count of requests to the catalog API.",
		},
		[]string{"endpoint", "status"},
	)

	// ExternalRequestDuration measures duration of calls to the catalog API.
	ExternalRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_request_duration_seconds",
			Help:    "Histogram of catalog API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "external_circuit_breaker_state",
			Help: "State of the catalog API circuit breaker (0 closed, 1 half-open, 2 open).",
		},
		[]string{"name"},
	)

	// CatalogCacheRequests counts cache lookups per data class.
	CatalogCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Number of catalog cache lookups by data class and result (hit, miss, error).",
		},
		[]string{"class", "result"},
	)

	// ProbeFailures counts relationship probes that failed and answered false.
	ProbeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_probe_failures_total",
			Help: "Number of relationship probes that failed and returned false.",
		},
		[]string{"probe"},
	)

	// WarmUpQueries counts warm-up queries by result.
	WarmUpQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_warmup_queries_total",
			Help: "Number of warm-up queries by result.",
		},
		[]string{"result"},
	)
)

const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Register registers all metrics in the default registry.
func Register() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ProviderOperations,
		ProviderOperationDuration,
		ExternalRequests,
		ExternalRequestDuration,
		CircuitBreakerState,
		CatalogCacheRequests,
		ProbeFailures,
		WarmUpQueries,
	)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordProviderOp increments ProviderOperations with result status.
func RecordProviderOp(provider, operation string, err error) {
	ProviderOperations.WithLabelValues(provider, operation, status(err)).Inc()
}

// RecordProviderLatency records the duration of a provider operation.
func RecordProviderLatency(provider, operation string, durationSeconds float64) {
	ProviderOperationDuration.WithLabelValues(provider, operation).Observe(durationSeconds)
}

// RecordExternalRequest records metrics for a catalog API call.
func RecordExternalRequest(endpoint string, err error, durationSeconds float64) {
	ExternalRequests.WithLabelValues(endpoint, status(err)).Inc()
	ExternalRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordCacheLookup records a hit, miss or error for a data class.
func RecordCacheLookup(class, result string) {
	CatalogCacheRequests.WithLabelValues(class, result).Inc()
}

func RecordProbeFailure(probe string) {
	ProbeFailures.WithLabelValues(probe).Inc()
}

func RecordWarmUp(err error) {
	WarmUpQueries.WithLabelValues(status(err)).Inc()
}

func SetBreakerState(name string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
}
