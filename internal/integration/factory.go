package integration

import (
	"net/http"
	"time"

	"rawg-catalog-service/internal/cache/config"
)

const breakerName = "rawg"

func NewHTTPClient(cfg config.Upstream) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// CreateClient assembles the catalog client from the upstream config section.
func CreateClient(cfg config.Upstream) *Client {
	opts := []Option{WithRateLimit(cfg.RateLimit, cfg.Burst)}
	if cfg.Breaker.Enabled {
		b := cfg.Breaker
		opts = append(opts, WithBreaker(breakerName, b.FailureThreshold, b.MaxRequests, b.Interval, b.OpenTimeout))
	}
	return New(NewHTTPClient(cfg), cfg.BaseURL, cfg.APIKey, opts...)
}

var _ Fetcher = (*Client)(nil)
