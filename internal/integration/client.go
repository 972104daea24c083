// Package integration talks to the RAWG catalog API. It owns transport
// concerns only: URL building, rate limiting, circuit breaking, status
// handling. Response bodies are returned untouched.
package integration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"rawg-catalog-service/internal/metrics"
	"rawg-catalog-service/internal/tracing"
)

// ErrUpstreamUnavailable is wrapped by every failed Fetch.
var ErrUpstreamUnavailable = errors.New("catalog API unavailable")

const maxErrorBody = 64 << 10

// Fetcher выполняет GET-запрос к каталогу и возвращает сырое тело ответа.
type Fetcher interface {
	Fetch(ctx context.Context, path string, params Params) ([]byte, error)
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s returned %d", ErrUpstreamUnavailable, e.Path, e.Code)
	}
	return fmt.Sprintf("%s: %s returned %d: %s", ErrUpstreamUnavailable, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUpstreamUnavailable }

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// Option tweaks a Client at construction time.
type Option func(*Client)

// WithRateLimit caps outgoing requests. rps <= 0 disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithBreaker opens the circuit after threshold consecutive failures and
// keeps it open for openTimeout.
func WithBreaker(name string, threshold, halfOpenRequests uint32, interval, openTimeout time.Duration) Option {
	return func(c *Client) {
		c.breaker = newBreaker(name, threshold, halfOpenRequests, interval, openTimeout)
	}
}

func New(httpClient *http.Client, baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Fetch(ctx context.Context, path string, params Params) (body []byte, err error) {
	endpoint := endpointLabel(path)
	ctx, span := tracing.StartSpan(ctx, "integration.Fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("catalog.endpoint", endpoint)),
	)
	start := time.Now()
	defer func() {
		metrics.RecordExternalRequest(endpoint, err, time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s: rate limit: %w", ErrUpstreamUnavailable, path, err)
		}
	}

	if c.breaker == nil {
		return c.do(ctx, path, params)
	}

	body, err = c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, path, params)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, path, err)
	}
	return body, err
}

func (c *Client) do(ctx context.Context, path string, params Params) ([]byte, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if q := params.Add("key", c.apiKey).Encode(); q != "" {
		target += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: build request: %w", ErrUpstreamUnavailable, path, err)
	}
	req.Header.Set("Accept", "application/json")

	zap.S().Debugw("catalog request", "path", path, "params", params.Len())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrUpstreamUnavailable, path, err)
	}
	return body, nil
}

// endpointLabel replaces numeric path segments with {id} to keep metric
// cardinality bounded: games/3498/additions -> games/{id}/additions.
func endpointLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}
