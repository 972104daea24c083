package integration

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"rawg-catalog-service/internal/metrics"
)

func newBreaker(name string, threshold, halfOpenRequests uint32, interval, openTimeout time.Duration) *gobreaker.CircuitBreaker[[]byte] {
	if threshold == 0 {
		threshold = 1
	}
	metrics.SetBreakerState(name, float64(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: halfOpenRequests,
		Interval:    interval,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.S().Warnw("catalog circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			metrics.SetBreakerState(name, float64(to))
		},
	})
}

// countsAsSuccess: клиентские ошибки (4xx, кроме 429) и отмена вызывающим
// не говорят о здоровье апстрима и не должны размыкать цепь.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code < 500 && se.Code != http.StatusTooManyRequests
	}
	return false
}
