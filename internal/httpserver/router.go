package httpserver

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rawg-catalog-service/internal/manager"
)

const (
	gzipThreshold         = 500              // Минимальный размер ответа для сжатия gzip: 500 байт
	baseAPIPath           = "/api"           // Базовый путь для всех API эндпоинтов
	healthPath            = "/healthz"       // GET /healthz - liveness
	metricsPath           = "/metrics"       // GET /metrics - только на порту метрик
	contentTypeJSON       = "application/json"
	headerContentEncoding = "Content-Encoding"
	headerAcceptEncoding  = "Accept-Encoding"
	headerVary            = "Vary"
	encodingGzip          = "gzip"
)

// NewRouter возвращает http.Handler с эндпоинтами каталога.
func NewRouter(catalog manager.Catalog) http.Handler {
	h := &handlers{catalog: catalog}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(compressGzip(gzipThreshold))
	r.Use(MetricsMiddleware)

	r.Get(healthPath, healthz)

	r.Route(baseAPIPath, func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Get("/", h.search)
			r.Get("/popular", h.popular)
			r.Get("/publisher", h.byPublisher)
			r.Get("/additions", h.additions)
			r.Get("/sequels", h.sequels)
			r.Get("/{id}", h.detail)
			r.Get("/{id}/relations", h.relations)
		})
		r.Get("/genres", pageHandler(catalog.GetGenres))
		r.Get("/platforms", pageHandler(catalog.GetPlatforms))
		r.Get("/developers", pageHandler(catalog.GetDevelopers))
		r.Get("/publishers", pageHandler(catalog.GetPublishers))
	})

	return r
}

// NewMetricsRouter serves Prometheus metrics on a separate listener.
func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, metricsPath, promhttp.Handler())
	r.Get(healthPath, healthz)
	return r
}

// ---- middleware ----

type bufferResponseWriter struct {
	http.ResponseWriter
	code int
	buf  strings.Builder
	once sync.Once
}

func (b *bufferResponseWriter) WriteHeader(statusCode int) {
	b.once.Do(func() { b.code = statusCode })
}

func (b *bufferResponseWriter) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func compressGzip(threshold int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get(headerAcceptEncoding), encodingGzip) {
				next.ServeHTTP(w, r)
				return
			}
			brw := &bufferResponseWriter{ResponseWriter: w}
			next.ServeHTTP(brw, r)

			if brw.code == 0 {
				brw.code = http.StatusOK
			}

			data := brw.buf.String()
			if len(data) < threshold {
				w.WriteHeader(brw.code)
				_, _ = io.WriteString(w, data)
				return
			}

			w.Header().Set(headerContentEncoding, encodingGzip)
			w.Header().Set(headerVary, headerAcceptEncoding)
			w.Header().Del("Content-Length")
			w.WriteHeader(brw.code)
			gz := gzip.NewWriter(w)
			if _, err := gz.Write([]byte(data)); err != nil {
				zap.S().Errorw("gzip write error", "error", err)
			}
			_ = gz.Close()
		})
	}
}
