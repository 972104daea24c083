package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"rawg-catalog-service/api/dto"
	"rawg-catalog-service/internal/cache"
	"rawg-catalog-service/internal/cache/config"
	"rawg-catalog-service/internal/httpserver"
	"rawg-catalog-service/internal/integration"
	"rawg-catalog-service/internal/logger"
	"rawg-catalog-service/internal/manager"
	"rawg-catalog-service/internal/metrics"
	"rawg-catalog-service/internal/tracing"
)

const (
	defaultConfigPath = "/configs/config.yml"
	shutdownTimeout   = 10 * time.Second
)

func main() {
	path := os.Getenv(config.EnvConfigPath)
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.LoadAppConfig(path)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if _, err := logger.Init(cfg.Logging.Level, cfg.Logging.Development); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		zap.S().Fatalw("tracing setup failed", "error", err)
	}

	store, err := cache.CreateProvider(ctx, cfg.Store.Provider)
	if err != nil {
		zap.S().Fatalw("cache store init failed", "error", err)
	}

	client := integration.CreateClient(cfg.Upstream)
	catalog := manager.NewCatalogManager(store, client, dto.NewKeyMapper(cfg.Cache.Prefix), manager.TTLsFromConfig(cfg.Cache.TTL))

	if !cfg.WarmUp.Disabled {
		manager.NewWarmUp(catalog).Start(cfg.WarmUp.Timeout)
	}

	servers := []*http.Server{
		newServer(httpserver.NewRouter(catalog), cfg.Server.APIPort),
		newServer(httpserver.NewMetricsRouter(), cfg.Server.MetricsPort),
	}

	// оба сервера работают параллельно, main ждёт их завершения
	var wg sync.WaitGroup
	wg.Add(len(servers))
	for _, srv := range servers {
		go func() {
			defer wg.Done()
			listenServer(srv)
		}()
	}

	<-ctx.Done()
	zap.S().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.S().Warnw("server shutdown failed", "addr", srv.Addr, "error", err)
		}
	}
	wg.Wait()

	if err := store.Close(); err != nil {
		zap.S().Warnw("cache store close failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zap.S().Warnw("tracing shutdown failed", "error", err)
	}
}

func newServer(router http.Handler, port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func listenServer(srv *http.Server) {
	zap.S().Infow("starting server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.S().Fatalw("server error", "error", err)
	}
}
