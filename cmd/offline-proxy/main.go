package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/offline-cache/pkg/cache"
	"github.com/Sternrassler/offline-cache/pkg/config"
	"github.com/Sternrassler/offline-cache/pkg/logging"
	"github.com/Sternrassler/offline-cache/pkg/metrics"
	"github.com/Sternrassler/offline-cache/pkg/offline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Offline proxy stopped")
	}
}

// run wires the store, installs the Asset List and serves until ctx is done.
// A failed install returns before the listener starts.
func run(ctx context.Context, cfg config.Config) error {
	logger := logging.NewLogger("offline-proxy")

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	list, err := cfg.Assets()
	if err != nil {
		return err
	}

	handler, err := offline.New(store, &http.Client{Timeout: cfg.HTTPTimeout}, offline.Config{
		Origin:      cfg.OriginURL,
		Assets:      list,
		Concurrency: cfg.InstallConcurrency,
	})
	if err != nil {
		return fmt.Errorf("create offline handler: %w", err)
	}

	if err := handler.Install(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("origin", cfg.OriginURL).
			Str("cache", cfg.CacheName).
			Msg("Starting offline proxy")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down offline proxy")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newStore opens the configured Cache Store backend.
func newStore(ctx context.Context, cfg config.Config) (cache.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		return cache.NewMemoryStore(cfg.CacheName), func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisURL, err)
	}
	log.Info().Str("addr", cfg.RedisURL).Msg("Connected to Redis")

	return cache.NewManager(redisClient, cfg.CacheName), func() { redisClient.Close() }, nil
}

// newRouter mounts the service endpoints; every other path is intercepted
// by the offline handler.
func newRouter(h *offline.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(h))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Handle("/*", h)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func readyHandler(h *offline.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.Ready(ctx); err != nil {
			log.Warn().Err(err).Msg("Readiness check failed")
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}
