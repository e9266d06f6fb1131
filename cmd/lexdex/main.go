package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wordgrove/lexdex/internal/config"
	dbRedis "github.com/wordgrove/lexdex/internal/db/redis"
	"github.com/wordgrove/lexdex/internal/loader"
	logpkg "github.com/wordgrove/lexdex/internal/logger"
	"github.com/wordgrove/lexdex/internal/metrics"
	catalogrepo "github.com/wordgrove/lexdex/internal/repository/catalog"
	chiTransport "github.com/wordgrove/lexdex/internal/transport/chi"
	healthuc "github.com/wordgrove/lexdex/internal/usecase/health"
	indexuc "github.com/wordgrove/lexdex/internal/usecase/index"
	queryuc "github.com/wordgrove/lexdex/internal/usecase/query"
	"github.com/wordgrove/lexdex/internal/version"
)

// sourceLoader is what the index service and the health service need from
// a catalog source.
type sourceLoader interface {
	indexuc.Loader
	healthuc.SourceChecker
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_kind", cfg.Source.Kind),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register catalog metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	// Document cache — keeps the last good document across source outages
	cache := catalogrepo.New(store, cfg.Storage.KeyPrefix)
	if cfg.Storage.CacheTTLSec > 0 {
		cache = cache.WithTTL(time.Duration(cfg.Storage.CacheTTLSec) * time.Second)
	}

	src := buildSource(cfg.Source, logger)

	// Create use case services
	indexSvc := indexuc.New(src, cache, logger)
	querySvc := queryuc.New(indexSvc)
	healthSvc := healthuc.New(store, src)

	// Initial load — a broken source degrades through the cache to empty
	snap, feed := indexSvc.Reload(ctx)
	logger.Info("Initial catalog built",
		zap.String("feed", string(feed)),
		zap.Int("entries", snap.Len()),
		zap.Int("tags", len(snap.Tags())),
	)

	// Auto-reload on file changes
	if cfg.Source.Kind == "file" && cfg.Source.Watch {
		debounce := time.Duration(cfg.Source.WatchDebounceMS) * time.Millisecond
		watcher, err := loader.NewWatcher(cfg.Source.Path, debounce, func() {
			indexSvc.Reload(context.Background())
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create source watcher", zap.Error(err))
		}
		defer func() { _ = watcher.Close() }()

		watchCtx, cancelWatch := context.WithCancel(ctx)
		defer cancelWatch()
		go watcher.Start(watchCtx)
		logger.Info("Watching catalog source", zap.String("path", cfg.Source.Path))
	}

	// Create chi server
	server := chiTransport.NewServer(indexSvc, querySvc, healthSvc, logger).
		WithPagination(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSource creates the catalog source loader from config. Kind has
// already been validated.
func buildSource(cfg config.SourceConfig, logger *zap.Logger) sourceLoader {
	switch cfg.Kind {
	case "http":
		logger.Info("Catalog source", zap.String("kind", "http"), zap.String("url", cfg.URL))
		return loader.NewHTTP(cfg.URL, cfg.Token, time.Duration(cfg.TimeoutSec)*time.Second)
	default:
		logger.Info("Catalog source", zap.String("kind", "file"), zap.String("path", cfg.Path))
		return loader.NewFile(cfg.Path)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
