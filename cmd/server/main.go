package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"fitclub/internal/adapters/gymapi"
	web "fitclub/internal/adapters/http"
	"fitclub/internal/adapters/http/middleware"
	"fitclub/internal/adapters/http/perf"
	"fitclub/internal/adapters/storage"
	"fitclub/internal/adapters/storage/localstore"
	"fitclub/internal/application/orchestrators"
	"fitclub/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	setupLogging(cfg)

	keys, err := cfg.DeriveKeys()
	if err != nil {
		log.Fatalf("failed to derive keys: %v", err)
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, time.Second)
	housekeeping := orchestrators.HousekeepingDeps{Limiter: limiter}

	var store localstore.Store
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := storage.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		if err := storage.MigrateDB(context.Background(), db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		sqliteStore := localstore.NewSQLiteStore(storage.NewTimedDB(db, collector, cfg.SlowQueryMs))
		housekeeping.Storage = sqliteStore
		housekeeping.StorageTTL = cfg.StorageTTL
		store = sqliteStore
		slog.Info("storage_ready", "backend", cfg.Storage, "path", cfg.SQLitePath, "schema", storage.LatestSchemaVersion())
	case config.StorageRedis:
		client, err := localstore.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer client.Close()
		store = localstore.NewRedisStore(client, "fitclub:ls", cfg.StorageTTL)
		slog.Info("storage_ready", "backend", cfg.Storage, "addr", cfg.RedisAddr)
	default:
		store = localstore.NewMemoryStore()
		slog.Warn("storage_ready", "backend", cfg.Storage, "note", "sessions are lost on restart")
	}

	api := gymapi.NewClient(cfg.APIBaseURL, cfg.APITimeout, collector)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := api.Health(pingCtx); err != nil {
		slog.Warn("backend_unreachable", "url", cfg.APIBaseURL, "error", err.Error(), "cause", errors.Unwrap(err))
	}
	cancelPing()

	welcome := ""
	if cfg.WelcomeFile != "" {
		data, err := os.ReadFile(cfg.WelcomeFile)
		if err != nil {
			log.Fatalf("failed to read welcome file: %v", err)
		}
		welcome = string(data)
	}

	stopCh := make(chan struct{})
	orchestrators.StartBackgroundWorker(housekeeping, time.Hour, stopCh)
	defer close(stopCh)

	mux := web.NewMux(web.Deps{
		Config:    cfg,
		Keys:      keys,
		API:       api,
		Sessions:  middleware.NewSessionStore(store),
		Limiter:   limiter,
		Collector: collector,
		Welcome:   welcome,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.APITimeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown_failed", "error", err.Error())
		}
	}()

	slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "api", cfg.APIBaseURL, "storage", cfg.Storage)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	slog.Info("server_stopped")
}

// setupLogging installs the default slog logger: JSON in production, text otherwise.
func setupLogging(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
