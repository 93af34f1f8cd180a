// @title						School-Link Calendar API
// @version					1.0
// @description				Event store, event form and widget settings for the School-Link calendar widget.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"schoollink/config"
	_ "schoollink/docs"
	"schoollink/internal/adapters/auth"
	"schoollink/internal/adapters/ical"
	deliveryhttp "schoollink/internal/delivery/http"
	"schoollink/internal/delivery/http/controllers"
	"schoollink/internal/delivery/http/middleware"
	"schoollink/internal/domain"
	"schoollink/internal/repository/kv"
	"schoollink/internal/repository/postgres"
	"schoollink/internal/repository/storage"
	"schoollink/internal/services"
	"schoollink/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, closeKV, err := openKV(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeKV()

	loc := cfg.Location()
	events := services.NewEventStore(storage.NewEventRepository(store), logger, cfg.RequestTimeout)
	if err := events.Load(ctx); err != nil {
		if !errors.Is(err, domain.ErrStorageCorruption) || cfg.StrictLoad {
			return err
		}
	}

	jwt := auth.NewJWTManager(cfg.JWTSecret)
	authSvc := services.NewAuthService(
		storage.NewAccountRepository(store),
		auth.NewPINHasher(bcrypt.DefaultCost),
		jwt,
		cfg.SessionTTL,
		logger,
		cfg.RequestTimeout,
	)
	registry := usecase.NewFormRegistry(events, usecase.FormOptions{
		Location:        loc,
		DefaultCategory: cfg.DefaultCategory,
		Logger:          logger,
	})

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:     controllers.NewAuthController(logger, authSvc),
		Forms:    controllers.NewFormController(logger, registry),
		Events:   controllers.NewEventController(logger, events, services.NewCalendarService(events, loc), ical.NewExporter(loc, "School-Link")),
		Settings: controllers.NewSettingsController(logger, services.NewSettingsService(storage.NewSettingsRepository(store), logger, cfg.RequestTimeout)),
		Health:   controllers.NewHealthController(events),
	}, middleware.RequireAuth(jwt, logger))

	ticker, err := services.NewSyncTicker(events, cfg.SyncSchedule, logger)
	if err != nil {
		return err
	}
	go ticker.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openKV returns the key-value backend named by the configuration and a func releasing it.
func openKV(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.KVStore, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("using postgres storage")
		return postgres.NewKVRepository(db), func() { db.Close() }, nil
	case config.BackendMemory:
		logger.Warn("using in-memory storage, nothing will survive a restart")
		return kv.NewMemoryStore(), func() {}, nil
	default:
		store, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using file storage", "dir", cfg.DataDir)
		return store, func() {}, nil
	}
}
