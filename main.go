package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventboard/backend/internal/config"
	"github.com/eventboard/backend/internal/db"
	"github.com/eventboard/backend/internal/handler"
	"github.com/eventboard/backend/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	authSvc, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		slog.Error("failed to configure auth", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.AdminUsername != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			slog.Error("failed to bootstrap admin user", "error", err)
			os.Exit(1)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterDeps{
		Auth:           authSvc,
		Events:         service.NewEventService(store),
		Categories:     service.NewCategoryService(store),
		Users:          service.NewUserService(store),
		Store:          store,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("api listening", "port", cfg.Server.Port, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	timeout, err := time.ParseDuration(cfg.Server.ShutdownTimeout)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMySQL:
		store, err := db.NewMySQL(ctx, cfg.MySQL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendMemory:
		return db.NewMemory(), nil
	default:
		pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return db.NewPostgres(pool), nil
	}
}
