package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopkeeper/internal/app/server/api"
	"shopkeeper/internal/app/server/config"
	"shopkeeper/internal/infrastructure/migration"
	"shopkeeper/internal/infrastructure/storage/postgres"
	"shopkeeper/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env, logger.WithLevel(cfg.Logger.LogLevel))

	log.Info("starting shopkeeper server", "env", cfg.Env, "address", cfg.Server.RunAddress)

	if err := migration.NewMigration(cfg.DB.Migrations, cfg.DB.DatabaseURI, nil).Up(); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, cfg.DB.DatabaseURI)
	if err != nil {
		log.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(storage, api.Options{PhoneRegion: cfg.Server.PhoneRegion}, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

