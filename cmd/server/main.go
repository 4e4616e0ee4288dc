package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/audiopanel/backend/internal/api"
	"github.com/audiopanel/backend/internal/config"
	"github.com/audiopanel/backend/internal/logging"
	"github.com/audiopanel/backend/internal/repository/postgres"
	"github.com/audiopanel/backend/internal/service"
	"github.com/audiopanel/backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.Environment)

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repos := postgres.NewRepositories(db)

	// Initialize storage backend
	var store storage.Storage
	if cfg.UseCloudStorage {
		store, err = storage.NewMinioStorage(context.Background(), cfg)
	} else {
		store, err = storage.NewLocalStorage(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	services := service.NewServices(repos, store, cfg)

	router := api.NewRouter(services, store, cfg, logger)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := postgres.Close(db); err != nil {
		logger.Error("closing database", "error", err)
	}

	logger.Info("server stopped")
}
