package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"workorder-service/config"
	"workorder-service/internal/api"
	"workorder-service/internal/db"
	"workorder-service/internal/logger"
	"workorder-service/internal/store"
)

func main() {
	// Load configuration
	cfg, configPath, err := config.LoadEnv("./config/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.WithField("path", configPath).Info("configuration loaded")

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	log.WithField("driver", cfg.Database.Driver).Info("database initialized")

	appStore := store.NewGormStore(gormDB)

	router := api.NewRouter(cfg, appStore, log)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server ListenAndServe")
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	log.Info("shutdown signal received, stopping server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server Shutdown")
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("server gracefully stopped")
}
