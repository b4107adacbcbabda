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

	"github.com/rooted/backend/config"
	"github.com/rooted/backend/internal/app"
	httpDelivery "github.com/rooted/backend/internal/delivery/http"
	"github.com/rooted/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting Rooted backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("cache_type", cfg.Cache.Type),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	handler := httpDelivery.NewHandler(services.Assistant, services.Farms, log)
	router := httpDelivery.SetupRouter(cfg, handler, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
