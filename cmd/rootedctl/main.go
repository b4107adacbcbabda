package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rooted/backend/config"
	"github.com/rooted/backend/internal/app"
	"github.com/rooted/backend/internal/delivery/cli"
	"github.com/rooted/backend/internal/infrastructure/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Keep the terminal quiet unless something goes wrong
	log, err := logger.New("warn", cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	services, err := app.New(context.Background(), cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize services: %v\n", err)
		return 1
	}
	defer services.Close()

	cli.SetServices(services.Assistant, services.Farms)

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
