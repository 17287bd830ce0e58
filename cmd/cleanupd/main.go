// Package main implements the entry point for the cleanup-task sidecar,
// which watches save traffic from the host rental-management application
// and schedules a data-cleanup reminder task for each newly created
// company or contact record.
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/rosscornwall/hirehop-cleanup/internal/config"
	"github.com/rosscornwall/hirehop-cleanup/internal/platform/logger"
)

func main() {
	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
