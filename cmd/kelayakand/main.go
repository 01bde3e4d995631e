package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equipment-feasibility-backend/config"
	"equipment-feasibility-backend/internal/api"
	"equipment-feasibility-backend/internal/insight"
	"equipment-feasibility-backend/internal/source"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "kelayakan ", log.LstdFlags)

	config.LoadEnv()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s (source=%s, timezone=%s)",
		configPath, cfg.Source.Kind, cfg.Analysis.Location)

	src, closeSource, err := source.Open(cfg)
	if err != nil {
		logger.Fatalf("failed to open source: %v", err)
	}
	defer closeSource()
	logger.Println("source opened successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := insight.NewService(src, cfg)
	go svc.Run(ctx)

	// Initialize router
	router := api.NewRouter(svc, cfg)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
