package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/princepradeep36/food-preorder-backend/internal/config"
	"github.com/princepradeep36/food-preorder-backend/internal/database"
	"github.com/princepradeep36/food-preorder-backend/internal/logger"
	"github.com/princepradeep36/food-preorder-backend/internal/messaging"
	"github.com/princepradeep36/food-preorder-backend/internal/services/preorder"
)

func main() {
	// Parse command line flags
	var (
		configPath    = flag.String("config", "config.yaml", "Path to config file")
		port          = flag.Int("port", 0, "HTTP port (overrides config)")
		maxConcurrent = flag.Int("max-concurrent", 50, "Maximum concurrent order submissions")
		idStrategy    = flag.String("id-strategy", "uuid", "Order id strategy (uuid, composite)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	listenPort := cfg.Server.Port
	if *port != 0 {
		listenPort = *port
	}

	// Create logger
	log := logger.New("preorder-service")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting preorder-service", requestID, map[string]interface{}{
		"port":           listenPort,
		"max_concurrent": *maxConcurrent,
		"id_strategy":    *idStrategy,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, listenPort, *maxConcurrent, *idStrategy); err != nil {
		log.Error("service_failed", "Pre-order service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// run wires up storage, messaging and the HTTP server
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, port, maxConcurrent int, idStrategy string) error {
	requestID := logger.GenerateRequestID()

	// Initialize database
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	// Run database migrations
	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize messaging. Notifications are best-effort: without a
	// broker the service still accepts orders.
	var publisher preorder.Publisher
	conn, err := messaging.New(cfg, log)
	if err != nil {
		log.Error("rabbitmq_unavailable", "Running without order notifications", requestID, err, nil)
	} else {
		defer conn.Close()
		publisher = messaging.NewPublisher(conn, log)
		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
	}

	idgen, err := preorder.NewIDGenerator(idStrategy)
	if err != nil {
		return err
	}

	// Initialize service and handler
	storage := preorder.NewRepository(db)
	service := preorder.NewService(storage, idgen, publisher, log, maxConcurrent)
	handler := preorder.NewHandler(service, log)

	// Setup HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.SetupRoutes(),
	}

	// Start HTTP server in goroutine
	go func() {
		log.Info("service_started", fmt.Sprintf("Pre-order service started on port %d", port), requestID, map[string]interface{}{
			"port":           port,
			"max_concurrent": maxConcurrent,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
