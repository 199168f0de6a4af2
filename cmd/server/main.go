package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/touchline-tactician/internal/api"
	"github.com/dom/touchline-tactician/internal/clock"
	"github.com/dom/touchline-tactician/internal/config"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/dom/touchline-tactician/internal/repository/filestore"
	"github.com/dom/touchline-tactician/internal/repository/memory"
	"github.com/dom/touchline-tactician/internal/repository/postgres"
	"github.com/dom/touchline-tactician/internal/service"
	"github.com/dom/touchline-tactician/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	clk := clock.RealClock{}

	repos, err := openRepositories(cfg, clk)
	if err != nil {
		log.Fatalf("failed to open plan store: %v", err)
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, cfg, hub, clk)

	// Initialize router
	router := api.NewRouter(services, hub)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s (plan store: %s)", cfg.Port, cfg.PlanStore)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	hub.Stop()

	log.Println("Server stopped")
}

// openRepositories keeps everything in postgres for PLAN_STORE=postgres.
// The file store keeps coaches in memory, so accounts last for one run.
func openRepositories(cfg *config.Config, clk clock.Clock) (*repository.Repositories, error) {
	switch cfg.PlanStore {
	case config.StorePostgres:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return postgres.NewRepositories(db, clk), nil
	default:
		plans, err := filestore.NewPlanRepository(cfg.PlansDir, filestore.WithClock(clk))
		if err != nil {
			return nil, err
		}
		log.Printf("WARN [main.openRepositories] plans in %s; coach accounts are kept in memory", plans.Dir())
		return memory.NewRepositories(plans), nil
	}
}
