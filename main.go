package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dcastano/jobtrackr-be/internal/api"
	"github.com/dcastano/jobtrackr-be/internal/config"
	"github.com/dcastano/jobtrackr-be/internal/database"
	"github.com/dcastano/jobtrackr-be/internal/logger"
	"github.com/dcastano/jobtrackr-be/internal/monitoring"
	"github.com/dcastano/jobtrackr-be/internal/services"
	"github.com/dcastano/jobtrackr-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up WebSocket Hub for live dashboard updates
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db)
	metricService := services.NewMetricService(db, eventService)
	jobService := services.NewJobService(db, eventService)
	challengeService := services.NewChallengeService(db, eventService)
	prepService := services.NewPrepService(db, eventService)
	dashboardService := services.NewDashboardService(db)

	// Set up and run the background janitor
	janitor, err := monitoring.NewJanitor(eventService, cfg.MaintenanceSchedule, cfg.EventRetentionDays)
	if err != nil {
		log.Fatalf("Failed to initialize janitor: %v", err)
	}
	go janitor.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Hub:        hub,
		Users:      userService,
		Metrics:    metricService,
		Jobs:       jobService,
		Challenges: challengeService,
		Prep:       prepService,
		Dashboard:  dashboardService,
		Events:     eventService,
		JWTSecret:  []byte(cfg.JWTSecret),
		ClientURL:  cfg.ClientURL,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server running on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
