package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/cx-tal-miterani/fare-workflow/internal/availability"
	"github.com/cx-tal-miterani/fare-workflow/internal/booking"
	"github.com/cx-tal-miterani/fare-workflow/internal/config"
	"github.com/cx-tal-miterani/fare-workflow/internal/confirm"
	"github.com/cx-tal-miterani/fare-workflow/internal/engine"
	"github.com/cx-tal-miterani/fare-workflow/internal/handlers"
	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
	"github.com/cx-tal-miterani/fare-workflow/internal/router"
	"github.com/cx-tal-miterani/fare-workflow/internal/ws"
)

func main() {
	// Load .env when present, then config with env overrides
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	cfg := config.Load()

	// Availability client, optionally behind the Redis cache
	var availClient availability.Client = availability.NewHTTPClient(availability.HTTPConfig{
		BaseURL:           cfg.Availability.BaseURL,
		APIKey:            cfg.Availability.APIKey,
		Timeout:           cfg.Availability.Timeout,
		RequestsPerSecond: cfg.Availability.RequestsPerSecond,
		Burst:             cfg.Availability.Burst,
	})
	if cfg.Redis.Addr != "" {
		cached, err := availability.NewCachedClient(availClient, availability.CacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer cached.Close()
		availClient = cached
		log.Printf("Availability cache enabled at %s", cfg.Redis.Addr)
	}

	// Booking store, when a database is configured
	var bookingRepo *booking.Repository
	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		bookingRepo = booking.NewRepository(pool)
		log.Println("Booking store enabled")
	}

	// WebSocket hub for snapshot broadcasts
	hub := ws.NewHub()
	go hub.Run()

	// Workflow engine
	engineCfg := engine.Config{
		Availability:       availClient,
		Confirm:            confirm.NewAutoHost(),
		Notifier:           hub,
		PointsAndCash:      cfg.Engine.PointsAndCash,
		LoyaltyProgramCode: cfg.Engine.LoyaltyProgramCode,
	}
	if bookingRepo != nil {
		engineCfg.Bookings = bookingRepo
	}
	eng := engine.New(engineCfg)

	if len(cfg.Engine.SeasonalNotices) > 0 {
		notices := make([]model.SeasonalNotice, 0, len(cfg.Engine.SeasonalNotices))
		for _, n := range cfg.Engine.SeasonalNotices {
			notices = append(notices, model.SeasonalNotice{
				FromStation: n.FromStation,
				ToStation:   n.ToStation,
				StartDate:   n.StartDate,
				EndDate:     n.EndDate,
				Message:     n.Message,
			})
		}
		eng.Dispatch(context.Background(), intent.SetSeasonalNotices{Notices: notices})
		log.Printf("Loaded %d seasonal notices", len(notices))
	}

	// Initialize handlers
	var reader handlers.BookingReader
	if bookingRepo != nil {
		reader = bookingRepo
	}
	h := handlers.NewHandler(eng, reader)

	// Create router
	r := router.SetupRouter(h, hub)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Fare workflow server starting on port %s", cfg.Port)
		log.Printf("Availability service at %s", cfg.Availability.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
