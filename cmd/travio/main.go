package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travio-api/internal/api"
	"travio-api/internal/config"
	"travio-api/internal/handler"
	"travio-api/internal/inventory"
	"travio-api/internal/kvstore"
	"travio-api/internal/orders"
	"travio-api/internal/router"
	"travio-api/internal/service"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Travio API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize the persistent key-value store based on config. A broken
	// backend degrades to memory: the booking flow must keep working even
	// when durability is lost.
	kv := openStore(cfg)
	defer kv.Close()

	// Remote inventory API client and the three catalogs
	apiClient := api.New(cfg.API.BaseURL, cfg.API.Timeout)
	flights := inventory.NewFlightCatalog(apiClient, kv)
	hotels := inventory.NewHotelCatalog(apiClient, kv)
	rentals := inventory.NewRentalCatalog(apiClient, kv)

	// Order and profile store, restored from the persistent store
	orderStore := orders.New(context.Background(), kv)

	// Background catalog refresh keeps offline snapshots warm
	refresher := service.NewRefresher(cfg.Refresh.Interval, flights, hotels, rentals)
	if cfg.Refresh.Enabled {
		refresher.Start()
		defer refresher.Stop()
	}

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version)
	inventoryHandler := handler.NewInventoryHandler(flights, hotels, rentals)
	ordersHandler := handler.NewOrdersHandler(orderStore)
	adminHandler := handler.NewAdminHandler(kv, refresher, cfg.KV.Backend)

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		InventoryHandler: inventoryHandler,
		OrdersHandler:    ordersHandler,
		AdminHandler:     adminHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// openStore initializes the configured key-value backend, degrading to the
// in-memory store when the backend cannot be reached.
func openStore(cfg *config.Config) kvstore.Store {
	switch cfg.KV.Backend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.KV.MySQLDSN())
		if err == nil {
			db.SetMaxOpenConns(10)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(5 * time.Minute)
			err = db.Ping()
		}
		if err != nil {
			log.Printf("Warning: MySQL connection failed: %v", err)
			break
		}
		store, err := kvstore.NewMySQLStore(db)
		if err != nil {
			log.Printf("Warning: MySQL store initialization failed: %v", err)
			db.Close()
			break
		}
		log.Println("MySQL key-value store initialized")
		return store

	case "redis":
		store, err := kvstore.NewRedisStore(kvstore.RedisConfig{
			Addr:     cfg.KV.RedisAddress(),
			Password: cfg.KV.RedisPassword,
			DB:       cfg.KV.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed: %v", err)
			break
		}
		log.Println("Redis key-value store initialized")
		return store

	case "memory":
		log.Println("In-memory key-value store initialized (no durability)")
		return kvstore.NewMemoryStore()

	default: // sqlite
		store, err := kvstore.NewSQLiteStore(cfg.KV.SQLitePath)
		if err != nil {
			log.Printf("Warning: SQLite initialization failed: %v", err)
			break
		}
		log.Println("SQLite key-value store initialized")
		return store
	}

	log.Println("Warning: falling back to in-memory store, cache and orders will not survive restarts")
	return kvstore.NewMemoryStore()
}
