package router

import (
	"travio-api/internal/handler"
	"travio-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	InventoryHandler *handler.InventoryHandler
	OrdersHandler    *handler.OrdersHandler
	AdminHandler     *handler.AdminHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", handler.DataSourceHeader},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/status", cfg.Handler.Status)
		}

		// UI-facing contract: catalogs with offline fallback, orders, profile
		if cfg.InventoryHandler != nil {
			r.Get("/flights", cfg.InventoryHandler.ListFlights)
			r.Get("/flights/{id}", cfg.InventoryHandler.GetFlight)
			r.Get("/hotels", cfg.InventoryHandler.ListHotels)
			r.Get("/hotels/{id}", cfg.InventoryHandler.GetHotel)
			r.Get("/rentals", cfg.InventoryHandler.ListRentals)
			r.Get("/rentals/{id}", cfg.InventoryHandler.GetRental)
		}

		if cfg.OrdersHandler != nil {
			r.Get("/orders", cfg.OrdersHandler.ListOrders)
			r.Post("/orders", cfg.OrdersHandler.CreateOrder)
			r.Patch("/orders/{id}/status", cfg.OrdersHandler.UpdateOrderStatus)
			r.Get("/profile", cfg.OrdersHandler.GetProfile)
			r.Put("/profile", cfg.OrdersHandler.UpdateProfile)
		}

		r.Route("/v1", func(r chi.Router) {
			if cfg.Handler != nil {
				r.Get("/health", cfg.Handler.Health)
			}

			if cfg.AdminHandler != nil {
				r.Route("/admin", func(r chi.Router) {
					r.Get("/cache", cfg.AdminHandler.GetCacheStats)
					r.Post("/cache/refresh", cfg.AdminHandler.RefreshCache)
				})
			}
		})
	})

	return r
}
