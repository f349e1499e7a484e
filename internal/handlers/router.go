package handlers

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jaideep-27/shophub/internal/middleware"
	"github.com/jaideep-27/shophub/internal/service"
	"github.com/jaideep-27/shophub/internal/session"
)

// RouterConfig carries everything the HTTP API is built from
type RouterConfig struct {
	Products       *service.ProductService
	Carts          *service.CartService
	Sessions       *session.Store
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// NewRouter wires middleware and routes for the storefront API
func NewRouter(cfg RouterConfig) chi.Router {
	healthHandler := NewHealthHandler(cfg.Sessions, cfg.Logger)
	productHandler := NewProductHandler(cfg.Products, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Carts, cfg.Logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.SessionHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{productId}", productHandler.GetProduct)
		r.Get("/categories", productHandler.ListCategories)

		r.Post("/sessions", cartHandler.StartSession)

		// Session scoped endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(cfg.Sessions))

			r.Delete("/sessions", cartHandler.EndSession)
			r.Get("/cart", cartHandler.GetCart)
			r.Get("/cart/summary", cartHandler.GetSummary)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)
		})
	})

	return r
}
