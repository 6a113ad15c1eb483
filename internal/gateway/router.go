package gateway

import (
	"net/http"

	"abod-card-app/internal/middleware"
	"abod-card-app/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Proxy *Proxy
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Gateway health, served locally (never proxied)
	r.Get("/gateway/status", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	// Hot read-only catalog endpoints go through the TTL cache
	r.Get("/api/products", cfg.Proxy.CachedCatalog)
	r.Get("/api/categories", cfg.Proxy.CachedCatalog)

	// Everything else under /api passes straight through (purchases,
	// users, orders, webhook activation)
	r.HandleFunc("/api/*", cfg.Proxy.API)

	// Storefront pages
	r.NotFound(cfg.Proxy.App)

	return r
}
