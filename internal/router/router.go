package router

import (
	"log/slog"
	"net/http"

	"rentalhub-storefront-api/internal/handler"
	"rentalhub-storefront-api/internal/metrics"
	"rentalhub-storefront-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	EquipmentHandler *handler.EquipmentHandler
	PageHandler      *handler.PageHandler
	SitemapHandler   *handler.SitemapHandler
	AdminHandler     *handler.AdminHandler
	Metrics          *metrics.Metrics
	Logger           *slog.Logger
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Location"},
		MaxAge:         300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}
	if cfg.SitemapHandler != nil {
		r.Get("/sitemap.xml", cfg.SitemapHandler.XML)
	}
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health check endpoints
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.EquipmentHandler != nil {
			r.Route("/equipment", func(r chi.Router) {
				r.Get("/", cfg.EquipmentHandler.Search)
				r.Post("/", cfg.EquipmentHandler.SearchJSON)
			})
		}

		if cfg.PageHandler != nil {
			r.Get("/pages", cfg.PageHandler.Resolve)
			r.Get("/pages/*", cfg.PageHandler.Resolve)
		}

		if cfg.SitemapHandler != nil {
			r.Get("/sitemap/paths", cfg.SitemapHandler.Paths)
		}

		if cfg.AdminHandler != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Get("/stats", cfg.AdminHandler.GetStats)
			})
		}
	})

	return r
}
