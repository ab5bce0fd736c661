package router

import (
	"net/http"

	"catalog-api/internal/handler"
	"catalog-api/internal/middleware"
	"catalog-api/pkg/apierror"
	"catalog-api/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler        *handler.Handler
	CatalogHandler *handler.CatalogHandler
	AdminHandler   *handler.AdminHandler
	AdminKey       string
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
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Admin-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
		r.Get("/api/health", cfg.Handler.Health)
		r.Get("/api/ready", cfg.Handler.Ready)
	}

	if cfg.CatalogHandler != nil {
		r.Route("/api/catalog", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListItems)
			r.Post("/", cfg.CatalogHandler.CreateItem)

			r.Get("/brands", cfg.CatalogHandler.ListBrands)
			r.Post("/brands", cfg.CatalogHandler.CreateBrand)
			r.Get("/types", cfg.CatalogHandler.ListTypes)
			r.Post("/types", cfg.CatalogHandler.CreateType)

			r.Get("/brand/{brandId}", cfg.CatalogHandler.ListItemsByBrand)
			r.Get("/type/{typeId}", cfg.CatalogHandler.ListItemsByType)

			r.Get("/{id}", cfg.CatalogHandler.GetItem)
			r.Put("/{id}", cfg.CatalogHandler.UpdateItem)
			r.Delete("/{id}", cfg.CatalogHandler.DeleteItem)
		})
	}

	if cfg.AdminHandler != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminKey(cfg.AdminKey))
			r.Get("/api/admin/stats", cfg.AdminHandler.GetStats)
		})
	}

	// Fallback for unknown routes
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apierror.NotFound("route not found"))
	})

	return r
}
