package handler

import (
	"net/http"

	"catalog-api/internal/repository"
	"catalog-api/pkg/response"
)

// AdminHandler handles admin/monitoring HTTP requests.
type AdminHandler struct {
	repo      repository.CatalogRepository
	dbType    string
	cacheType string
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(repo repository.CatalogRepository, dbType, cacheType string) *AdminHandler {
	return &AdminHandler{
		repo:      repo,
		dbType:    dbType,
		cacheType: cacheType,
	}
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	stats["db_type"] = h.dbType
	stats["cache_type"] = h.cacheType

	response.OK(w, stats)
}
