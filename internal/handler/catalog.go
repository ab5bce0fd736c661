package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"
	"catalog-api/pkg/apierror"
	"catalog-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// CatalogHandler handles catalog-related HTTP requests. Item operations go
// through the Catalog interface (cached in production); brand/type seeding
// talks to the repository directly.
type CatalogHandler struct {
	catalog service.Catalog
	repo    repository.CatalogRepository
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog service.Catalog, repo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		repo:    repo,
	}
}

// parseID extracts a positive integer URL parameter.
func parseID(r *http.Request, name string) (int64, *apierror.Error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.BadRequest(name + " must be a positive integer")
	}
	return id, nil
}

// decodeItemInput reads and decodes an item create/update body.
func decodeItemInput(r *http.Request) (model.ItemInput, *apierror.Error) {
	var input model.ItemInput
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, apierror.BadRequest("invalid JSON body")
	}
	return input, nil
}

// ListItems handles GET /api/catalog
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, items)
}

// GetItem handles GET /api/catalog/{id}
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	item, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if item == nil {
		response.Error(w, apierror.NotFound("catalog item not found"))
		return
	}

	response.OK(w, item)
}

// ListItemsByBrand handles GET /api/catalog/brand/{brandId}
func (h *CatalogHandler) ListItemsByBrand(w http.ResponseWriter, r *http.Request) {
	brandID, apiErr := parseID(r, "brandId")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	items, err := h.catalog.ListByBrand(r.Context(), brandID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, items)
}

// ListItemsByType handles GET /api/catalog/type/{typeId}
func (h *CatalogHandler) ListItemsByType(w http.ResponseWriter, r *http.Request) {
	typeID, apiErr := parseID(r, "typeId")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	items, err := h.catalog.ListByType(r.Context(), typeID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, items)
}

// CreateItem handles POST /api/catalog
func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	input, apiErr := decodeItemInput(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	created, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, created)
}

// UpdateItem handles PUT /api/catalog/{id}
func (h *CatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	input, apiErr := decodeItemInput(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	updated, err := h.catalog.Update(r.Context(), id, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	if updated == nil {
		response.Error(w, apierror.NotFound("catalog item not found"))
		return
	}

	response.NoContent(w)
}

// DeleteItem handles DELETE /api/catalog/{id}
func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}

// nameInput is the create body for brands and types.
type nameInput struct {
	Name string `json:"name"`
}

// ListBrands handles GET /api/catalog/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.repo.ListBrands(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, brands)
}

// CreateBrand handles POST /api/catalog/brands
func (h *CatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var input nameInput
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		response.Error(w, apierror.BadRequest("name is required"))
		return
	}

	brand, err := h.repo.CreateBrand(r.Context(), input.Name)
	if err != nil {
		if err == repository.ErrDuplicateName {
			response.Error(w, apierror.Conflict("brand name already exists"))
			return
		}
		response.Error(w, err)
		return
	}

	response.Created(w, brand)
}

// ListTypes handles GET /api/catalog/types
func (h *CatalogHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.ListTypes(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, types)
}

// CreateType handles POST /api/catalog/types
func (h *CatalogHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var input nameInput
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		response.Error(w, apierror.BadRequest("name is required"))
		return
	}

	typ, err := h.repo.CreateType(r.Context(), input.Name)
	if err != nil {
		if err == repository.ErrDuplicateName {
			response.Error(w, apierror.Conflict("type name already exists"))
			return
		}
		response.Error(w, err)
		return
	}

	response.Created(w, typ)
}
