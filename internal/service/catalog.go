package service

import (
	"context"
	"strings"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/pkg/apierror"
)

// Catalog is the query/command contract for the product catalog.
// CatalogService implements it against the store; CachedCatalog wraps any
// implementation with a cache-aside layer without altering the contract.
type Catalog interface {
	// ListAll returns every item in the catalog.
	ListAll(ctx context.Context) ([]model.ItemView, error)

	// GetByID returns a single item, or (nil, nil) if the id is unknown.
	GetByID(ctx context.Context, id int64) (*model.ItemView, error)

	// ListByBrand returns all items of the given brand.
	ListByBrand(ctx context.Context, brandID int64) ([]model.ItemView, error)

	// ListByType returns all items of the given type.
	ListByType(ctx context.Context, typeID int64) ([]model.ItemView, error)

	// Create adds an item and returns the created view with its assigned id.
	Create(ctx context.Context, input model.ItemInput) (*model.ItemView, error)

	// Update replaces an item's fields. Returns (nil, nil) if the id is unknown.
	Update(ctx context.Context, id int64, input model.ItemInput) (*model.ItemView, error)

	// Delete removes an item. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}

// CatalogService handles catalog business logic against the repository.
type CatalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service.
// Returns nil if repo is nil (required dependency).
func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	if repo == nil {
		return nil
	}
	return &CatalogService{repo: repo}
}

// validateInput checks the writable item fields.
func validateInput(input model.ItemInput) *apierror.Error {
	var details []apierror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		details = append(details, apierror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Price < 0 {
		details = append(details, apierror.FieldError{Field: "price", Message: "price must be non-negative"})
	}
	if input.AvailableStock < 0 {
		details = append(details, apierror.FieldError{Field: "availableStock", Message: "availableStock must be non-negative"})
	}
	if input.BrandID <= 0 {
		details = append(details, apierror.FieldError{Field: "brandId", Message: "brandId is required"})
	}
	if input.TypeID <= 0 {
		details = append(details, apierror.FieldError{Field: "typeId", Message: "typeId is required"})
	}
	if len(details) > 0 {
		return apierror.ValidationError("invalid catalog item", details...)
	}
	return nil
}

// mapRepoError converts repository sentinel errors into API errors.
// Anything unrecognized is passed through untouched.
func mapRepoError(err error) error {
	switch err {
	case repository.ErrBrandNotFound:
		return apierror.ValidationError("brand does not exist",
			apierror.FieldError{Field: "brandId", Message: "no brand with this id"})
	case repository.ErrTypeNotFound:
		return apierror.ValidationError("type does not exist",
			apierror.FieldError{Field: "typeId", Message: "no type with this id"})
	default:
		return err
	}
}

// ListAll returns every item in the catalog.
func (s *CatalogService) ListAll(ctx context.Context) ([]model.ItemView, error) {
	return s.repo.ListItems(ctx)
}

// GetByID returns a single item, or (nil, nil) if the id is unknown.
func (s *CatalogService) GetByID(ctx context.Context, id int64) (*model.ItemView, error) {
	return s.repo.GetItemByID(ctx, id)
}

// ListByBrand returns all items of the given brand.
func (s *CatalogService) ListByBrand(ctx context.Context, brandID int64) ([]model.ItemView, error) {
	return s.repo.ListItemsByBrand(ctx, brandID)
}

// ListByType returns all items of the given type.
func (s *CatalogService) ListByType(ctx context.Context, typeID int64) ([]model.ItemView, error) {
	return s.repo.ListItemsByType(ctx, typeID)
}

// Create validates the input and adds an item.
func (s *CatalogService) Create(ctx context.Context, input model.ItemInput) (*model.ItemView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	view, err := s.repo.CreateItem(ctx, input)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return view, nil
}

// Update validates the input and replaces an item's fields.
func (s *CatalogService) Update(ctx context.Context, id int64, input model.ItemInput) (*model.ItemView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	view, err := s.repo.UpdateItem(ctx, id, input)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return view, nil
}

// Delete removes an item.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteItem(ctx, id)
}

// Ensure CatalogService implements Catalog
var _ Catalog = (*CatalogService)(nil)
