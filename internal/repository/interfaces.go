package repository

import (
	"context"

	"catalog-api/internal/model"
)

// CatalogRepository defines catalog data access methods.
// Point lookups return (nil, nil) when no record exists; referential
// failures on writes are reported via the typed sentinel errors below.
type CatalogRepository interface {
	// ListItems returns every catalog item as a denormalized view.
	ListItems(ctx context.Context) ([]model.ItemView, error)

	// GetItemByID returns a single item view, or (nil, nil) if absent.
	GetItemByID(ctx context.Context, id int64) (*model.ItemView, error)

	// ListItemsByBrand returns all items referencing the given brand.
	ListItemsByBrand(ctx context.Context, brandID int64) ([]model.ItemView, error)

	// ListItemsByType returns all items referencing the given type.
	ListItemsByType(ctx context.Context, typeID int64) ([]model.ItemView, error)

	// CreateItem inserts a new item and returns its view with the assigned id.
	CreateItem(ctx context.Context, input model.ItemInput) (*model.ItemView, error)

	// UpdateItem replaces an item's fields. Returns (nil, nil) if id is unknown.
	UpdateItem(ctx context.Context, id int64, input model.ItemInput) (*model.ItemView, error)

	// DeleteItem removes an item. Deleting a missing id is not an error.
	DeleteItem(ctx context.Context, id int64) error

	// CreateBrand inserts a brand with a unique name.
	CreateBrand(ctx context.Context, name string) (*model.CatalogBrand, error)

	// ListBrands returns all brands ordered by id.
	ListBrands(ctx context.Context) ([]model.CatalogBrand, error)

	// CreateType inserts a type with a unique name.
	CreateType(ctx context.Context, name string) (*model.CatalogType, error)

	// ListTypes returns all types ordered by id.
	ListTypes(ctx context.Context) ([]model.CatalogType, error)

	// Stats returns statistics about the catalog database.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Close closes the repository connection.
	Close() error
}

// Common repository errors
type RepoError string

func (e RepoError) Error() string { return string(e) }

const (
	// ErrBrandNotFound indicates the referenced brand does not exist.
	ErrBrandNotFound RepoError = "catalog brand not found"

	// ErrTypeNotFound indicates the referenced type does not exist.
	ErrTypeNotFound RepoError = "catalog type not found"

	// ErrDuplicateName indicates a brand/type name is already taken.
	ErrDuplicateName RepoError = "name already exists"
)
