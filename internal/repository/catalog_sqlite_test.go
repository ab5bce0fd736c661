package repository

import (
	"context"
	"path/filepath"
	"testing"

	"catalog-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteCatalogRepository {
	t.Helper()

	repo, err := NewSQLiteCatalogRepository(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedReferences(t *testing.T, repo *SQLiteCatalogRepository) (*model.CatalogBrand, *model.CatalogType) {
	t.Helper()

	brand, err := repo.CreateBrand(context.Background(), "Samsung")
	require.NoError(t, err)
	typ, err := repo.CreateType(context.Background(), "Smartphone")
	require.NoError(t, err)
	return brand, typ
}

func TestCreateAndGetItem(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	brand, typ := seedReferences(t, repo)

	created, err := repo.CreateItem(ctx, model.ItemInput{
		Name:           "Galaxy S24",
		Description:    "Flagship smartphone",
		Price:          999.99,
		AvailableStock: 50,
		ImageURL:       "https://img.example/galaxy-s24.png",
		BrandID:        brand.ID,
		TypeID:         typ.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Samsung", created.BrandName)
	assert.Equal(t, "Smartphone", created.TypeName)
	assert.Equal(t, 999.99, created.Price)

	got, err := repo.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created, got)
}

func TestGetItemByIDAbsent(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetItemByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got, "absent rows are (nil, nil), not an error")
}

func TestCreateItemRejectsUnknownReferences(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	brand, typ := seedReferences(t, repo)

	input := model.ItemInput{Name: "Galaxy S24", Price: 999.99, BrandID: 999, TypeID: typ.ID}
	_, err := repo.CreateItem(ctx, input)
	assert.ErrorIs(t, err, ErrBrandNotFound)

	input = model.ItemInput{Name: "Galaxy S24", Price: 999.99, BrandID: brand.ID, TypeID: 999}
	_, err = repo.CreateItem(ctx, input)
	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestListItemsByBrandAndType(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	brand, typ := seedReferences(t, repo)

	sony, err := repo.CreateBrand(ctx, "Sony")
	require.NoError(t, err)

	for _, name := range []string{"Galaxy S24", "Galaxy A55"} {
		_, err := repo.CreateItem(ctx, model.ItemInput{
			Name: name, Price: 499, BrandID: brand.ID, TypeID: typ.ID,
		})
		require.NoError(t, err)
	}
	_, err = repo.CreateItem(ctx, model.ItemInput{
		Name: "Xperia 1", Price: 899, BrandID: sony.ID, TypeID: typ.ID,
	})
	require.NoError(t, err)

	byBrand, err := repo.ListItemsByBrand(ctx, brand.ID)
	require.NoError(t, err)
	assert.Len(t, byBrand, 2)

	byType, err := repo.ListItemsByType(ctx, typ.ID)
	require.NoError(t, err)
	assert.Len(t, byType, 3)

	all, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateItem(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	brand, typ := seedReferences(t, repo)

	created, err := repo.CreateItem(ctx, model.ItemInput{
		Name: "Galaxy S24", Price: 999.99, AvailableStock: 50, BrandID: brand.ID, TypeID: typ.ID,
	})
	require.NoError(t, err)

	updated, err := repo.UpdateItem(ctx, created.ID, model.ItemInput{
		Name: "Galaxy S24 Ultra", Price: 1299.99, AvailableStock: 25, BrandID: brand.ID, TypeID: typ.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Galaxy S24 Ultra", updated.Name)
	assert.Equal(t, 1299.99, updated.Price)
	assert.Equal(t, 25, updated.AvailableStock)

	missing, err := repo.UpdateItem(ctx, 9999, model.ItemInput{
		Name: "Ghost", Price: 1, BrandID: brand.ID, TypeID: typ.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, missing, "updating an unknown id reports not-found")
}

func TestDeleteItemIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	brand, typ := seedReferences(t, repo)

	created, err := repo.CreateItem(ctx, model.ItemInput{
		Name: "Galaxy S24", Price: 999.99, BrandID: brand.ID, TypeID: typ.ID,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteItem(ctx, created.ID))
	require.NoError(t, repo.DeleteItem(ctx, created.ID), "deleting a missing id is not an error")

	got, err := repo.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDuplicateBrandAndTypeNames(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedReferences(t, repo)

	_, err := repo.CreateBrand(ctx, "Samsung")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = repo.CreateType(ctx, "Smartphone")
	assert.ErrorIs(t, err, ErrDuplicateName)

	brands, err := repo.ListBrands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 1)

	types, err := repo.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	brand, typ := seedReferences(t, repo)

	_, err := repo.CreateItem(ctx, model.ItemInput{
		Name: "Galaxy S24", Price: 999.99, BrandID: brand.ID, TypeID: typ.ID,
	})
	require.NoError(t, err)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["total_items"])
	assert.Equal(t, int64(1), stats["total_brands"])
	assert.Equal(t, int64(1), stats["total_types"])
}

// Full lifecycle: seed references, create, read back, delete, read absent.
func TestItemLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	brand, typ := seedReferences(t, repo)

	created, err := repo.CreateItem(ctx, model.ItemInput{
		Name:           "Galaxy S24",
		Price:          999.99,
		AvailableStock: 50,
		BrandID:        brand.ID,
		TypeID:         typ.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Samsung", created.BrandName)
	assert.Equal(t, "Smartphone", created.TypeName)

	got, err := repo.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	require.NoError(t, repo.DeleteItem(ctx, created.ID))

	got, err = repo.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
