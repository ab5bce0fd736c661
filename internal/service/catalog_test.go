package service

import (
	"context"
	"testing"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo returns canned results so validation can be tested in isolation.
type stubRepo struct {
	repository.CatalogRepository
	createErr error
	created   *model.ItemView
}

func (s *stubRepo) CreateItem(ctx context.Context, input model.ItemInput) (*model.ItemView, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubRepo) UpdateItem(ctx context.Context, id int64, input model.ItemInput) (*model.ItemView, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func validInput() model.ItemInput {
	return model.ItemInput{
		Name:           "Bravia XR",
		Price:          1499.00,
		AvailableStock: 10,
		BrandID:        2,
		TypeID:         2,
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewCatalogService(&stubRepo{})

	cases := []struct {
		name   string
		mutate func(*model.ItemInput)
		field  string
	}{
		{"empty name", func(i *model.ItemInput) { i.Name = "  " }, "name"},
		{"negative price", func(i *model.ItemInput) { i.Price = -1 }, "price"},
		{"negative stock", func(i *model.ItemInput) { i.AvailableStock = -5 }, "availableStock"},
		{"missing brand", func(i *model.ItemInput) { i.BrandID = 0 }, "brandId"},
		{"missing type", func(i *model.ItemInput) { i.TypeID = 0 }, "typeId"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			require.Error(t, err)

			apiErr, ok := err.(*apierror.Error)
			require.True(t, ok, "validation failures must be API errors")
			assert.Equal(t, 400, apiErr.StatusCode)
			require.NotEmpty(t, apiErr.Details)
			assert.Equal(t, tc.field, apiErr.Details[0].Field)
		})
	}
}

func TestCreateMapsReferenceErrors(t *testing.T) {
	svc := NewCatalogService(&stubRepo{createErr: repository.ErrBrandNotFound})

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)

	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestUpdateMapsReferenceErrors(t *testing.T) {
	svc := NewCatalogService(&stubRepo{createErr: repository.ErrTypeNotFound})

	_, err := svc.Update(context.Background(), 1, validInput())
	require.Error(t, err)

	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestNewCatalogServiceRequiresRepo(t *testing.T) {
	assert.Nil(t, NewCatalogService(nil))
}
