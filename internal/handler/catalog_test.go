package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-api/internal/handler"
	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatalog is a canned-response Catalog implementation.
type stubCatalog struct {
	items map[int64]model.ItemView
}

func (s *stubCatalog) ListAll(ctx context.Context) ([]model.ItemView, error) {
	items := []model.ItemView{}
	for _, v := range s.items {
		items = append(items, v)
	}
	return items, nil
}

func (s *stubCatalog) GetByID(ctx context.Context, id int64) (*model.ItemView, error) {
	if v, ok := s.items[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (s *stubCatalog) ListByBrand(ctx context.Context, brandID int64) ([]model.ItemView, error) {
	return []model.ItemView{}, nil
}

func (s *stubCatalog) ListByType(ctx context.Context, typeID int64) ([]model.ItemView, error) {
	return []model.ItemView{}, nil
}

func (s *stubCatalog) Create(ctx context.Context, input model.ItemInput) (*model.ItemView, error) {
	view := model.ItemView{
		ID:             101,
		Name:           input.Name,
		Price:          input.Price,
		AvailableStock: input.AvailableStock,
		BrandName:      "Samsung",
		TypeName:       "Smartphone",
	}
	s.items[view.ID] = view
	return &view, nil
}

func (s *stubCatalog) Update(ctx context.Context, id int64, input model.ItemInput) (*model.ItemView, error) {
	if v, ok := s.items[id]; ok {
		v.Name = input.Name
		s.items[id] = v
		return &v, nil
	}
	return nil, nil
}

func (s *stubCatalog) Delete(ctx context.Context, id int64) error {
	delete(s.items, id)
	return nil
}

// stubRepo covers only the brand/type methods the handler uses.
type stubRepo struct {
	repository.CatalogRepository
	brands []model.CatalogBrand
}

func (s *stubRepo) ListBrands(ctx context.Context) ([]model.CatalogBrand, error) {
	return s.brands, nil
}

func (s *stubRepo) CreateBrand(ctx context.Context, name string) (*model.CatalogBrand, error) {
	for _, b := range s.brands {
		if b.Name == name {
			return nil, repository.ErrDuplicateName
		}
	}
	brand := model.CatalogBrand{ID: int64(len(s.brands) + 1), Name: name}
	s.brands = append(s.brands, brand)
	return &brand, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *stubCatalog) {
	t.Helper()

	catalog := &stubCatalog{items: map[int64]model.ItemView{
		1: {ID: 1, Name: "Galaxy S24", Price: 999.99, AvailableStock: 50, BrandName: "Samsung", TypeName: "Smartphone"},
	}}
	repo := &stubRepo{brands: []model.CatalogBrand{{ID: 1, Name: "Samsung"}}}

	r := router.New(router.Config{
		Handler:        handler.New("test"),
		CatalogHandler: handler.NewCatalogHandler(catalog, repo),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, catalog
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestListItemsReturnsOK(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []model.ItemView
	decodeData(t, resp, &items)
	assert.Len(t, items, 1)
}

func TestGetItemByID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/catalog/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var item model.ItemView
	decodeData(t, resp, &item)
	assert.Equal(t, "Galaxy S24", item.Name)
	assert.Equal(t, "Samsung", item.BrandName)
}

func TestGetItemNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/catalog/999")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetItemBadID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/catalog/abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateItemReturnsCreated(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(model.ItemInput{
		Name: "Galaxy S24", Price: 999.99, AvailableStock: 50, BrandID: 1, TypeID: 1,
	})
	resp, err := http.Post(srv.URL+"/api/catalog", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item model.ItemView
	decodeData(t, resp, &item)
	assert.Equal(t, int64(101), item.ID)
	assert.Equal(t, "Smartphone", item.TypeName)
}

func TestCreateItemRejectsMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/catalog", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func doRequest(t *testing.T, method, url string, body []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUpdateItem(t *testing.T) {
	srv, _ := newTestServer(t)
	body, _ := json.Marshal(model.ItemInput{
		Name: "Galaxy S24 Ultra", Price: 1299.99, AvailableStock: 25, BrandID: 1, TypeID: 1,
	})

	resp := doRequest(t, http.MethodPut, srv.URL+"/api/catalog/1", body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodPut, srv.URL+"/api/catalog/999", body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteItem(t *testing.T) {
	srv, catalog := newTestServer(t)

	resp := doRequest(t, http.MethodDelete, srv.URL+"/api/catalog/1", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, catalog.items)
}

func TestCreateBrandConflict(t *testing.T) {
	srv, _ := newTestServer(t)

	body := []byte(`{"name":"Samsung"}`)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/catalog/brands", body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBrandsList(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/catalog/brands")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var brands []model.CatalogBrand
	decodeData(t, resp, &brands)
	assert.Len(t, brands, 1)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
