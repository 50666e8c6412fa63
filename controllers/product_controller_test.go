package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/controllers"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// ---- concrete mock implementing services.ProductService ----

type mockSvc struct {
	results    []models.ProductSummary
	searchErr  *services.ServiceError
	lastSearch services.SearchRequest

	product    *models.Product
	productErr *services.ServiceError

	categories []models.Category
	brands     []models.Brand

	listCalls int
}

func (m *mockSvc) Search(_ context.Context, req services.SearchRequest) ([]models.ProductSummary, *services.ServiceError) {
	m.lastSearch = req
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockSvc) GetProduct(_ context.Context, _ uint) (*models.Product, *services.ServiceError) {
	if m.productErr != nil {
		return nil, m.productErr
	}
	return m.product, nil
}

func (m *mockSvc) ListProducts(_ context.Context, _ services.ListRequest) ([]models.ProductSummary, int64, *services.ServiceError) {
	return m.results, int64(len(m.results)), nil
}

func (m *mockSvc) ListCategories(_ context.Context) ([]models.Category, *services.ServiceError) {
	m.listCalls++
	return m.categories, nil
}

func (m *mockSvc) ListBrands(_ context.Context) ([]models.Brand, *services.ServiceError) {
	m.listCalls++
	return m.brands, nil
}

// ---- helpers ----

func setupRouter(svc services.ProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil redis client: caching disabled, list endpoints hit the service.
	c := controllers.NewProductController(svc, controllers.NewCacheManager(nil))

	r.GET("/categories", c.ListCategories)
	r.GET("/brands", c.ListBrands)
	r.GET("/products", c.ListProducts)
	r.GET("/products/search", c.SearchProducts)
	r.GET("/products/:id", c.GetProduct)
	return r
}

func doGet(r *gin.Engine, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func summaries(names ...string) []models.ProductSummary {
	out := make([]models.ProductSummary, 0, len(names))
	for i, n := range names {
		out = append(out, models.ProductSummary{ID: uint(i + 1), Name: n, IsActive: true})
	}
	return out
}

type searchEnvelope struct {
	Count   int                     `json:"count"`
	Results []models.ProductSummary `json:"results"`
}

// ---- search tests ----

func TestSearchProducts_Envelope(t *testing.T) {
	svc := &mockSvc{results: summaries("Milk")}
	r := setupRouter(svc)

	w := doGet(r, "/products/search?q=Milk")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp searchEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, "Milk", resp.Results[0].Name)
	assert.Equal(t, "Milk", svc.lastSearch.Query)
}

func TestSearchProducts_PassesFilters(t *testing.T) {
	svc := &mockSvc{}
	r := setupRouter(svc)

	w := doGet(r, "/products/search?q=milk&category=3&brand=7&min_price=1.50&max_price=9.99")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, svc.lastSearch.Category)
	assert.Equal(t, uint(3), *svc.lastSearch.Category)
	assert.NotNil(t, svc.lastSearch.Brand)
	assert.Equal(t, uint(7), *svc.lastSearch.Brand)
	assert.NotNil(t, svc.lastSearch.MinPrice)
	assert.Equal(t, 1.50, *svc.lastSearch.MinPrice)
	assert.NotNil(t, svc.lastSearch.MaxPrice)
	assert.Equal(t, 9.99, *svc.lastSearch.MaxPrice)
}

func TestSearchProducts_NonNumericPriceIs400(t *testing.T) {
	svc := &mockSvc{results: summaries("Milk")}
	r := setupRouter(svc)

	w := doGet(r, "/products/search?q=milk&min_price=cheap")

	// Validation fails the request before the search executes.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.SearchRequest{}, svc.lastSearch)
}

func TestSearchProducts_NonNumericCategoryIs400(t *testing.T) {
	svc := &mockSvc{}
	r := setupRouter(svc)

	w := doGet(r, "/products/search?category=dairy")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchProducts_ServiceErrorStatusPropagates(t *testing.T) {
	svc := &mockSvc{searchErr: &services.ServiceError{StatusCode: 500, Message: "Failed to execute search"}}
	r := setupRouter(svc)

	w := doGet(r, "/products/search?q=milk")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSearchProducts_Pagination(t *testing.T) {
	svc := &mockSvc{results: summaries("Bread", "Cola Drink", "Milk")}
	r := setupRouter(svc)

	w := doGet(r, "/products/search?q=a&page=2&limit=2")

	var resp searchEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, "Milk", resp.Results[0].Name)
}

func TestSearchProducts_PageBeyondEnd(t *testing.T) {
	svc := &mockSvc{results: summaries("Milk")}
	r := setupRouter(svc)

	w := doGet(r, "/products/search?q=milk&page=9&limit=10")

	var resp searchEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Empty(t, resp.Results)
}

func TestSearchProducts_EmptyResultIsNotAnError(t *testing.T) {
	svc := &mockSvc{}
	r := setupRouter(svc)

	w := doGet(r, "/products/search?q=zzz")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp searchEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
}

// ---- product / taxonomy tests ----

func TestGetProduct_InvalidID(t *testing.T) {
	r := setupRouter(&mockSvc{})

	w := doGet(r, "/products/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := &mockSvc{productErr: &services.ServiceError{StatusCode: 404, Message: "Product not found"}}
	r := setupRouter(svc)

	w := doGet(r, "/products/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProduct_Success(t *testing.T) {
	svc := &mockSvc{product: &models.Product{ID: 1, Name: "Milk", SKU: "MILK001"}}
	r := setupRouter(svc)

	w := doGet(r, "/products/1")

	assert.Equal(t, http.StatusOK, w.Code)
	var p models.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Milk", p.Name)
}

func TestListProducts_Envelope(t *testing.T) {
	svc := &mockSvc{results: summaries("Bread", "Milk")}
	r := setupRouter(svc)

	w := doGet(r, "/products")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp searchEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Results, 2)
}

func TestListCategories_CacheDisabledHitsService(t *testing.T) {
	svc := &mockSvc{categories: []models.Category{{ID: 1, Name: "Dairy"}}}
	r := setupRouter(svc)

	w := doGet(r, "/categories")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.listCalls)

	var resp map[string][]models.Category
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["categories"], 1)
}

func TestListBrands_CacheDisabledHitsService(t *testing.T) {
	svc := &mockSvc{brands: []models.Brand{{ID: 1, Name: "Al Marai"}}}
	r := setupRouter(svc)

	w := doGet(r, "/brands")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string][]models.Brand
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["brands"], 1)
}
