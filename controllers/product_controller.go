package controllers

import (
	"net/http"
	"strconv"

	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for the product catalog.
type ProductController struct {
	productService services.ProductService
	cache          *CacheManager
}

// NewProductController creates a new ProductController.
func NewProductController(svc services.ProductService, cache *CacheManager) *ProductController {
	return &ProductController{productService: svc, cache: cache}
}

// SearchProducts handles GET /products/search
//
// Query parameters: q (free text, English or Arabic), category, brand,
// min_price, max_price, page, limit. Non-numeric filter values fail the
// request with 400 before the search executes; the response envelope is
// {count, results} where count is the total match count and results the
// requested page of the ordered sequence.
func (pc *ProductController) SearchProducts(ctx *gin.Context) {
	category, err := parseOptionalUint(ctx.Query("category"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}
	brand, err := parseOptionalUint(ctx.Query("brand"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}
	minPrice, err := parseOptionalFloat(ctx.Query("min_price"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
		return
	}
	maxPrice, err := parseOptionalFloat(ctx.Query("max_price"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
		return
	}

	results, svcErr := pc.productService.Search(ctx.Request.Context(), services.SearchRequest{
		Query:    ctx.Query("q"),
		Category: category,
		Brand:    brand,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	page, limit := parsePaginationParams(ctx)
	ctx.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": paginate(results, page, limit),
	})
}

// GetProduct handles GET /products/:id
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, svcErr := pc.productService.GetProduct(ctx.Request.Context(), uint(id))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// ListProducts handles GET /products
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	category, err := parseOptionalUint(ctx.Query("category"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}
	brand, err := parseOptionalUint(ctx.Query("brand"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	page, limit := parsePaginationParams(ctx)
	products, total, svcErr := pc.productService.ListProducts(ctx.Request.Context(), services.ListRequest{
		Category: category,
		Brand:    brand,
		Ordering: ctx.Query("ordering"),
		Page:     page,
		Limit:    limit,
	})
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": products,
	})
}

// ListCategories handles GET /categories
func (pc *ProductController) ListCategories(ctx *gin.Context) {
	var cached []models.Category
	if pc.cache.Get(ctx.Request.Context(), CategoryListCacheKey, &cached) {
		ctx.JSON(http.StatusOK, gin.H{"categories": cached})
		return
	}

	categories, svcErr := pc.productService.ListCategories(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.SetAsync(CategoryListCacheKey, categories)
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListBrands handles GET /brands
func (pc *ProductController) ListBrands(ctx *gin.Context) {
	var cached []models.Brand
	if pc.cache.Get(ctx.Request.Context(), BrandListCacheKey, &cached) {
		ctx.JSON(http.StatusOK, gin.H{"brands": cached})
		return
	}

	brands, svcErr := pc.productService.ListBrands(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.SetAsync(BrandListCacheKey, brands)
	ctx.JSON(http.StatusOK, gin.H{"brands": brands})
}

// parsePaginationParams extracts and validates page/limit query params.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const maxLimit = 100
	pageInt, limitInt := 1, 10
	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 {
		if l > maxLimit {
			l = maxLimit
		}
		limitInt = l
	}
	return pageInt, limitInt
}

// paginate slices one page out of the full ordered result sequence.
func paginate(results []models.ProductSummary, page, limit int) []models.ProductSummary {
	start := (page - 1) * limit
	if start >= len(results) {
		return []models.ProductSummary{}
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}

// parseOptionalUint parses an optional numeric ID query param. Empty
// means "not provided"; anything non-numeric is a validation error.
func parseOptionalUint(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}

// parseOptionalFloat parses an optional price bound query param.
func parseOptionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
